package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/duarteol2000/sisreq/internal/domain"
	"github.com/duarteol2000/sisreq/internal/domain/entity"
	"github.com/duarteol2000/sisreq/internal/domain/repository"
)

var _ repository.ReceiptRepository = (*ReceiptRepo)(nil)

const receiptColumns = `id, requisicao_id, prefeitura_id, secretaria_id, numero, emitido_por, data_emissao, observacao`

// ReceiptRepo implementação de ReceiptRepository sobre PostgreSQL.
type ReceiptRepo struct {
	q Querier
}

// NewReceiptRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewReceiptRepository(q Querier) *ReceiptRepo {
	return &ReceiptRepo{q: q}
}

func scanReceipt(row pgx.Row) (*entity.Receipt, error) {
	var r entity.Receipt
	if err := row.Scan(&r.ID, &r.RequisitionID, &r.PrefeituraID, &r.SecretariaID, &r.Number, &r.IssuedBy, &r.IssuedAt, &r.Note); err != nil {
		return nil, err
	}
	return &r, nil
}

// GetOrCreate grava o recibo se a requisição ainda não tiver um (UNIQUE requisicao_id).
// Um recibo existente é devolvido sem alteração.
func (r *ReceiptRepo) GetOrCreate(ctx context.Context, rec *entity.Receipt) (*entity.Receipt, bool, error) {
	query := `
		INSERT INTO recibos (` + receiptColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (requisicao_id) DO NOTHING`
	cmd, err := r.q.Exec(ctx, query,
		rec.ID, rec.RequisitionID, rec.PrefeituraID, rec.SecretariaID, rec.Number, rec.IssuedBy, rec.IssuedAt, rec.Note,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, false, fmt.Errorf("recibo %s: %w", rec.Number, domain.ErrDuplicate)
		}
		return nil, false, fmt.Errorf("insert receipt: %w", err)
	}
	if cmd.RowsAffected() == 1 {
		return rec, true, nil
	}

	existing, err := r.GetByRequisition(ctx, rec.Scope, rec.RequisitionID)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		// o recibo existente pertence a outra unidade
		return nil, false, domain.ErrScopeMismatch
	}
	return existing, false, nil
}

func (r *ReceiptRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Receipt, error) {
	rec, err := scanReceipt(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get receipt: %w", err)
	}
	return rec, nil
}

// GetByID obtém o recibo da unidade. (nil, nil) se não existir.
func (r *ReceiptRepo) GetByID(ctx context.Context, scope entity.Scope, id string) (*entity.Receipt, error) {
	return r.getOne(ctx, `
		SELECT `+receiptColumns+`
		FROM recibos WHERE id = $1 AND prefeitura_id = $2 AND secretaria_id = $3`,
		id, scope.PrefeituraID, scope.SecretariaID)
}

// GetByRequisition obtém o recibo emitido para a requisição. (nil, nil) se não houver.
func (r *ReceiptRepo) GetByRequisition(ctx context.Context, scope entity.Scope, requisitionID string) (*entity.Receipt, error) {
	return r.getOne(ctx, `
		SELECT `+receiptColumns+`
		FROM recibos WHERE requisicao_id = $1 AND prefeitura_id = $2 AND secretaria_id = $3`,
		requisitionID, scope.PrefeituraID, scope.SecretariaID)
}
