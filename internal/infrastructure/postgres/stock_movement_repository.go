package postgres

import (
	"context"
	"fmt"

	"github.com/duarteol2000/sisreq/internal/domain"
	"github.com/duarteol2000/sisreq/internal/domain/entity"
	"github.com/duarteol2000/sisreq/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementColumns = `id, prefeitura_id, secretaria_id, material_id, tipo, motivo, quantidade, valor_unitario,
	documento_id, orgao_externo, usuario_id, created_at, observacao`

// StockMovementRepo trilha de movimentos sobre PostgreSQL. Só INSERT e SELECT.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create insere o movimento. O CHECK quantidade > 0 é reforçado pelo banco.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	if m.Quantity <= 0 {
		return domain.ErrNonPositiveQuantity
	}
	query := `
		INSERT INTO movimentos_estoque (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.PrefeituraID, m.SecretariaID, m.MaterialID, m.Type, m.BusinessReason, m.Quantity, m.UnitValue,
		m.DocumentID, m.ExternalEntity, m.UserID, m.CreatedAt, m.Note,
	)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrNonPositiveQuantity
		}
		if hasCode(err, "23503") {
			return fmt.Errorf("insert stock movement: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// List lista os movimentos da unidade, do mais recente ao mais antigo.
func (r *StockMovementRepo) List(ctx context.Context, scope entity.Scope, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	var w whereBuilder
	w.add("prefeitura_id = $%d", scope.PrefeituraID)
	w.add("secretaria_id = $%d", scope.SecretariaID)
	if f.MaterialID != "" {
		w.add("material_id = $%d", f.MaterialID)
	}
	if f.From != nil {
		w.add("created_at >= $%d", *f.From)
	}
	if f.To != nil {
		w.add("created_at <= $%d", *f.To)
	}
	query := `SELECT ` + movementColumns + ` FROM movimentos_estoque` + w.sql() +
		` ORDER BY created_at DESC, id` + w.page(f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(
			&m.ID, &m.PrefeituraID, &m.SecretariaID, &m.MaterialID, &m.Type, &m.BusinessReason, &m.Quantity, &m.UnitValue,
			&m.DocumentID, &m.ExternalEntity, &m.UserID, &m.CreatedAt, &m.Note,
		); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
