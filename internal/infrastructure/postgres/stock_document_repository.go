package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/duarteol2000/sisreq/internal/domain/entity"
	"github.com/duarteol2000/sisreq/internal/domain/repository"
)

var _ repository.StockDocumentRepository = (*StockDocumentRepo)(nil)

// StockDocumentRepo documentos de suporte sobre PostgreSQL.
type StockDocumentRepo struct {
	q Querier
}

// NewStockDocumentRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewStockDocumentRepository(q Querier) *StockDocumentRepo {
	return &StockDocumentRepo{q: q}
}

func (r *StockDocumentRepo) Create(ctx context.Context, d *entity.StockDocument) error {
	query := `
		INSERT INTO documentos_estoque (id, prefeitura_id, secretaria_id, tipo, numero, data_emissao, descricao, arquivo, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		d.ID, d.PrefeituraID, d.SecretariaID, d.Type, d.Number, d.IssueDate, d.Description, d.FileRef, d.CreatedAt, d.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert stock document: %w", err)
	}
	return nil
}

// GetByID obtém o documento da unidade. (nil, nil) se não existir.
func (r *StockDocumentRepo) GetByID(ctx context.Context, scope entity.Scope, id string) (*entity.StockDocument, error) {
	query := `
		SELECT id, prefeitura_id, secretaria_id, tipo, numero, data_emissao, descricao, arquivo, created_at, created_by
		FROM documentos_estoque WHERE id = $1 AND prefeitura_id = $2 AND secretaria_id = $3`
	var d entity.StockDocument
	err := r.q.QueryRow(ctx, query, id, scope.PrefeituraID, scope.SecretariaID).Scan(
		&d.ID, &d.PrefeituraID, &d.SecretariaID, &d.Type, &d.Number, &d.IssueDate, &d.Description, &d.FileRef, &d.CreatedAt, &d.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock document: %w", err)
	}
	return &d, nil
}
