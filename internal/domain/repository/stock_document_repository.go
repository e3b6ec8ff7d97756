package repository

import (
	"context"

	"github.com/duarteol2000/sisreq/internal/domain/entity"
)

// StockDocumentRepository porta de persistência dos documentos de suporte.
type StockDocumentRepository interface {
	Create(ctx context.Context, d *entity.StockDocument) error
	GetByID(ctx context.Context, scope entity.Scope, id string) (*entity.StockDocument, error)
}
