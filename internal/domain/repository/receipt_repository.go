package repository

import (
	"context"

	"github.com/duarteol2000/sisreq/internal/domain/entity"
)

// ReceiptRepository porta de persistência dos recibos (um por requisição).
type ReceiptRepository interface {
	// GetOrCreate devolve o recibo existente da requisição ou persiste r.
	// created indica se r foi gravado; um recibo existente nunca é alterado.
	GetOrCreate(ctx context.Context, r *entity.Receipt) (receipt *entity.Receipt, created bool, err error)
	GetByID(ctx context.Context, scope entity.Scope, id string) (*entity.Receipt, error)
	GetByRequisition(ctx context.Context, scope entity.Scope, requisitionID string) (*entity.Receipt, error)
}
