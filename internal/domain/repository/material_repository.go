package repository

import (
	"context"

	"github.com/duarteol2000/sisreq/internal/domain/entity"
)

// MaterialRepository porta de persistência dos materiais (DIP).
// Leituras devolvem (nil, nil) quando o material não existe na unidade.
type MaterialRepository interface {
	Create(ctx context.Context, m *entity.Material) error
	GetByID(ctx context.Context, scope entity.Scope, id string) (*entity.Material, error)
	// GetForUpdate lê o saldo vivo e bloqueia a linha até o fim da transação (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, scope entity.Scope, id string) (*entity.Material, error)
	// ListByIDs devolve os materiais da unidade cujos IDs estão em ids (qualquer situação).
	ListByIDs(ctx context.Context, scope entity.Scope, ids []string) ([]*entity.Material, error)
	// ListRequestable devolve os materiais ativos e com saldo (> 0); ids vazio = todos.
	ListRequestable(ctx context.Context, scope entity.Scope, ids []string) ([]*entity.Material, error)
	ListByScope(ctx context.Context, scope entity.Scope, onlyActive bool) ([]*entity.Material, error)
	UpdateQuantity(ctx context.Context, id string, quantityOnHand int) error
}
