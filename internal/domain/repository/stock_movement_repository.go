package repository

import (
	"context"
	"time"

	"github.com/duarteol2000/sisreq/internal/domain/entity"
)

// MovementFilter filtros da trilha de movimentos.
type MovementFilter struct {
	MaterialID string
	From, To   *time.Time
	Limit      int
	Offset     int
}

// StockMovementRepository porta de persistência dos movimentos de estoque.
// Só há criação e leitura: movimentos são imutáveis.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	List(ctx context.Context, scope entity.Scope, f MovementFilter) ([]*entity.StockMovement, error)
}
