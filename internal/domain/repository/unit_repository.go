package repository

import (
	"context"

	"github.com/duarteol2000/sisreq/internal/domain/entity"
)

// UnitRepository leitura dos cadastros de prefeitura e secretaria.
type UnitRepository interface {
	GetUnit(ctx context.Context, scope entity.Scope) (*entity.Unit, error)
}
