package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/duarteol2000/sisreq/internal/application/dto"
	"github.com/duarteol2000/sisreq/internal/domain/entity"
	"github.com/duarteol2000/sisreq/internal/domain/repository"
)

// MaterialUseCase leituras do almoxarifado: posição de estoque, materiais requisitáveis,
// exportação em planilha e trilha de movimentos.
type MaterialUseCase struct {
	materialRepo repository.MaterialRepository
	movementRepo repository.StockMovementRepository
	unitRepo     repository.UnitRepository
	sheetGen     StockSheetGenerator
	now          func() time.Time
}

// NewMaterialUseCase constrói o caso de uso.
func NewMaterialUseCase(
	materialRepo repository.MaterialRepository,
	movementRepo repository.StockMovementRepository,
	unitRepo repository.UnitRepository,
	sheetGen StockSheetGenerator,
) *MaterialUseCase {
	return &MaterialUseCase{
		materialRepo: materialRepo,
		movementRepo: movementRepo,
		unitRepo:     unitRepo,
		sheetGen:     sheetGen,
		now:          time.Now,
	}
}

// List lista os materiais da unidade, marcando os que estão abaixo do mínimo.
func (uc *MaterialUseCase) List(ctx context.Context, scope entity.Scope, onlyActive bool) (*dto.MaterialListResponse, error) {
	list, err := uc.materialRepo.ListByScope(ctx, scope, onlyActive)
	if err != nil {
		return nil, err
	}
	return toMaterialListResponse(list), nil
}

// Available lista os materiais que podem entrar no carrinho (ativos e com saldo).
func (uc *MaterialUseCase) Available(ctx context.Context, scope entity.Scope) (*dto.MaterialListResponse, error) {
	list, err := uc.materialRepo.ListRequestable(ctx, scope, nil)
	if err != nil {
		return nil, err
	}
	return toMaterialListResponse(list), nil
}

// Export gera a planilha XLSX da posição de estoque.
func (uc *MaterialUseCase) Export(ctx context.Context, scope entity.Scope) ([]byte, error) {
	if uc.sheetGen == nil {
		return nil, fmt.Errorf("gerador de planilha não configurado")
	}
	list, err := uc.materialRepo.ListByScope(ctx, scope, false)
	if err != nil {
		return nil, err
	}
	unit, err := uc.unitRepo.GetUnit(ctx, scope)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		unit = &entity.Unit{Scope: scope}
	}
	return uc.sheetGen.GenerateStockSheet(ctx, unit, list, uc.now())
}

// ListMovements devolve a trilha de movimentos da unidade, do mais recente ao mais antigo.
func (uc *MaterialUseCase) ListMovements(ctx context.Context, scope entity.Scope, f repository.MovementFilter) (*dto.MovementListResponse, error) {
	if f.Limit <= 0 {
		f.Limit = 50
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	list, err := uc.movementRepo.List(ctx, scope, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, toMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset},
	}, nil
}

func toMaterialListResponse(list []*entity.Material) *dto.MaterialListResponse {
	items := make([]dto.MaterialResponse, 0, len(list))
	for _, m := range list {
		items = append(items, toMaterialResponse(m))
	}
	return &dto.MaterialListResponse{Items: items}
}

func toMaterialResponse(m *entity.Material) dto.MaterialResponse {
	return dto.MaterialResponse{
		ID:              m.ID,
		Code:            m.Code,
		Name:            m.Name,
		Brand:           m.Brand,
		Category:        m.Category,
		Unit:            m.Unit,
		QuantityOnHand:  m.QuantityOnHand,
		MinimumQuantity: m.MinimumQuantity,
		BelowMinimum:    m.BelowMinimum(),
		Active:          m.Active,
		UpdatedAt:       m.UpdatedAt,
	}
}
