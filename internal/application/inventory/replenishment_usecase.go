package inventory

import (
	"context"
	"sort"

	"github.com/duarteol2000/sisreq/internal/application/dto"
	"github.com/duarteol2000/sisreq/internal/domain/entity"
	"github.com/duarteol2000/sisreq/internal/domain/repository"
)

// ReplenishmentUseCase gera a lista de reposição do almoxarifado de uma secretaria.
type ReplenishmentUseCase struct {
	materialRepo repository.MaterialRepository
}

// NewReplenishmentUseCase constrói o caso de uso de reposição.
func NewReplenishmentUseCase(materialRepo repository.MaterialRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{materialRepo: materialRepo}
}

// GenerateReplenishmentList devolve os materiais ativos abaixo do estoque mínimo com a
// quantidade sugerida de compra e a prioridade (maior déficit relativo primeiro).
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context, scope entity.Scope) ([]dto.ReplenishmentSuggestionDTO, error) {
	materials, err := uc.materialRepo.ListByScope(ctx, scope, true)
	if err != nil {
		return nil, err
	}

	below := make([]*entity.Material, 0, len(materials))
	for _, m := range materials {
		if m.BelowMinimum() {
			below = append(below, m)
		}
	}
	if len(below) == 0 {
		return []dto.ReplenishmentSuggestionDTO{}, nil
	}

	// déficit relativo (mínimo - saldo) / mínimo, comparado sem divisão
	sort.SliceStable(below, func(i, j int) bool {
		a, b := below[i], below[j]
		defA := a.MinimumQuantity - a.QuantityOnHand
		defB := b.MinimumQuantity - b.QuantityOnHand
		if l, r := defA*b.MinimumQuantity, defB*a.MinimumQuantity; l != r {
			return l > r
		}
		if defA != defB {
			return defA > defB
		}
		return a.Code < b.Code
	})

	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(below))
	for i, m := range below {
		ideal := IdealStock(m.MinimumQuantity)
		suggested := ideal - m.QuantityOnHand
		if suggested < 0 {
			suggested = 0
		}
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			MaterialID:        m.ID,
			Code:              m.Code,
			Name:              m.Name,
			Unit:              m.Unit,
			CurrentStock:      m.QuantityOnHand,
			MinimumQuantity:   m.MinimumQuantity,
			IdealStock:        ideal,
			SuggestedOrderQty: suggested,
			Priority:          i + 1,
		})
	}
	return suggestions, nil
}

// IdealStock estoque alvo de reposição: ceil(mínimo * 1.5).
func IdealStock(minimum int) int {
	if minimum <= 0 {
		return 0
	}
	return (minimum*3 + 1) / 2
}
