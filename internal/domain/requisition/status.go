// Package requisition reúne as regras puras do ciclo de vida da requisição:
// derivação de status, limites da quantidade liberada e numeração.
package requisition

import "github.com/duarteol2000/sisreq/internal/domain/entity"

// releaseShape classifica o conjunto de itens após a análise.
type releaseShape int

const (
	shapeEmpty   releaseShape = iota // sem itens
	shapeAllZero                     // nada liberado
	shapeAllFull                     // tudo liberado (solicitado > 0 em todos)
	shapeMixed                       // qualquer outra combinação
)

// statusByShape tabela de decisão do status derivado.
var statusByShape = map[releaseShape]entity.RequisitionStatus{
	shapeAllZero: entity.StatusDenied,
	shapeAllFull: entity.StatusApproved,
	shapeMixed:   entity.StatusPartiallyApproved,
}

// DeriveStatus calcula o status de uma requisição a partir do conjunto completo de itens.
// ENTREGUE é terminal e nunca é reaberto; um conjunto vazio mantém o status atual.
func DeriveStatus(current entity.RequisitionStatus, items []entity.RequisitionItem) entity.RequisitionStatus {
	if current.Terminal() {
		return current
	}
	next, ok := statusByShape[classify(items)]
	if !ok {
		return current
	}
	return next
}

func classify(items []entity.RequisitionItem) releaseShape {
	if len(items) == 0 {
		return shapeEmpty
	}
	allZero, allFull := true, true
	for _, it := range items {
		if it.QuantityReleased != 0 {
			allZero = false
		}
		if !(it.QuantityReleased == it.QuantityRequested && it.QuantityRequested > 0) {
			allFull = false
		}
	}
	switch {
	case allZero:
		return shapeAllZero
	case allFull:
		return shapeAllFull
	default:
		return shapeMixed
	}
}
