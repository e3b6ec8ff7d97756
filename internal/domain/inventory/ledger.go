// Package inventory concentra a aritmética do saldo de estoque (serviço de domínio).
// O saldo nunca fica negativo: subtrações além do disponível são absorvidas.
package inventory

import "github.com/duarteol2000/sisreq/internal/domain/entity"

// Apply aplica um movimento ao saldo do material.
//   - ENTRADA / AJUSTE_POSITIVO: soma a quantidade
//   - AJUSTE_NEGATIVO: subtrai, com piso em zero
//
// Quantidade ausente ou tipo desconhecido não altera o saldo.
func Apply(m *entity.Material, t entity.MovementType, quantity *int) {
	if m == nil || quantity == nil {
		return
	}
	switch {
	case t.Increases():
		m.QuantityOnHand += *quantity
	case t == entity.MovementNegativeAdjustment:
		m.QuantityOnHand = floorSub(m.QuantityOnHand, *quantity)
	}
}

// DecrementForDelivery baixa o saldo pelo consumo de uma entrega, com piso em zero.
// Equivale a um AJUSTE_NEGATIVO que não gera StockMovement: o consumo fica registrado
// nos itens da requisição.
func DecrementForDelivery(m *entity.Material, amount int) {
	if m == nil {
		return
	}
	m.QuantityOnHand = floorSub(m.QuantityOnHand, amount)
}

// ResultingStock calcula o saldo que um movimento produziria, sem piso.
// Usado pela validação dos ajustes manuais, que rejeitam resultado negativo.
func ResultingStock(onHand int, t entity.MovementType, quantity int) int {
	if t.Increases() {
		return onHand + quantity
	}
	return onHand - quantity
}

func floorSub(a, b int) int {
	if r := a - b; r > 0 {
		return r
	}
	return 0
}
