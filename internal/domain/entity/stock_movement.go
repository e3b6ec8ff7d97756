package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType sentido do movimento sobre o saldo.
type MovementType string

const (
	MovementEntry              MovementType = "ENTRADA"
	MovementPositiveAdjustment MovementType = "AJUSTE_POSITIVO"
	MovementNegativeAdjustment MovementType = "AJUSTE_NEGATIVO"
)

// Known indica se o tipo é um dos tipos de movimento cadastrados.
func (t MovementType) Known() bool {
	switch t {
	case MovementEntry, MovementPositiveAdjustment, MovementNegativeAdjustment:
		return true
	}
	return false
}

// Increases indica se o movimento soma ao saldo.
func (t MovementType) Increases() bool {
	return t == MovementEntry || t == MovementPositiveAdjustment
}

// BusinessReason motivo de negócio do movimento.
type BusinessReason string

const (
	ReasonAdjustment      BusinessReason = "AJUSTE"
	ReasonPettyCashSupply BusinessReason = "SUPRIMENTO_FUNDO"
	ReasonLoan            BusinessReason = "EMPRESTIMO"
	ReasonReturn          BusinessReason = "DEVOLUCAO"
)

// Known indica se o motivo é um dos motivos cadastrados.
func (r BusinessReason) Known() bool {
	switch r {
	case ReasonAdjustment, ReasonPettyCashSupply, ReasonLoan, ReasonReturn:
		return true
	}
	return false
}

// StockMovement registro imutável da trilha de auditoria do estoque.
// Nunca é alterado nem removido depois de criado.
type StockMovement struct {
	ID string
	Scope
	MaterialID     string
	Type           MovementType
	BusinessReason BusinessReason
	Quantity       int              // sempre positivo; o sentido vem de Type
	UnitValue      *decimal.Decimal // opcional (entradas por compra)
	DocumentID     *string
	ExternalEntity string // órgão externo (empréstimos/devoluções)
	UserID         string
	CreatedAt      time.Time
	Note           string
}
