package entity

import "time"

// Unidades de medida dos materiais.
const (
	UnitPiece   = "UN"
	UnitBox     = "CX"
	UnitPackage = "PCT"
	UnitRoll    = "ROLO"
)

// Material item do almoxarifado de uma secretaria. O par (unidade, Code) é único.
// QuantityOnHand só muda via movimentos de estoque ou confirmação de entrega.
type Material struct {
	ID string
	Scope
	Code            string
	Name            string
	Brand           string
	Category        string
	Description     string
	Unit            string
	QuantityOnHand  int // nunca persistido negativo
	MinimumQuantity int
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// InStock indica se há saldo disponível.
func (m *Material) InStock() bool {
	return m.QuantityOnHand > 0
}

// Requestable indica se o material pode entrar no carrinho de uma requisição.
func (m *Material) Requestable() bool {
	return m.Active && m.InStock()
}

// BelowMinimum indica saldo abaixo do estoque mínimo.
func (m *Material) BelowMinimum() bool {
	return m.QuantityOnHand < m.MinimumQuantity
}
