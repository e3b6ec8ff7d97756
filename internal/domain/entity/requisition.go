package entity

import "time"

// RequisitionStatus situação de uma requisição.
type RequisitionStatus string

const (
	StatusPending           RequisitionStatus = "PENDENTE"
	StatusApproved          RequisitionStatus = "APROVADA"
	StatusPartiallyApproved RequisitionStatus = "APROVADA_PARCIAL"
	StatusDenied            RequisitionStatus = "NEGADA"
	StatusDelivered         RequisitionStatus = "ENTREGUE" // terminal
)

var statusLabels = map[RequisitionStatus]string{
	StatusPending:           "Pendente",
	StatusApproved:          "Aprovada",
	StatusPartiallyApproved: "Aprovada Parcialmente",
	StatusDenied:            "Negada",
	StatusDelivered:         "Entregue",
}

// Known indica se o status pertence à tabela de status.
func (s RequisitionStatus) Known() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label rótulo de exibição.
func (s RequisitionStatus) Label() string {
	return statusLabels[s]
}

// Terminal indica que nenhuma análise pode mais alterar o status.
func (s RequisitionStatus) Terminal() bool {
	return s == StatusDelivered
}

// Requisition pedido de materiais de um funcionário ao almoxarifado da secretaria.
type Requisition struct {
	ID string
	Scope
	Number        string // <ibge>-<SIGLA>-<YYYYMMDDHHMMSS>-<matricula>
	RequesterID   string
	SetorID       *string
	Status        RequisitionStatus
	RequesterNote string
	AdminNote     string
	ApproverID    *string
	CreatedAt     time.Time
	ApprovedAt    *time.Time
	DeliveredAt   *time.Time
	Items         []RequisitionItem
}

// Delivered indica se a entrega já foi confirmada (efeitos de estoque aplicados).
func (r *Requisition) Delivered() bool {
	return r.DeliveredAt != nil
}

// TotalReleased soma das quantidades liberadas (consumo efetivo após a entrega).
func (r *Requisition) TotalReleased() int {
	total := 0
	for _, it := range r.Items {
		total += it.QuantityReleased
	}
	return total
}

// RequisitionItem linha de uma requisição. Invariante: 0 <= QuantityReleased <= QuantityRequested.
type RequisitionItem struct {
	ID                string
	RequisitionID     string
	MaterialID        string
	QuantityRequested int
	QuantityReleased  int
	Material          *Material // carregado nas leituras; nil na escrita
}
