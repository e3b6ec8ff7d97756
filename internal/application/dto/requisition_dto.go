package dto

import "time"

// CartLineRequest linha do carrinho: material e quantidade como digitados.
type CartLineRequest struct {
	MaterialID RawValue `json:"material_id"`
	Quantity   RawValue `json:"quantity"`
}

// CreateRequisitionRequest body de POST /api/requisitions.
type CreateRequisitionRequest struct {
	SetorID       *string           `json:"setor_id,omitempty" validate:"omitempty,uuid"`
	RequesterNote string            `json:"requester_note" validate:"max=1000"`
	Items         []CartLineRequest `json:"items" validate:"max=500"`
}

// ItemDecisionRequest decisão sobre um item na análise.
// release_all libera o solicitado; caso contrário vale quantity (ausente = 0).
type ItemDecisionRequest struct {
	ItemID     string `json:"item_id" validate:"required"`
	ReleaseAll bool   `json:"release_all"`
	Quantity   *int   `json:"quantity,omitempty"`
}

// AnalyzeRequisitionRequest body de POST /api/requisitions/:id/analysis.
type AnalyzeRequisitionRequest struct {
	AdminNote string                `json:"admin_note" validate:"max=1000"`
	Decisions []ItemDecisionRequest `json:"decisions" validate:"dive"`
}

// ListRequisitionsRequest filtros (query string) de GET /api/requisitions.
type ListRequisitionsRequest struct {
	PageRequest
	Status string `query:"status"`
	Search string `query:"q"`
	From   string `query:"from"` // YYYY-MM-DD
	To     string `query:"to"`   // YYYY-MM-DD
}

// RequisitionItemResponse item de uma requisição.
type RequisitionItemResponse struct {
	ID                string `json:"id"`
	MaterialID        string `json:"material_id"`
	MaterialCode      string `json:"material_code,omitempty"`
	MaterialName      string `json:"material_name,omitempty"`
	Unit              string `json:"unit,omitempty"`
	QuantityRequested int    `json:"quantity_requested"`
	QuantityReleased  int    `json:"quantity_released"`
}

// RequisitionResponse saída de uma requisição.
type RequisitionResponse struct {
	ID            string                    `json:"id"`
	Number        string                    `json:"number"`
	PrefeituraID  string                    `json:"prefeitura_id"`
	SecretariaID  string                    `json:"secretaria_id"`
	RequesterID   string                    `json:"requester_id"`
	SetorID       *string                   `json:"setor_id,omitempty"`
	Status        string                    `json:"status"`
	StatusLabel   string                    `json:"status_label"`
	RequesterNote string                    `json:"requester_note,omitempty"`
	AdminNote     string                    `json:"admin_note,omitempty"`
	ApproverID    *string                   `json:"approver_id,omitempty"`
	CreatedAt     time.Time                 `json:"created_at"`
	ApprovedAt    *time.Time                `json:"approved_at,omitempty"`
	DeliveredAt   *time.Time                `json:"delivered_at,omitempty"`
	Items         []RequisitionItemResponse `json:"items,omitempty"`
}

// RequisitionListResponse lista paginada de requisições.
type RequisitionListResponse struct {
	Items []RequisitionResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// ReceiptResponse saída de um recibo de entrega.
type ReceiptResponse struct {
	ID            string    `json:"id"`
	Number        string    `json:"number"`
	RequisitionID string    `json:"requisition_id"`
	IssuedBy      string    `json:"issued_by"`
	IssuedAt      time.Time `json:"issued_at"`
	Note          string    `json:"note,omitempty"`
}

// DeliveryReportResponse relatório de entrega de material.
type DeliveryReportResponse struct {
	Requisition   RequisitionResponse `json:"requisition"`
	Receipt       *ReceiptResponse    `json:"receipt,omitempty"`
	TotalConsumed int                 `json:"total_consumed"`
	PrintedAt     time.Time           `json:"printed_at"`
}
