package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body de POST /api/stock/movements (ajuste manual).
type RegisterMovementRequest struct {
	MaterialID     string           `json:"material_id" validate:"required,uuid"`
	Type           string           `json:"type" validate:"required"`
	BusinessReason string           `json:"business_reason,omitempty"`
	Quantity       int              `json:"quantity"`
	UnitValue      *decimal.Decimal `json:"unit_value,omitempty"`
	DocumentID     *string          `json:"document_id,omitempty" validate:"omitempty,uuid"`
	ExternalEntity string           `json:"external_entity,omitempty"`
	Note           string           `json:"note" validate:"max=1000"`
}

// PurchaseLineRequest linha bruta da entrada por compra.
type PurchaseLineRequest struct {
	MaterialID RawValue `json:"material_id"`
	Quantity   RawValue `json:"quantity"`
	UnitValue  RawValue `json:"unit_value"` // aceita "12,50" ou "12.50"
}

// PurchaseEntryRequest body de POST /api/stock/purchase-entries.
type PurchaseEntryRequest struct {
	DocumentType   string                `json:"document_type" validate:"required"`
	DocumentNumber string                `json:"document_number" validate:"max=60"`
	IssueDate      string                `json:"issue_date,omitempty"` // YYYY-MM-DD
	Description    string                `json:"description" validate:"max=1000"`
	FileRef        string                `json:"file_ref,omitempty" validate:"max=500"`
	Lines          []PurchaseLineRequest `json:"lines" validate:"max=500"`
}

// ListMovementsRequest filtros (query string) de GET /api/stock/movements.
type ListMovementsRequest struct {
	PageRequest
	MaterialID string `query:"material_id"`
	From       string `query:"from"`
	To         string `query:"to"`
}

// MovementResponse saída de um movimento de estoque.
type MovementResponse struct {
	ID             string           `json:"id"`
	MaterialID     string           `json:"material_id"`
	Type           string           `json:"type"`
	BusinessReason string           `json:"business_reason"`
	Quantity       int              `json:"quantity"`
	UnitValue      *decimal.Decimal `json:"unit_value,omitempty"`
	DocumentID     *string          `json:"document_id,omitempty"`
	ExternalEntity string           `json:"external_entity,omitempty"`
	UserID         string           `json:"user_id"`
	Note           string           `json:"note,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
}

// MovementListResponse lista paginada de movimentos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// PurchaseEntryResponse resultado de uma entrada por compra.
type PurchaseEntryResponse struct {
	DocumentID string             `json:"document_id"`
	Movements  []MovementResponse `json:"movements"`
	Dropped    int                `json:"dropped_lines"`
}
