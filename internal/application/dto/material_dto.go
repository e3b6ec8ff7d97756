package dto

import "time"

// MaterialResponse saída de um material com a posição de estoque.
type MaterialResponse struct {
	ID              string    `json:"id"`
	Code            string    `json:"code"`
	Name            string    `json:"name"`
	Brand           string    `json:"brand,omitempty"`
	Category        string    `json:"category,omitempty"`
	Unit            string    `json:"unit"`
	QuantityOnHand  int       `json:"quantity_on_hand"`
	MinimumQuantity int       `json:"minimum_quantity"`
	BelowMinimum    bool      `json:"below_minimum"`
	Active          bool      `json:"active"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// MaterialListResponse lista de materiais.
type MaterialListResponse struct {
	Items []MaterialResponse `json:"items"`
}

// ReplenishmentSuggestionDTO sugestão de reposição de um material abaixo do mínimo.
type ReplenishmentSuggestionDTO struct {
	MaterialID        string `json:"material_id"`
	Code              string `json:"code"`
	Name              string `json:"name"`
	Unit              string `json:"unit"`
	CurrentStock      int    `json:"current_stock"`
	MinimumQuantity   int    `json:"minimum_quantity"`
	IdealStock        int    `json:"ideal_stock"`         // ceil(mínimo * 1.5)
	SuggestedOrderQty int    `json:"suggested_order_qty"` // IdealStock - CurrentStock
	Priority          int    `json:"priority"`            // 1 = mais urgente
}
