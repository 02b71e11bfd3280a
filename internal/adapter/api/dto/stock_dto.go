package dto

import (
	"time"

	"github.com/marianaduarte/erp-estetica/internal/domain/stock"
)

// MovementRequest representa a requisição de movimento de estoque
type MovementRequest struct {
	ProductID     string   `json:"product_id" binding:"required"`
	Type          string   `json:"movement_type" binding:"required"`
	Quantity      float64  `json:"quantity" binding:"required,gt=0"`
	UnitCost      *float64 `json:"unit_cost"`
	Notes         string   `json:"notes"`
	ReferenceID   string   `json:"reference_id"`
	ReferenceType string   `json:"reference_type"`
}

// ToMovementInput converte a requisição para os dados de domínio
func (r MovementRequest) ToMovementInput() stock.MovementInput {
	return stock.MovementInput{
		ProductID:     r.ProductID,
		Type:          stock.MovementType(r.Type),
		Quantity:      r.Quantity,
		UnitCost:      r.UnitCost,
		Notes:         r.Notes,
		ReferenceID:   r.ReferenceID,
		ReferenceType: r.ReferenceType,
	}
}

// MovementResponse representa a resposta de movimento de estoque
type MovementResponse struct {
	ID             string    `json:"id"`
	ProductID      string    `json:"product_id"`
	ProductName    string    `json:"product_name,omitempty"`
	ProductUnit    string    `json:"product_unit,omitempty"`
	Type           string    `json:"movement_type"`
	Quantity       float64   `json:"quantity"`
	PreviousStock  float64   `json:"previous_stock"`
	ResultingStock float64   `json:"resulting_stock"`
	UnitCost       *float64  `json:"unit_cost"`
	Notes          string    `json:"notes"`
	ReferenceID    string    `json:"reference_id,omitempty"`
	ReferenceType  string    `json:"reference_type,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// MovementListResponse representa a resposta de lista de movimentos
type MovementListResponse struct {
	Items      []MovementResponse `json:"items"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	Size       int                `json:"size"`
	TotalPages int                `json:"total_pages"`
}

// AvailabilityRequest representa a requisição de verificação de
// disponibilidade de estoque
type AvailabilityRequest struct {
	ProductID string  `json:"product_id" binding:"required"`
	Quantity  float64 `json:"quantity" binding:"required,gt=0"`
}

// ToMovementResponse converte um movimento do domínio para DTO
func ToMovementResponse(m *stock.Movement) *MovementResponse {
	return &MovementResponse{
		ID:             m.ID,
		ProductID:      m.ProductID,
		Type:           string(m.Type),
		Quantity:       m.Quantity,
		PreviousStock:  m.PreviousStock,
		ResultingStock: m.ResultingStock,
		UnitCost:       m.UnitCost,
		Notes:          m.Notes,
		ReferenceID:    m.ReferenceID,
		ReferenceType:  m.ReferenceType,
		CreatedAt:      m.CreatedAt,
	}
}

// ToMovementDetailResponse converte um movimento com produto para DTO
func ToMovementDetailResponse(m *stock.WithProduct) *MovementResponse {
	resp := ToMovementResponse(&m.Movement)
	resp.ProductName = m.ProductName
	resp.ProductUnit = m.ProductUnit
	return resp
}

// ToMovementListResponse converte uma lista de movimentos com produto para
// DTO
func ToMovementListResponse(rows []*stock.WithProduct, total, page, size int) *MovementListResponse {
	items := make([]MovementResponse, len(rows))
	for i, m := range rows {
		items[i] = *ToMovementDetailResponse(m)
	}

	return &MovementListResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		Size:       size,
		TotalPages: TotalPages(total, size),
	}
}
