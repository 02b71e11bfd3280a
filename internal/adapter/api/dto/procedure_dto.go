package dto

import (
	"time"

	"github.com/marianaduarte/erp-estetica/internal/domain/procedure"
)

// ProcedureRequest representa a requisição de procedimento
type ProcedureRequest struct {
	Name            string  `json:"name" binding:"required"`
	Description     string  `json:"description"`
	Category        string  `json:"category"`
	Price           float64 `json:"price" binding:"min=0"`
	Cost            float64 `json:"cost" binding:"min=0"`
	DurationMinutes int     `json:"duration_minutes" binding:"required,gt=0"`
}

// ProcedureResponse representa a resposta de procedimento
type ProcedureResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Category        string    `json:"category"`
	Price           float64   `json:"price"`
	Cost            float64   `json:"cost"`
	Margin          float64   `json:"margin"`
	DurationMinutes int       `json:"duration_minutes"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ProcedureListResponse representa a resposta de lista de procedimentos
type ProcedureListResponse struct {
	Items      []ProcedureResponse `json:"items"`
	Total      int                 `json:"total"`
	Page       int                 `json:"page"`
	Size       int                 `json:"size"`
	TotalPages int                 `json:"total_pages"`
}

// ToProcedureResponse converte um procedimento do domínio para DTO
func ToProcedureResponse(p *procedure.Procedure) *ProcedureResponse {
	return &ProcedureResponse{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		Category:        p.Category,
		Price:           p.Price,
		Cost:            p.Cost,
		Margin:          p.Margin(),
		DurationMinutes: p.DurationMinutes,
		IsActive:        p.IsActive,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// ToProcedureListResponse converte uma lista de procedimentos do domínio
// para DTO
func ToProcedureListResponse(procedures []*procedure.Procedure, total, page, size int) *ProcedureListResponse {
	items := make([]ProcedureResponse, len(procedures))
	for i, p := range procedures {
		items[i] = *ToProcedureResponse(p)
	}

	return &ProcedureListResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		Size:       size,
		TotalPages: TotalPages(total, size),
	}
}
