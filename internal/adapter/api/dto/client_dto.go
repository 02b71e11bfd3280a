package dto

import (
	"time"

	"github.com/marianaduarte/erp-estetica/internal/domain/client"
)

// ClientRequest representa a requisição de cliente
type ClientRequest struct {
	Name      string     `json:"name" binding:"required"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	BirthDate *time.Time `json:"birth_date"`
	Notes     string     `json:"notes"`
}

// ClientResponse representa a resposta de cliente
type ClientResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	BirthDate   *time.Time `json:"birth_date"`
	Segment     string     `json:"segment"`
	Notes       string     `json:"notes"`
	TotalSpent  float64    `json:"total_spent"`
	TotalVisits int        `json:"total_visits"`
	LastVisitAt *time.Time `json:"last_visit_at"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ClientListResponse representa a resposta de lista de clientes
type ClientListResponse struct {
	Items      []ClientResponse `json:"items"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	Size       int              `json:"size"`
	TotalPages int              `json:"total_pages"`
}

// ToClientResponse converte um cliente do domínio para DTO
func ToClientResponse(c *client.Client) *ClientResponse {
	return &ClientResponse{
		ID:          c.ID,
		Name:        c.Name,
		Email:       c.Email,
		Phone:       c.Phone,
		BirthDate:   c.BirthDate,
		Segment:     string(c.Segment),
		Notes:       c.Notes,
		TotalSpent:  c.TotalSpent,
		TotalVisits: c.TotalVisits,
		LastVisitAt: c.LastVisitAt,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// ToClientListResponse converte uma lista de clientes do domínio para DTO
func ToClientListResponse(clients []*client.Client, total, page, size int) *ClientListResponse {
	items := make([]ClientResponse, len(clients))
	for i, c := range clients {
		items[i] = *ToClientResponse(c)
	}

	return &ClientListResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		Size:       size,
		TotalPages: TotalPages(total, size),
	}
}
