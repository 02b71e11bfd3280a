package procedure

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName        = errors.New("nome não pode ser vazio")
	ErrNegativePrice    = errors.New("preço não pode ser negativo")
	ErrNegativeCost     = errors.New("custo não pode ser negativo")
	ErrInvalidDuration  = errors.New("duração deve ser maior que zero")
)

// Procedure representa um procedimento/serviço do catálogo da clínica
type Procedure struct {
	ID              string    `json:"id"`               // ID do Procedimento
	UserID          string    `json:"user_id"`          // ID do Usuário (dono)
	Name            string    `json:"name"`             // Nome
	Description     string    `json:"description"`      // Descrição
	Category        string    `json:"category"`         // Categoria
	Price           float64   `json:"price"`            // Preço de Venda
	Cost            float64   `json:"cost"`             // Custo Estimado
	DurationMinutes int       `json:"duration_minutes"` // Duração em Minutos
	IsActive        bool      `json:"is_active"`        // Ativo
	CreatedAt       time.Time `json:"created_at"`       // Data de Criação
	UpdatedAt       time.Time `json:"updated_at"`       // Data de Atualização
}

// NewProcedure cria um novo procedimento
func NewProcedure(userID, name, category string, price, cost float64, durationMinutes int) (*Procedure, error) {
	p := &Procedure{
		ID:              uuid.New().String(),
		UserID:          userID,
		Name:            name,
		Category:        category,
		Price:           price,
		Cost:            cost,
		DurationMinutes: durationMinutes,
		IsActive:        true,
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	return p, nil
}

// Validate verifica os invariantes do procedimento
func (p *Procedure) Validate() error {
	if p.Name == "" {
		return ErrEmptyName
	}
	if p.Price < 0 {
		return ErrNegativePrice
	}
	if p.Cost < 0 {
		return ErrNegativeCost
	}
	if p.DurationMinutes <= 0 {
		return ErrInvalidDuration
	}
	return nil
}

// ToggleStatus alterna o estado ativo/inativo do procedimento
func (p *Procedure) ToggleStatus() {
	p.IsActive = !p.IsActive
	p.UpdatedAt = time.Now()
}

// Margin retorna a margem estimada do procedimento (preço - custo)
func (p *Procedure) Margin() float64 {
	return p.Price - p.Cost
}
