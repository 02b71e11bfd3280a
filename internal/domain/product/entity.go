package product

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName        = errors.New("nome não pode ser vazio")
	ErrEmptyUnit        = errors.New("unidade não pode ser vazia")
	ErrNegativeCost     = errors.New("preço de custo não pode ser negativo")
	ErrNegativeStock    = errors.New("estoque não pode ser negativo")
	ErrNegativeMinStock = errors.New("estoque mínimo não pode ser negativo")
	ErrPastExpiry       = errors.New("data de validade não pode estar no passado")
)

// Product representa um item de estoque da clínica
type Product struct {
	ID           string     `json:"id"`            // ID do Produto
	UserID       string     `json:"user_id"`       // ID do Usuário (dono)
	Name         string     `json:"name"`          // Nome
	Description  string     `json:"description"`   // Descrição
	SKU          string     `json:"sku"`           // Código SKU
	Unit         string     `json:"unit"`          // Unidade (ml, un, g...)
	Category     string     `json:"category"`      // Categoria
	CostPrice    float64    `json:"cost_price"`    // Preço de Custo
	CurrentStock float64    `json:"current_stock"` // Estoque Atual (projeção do razão de movimentos)
	MinStock     float64    `json:"min_stock"`     // Estoque Mínimo
	ExpiryDate   *time.Time `json:"expiry_date"`   // Data de Validade
	IsActive     bool       `json:"is_active"`     // Ativo
	CreatedAt    time.Time  `json:"created_at"`    // Data de Criação
	UpdatedAt    time.Time  `json:"updated_at"`    // Data de Atualização
}

// NewProduct cria um novo produto
func NewProduct(
	userID string,
	name string,
	unit string,
	category string,
	costPrice float64,
	currentStock float64,
	minStock float64,
	expiryDate *time.Time,
) (*Product, error) {
	p := &Product{
		ID:           uuid.New().String(),
		UserID:       userID,
		Name:         name,
		Unit:         unit,
		Category:     category,
		CostPrice:    costPrice,
		CurrentStock: currentStock,
		MinStock:     minStock,
		ExpiryDate:   expiryDate,
		IsActive:     true,
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	// Validade no passado só é rejeitada na criação; produtos existentes
	// podem vencer e continuam consultáveis
	if expiryDate != nil && expiryDate.Before(startOfToday()) {
		return nil, ErrPastExpiry
	}

	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	return p, nil
}

// Validate verifica os invariantes do produto
func (p *Product) Validate() error {
	if p.Name == "" {
		return ErrEmptyName
	}
	if p.Unit == "" {
		return ErrEmptyUnit
	}
	if p.CostPrice < 0 {
		return ErrNegativeCost
	}
	if p.CurrentStock < 0 {
		return ErrNegativeStock
	}
	if p.MinStock < 0 {
		return ErrNegativeMinStock
	}
	return nil
}

// ToggleStatus alterna o estado ativo/inativo do produto
func (p *Product) ToggleStatus() {
	p.IsActive = !p.IsActive
	p.UpdatedAt = time.Now()
}

// IsLowStock verifica se o estoque atual está igual ou abaixo do mínimo
func (p *Product) IsLowStock() bool {
	return p.CurrentStock <= p.MinStock
}

// IsExpired verifica se o produto está vencido em relação à data informada
func (p *Product) IsExpired(now time.Time) bool {
	return p.ExpiryDate != nil && p.ExpiryDate.Before(now)
}

// ExpiresWithin verifica se o produto vence dentro de N dias (e ainda não
// venceu)
func (p *Product) ExpiresWithin(now time.Time, days int) bool {
	if p.ExpiryDate == nil || p.IsExpired(now) {
		return false
	}
	return !p.ExpiryDate.After(now.AddDate(0, 0, days))
}

// StockValue retorna o valor monetário do estoque em mãos
func (p *Product) StockValue() float64 {
	return p.CurrentStock * p.CostPrice
}

func startOfToday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
