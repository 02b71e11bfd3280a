package dto

import (
	"time"

	"github.com/marianaduarte/erp-estetica/internal/domain/product"
)

// ProductRequest representa a requisição de produto
type ProductRequest struct {
	Name         string     `json:"name" binding:"required"`
	Description  string     `json:"description"`
	SKU          string     `json:"sku"`
	Unit         string     `json:"unit" binding:"required"`
	Category     string     `json:"category"`
	CostPrice    float64    `json:"cost_price" binding:"min=0"`
	CurrentStock float64    `json:"current_stock" binding:"min=0"`
	MinStock     float64    `json:"min_stock" binding:"min=0"`
	ExpiryDate   *time.Time `json:"expiry_date"`
}

// ProductResponse representa a resposta de produto
type ProductResponse struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	SKU          string     `json:"sku"`
	Unit         string     `json:"unit"`
	Category     string     `json:"category"`
	CostPrice    float64    `json:"cost_price"`
	CurrentStock float64    `json:"current_stock"`
	MinStock     float64    `json:"min_stock"`
	StockValue   float64    `json:"stock_value"`
	LowStock     bool       `json:"low_stock"`
	ExpiryDate   *time.Time `json:"expiry_date"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// ProductListResponse representa a resposta de lista de produtos
type ProductListResponse struct {
	Items      []ProductResponse `json:"items"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	Size       int               `json:"size"`
	TotalPages int               `json:"total_pages"`
}

// ToProductResponse converte um produto do domínio para DTO
func ToProductResponse(p *product.Product) *ProductResponse {
	return &ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		SKU:          p.SKU,
		Unit:         p.Unit,
		Category:     p.Category,
		CostPrice:    p.CostPrice,
		CurrentStock: p.CurrentStock,
		MinStock:     p.MinStock,
		StockValue:   p.StockValue(),
		LowStock:     p.IsLowStock(),
		ExpiryDate:   p.ExpiryDate,
		IsActive:     p.IsActive,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// ToProductListResponse converte uma lista de produtos do domínio para DTO
func ToProductListResponse(products []*product.Product, total, page, size int) *ProductListResponse {
	items := make([]ProductResponse, len(products))
	for i, p := range products {
		items[i] = *ToProductResponse(p)
	}

	return &ProductListResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		Size:       size,
		TotalPages: TotalPages(total, size),
	}
}
