package dto

import (
	"time"

	"github.com/marianaduarte/erp-estetica/internal/domain/distribution"
)

// DistributionConfigRequest representa a requisição de configuração de
// distribuição de lucro
type DistributionConfigRequest struct {
	Category   string  `json:"category" binding:"required"`
	Percentage float64 `json:"percentage" binding:"min=0,max=100"`
}

// DistributionConfigResponse representa a resposta de configuração de
// distribuição
type DistributionConfigResponse struct {
	ID         string    `json:"id"`
	Category   string    `json:"category"`
	Percentage float64   `json:"percentage"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// DistributionResponse representa a resposta de distribuição executada
type DistributionResponse struct {
	ID                     string    `json:"id"`
	PeriodMonth            int       `json:"period_month"`
	PeriodYear             int       `json:"period_year"`
	TotalRevenue           float64   `json:"total_revenue"`
	TotalCosts             float64   `json:"total_costs"`
	TotalProfit            float64   `json:"total_profit"`
	ProLaboreAmount        float64   `json:"pro_labore_amount"`
	EquipmentReserveAmount float64   `json:"equipment_reserve_amount"`
	EmergencyReserveAmount float64   `json:"emergency_reserve_amount"`
	InvestmentAmount       float64   `json:"investment_amount"`
	CreatedAt              time.Time `json:"created_at"`
}

// ToDistributionConfigResponse converte uma configuração do domínio para DTO
func ToDistributionConfigResponse(c *distribution.Config) *DistributionConfigResponse {
	return &DistributionConfigResponse{
		ID:         c.ID,
		Category:   string(c.Category),
		Percentage: c.Percentage,
		IsActive:   c.IsActive,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

// ToDistributionConfigListResponse converte uma lista de configurações do
// domínio para DTO
func ToDistributionConfigListResponse(configs []*distribution.Config) []DistributionConfigResponse {
	items := make([]DistributionConfigResponse, len(configs))
	for i, c := range configs {
		items[i] = *ToDistributionConfigResponse(c)
	}
	return items
}

// ToDistributionResponse converte uma distribuição do domínio para DTO
func ToDistributionResponse(d *distribution.Distribution) *DistributionResponse {
	return &DistributionResponse{
		ID:                     d.ID,
		PeriodMonth:            d.PeriodMonth,
		PeriodYear:             d.PeriodYear,
		TotalRevenue:           d.TotalRevenue,
		TotalCosts:             d.TotalCosts,
		TotalProfit:            d.TotalProfit,
		ProLaboreAmount:        d.ProLaboreAmount,
		EquipmentReserveAmount: d.EquipmentReserveAmount,
		EmergencyReserveAmount: d.EmergencyReserveAmount,
		InvestmentAmount:       d.InvestmentAmount,
		CreatedAt:              d.CreatedAt,
	}
}
