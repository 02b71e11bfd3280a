package distribution

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidCategory   = errors.New("categoria de distribuição inválida")
	ErrInvalidPercentage = errors.New("percentual deve estar entre 0 e 100")
	ErrInvalidPeriod     = errors.New("período inválido")
)

// Category define a categoria de alocação do lucro
type Category string

const (
	CategoryProLabore        Category = "pro_labore"        // Pró-labore
	CategoryEquipmentReserve Category = "equipment_reserve" // Reserva de Equipamentos
	CategoryEmergencyReserve Category = "emergency_reserve" // Reserva de Emergência
	CategoryInvestment       Category = "investment"        // Investimento
)

// Categories lista as categorias conhecidas na ordem canônica
var Categories = []Category{
	CategoryProLabore,
	CategoryEquipmentReserve,
	CategoryEmergencyReserve,
	CategoryInvestment,
}

// IsValid verifica se a categoria é conhecida
func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Config representa uma regra de alocação percentual do lucro
type Config struct {
	ID         string    `json:"id"`         // ID da Configuração
	UserID     string    `json:"user_id"`    // ID do Usuário (dono)
	Category   Category  `json:"category"`   // Categoria de Alocação
	Percentage float64   `json:"percentage"` // Percentual (0-100)
	IsActive   bool      `json:"is_active"`  // Ativa
	CreatedAt  time.Time `json:"created_at"` // Data de Criação
	UpdatedAt  time.Time `json:"updated_at"` // Data de Atualização
}

// NewConfig cria uma nova configuração de distribuição
func NewConfig(userID string, category Category, percentage float64) (*Config, error) {
	if !category.IsValid() {
		return nil, ErrInvalidCategory
	}
	if percentage < 0 || percentage > 100 {
		return nil, ErrInvalidPercentage
	}

	now := time.Now()
	return &Config{
		ID:         uuid.New().String(),
		UserID:     userID,
		Category:   category,
		Percentage: percentage,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// Deactivate desativa a configuração preservando o histórico.
// Configurações nunca são removidas fisicamente para manter o vínculo com
// distribuições já executadas.
func (c *Config) Deactivate() {
	c.IsActive = false
	c.UpdatedAt = time.Now()
}

// SetPercentage atualiza o percentual da configuração
func (c *Config) SetPercentage(percentage float64) error {
	if percentage < 0 || percentage > 100 {
		return ErrInvalidPercentage
	}
	c.Percentage = percentage
	c.UpdatedAt = time.Now()
	return nil
}

// Distribution representa uma distribuição de lucro executada para um
// período. O registro é imutável após a criação.
type Distribution struct {
	ID                     string    `json:"id"`                       // ID da Distribuição
	UserID                 string    `json:"user_id"`                  // ID do Usuário (dono)
	PeriodMonth            int       `json:"period_month"`             // Mês do Período (1-12)
	PeriodYear             int       `json:"period_year"`              // Ano do Período
	TotalRevenue           float64   `json:"total_revenue"`            // Receita Total
	TotalCosts             float64   `json:"total_costs"`              // Custos Totais
	TotalProfit            float64   `json:"total_profit"`             // Lucro Total
	ProLaboreAmount        float64   `json:"pro_labore_amount"`        // Valor Pró-labore
	EquipmentReserveAmount float64   `json:"equipment_reserve_amount"` // Valor Reserva de Equipamentos
	EmergencyReserveAmount float64   `json:"emergency_reserve_amount"` // Valor Reserva de Emergência
	InvestmentAmount       float64   `json:"investment_amount"`        // Valor Investimento
	CreatedAt              time.Time `json:"created_at"`               // Data de Execução
}

// NewDistribution cria um novo registro de distribuição executada
func NewDistribution(userID string, month, year int) (*Distribution, error) {
	if month < 1 || month > 12 || year < 2000 {
		return nil, ErrInvalidPeriod
	}

	return &Distribution{
		ID:          uuid.New().String(),
		UserID:      userID,
		PeriodMonth: month,
		PeriodYear:  year,
		CreatedAt:   time.Now(),
	}, nil
}

// SetAmount registra o valor alocado para uma categoria
func (d *Distribution) SetAmount(category Category, amount float64) error {
	switch category {
	case CategoryProLabore:
		d.ProLaboreAmount = amount
	case CategoryEquipmentReserve:
		d.EquipmentReserveAmount = amount
	case CategoryEmergencyReserve:
		d.EmergencyReserveAmount = amount
	case CategoryInvestment:
		d.InvestmentAmount = amount
	default:
		return ErrInvalidCategory
	}
	return nil
}

// AmountFor retorna o valor alocado para uma categoria
func (d *Distribution) AmountFor(category Category) float64 {
	switch category {
	case CategoryProLabore:
		return d.ProLaboreAmount
	case CategoryEquipmentReserve:
		return d.EquipmentReserveAmount
	case CategoryEmergencyReserve:
		return d.EmergencyReserveAmount
	case CategoryInvestment:
		return d.InvestmentAmount
	}
	return 0
}
