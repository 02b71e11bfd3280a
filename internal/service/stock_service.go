package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/marianaduarte/erp-estetica/internal/domain/product"
	"github.com/marianaduarte/erp-estetica/internal/domain/stock"
	"github.com/marianaduarte/erp-estetica/pkg/logger"
)

// expiryWindowDays é a janela padrão de alerta de vencimento
const expiryWindowDays = 30

// AlertType define o tipo de alerta de estoque
type AlertType string

const (
	AlertLowStock     AlertType = "low_stock"
	AlertExpired      AlertType = "expired"
	AlertExpiringSoon AlertType = "expiring_soon"
)

// Severity define a criticidade do alerta, em ordem decrescente
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Rank retorna a posição da severidade para ordenação (critical=0 ... low=3)
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityHigh:
		return 1
	case SeverityMedium:
		return 2
	}
	return 3
}

// StockAlert representa um alerta emitido para um produto
type StockAlert struct {
	Type         AlertType `json:"type"`
	Severity     Severity  `json:"severity"`
	ProductID    string    `json:"product_id"`
	ProductName  string    `json:"product_name"`
	CurrentStock float64   `json:"current_stock"`
	MinStock     float64   `json:"min_stock"`
	ExpiryDate   *string   `json:"expiry_date,omitempty"`
	Message      string    `json:"message"`
}

// StockSummary agrega os indicadores de estoque dos produtos ativos
type StockSummary struct {
	TotalProducts     int      `json:"total_products"`
	TotalValue        float64  `json:"total_value"` // Σ estoque × custo
	LowStockCount     int      `json:"low_stock_count"`
	ExpiredCount      int      `json:"expired_count"`
	ExpiringSoonCount int      `json:"expiring_soon_count"`
	Categories        []string `json:"categories"`
}

// CategoryValuation discrimina a valorização de uma categoria
type CategoryValuation struct {
	Category     string  `json:"category"`
	TotalValue   float64 `json:"total_value"`
	TotalQty     float64 `json:"total_quantity"`
	ProductCount int     `json:"product_count"`
}

// StockValuation agrega o valor monetário do estoque em mãos
type StockValuation struct {
	TotalValue         float64             `json:"total_value"`
	TotalQuantity      float64             `json:"total_quantity"`
	AverageCostPerUnit float64             `json:"average_cost_per_unit"`
	ByCategory         []CategoryValuation `json:"by_category"`
}

// QuantityByType discrimina quantidades por tipo de movimento.
// Um campo por tipo conhecido para manter a verificação de exaustividade.
type QuantityByType struct {
	In         float64 `json:"in"`
	Out        float64 `json:"out"`
	Adjustment float64 `json:"adjustment"`
	Expired    float64 `json:"expired"`
	Loss       float64 `json:"loss"`
}

// MovementSummary agrega os movimentos de estoque de um período
type MovementSummary struct {
	TotalMovements int            `json:"total_movements"`
	ByType         QuantityByType `json:"by_type"`
	// NetMovement é a variação líquida de estoque no período: soma dos
	// deltas com sinal de cada lançamento (ajustes entram pelo delta
	// registrado entre estoque anterior e resultante)
	NetMovement float64 `json:"net_movement"`
}

// AvailabilityCheck reporta se uma quantidade está disponível em estoque,
// com o contexto do déficit quando não está
type AvailabilityCheck struct {
	ProductID    string  `json:"product_id"`
	Requested    float64 `json:"requested"`
	CurrentStock float64 `json:"current_stock"`
	Available    bool    `json:"available"`
	Shortfall    float64 `json:"shortfall"` // quanto falta quando indisponível
}

// StockService concentra o razão de movimentos de estoque e as agregações
// derivadas (resumo, alertas, valorização)
type StockService struct {
	productRepo  product.Repository
	movementRepo stock.Repository
	logger       logger.Logger
}

// NewStockService cria uma nova instância de StockService
func NewStockService(productRepo product.Repository, movementRepo stock.Repository, logger logger.Logger) *StockService {
	return &StockService{
		productRepo:  productRepo,
		movementRepo: movementRepo,
		logger:       logger,
	}
}

// CreateMovement valida e registra um movimento de estoque. O lançamento no
// razão e a atualização da projeção current_stock do produto ocorrem em uma
// única transação no repositório.
func (s *StockService) CreateMovement(ctx context.Context, userID string, in stock.MovementInput) (*stock.Movement, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	p, err := s.productRepo.FindByID(ctx, userID, in.ProductID)
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar produto do movimento: %w", err)
	}

	m, err := stock.NewMovement(userID, in, p.CurrentStock)
	if err != nil {
		return nil, err
	}

	if err := s.movementRepo.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("erro ao registrar movimento de estoque: %w", err)
	}

	s.logger.Info("movimento de estoque registrado",
		"user_id", userID, "product_id", m.ProductID,
		"type", string(m.Type), "quantity", m.Quantity,
		"resulting_stock", m.ResultingStock)

	return m, nil
}

// UpdateMovement reverte o efeito do movimento original e aplica os novos
// dados, em uma única transação
func (s *StockService) UpdateMovement(ctx context.Context, userID, id string, in stock.MovementInput) (*stock.Movement, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	original, err := s.movementRepo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar movimento original: %w", err)
	}

	updated, err := s.movementRepo.Update(ctx, original, in)
	if err != nil {
		return nil, fmt.Errorf("erro ao atualizar movimento de estoque: %w", err)
	}

	return updated, nil
}

// DeleteMovement reverte o efeito do movimento sobre o estoque e remove o
// lançamento
func (s *StockService) DeleteMovement(ctx context.Context, userID, id string) error {
	if err := s.movementRepo.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("erro ao remover movimento de estoque: %w", err)
	}
	return nil
}

// AddStock registra uma entrada de estoque
func (s *StockService) AddStock(ctx context.Context, userID, productID string, quantity float64, unitCost *float64, notes string) (*stock.Movement, error) {
	return s.CreateMovement(ctx, userID, stock.MovementInput{
		ProductID: productID,
		Type:      stock.TypeIn,
		Quantity:  quantity,
		UnitCost:  unitCost,
		Notes:     notes,
	})
}

// RemoveStock registra uma saída de estoque
func (s *StockService) RemoveStock(ctx context.Context, userID, productID string, quantity float64, notes string) (*stock.Movement, error) {
	return s.CreateMovement(ctx, userID, stock.MovementInput{
		ProductID: productID,
		Type:      stock.TypeOut,
		Quantity:  quantity,
		Notes:     notes,
	})
}

// AdjustStock registra um ajuste para um valor absoluto de estoque
func (s *StockService) AdjustStock(ctx context.Context, userID, productID string, quantity float64, notes string) (*stock.Movement, error) {
	return s.CreateMovement(ctx, userID, stock.MovementInput{
		ProductID: productID,
		Type:      stock.TypeAdjustment,
		Quantity:  quantity,
		Notes:     notes,
	})
}

// MarkAsExpired registra a baixa de itens vencidos
func (s *StockService) MarkAsExpired(ctx context.Context, userID, productID string, quantity float64, notes string) (*stock.Movement, error) {
	return s.CreateMovement(ctx, userID, stock.MovementInput{
		ProductID: productID,
		Type:      stock.TypeExpired,
		Quantity:  quantity,
		Notes:     notes,
	})
}

// MarkAsLoss registra a baixa de itens perdidos
func (s *StockService) MarkAsLoss(ctx context.Context, userID, productID string, quantity float64, notes string) (*stock.Movement, error) {
	return s.CreateMovement(ctx, userID, stock.MovementInput{
		ProductID: productID,
		Type:      stock.TypeLoss,
		Quantity:  quantity,
		Notes:     notes,
	})
}

// ValidateStockAvailability verifica se a quantidade solicitada está
// disponível, reportando o déficit em vez de falhar
func (s *StockService) ValidateStockAvailability(ctx context.Context, userID, productID string, quantity float64) (*AvailabilityCheck, error) {
	p, err := s.productRepo.FindByID(ctx, userID, productID)
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar produto para verificação de estoque: %w", err)
	}

	check := &AvailabilityCheck{
		ProductID:    productID,
		Requested:    quantity,
		CurrentStock: p.CurrentStock,
		Available:    quantity <= p.CurrentStock,
	}
	if !check.Available {
		check.Shortfall = quantity - p.CurrentStock
	}

	return check, nil
}

// GetStockSummary agrega em uma única passada os indicadores dos produtos
// ativos do usuário
func (s *StockService) GetStockSummary(ctx context.Context, userID string) (*StockSummary, error) {
	products, err := s.productRepo.FindAllActive(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar produtos do resumo de estoque: %w", err)
	}

	now := time.Now()
	summary := &StockSummary{TotalProducts: len(products)}
	seen := make(map[string]bool)

	for _, p := range products {
		summary.TotalValue += p.StockValue()

		if p.IsLowStock() {
			summary.LowStockCount++
		}
		if p.IsExpired(now) {
			summary.ExpiredCount++
		} else if p.ExpiresWithin(now, expiryWindowDays) {
			summary.ExpiringSoonCount++
		}

		if p.Category != "" && !seen[p.Category] {
			seen[p.Category] = true
			summary.Categories = append(summary.Categories, p.Category)
		}
	}

	sort.Strings(summary.Categories)
	return summary, nil
}

// GetStockAlerts emite os alertas de estoque baixo, vencimento e produtos
// vencidos, ordenados por severidade (critical, high, medium, low) com
// ordem estável dentro de cada severidade
func (s *StockService) GetStockAlerts(ctx context.Context, userID string) ([]StockAlert, error) {
	products, err := s.productRepo.FindAllActive(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar produtos para alertas de estoque: %w", err)
	}

	now := time.Now()
	var alerts []StockAlert

	for _, p := range products {
		if p.IsLowStock() {
			alerts = append(alerts, lowStockAlert(p))
		}

		if p.IsExpired(now) {
			expiry := p.ExpiryDate.Format("2006-01-02")
			alerts = append(alerts, StockAlert{
				Type:         AlertExpired,
				Severity:     SeverityCritical,
				ProductID:    p.ID,
				ProductName:  p.Name,
				CurrentStock: p.CurrentStock,
				MinStock:     p.MinStock,
				ExpiryDate:   &expiry,
				Message:      fmt.Sprintf("%s está vencido desde %s", p.Name, expiry),
			})
		} else if p.ExpiresWithin(now, expiryWindowDays) {
			alerts = append(alerts, expiringSoonAlert(p, now))
		}
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].Severity.Rank() < alerts[j].Severity.Rank()
	})

	return alerts, nil
}

// GetStockValuation calcula o valor monetário do estoque em mãos, total e
// por categoria
func (s *StockService) GetStockValuation(ctx context.Context, userID string) (*StockValuation, error) {
	products, err := s.productRepo.FindAllActive(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar produtos da valorização de estoque: %w", err)
	}

	valuation := &StockValuation{}
	byCategory := make(map[string]*CategoryValuation)

	for _, p := range products {
		valuation.TotalValue += p.StockValue()
		valuation.TotalQuantity += p.CurrentStock

		category := p.Category
		if category == "" {
			category = "sem categoria"
		}
		cv, ok := byCategory[category]
		if !ok {
			cv = &CategoryValuation{Category: category}
			byCategory[category] = cv
		}
		cv.TotalValue += p.StockValue()
		cv.TotalQty += p.CurrentStock
		cv.ProductCount++
	}

	if valuation.TotalQuantity > 0 {
		valuation.AverageCostPerUnit = valuation.TotalValue / valuation.TotalQuantity
	}

	valuation.ByCategory = make([]CategoryValuation, 0, len(byCategory))
	for _, cv := range byCategory {
		valuation.ByCategory = append(valuation.ByCategory, *cv)
	}
	sort.Slice(valuation.ByCategory, func(i, j int) bool {
		return valuation.ByCategory[i].Category < valuation.ByCategory[j].Category
	})

	return valuation, nil
}

// GetMovementSummary agrega os movimentos do usuário dentro do intervalo
// opcional de datas de lançamento
func (s *StockService) GetMovementSummary(ctx context.Context, userID string, dateFrom, dateTo *time.Time) (*MovementSummary, error) {
	movements, err := s.movementRepo.FindAll(ctx, userID, stock.Filter{
		DateFrom: dateFrom,
		DateTo:   dateTo,
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar movimentos do resumo: %w", err)
	}

	summary := &MovementSummary{TotalMovements: len(movements)}
	for _, m := range movements {
		switch m.Type {
		case stock.TypeIn:
			summary.ByType.In += m.Quantity
		case stock.TypeOut:
			summary.ByType.Out += m.Quantity
		case stock.TypeAdjustment:
			summary.ByType.Adjustment += m.Quantity
		case stock.TypeExpired:
			summary.ByType.Expired += m.Quantity
		case stock.TypeLoss:
			summary.ByType.Loss += m.Quantity
		}
		summary.NetMovement += m.Delta()
	}

	return summary, nil
}

// GetProductCategories retorna as categorias distintas dos produtos do
// usuário, ordenadas
func (s *StockService) GetProductCategories(ctx context.Context, userID string) ([]string, error) {
	categories, err := s.productRepo.ListCategories(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar categorias de produtos: %w", err)
	}
	return categories, nil
}

// lowStockAlert monta o alerta de estoque baixo com a severidade derivada
// do nível atual: critical quando zerado, high até metade do mínimo,
// medium nos demais casos
func lowStockAlert(p *product.Product) StockAlert {
	severity := SeverityMedium
	switch {
	case p.CurrentStock == 0:
		severity = SeverityCritical
	case p.CurrentStock <= p.MinStock/2:
		severity = SeverityHigh
	}

	return StockAlert{
		Type:         AlertLowStock,
		Severity:     severity,
		ProductID:    p.ID,
		ProductName:  p.Name,
		CurrentStock: p.CurrentStock,
		MinStock:     p.MinStock,
		Message: fmt.Sprintf("%s está com estoque baixo: %.2f %s (mínimo %.2f)",
			p.Name, p.CurrentStock, p.Unit, p.MinStock),
	}
}

// expiringSoonAlert monta o alerta de vencimento próximo: high até 7 dias,
// medium até 15, low nos demais casos dentro da janela
func expiringSoonAlert(p *product.Product, now time.Time) StockAlert {
	days := int(p.ExpiryDate.Sub(now).Hours() / 24)
	severity := SeverityLow
	switch {
	case days <= 7:
		severity = SeverityHigh
	case days <= 15:
		severity = SeverityMedium
	}

	expiry := p.ExpiryDate.Format("2006-01-02")
	return StockAlert{
		Type:         AlertExpiringSoon,
		Severity:     severity,
		ProductID:    p.ID,
		ProductName:  p.Name,
		CurrentStock: p.CurrentStock,
		MinStock:     p.MinStock,
		ExpiryDate:   &expiry,
		Message:      fmt.Sprintf("%s vence em %d dias (%s)", p.Name, days, expiry),
	}
}
