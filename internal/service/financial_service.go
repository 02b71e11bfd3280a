package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/marianaduarte/erp-estetica/internal/domain/attendance"
	"github.com/marianaduarte/erp-estetica/internal/domain/distribution"
	"github.com/marianaduarte/erp-estetica/pkg/logger"
)

// Erros de configuração da distribuição de lucro. Devem ser resolvidos pelo
// usuário ajustando as configurações, não por nova tentativa automática.
var (
	ErrNoActiveConfigs      = errors.New("nenhuma configuração de distribuição ativa")
	ErrInvalidPercentageSum = errors.New("percentuais ativos devem somar exatamente 100")
	ErrInvalidMonth         = errors.New("mês deve estar entre 1 e 12")
)

// percentTolerance absorve ruído de ponto flutuante na soma dos percentuais
const percentTolerance = 1e-9

// GroupBy define a granularidade da série de receita
type GroupBy string

const (
	GroupByDay   GroupBy = "day"
	GroupByWeek  GroupBy = "week"
	GroupByMonth GroupBy = "month"
)

// IsValid verifica se a granularidade é conhecida
func (g GroupBy) IsValid() bool {
	return g == GroupByDay || g == GroupByWeek || g == GroupByMonth
}

// FinancialSummary agrega os indicadores financeiros de um conjunto de
// atendimentos
type FinancialSummary struct {
	TotalRevenue    float64 `json:"total_revenue"`    // Σ (valor - desconto)
	TotalCosts      float64 `json:"total_costs"`      // Σ custo de produtos
	TotalProfit     float64 `json:"total_profit"`     // receita - custos
	TotalPaid       float64 `json:"total_paid"`       // líquido dos pagos
	TotalPending    float64 `json:"total_pending"`    // líquido dos pendentes
	TotalDiscounts  float64 `json:"total_discounts"`  // Σ descontos
	AverageTicket   float64 `json:"average_ticket"`   // receita / atendimentos
	AttendanceCount int     `json:"attendance_count"` // total de atendimentos
}

// RevenueByMethod discrimina a receita líquida por forma de pagamento.
// Um campo por forma conhecida para manter a verificação de exaustividade.
type RevenueByMethod struct {
	Cash        float64 `json:"cash"`
	Pix         float64 `json:"pix"`
	Debit       float64 `json:"debit"`
	Credit      float64 `json:"credit"`
	Installment float64 `json:"installment"`
}

// MonthlyReport agrega os indicadores de um mês calendário
type MonthlyReport struct {
	Month           int              `json:"month"`
	Year            int              `json:"year"`
	Summary         FinancialSummary `json:"summary"`
	RevenueByMethod RevenueByMethod  `json:"revenue_by_method"`
}

// RevenuePoint representa um ponto da série de receita por período
type RevenuePoint struct {
	Period       string  `json:"period"`       // chave do balde (dia, início da semana ou mês)
	Revenue      float64 `json:"revenue"`      // receita líquida do balde
	Transactions int     `json:"transactions"` // quantidade de atendimentos
}

// DistributionLine representa a alocação calculada para uma categoria
type DistributionLine struct {
	Category   distribution.Category `json:"category"`
	Percentage float64               `json:"percentage"`
	Amount     float64               `json:"amount"`
}

// DistributionPreview é o resultado do cálculo de distribuição, sem
// persistência
type DistributionPreview struct {
	TotalProfit      float64            `json:"total_profit"`
	TotalDistributed float64            `json:"total_distributed"`
	TotalPending     float64            `json:"total_pending"`
	Distributions    []DistributionLine `json:"distributions"`
}

// AmountByCategory discrimina valores por categoria de distribuição
type AmountByCategory struct {
	ProLabore        float64 `json:"pro_labore"`
	EquipmentReserve float64 `json:"equipment_reserve"`
	EmergencyReserve float64 `json:"emergency_reserve"`
	Investment       float64 `json:"investment"`
}

// DistributionSummary agrega as distribuições persistidas de um período.
// Toda distribuição persistida conta como executada; o balde pendente é
// estruturalmente zero porque nenhum fluxo de pendência é persistido.
type DistributionSummary struct {
	TotalDistributed float64          `json:"total_distributed"`
	TotalPending     float64          `json:"total_pending"`
	ExecutionCount   int              `json:"execution_count"`
	ByCategory       AmountByCategory `json:"by_category"`
}

// FinancialService concentra as agregações financeiras e a distribuição de
// lucro sobre os atendimentos
type FinancialService struct {
	attendanceRepo attendance.Repository
	configRepo     distribution.ConfigRepository
	distRepo       distribution.Repository
	logger         logger.Logger
}

// NewFinancialService cria uma nova instância de FinancialService
func NewFinancialService(
	attendanceRepo attendance.Repository,
	configRepo distribution.ConfigRepository,
	distRepo distribution.Repository,
	logger logger.Logger,
) *FinancialService {
	return &FinancialService{
		attendanceRepo: attendanceRepo,
		configRepo:     configRepo,
		distRepo:       distRepo,
		logger:         logger,
	}
}

// GetFinancialSummary agrega em uma única passada os indicadores dos
// atendimentos do usuário dentro do intervalo opcional de datas
func (s *FinancialService) GetFinancialSummary(ctx context.Context, userID string, dateFrom, dateTo *time.Time) (*FinancialSummary, error) {
	rows, err := s.attendanceRepo.FindAll(ctx, userID, attendance.Filter{
		DateFrom: dateFrom,
		DateTo:   dateTo,
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar atendimentos para o resumo financeiro: %w", err)
	}

	return summarize(rows), nil
}

// GetMonthlyReport agrega os indicadores de um mês calendário e discrimina
// a receita líquida por forma de pagamento
func (s *FinancialService) GetMonthlyReport(ctx context.Context, userID string, month, year int) (*MonthlyReport, error) {
	if month < 1 || month > 12 {
		return nil, ErrInvalidMonth
	}

	from, to := monthBounds(month, year)
	rows, err := s.attendanceRepo.FindAll(ctx, userID, attendance.Filter{
		DateFrom: &from,
		DateTo:   &to,
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar atendimentos do relatório mensal: %w", err)
	}

	report := &MonthlyReport{
		Month:   month,
		Year:    year,
		Summary: *summarize(rows),
	}

	for _, a := range rows {
		net := a.NetValue()
		switch a.PaymentMethod {
		case attendance.MethodCash:
			report.RevenueByMethod.Cash += net
		case attendance.MethodPix:
			report.RevenueByMethod.Pix += net
		case attendance.MethodDebit:
			report.RevenueByMethod.Debit += net
		case attendance.MethodCredit:
			report.RevenueByMethod.Credit += net
		case attendance.MethodInstallment:
			report.RevenueByMethod.Installment += net
		}
	}

	return report, nil
}

// GetRevenueByPeriod monta a série de receita líquida dos atendimentos
// pagos, agrupada por dia, semana (iniciada no domingo) ou mês, em ordem
// crescente de período
func (s *FinancialService) GetRevenueByPeriod(ctx context.Context, userID string, startDate, endDate time.Time, groupBy GroupBy) ([]RevenuePoint, error) {
	if !groupBy.IsValid() {
		return nil, fmt.Errorf("agrupamento inválido: %q", groupBy)
	}

	rows, err := s.attendanceRepo.FindAll(ctx, userID, attendance.Filter{
		PaymentStatus: attendance.StatusPaid,
		DateFrom:      &startDate,
		DateTo:        &endDate,
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar atendimentos da série de receita: %w", err)
	}

	buckets := make(map[string]*RevenuePoint)
	for _, a := range rows {
		key := bucketKey(a.Date, groupBy)
		point, ok := buckets[key]
		if !ok {
			point = &RevenuePoint{Period: key}
			buckets[key] = point
		}
		point.Revenue += a.NetValue()
		point.Transactions++
	}

	series := make([]RevenuePoint, 0, len(buckets))
	for _, point := range buckets {
		series = append(series, *point)
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].Period < series[j].Period
	})

	return series, nil
}

// GetProfitDistributionConfigs lista as configurações ativas do usuário na
// ordem de criação
func (s *FinancialService) GetProfitDistributionConfigs(ctx context.Context, userID string) ([]*distribution.Config, error) {
	configs, err := s.configRepo.FindActive(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar configurações de distribuição: %w", err)
	}
	return configs, nil
}

// CalculateProfitDistribution calcula a distribuição do lucro de um período
// sem persistir nada. Falha se não houver configurações ativas ou se os
// percentuais não somarem exatamente 100.
func (s *FinancialService) CalculateProfitDistribution(ctx context.Context, userID string, month, year int) (*DistributionPreview, error) {
	preview, _, err := s.calculateDistribution(ctx, userID, month, year)
	return preview, err
}

func (s *FinancialService) calculateDistribution(ctx context.Context, userID string, month, year int) (*DistributionPreview, *FinancialSummary, error) {
	if month < 1 || month > 12 {
		return nil, nil, ErrInvalidMonth
	}

	configs, err := s.configRepo.FindActive(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("erro ao carregar configurações de distribuição: %w", err)
	}
	if len(configs) == 0 {
		return nil, nil, ErrNoActiveConfigs
	}

	var percentageSum float64
	for _, c := range configs {
		percentageSum += c.Percentage
	}
	if math.Abs(percentageSum-100) > percentTolerance {
		return nil, nil, ErrInvalidPercentageSum
	}

	from, to := monthBounds(month, year)
	summary, err := s.GetFinancialSummary(ctx, userID, &from, &to)
	if err != nil {
		return nil, nil, err
	}

	preview := &DistributionPreview{
		TotalProfit:   summary.TotalProfit,
		Distributions: make([]DistributionLine, 0, len(configs)),
	}

	for _, c := range configs {
		amount := summary.TotalProfit * c.Percentage / 100
		preview.TotalDistributed += amount
		preview.Distributions = append(preview.Distributions, DistributionLine{
			Category:   c.Category,
			Percentage: c.Percentage,
			Amount:     amount,
		})
	}
	preview.TotalPending = preview.TotalProfit - preview.TotalDistributed

	return preview, summary, nil
}

// ExecuteProfitDistribution recalcula a distribuição do período e persiste
// um registro imutável com os valores por categoria. Cada período só pode
// ser executado uma vez.
func (s *FinancialService) ExecuteProfitDistribution(ctx context.Context, userID string, month, year int) (*distribution.Distribution, error) {
	preview, summary, err := s.calculateDistribution(ctx, userID, month, year)
	if err != nil {
		return nil, err
	}

	dist, err := distribution.NewDistribution(userID, month, year)
	if err != nil {
		return nil, err
	}
	dist.TotalRevenue = summary.TotalRevenue
	dist.TotalCosts = summary.TotalCosts
	dist.TotalProfit = summary.TotalProfit

	for _, line := range preview.Distributions {
		if err := dist.SetAmount(line.Category, line.Amount); err != nil {
			return nil, err
		}
	}

	if err := s.distRepo.Create(ctx, dist); err != nil {
		return nil, fmt.Errorf("erro ao persistir distribuição de lucro: %w", err)
	}

	s.logger.Info("distribuição de lucro executada",
		"user_id", userID, "month", month, "year", year,
		"total_profit", dist.TotalProfit)

	return dist, nil
}

// GetProfitDistributionSummary soma os valores por categoria das
// distribuições persistidas dentro do intervalo opcional de datas de
// execução
func (s *FinancialService) GetProfitDistributionSummary(ctx context.Context, userID string, dateFrom, dateTo *time.Time) (*DistributionSummary, error) {
	rows, err := s.distRepo.FindByDateRange(ctx, userID, dateFrom, dateTo)
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar distribuições do resumo: %w", err)
	}

	summary := &DistributionSummary{ExecutionCount: len(rows)}
	for _, d := range rows {
		summary.ByCategory.ProLabore += d.ProLaboreAmount
		summary.ByCategory.EquipmentReserve += d.EquipmentReserveAmount
		summary.ByCategory.EmergencyReserve += d.EmergencyReserveAmount
		summary.ByCategory.Investment += d.InvestmentAmount
		summary.TotalDistributed += d.ProLaboreAmount + d.EquipmentReserveAmount +
			d.EmergencyReserveAmount + d.InvestmentAmount
	}

	return summary, nil
}

// summarize agrega os indicadores em uma única passada
func summarize(rows []*attendance.Attendance) *FinancialSummary {
	summary := &FinancialSummary{AttendanceCount: len(rows)}

	for _, a := range rows {
		net := a.NetValue()
		summary.TotalRevenue += net
		summary.TotalCosts += a.ProductCost
		summary.TotalDiscounts += a.Discount

		switch a.PaymentStatus {
		case attendance.StatusPaid:
			summary.TotalPaid += net
		case attendance.StatusPending:
			summary.TotalPending += net
		}
	}

	summary.TotalProfit = summary.TotalRevenue - summary.TotalCosts
	if summary.AttendanceCount > 0 {
		summary.AverageTicket = summary.TotalRevenue / float64(summary.AttendanceCount)
	}

	return summary
}

// monthBounds retorna os limites inclusivos de um mês calendário
func monthBounds(month, year int) (time.Time, time.Time) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return from, to
}

// bucketKey retorna a chave do balde da série de receita. Semanas são
// ancoradas no domingo e identificadas pela data de início.
func bucketKey(date time.Time, groupBy GroupBy) string {
	switch groupBy {
	case GroupByWeek:
		weekStart := date.AddDate(0, 0, -int(date.Weekday()))
		return weekStart.Format("2006-01-02")
	case GroupByMonth:
		return date.Format("2006-01")
	default:
		return date.Format("2006-01-02")
	}
}
