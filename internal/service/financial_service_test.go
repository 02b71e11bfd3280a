package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marianaduarte/erp-estetica/internal/domain/attendance"
	"github.com/marianaduarte/erp-estetica/internal/domain/distribution"
)

const testUserID = "user-1"

func newFinancialService(attendanceRepo *fakeAttendanceRepo, configRepo *fakeConfigRepo, distRepo *fakeDistRepo) *FinancialService {
	return NewFinancialService(attendanceRepo, configRepo, distRepo, noopLogger{})
}

func newAttendance(t *testing.T, date time.Time, value, discount, productCost float64, method attendance.PaymentMethod, status attendance.PaymentStatus) *attendance.Attendance {
	t.Helper()
	a, err := attendance.NewAttendance(testUserID, "client-1", "proc-1",
		date, value, discount, productCost, method, status)
	require.NoError(t, err)
	return a
}

func TestGetFinancialSummary(t *testing.T) {
	repo := &fakeAttendanceRepo{}
	date := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	repo.rows = []*attendance.Attendance{
		newAttendance(t, date, 200, 20, 30, attendance.MethodPix, attendance.StatusPaid),
		newAttendance(t, date, 100, 0, 10, attendance.MethodCash, attendance.StatusPending),
	}
	svc := newFinancialService(repo, &fakeConfigRepo{}, &fakeDistRepo{})

	summary, err := svc.GetFinancialSummary(context.Background(), testUserID, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 280.0, summary.TotalRevenue)
	assert.Equal(t, 40.0, summary.TotalCosts)
	assert.Equal(t, 240.0, summary.TotalProfit)
	assert.Equal(t, 180.0, summary.TotalPaid)
	assert.Equal(t, 100.0, summary.TotalPending)
	assert.Equal(t, 20.0, summary.TotalDiscounts)
	assert.Equal(t, 140.0, summary.AverageTicket)
	assert.Equal(t, 2, summary.AttendanceCount)
}

func TestGetFinancialSummary_Empty(t *testing.T) {
	svc := newFinancialService(&fakeAttendanceRepo{}, &fakeConfigRepo{}, &fakeDistRepo{})

	summary, err := svc.GetFinancialSummary(context.Background(), testUserID, nil, nil)
	require.NoError(t, err)

	assert.Zero(t, summary.TotalRevenue)
	assert.Zero(t, summary.AverageTicket)
	assert.Zero(t, summary.AttendanceCount)
}

func TestGetMonthlyReport(t *testing.T) {
	repo := &fakeAttendanceRepo{}
	inMonth := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	outOfMonth := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	repo.rows = []*attendance.Attendance{
		newAttendance(t, inMonth, 150, 0, 0, attendance.MethodPix, attendance.StatusPaid),
		newAttendance(t, inMonth, 80, 10, 0, attendance.MethodCredit, attendance.StatusPaid),
		newAttendance(t, outOfMonth, 999, 0, 0, attendance.MethodCash, attendance.StatusPaid),
	}
	svc := newFinancialService(repo, &fakeConfigRepo{}, &fakeDistRepo{})

	report, err := svc.GetMonthlyReport(context.Background(), testUserID, 3, 2026)
	require.NoError(t, err)

	assert.Equal(t, 3, report.Month)
	assert.Equal(t, 2026, report.Year)
	assert.Equal(t, 2, report.Summary.AttendanceCount)
	assert.Equal(t, 150.0, report.RevenueByMethod.Pix)
	assert.Equal(t, 70.0, report.RevenueByMethod.Credit)
	assert.Zero(t, report.RevenueByMethod.Cash)
}

func TestGetMonthlyReport_InvalidMonth(t *testing.T) {
	svc := newFinancialService(&fakeAttendanceRepo{}, &fakeConfigRepo{}, &fakeDistRepo{})

	_, err := svc.GetMonthlyReport(context.Background(), testUserID, 13, 2026)
	assert.ErrorIs(t, err, ErrInvalidMonth)
}

func TestGetRevenueByPeriod_GroupByDay(t *testing.T) {
	repo := &fakeAttendanceRepo{}
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	repo.rows = []*attendance.Attendance{
		newAttendance(t, day.Add(9*time.Hour), 100, 0, 0, attendance.MethodPix, attendance.StatusPaid),
		newAttendance(t, day.Add(15*time.Hour), 50, 0, 0, attendance.MethodCash, attendance.StatusPaid),
		// Pendentes ficam fora da série
		newAttendance(t, day.Add(16*time.Hour), 999, 0, 0, attendance.MethodCash, attendance.StatusPending),
	}
	svc := newFinancialService(repo, &fakeConfigRepo{}, &fakeDistRepo{})

	series, err := svc.GetRevenueByPeriod(context.Background(), testUserID,
		day, day.AddDate(0, 0, 1), GroupByDay)
	require.NoError(t, err)

	require.Len(t, series, 1)
	assert.Equal(t, "2026-03-10", series[0].Period)
	assert.Equal(t, 150.0, series[0].Revenue)
	assert.Equal(t, 2, series[0].Transactions)
}

func TestGetRevenueByPeriod_GroupByWeek(t *testing.T) {
	repo := &fakeAttendanceRepo{}
	// 2026-03-11 é uma quarta-feira; a semana inicia no domingo 2026-03-08
	wednesday := time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC)
	repo.rows = []*attendance.Attendance{
		newAttendance(t, wednesday, 200, 0, 0, attendance.MethodPix, attendance.StatusPaid),
	}
	svc := newFinancialService(repo, &fakeConfigRepo{}, &fakeDistRepo{})

	series, err := svc.GetRevenueByPeriod(context.Background(), testUserID,
		wednesday.AddDate(0, 0, -7), wednesday.AddDate(0, 0, 7), GroupByWeek)
	require.NoError(t, err)

	require.Len(t, series, 1)
	assert.Equal(t, "2026-03-08", series[0].Period)
}

func TestGetRevenueByPeriod_SortedAscending(t *testing.T) {
	repo := &fakeAttendanceRepo{}
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	repo.rows = []*attendance.Attendance{
		newAttendance(t, base.AddDate(0, 0, 5), 10, 0, 0, attendance.MethodPix, attendance.StatusPaid),
		newAttendance(t, base, 20, 0, 0, attendance.MethodPix, attendance.StatusPaid),
		newAttendance(t, base.AddDate(0, 0, 2), 30, 0, 0, attendance.MethodPix, attendance.StatusPaid),
	}
	svc := newFinancialService(repo, &fakeConfigRepo{}, &fakeDistRepo{})

	series, err := svc.GetRevenueByPeriod(context.Background(), testUserID,
		base, base.AddDate(0, 0, 10), GroupByDay)
	require.NoError(t, err)

	require.Len(t, series, 3)
	assert.Equal(t, "2026-03-01", series[0].Period)
	assert.Equal(t, "2026-03-03", series[1].Period)
	assert.Equal(t, "2026-03-06", series[2].Period)
}

func TestGetRevenueByPeriod_InvalidGroupBy(t *testing.T) {
	svc := newFinancialService(&fakeAttendanceRepo{}, &fakeConfigRepo{}, &fakeDistRepo{})

	_, err := svc.GetRevenueByPeriod(context.Background(), testUserID,
		time.Now(), time.Now(), GroupBy("hour"))
	assert.Error(t, err)
}

func seedConfigs(t *testing.T, repo *fakeConfigRepo, percentages map[distribution.Category]float64) {
	t.Helper()
	for category, percentage := range percentages {
		c, err := distribution.NewConfig(testUserID, category, percentage)
		require.NoError(t, err)
		require.NoError(t, repo.Create(context.Background(), c))
	}
}

func TestCalculateProfitDistribution(t *testing.T) {
	attendanceRepo := &fakeAttendanceRepo{}
	date := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	attendanceRepo.rows = []*attendance.Attendance{
		newAttendance(t, date, 1200, 0, 200, attendance.MethodPix, attendance.StatusPaid),
	}

	configRepo := &fakeConfigRepo{}
	seedConfigs(t, configRepo, map[distribution.Category]float64{
		distribution.CategoryProLabore:        40,
		distribution.CategoryEquipmentReserve: 30,
		distribution.CategoryEmergencyReserve: 20,
		distribution.CategoryInvestment:       10,
	})

	svc := newFinancialService(attendanceRepo, configRepo, &fakeDistRepo{})

	preview, err := svc.CalculateProfitDistribution(context.Background(), testUserID, 3, 2026)
	require.NoError(t, err)

	assert.Equal(t, 1000.0, preview.TotalProfit)
	assert.InDelta(t, 1000.0, preview.TotalDistributed, 1e-9)
	assert.InDelta(t, 0.0, preview.TotalPending, 1e-9)
	require.Len(t, preview.Distributions, 4)

	amounts := make(map[distribution.Category]float64)
	for _, line := range preview.Distributions {
		amounts[line.Category] = line.Amount
	}
	assert.InDelta(t, 400.0, amounts[distribution.CategoryProLabore], 1e-9)
	assert.InDelta(t, 100.0, amounts[distribution.CategoryInvestment], 1e-9)
}

func TestCalculateProfitDistribution_NoActiveConfigs(t *testing.T) {
	svc := newFinancialService(&fakeAttendanceRepo{}, &fakeConfigRepo{}, &fakeDistRepo{})

	_, err := svc.CalculateProfitDistribution(context.Background(), testUserID, 3, 2026)
	assert.ErrorIs(t, err, ErrNoActiveConfigs)
}

func TestCalculateProfitDistribution_InvalidPercentageSum(t *testing.T) {
	configRepo := &fakeConfigRepo{}
	seedConfigs(t, configRepo, map[distribution.Category]float64{
		distribution.CategoryProLabore:  40,
		distribution.CategoryInvestment: 30,
	})
	svc := newFinancialService(&fakeAttendanceRepo{}, configRepo, &fakeDistRepo{})

	_, err := svc.CalculateProfitDistribution(context.Background(), testUserID, 3, 2026)
	assert.ErrorIs(t, err, ErrInvalidPercentageSum)
}

func TestCalculateProfitDistribution_FloatTolerance(t *testing.T) {
	// 3 × 33.33 + 0.01 soma 100 com ruído de ponto flutuante
	configRepo := &fakeConfigRepo{}
	seedConfigs(t, configRepo, map[distribution.Category]float64{
		distribution.CategoryProLabore:        33.33,
		distribution.CategoryEquipmentReserve: 33.33,
		distribution.CategoryEmergencyReserve: 33.33,
		distribution.CategoryInvestment:       0.01,
	})
	svc := newFinancialService(&fakeAttendanceRepo{}, configRepo, &fakeDistRepo{})

	_, err := svc.CalculateProfitDistribution(context.Background(), testUserID, 3, 2026)
	assert.NoError(t, err)
}

func TestCalculateProfitDistribution_InvalidMonth(t *testing.T) {
	svc := newFinancialService(&fakeAttendanceRepo{}, &fakeConfigRepo{}, &fakeDistRepo{})

	_, err := svc.CalculateProfitDistribution(context.Background(), testUserID, 0, 2026)
	assert.ErrorIs(t, err, ErrInvalidMonth)
}

func TestExecuteProfitDistribution(t *testing.T) {
	attendanceRepo := &fakeAttendanceRepo{}
	date := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	attendanceRepo.rows = []*attendance.Attendance{
		newAttendance(t, date, 500, 0, 100, attendance.MethodPix, attendance.StatusPaid),
	}

	configRepo := &fakeConfigRepo{}
	seedConfigs(t, configRepo, map[distribution.Category]float64{
		distribution.CategoryProLabore:  60,
		distribution.CategoryInvestment: 40,
	})

	distRepo := &fakeDistRepo{}
	svc := newFinancialService(attendanceRepo, configRepo, distRepo)

	dist, err := svc.ExecuteProfitDistribution(context.Background(), testUserID, 3, 2026)
	require.NoError(t, err)

	assert.Equal(t, 500.0, dist.TotalRevenue)
	assert.Equal(t, 100.0, dist.TotalCosts)
	assert.Equal(t, 400.0, dist.TotalProfit)
	assert.InDelta(t, 240.0, dist.ProLaboreAmount, 1e-9)
	assert.InDelta(t, 160.0, dist.InvestmentAmount, 1e-9)
	require.Len(t, distRepo.rows, 1)

	// Período já executado não pode ser repetido
	_, err = svc.ExecuteProfitDistribution(context.Background(), testUserID, 3, 2026)
	assert.Error(t, err)
	assert.Len(t, distRepo.rows, 1)
}

func TestGetProfitDistributionSummary(t *testing.T) {
	distRepo := &fakeDistRepo{}
	for month := 1; month <= 2; month++ {
		d, err := distribution.NewDistribution(testUserID, month, 2026)
		require.NoError(t, err)
		d.ProLaboreAmount = 100
		d.InvestmentAmount = 50
		require.NoError(t, distRepo.Create(context.Background(), d))
	}
	svc := newFinancialService(&fakeAttendanceRepo{}, &fakeConfigRepo{}, distRepo)

	summary, err := svc.GetProfitDistributionSummary(context.Background(), testUserID, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.ExecutionCount)
	assert.Equal(t, 300.0, summary.TotalDistributed)
	assert.Equal(t, 200.0, summary.ByCategory.ProLabore)
	assert.Equal(t, 100.0, summary.ByCategory.Investment)
	assert.Zero(t, summary.TotalPending)
}
