package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marianaduarte/erp-estetica/internal/domain/product"
	"github.com/marianaduarte/erp-estetica/internal/domain/stock"
)

func newStockFixture(t *testing.T) (*StockService, *fakeProductRepo, *fakeMovementRepo) {
	t.Helper()
	productRepo := &fakeProductRepo{}
	movementRepo := &fakeMovementRepo{products: productRepo}
	svc := NewStockService(productRepo, movementRepo, noopLogger{})
	return svc, productRepo, movementRepo
}

func seedProduct(t *testing.T, repo *fakeProductRepo, name string, stock, minStock, costPrice float64, expiryDate *time.Time) *product.Product {
	t.Helper()
	p, err := product.NewProduct(testUserID, name, "un", "consumíveis", costPrice, stock, minStock, expiryDate)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

func TestCreateMovement_RoundTrip(t *testing.T) {
	svc, productRepo, _ := newStockFixture(t)
	p := seedProduct(t, productRepo, "Luvas", 10, 4, 5, nil)

	first, err := svc.RemoveStock(context.Background(), testUserID, p.ID, 3, "")
	require.NoError(t, err)
	assert.Equal(t, 10.0, first.PreviousStock)
	assert.Equal(t, 7.0, first.ResultingStock)
	assert.Equal(t, 7.0, p.CurrentStock)

	second, err := svc.RemoveStock(context.Background(), testUserID, p.ID, 5, "")
	require.NoError(t, err)
	assert.Equal(t, 2.0, second.ResultingStock)
	assert.Equal(t, 2.0, p.CurrentStock)

	// Com estoque 2 e mínimo 4, o produto deve gerar alerta high
	alerts, err := svc.GetStockAlerts(context.Background(), testUserID)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, AlertLowStock, alerts[0].Type)
	assert.Equal(t, SeverityHigh, alerts[0].Severity)
}

func TestCreateMovement_ClampAtZero(t *testing.T) {
	svc, productRepo, _ := newStockFixture(t)
	p := seedProduct(t, productRepo, "Algodão", 5, 0, 2, nil)

	m, err := svc.RemoveStock(context.Background(), testUserID, p.ID, 8, "")
	require.NoError(t, err)
	assert.Equal(t, 0.0, m.ResultingStock)
	assert.Equal(t, 0.0, p.CurrentStock)
}

func TestCreateMovement_InvalidInput(t *testing.T) {
	svc, productRepo, movementRepo := newStockFixture(t)
	p := seedProduct(t, productRepo, "Luvas", 10, 3, 5, nil)

	_, err := svc.CreateMovement(context.Background(), testUserID, stock.MovementInput{
		ProductID: p.ID,
		Type:      stock.TypeIn,
		Quantity:  0,
	})
	assert.ErrorIs(t, err, stock.ErrInvalidQuantity)
	assert.Empty(t, movementRepo.movements)
}

func TestCreateMovement_ProductNotFound(t *testing.T) {
	svc, _, _ := newStockFixture(t)

	_, err := svc.AddStock(context.Background(), testUserID, "inexistente", 5, nil, "")
	assert.Error(t, err)
}

func TestUpdateMovement_RevertsAndReapplies(t *testing.T) {
	svc, productRepo, _ := newStockFixture(t)
	p := seedProduct(t, productRepo, "Luvas", 10, 0, 5, nil)

	m, err := svc.RemoveStock(context.Background(), testUserID, p.ID, 3, "")
	require.NoError(t, err)
	require.Equal(t, 7.0, p.CurrentStock)

	updated, err := svc.UpdateMovement(context.Background(), testUserID, m.ID, stock.MovementInput{
		ProductID: p.ID,
		Type:      stock.TypeOut,
		Quantity:  1,
	})
	require.NoError(t, err)
	assert.Equal(t, 9.0, updated.ResultingStock)
	assert.Equal(t, 9.0, p.CurrentStock)
}

func TestDeleteMovement_RevertsEffect(t *testing.T) {
	svc, productRepo, movementRepo := newStockFixture(t)
	p := seedProduct(t, productRepo, "Luvas", 10, 0, 5, nil)

	m, err := svc.AddStock(context.Background(), testUserID, p.ID, 5, nil, "")
	require.NoError(t, err)
	require.Equal(t, 15.0, p.CurrentStock)

	require.NoError(t, svc.DeleteMovement(context.Background(), testUserID, m.ID))
	assert.Equal(t, 10.0, p.CurrentStock)
	assert.Empty(t, movementRepo.movements)
}

func TestAdjustStock(t *testing.T) {
	svc, productRepo, _ := newStockFixture(t)
	p := seedProduct(t, productRepo, "Luvas", 10, 0, 5, nil)

	m, err := svc.AdjustStock(context.Background(), testUserID, p.ID, 25, "contagem física")
	require.NoError(t, err)
	assert.Equal(t, 25.0, m.ResultingStock)
	assert.Equal(t, 25.0, p.CurrentStock)
}

func TestValidateStockAvailability(t *testing.T) {
	svc, productRepo, _ := newStockFixture(t)
	p := seedProduct(t, productRepo, "Luvas", 4, 0, 5, nil)

	check, err := svc.ValidateStockAvailability(context.Background(), testUserID, p.ID, 3)
	require.NoError(t, err)
	assert.True(t, check.Available)
	assert.Zero(t, check.Shortfall)

	check, err = svc.ValidateStockAvailability(context.Background(), testUserID, p.ID, 10)
	require.NoError(t, err)
	assert.False(t, check.Available)
	assert.Equal(t, 6.0, check.Shortfall)
}

func TestGetStockSummary(t *testing.T) {
	svc, productRepo, _ := newStockFixture(t)
	expiring := time.Now().AddDate(0, 0, 10)
	seedProduct(t, productRepo, "Luvas", 10, 3, 5, nil)        // ok
	seedProduct(t, productRepo, "Algodão", 1, 3, 2, nil)       // estoque baixo
	seedProduct(t, productRepo, "Sérum", 2, 0, 80, &expiring)  // vence em breve
	inactive := seedProduct(t, productRepo, "Velho", 5, 0, 1, nil)
	inactive.IsActive = false

	summary, err := svc.GetStockSummary(context.Background(), testUserID)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.TotalProducts)
	assert.Equal(t, 10*5.0+1*2.0+2*80.0, summary.TotalValue)
	assert.Equal(t, 1, summary.LowStockCount)
	assert.Equal(t, 1, summary.ExpiringSoonCount)
	assert.Zero(t, summary.ExpiredCount)
	assert.Equal(t, []string{"consumíveis"}, summary.Categories)
}

func TestGetStockAlerts_SeverityOrdering(t *testing.T) {
	svc, productRepo, _ := newStockFixture(t)
	farExpiry := time.Now().AddDate(0, 0, 25)
	seedProduct(t, productRepo, "Sérum", 10, 1, 80, &farExpiry) // expiring_soon low
	seedProduct(t, productRepo, "Algodão", 2, 3, 2, nil)        // low_stock medium
	zeroed := seedProduct(t, productRepo, "Luvas", 1, 3, 5, nil)
	zeroed.CurrentStock = 0 // low_stock critical

	alerts, err := svc.GetStockAlerts(context.Background(), testUserID)
	require.NoError(t, err)

	require.Len(t, alerts, 3)
	assert.Equal(t, SeverityCritical, alerts[0].Severity)
	assert.Equal(t, "Luvas", alerts[0].ProductName)
	assert.Equal(t, SeverityMedium, alerts[1].Severity)
	assert.Equal(t, SeverityLow, alerts[2].Severity)
}

func TestGetStockAlerts_ExpiredIsCritical(t *testing.T) {
	svc, productRepo, _ := newStockFixture(t)
	p := seedProduct(t, productRepo, "Sérum", 5, 0, 80, nil)
	past := time.Now().AddDate(0, 0, -2)
	p.ExpiryDate = &past

	alerts, err := svc.GetStockAlerts(context.Background(), testUserID)
	require.NoError(t, err)

	require.Len(t, alerts, 1)
	assert.Equal(t, AlertExpired, alerts[0].Type)
	assert.Equal(t, SeverityCritical, alerts[0].Severity)
	require.NotNil(t, alerts[0].ExpiryDate)
}

func TestGetStockValuation(t *testing.T) {
	svc, productRepo, _ := newStockFixture(t)
	seedProduct(t, productRepo, "Luvas", 10, 0, 5, nil)
	serum := seedProduct(t, productRepo, "Sérum", 2, 0, 80, nil)
	serum.Category = "dermocosméticos"

	valuation, err := svc.GetStockValuation(context.Background(), testUserID)
	require.NoError(t, err)

	assert.Equal(t, 210.0, valuation.TotalValue)
	assert.Equal(t, 12.0, valuation.TotalQuantity)
	assert.InDelta(t, 17.5, valuation.AverageCostPerUnit, 1e-9)

	require.Len(t, valuation.ByCategory, 2)
	assert.Equal(t, "consumíveis", valuation.ByCategory[0].Category)
	assert.Equal(t, 50.0, valuation.ByCategory[0].TotalValue)
	assert.Equal(t, "dermocosméticos", valuation.ByCategory[1].Category)
	assert.Equal(t, 160.0, valuation.ByCategory[1].TotalValue)
}

func TestGetMovementSummary(t *testing.T) {
	svc, productRepo, _ := newStockFixture(t)
	p := seedProduct(t, productRepo, "Luvas", 10, 0, 5, nil)

	_, err := svc.AddStock(context.Background(), testUserID, p.ID, 5, nil, "")
	require.NoError(t, err)
	_, err = svc.RemoveStock(context.Background(), testUserID, p.ID, 3, "")
	require.NoError(t, err)
	_, err = svc.MarkAsLoss(context.Background(), testUserID, p.ID, 1, "quebra")
	require.NoError(t, err)

	summary, err := svc.GetMovementSummary(context.Background(), testUserID, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.TotalMovements)
	assert.Equal(t, 5.0, summary.ByType.In)
	assert.Equal(t, 3.0, summary.ByType.Out)
	assert.Equal(t, 1.0, summary.ByType.Loss)
	assert.Equal(t, 1.0, summary.NetMovement)
}

func TestGetMovementSummary_AdjustmentDelta(t *testing.T) {
	svc, productRepo, _ := newStockFixture(t)
	p := seedProduct(t, productRepo, "Luvas", 10, 0, 5, nil)

	// Ajuste de 10 para 4: delta líquido -6
	_, err := svc.AdjustStock(context.Background(), testUserID, p.ID, 4, "")
	require.NoError(t, err)

	summary, err := svc.GetMovementSummary(context.Background(), testUserID, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, -6.0, summary.NetMovement)
}
