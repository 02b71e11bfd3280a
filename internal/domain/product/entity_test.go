package product

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	p, err := NewProduct("user-1", "Ácido Hialurônico", "ml", "injetáveis", 120, 10, 3, nil)

	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.True(t, p.IsActive)
	assert.Equal(t, 10.0, p.CurrentStock)
}

func TestNewProduct_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		prodName  string
		unit      string
		costPrice float64
		stock     float64
		minStock  float64
		wantErr   error
	}{
		{"nome vazio", "", "un", 10, 0, 0, ErrEmptyName},
		{"unidade vazia", "Produto", "", 10, 0, 0, ErrEmptyUnit},
		{"custo negativo", "Produto", "un", -1, 0, 0, ErrNegativeCost},
		{"estoque negativo", "Produto", "un", 10, -1, 0, ErrNegativeStock},
		{"mínimo negativo", "Produto", "un", 10, 0, -1, ErrNegativeMinStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProduct("user-1", tt.prodName, tt.unit, "", tt.costPrice, tt.stock, tt.minStock, nil)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewProduct_PastExpiry(t *testing.T) {
	yesterday := time.Now().AddDate(0, 0, -1)
	_, err := NewProduct("user-1", "Produto", "un", "", 10, 0, 0, &yesterday)
	assert.ErrorIs(t, err, ErrPastExpiry)

	tomorrow := time.Now().AddDate(0, 0, 1)
	_, err = NewProduct("user-1", "Produto", "un", "", 10, 0, 0, &tomorrow)
	assert.NoError(t, err)
}

func TestProduct_IsLowStock(t *testing.T) {
	p := &Product{CurrentStock: 5, MinStock: 5}
	assert.True(t, p.IsLowStock())

	p.CurrentStock = 5.1
	assert.False(t, p.IsLowStock())

	p.CurrentStock = 0
	assert.True(t, p.IsLowStock())
}

func TestProduct_Expiry(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	past := now.AddDate(0, 0, -1)
	p := &Product{ExpiryDate: &past}
	assert.True(t, p.IsExpired(now))
	assert.False(t, p.ExpiresWithin(now, 30))

	soon := now.AddDate(0, 0, 10)
	p.ExpiryDate = &soon
	assert.False(t, p.IsExpired(now))
	assert.True(t, p.ExpiresWithin(now, 30))
	assert.False(t, p.ExpiresWithin(now, 5))

	p.ExpiryDate = nil
	assert.False(t, p.IsExpired(now))
	assert.False(t, p.ExpiresWithin(now, 30))
}

func TestProduct_StockValue(t *testing.T) {
	p := &Product{CurrentStock: 4, CostPrice: 25.5}
	assert.Equal(t, 102.0, p.StockValue())
}

func TestProduct_ToggleStatus(t *testing.T) {
	p := &Product{IsActive: true}
	p.ToggleStatus()
	assert.False(t, p.IsActive)
	p.ToggleStatus()
	assert.True(t, p.IsActive)
}
