package distribution

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	c, err := NewConfig("user-1", CategoryProLabore, 40)

	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, CategoryProLabore, c.Category)
	assert.Equal(t, 40.0, c.Percentage)
	assert.True(t, c.IsActive)
}

func TestNewConfig_Invalid(t *testing.T) {
	_, err := NewConfig("user-1", "marketing", 10)
	assert.ErrorIs(t, err, ErrInvalidCategory)

	_, err = NewConfig("user-1", CategoryInvestment, -1)
	assert.ErrorIs(t, err, ErrInvalidPercentage)

	_, err = NewConfig("user-1", CategoryInvestment, 100.5)
	assert.ErrorIs(t, err, ErrInvalidPercentage)
}

func TestConfig_SetPercentage(t *testing.T) {
	c, err := NewConfig("user-1", CategoryEquipmentReserve, 20)
	require.NoError(t, err)

	require.NoError(t, c.SetPercentage(35))
	assert.Equal(t, 35.0, c.Percentage)

	assert.ErrorIs(t, c.SetPercentage(101), ErrInvalidPercentage)
	assert.Equal(t, 35.0, c.Percentage)
}

func TestConfig_Deactivate(t *testing.T) {
	c, err := NewConfig("user-1", CategoryEmergencyReserve, 10)
	require.NoError(t, err)

	c.Deactivate()
	assert.False(t, c.IsActive)
}

func TestNewDistribution(t *testing.T) {
	d, err := NewDistribution("user-1", 3, 2026)
	require.NoError(t, err)
	assert.Equal(t, 3, d.PeriodMonth)
	assert.Equal(t, 2026, d.PeriodYear)

	_, err = NewDistribution("user-1", 0, 2026)
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	_, err = NewDistribution("user-1", 13, 2026)
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	_, err = NewDistribution("user-1", 6, 1999)
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestDistribution_Amounts(t *testing.T) {
	d, err := NewDistribution("user-1", 1, 2026)
	require.NoError(t, err)

	for i, category := range Categories {
		require.NoError(t, d.SetAmount(category, float64(i+1)*100))
	}

	assert.Equal(t, 100.0, d.AmountFor(CategoryProLabore))
	assert.Equal(t, 200.0, d.AmountFor(CategoryEquipmentReserve))
	assert.Equal(t, 300.0, d.AmountFor(CategoryEmergencyReserve))
	assert.Equal(t, 400.0, d.AmountFor(CategoryInvestment))

	assert.ErrorIs(t, d.SetAmount("marketing", 10), ErrInvalidCategory)
}
