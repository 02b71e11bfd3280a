package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAttendance(t *testing.T) {
	a, err := NewAttendance("user-1", "client-1", "proc-1",
		time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC),
		200, 20, 35, MethodPix, StatusPaid)

	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)
	assert.Equal(t, "user-1", a.UserID)
	assert.Equal(t, MethodPix, a.PaymentMethod)
	assert.Equal(t, StatusPaid, a.PaymentStatus)
	assert.False(t, a.CreatedAt.IsZero())
}

func TestNewAttendance_DefaultStatus(t *testing.T) {
	a, err := NewAttendance("user-1", "client-1", "proc-1",
		time.Now(), 100, 0, 0, MethodCash, "")

	require.NoError(t, err)
	assert.Equal(t, StatusPending, a.PaymentStatus)
}

func TestNewAttendance_Invalid(t *testing.T) {
	tests := []struct {
		name        string
		clientID    string
		procedureID string
		value       float64
		discount    float64
		productCost float64
		method      PaymentMethod
		wantErr     error
	}{
		{"cliente vazio", "", "proc-1", 100, 0, 0, MethodCash, ErrEmptyClient},
		{"procedimento vazio", "client-1", "", 100, 0, 0, MethodCash, ErrEmptyProcedure},
		{"valor negativo", "client-1", "proc-1", -1, 0, 0, MethodCash, ErrNegativeValue},
		{"desconto negativo", "client-1", "proc-1", 100, -5, 0, MethodCash, ErrNegativeDiscount},
		{"desconto maior que valor", "client-1", "proc-1", 100, 150, 0, MethodCash, ErrDiscountTooHigh},
		{"custo negativo", "client-1", "proc-1", 100, 0, -10, MethodCash, ErrNegativeCost},
		{"forma de pagamento inválida", "client-1", "proc-1", 100, 0, 0, "cheque", ErrInvalidMethod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAttendance("user-1", tt.clientID, tt.procedureID,
				time.Now(), tt.value, tt.discount, tt.productCost, tt.method, StatusPaid)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAttendance_NetValueAndProfit(t *testing.T) {
	a, err := NewAttendance("user-1", "client-1", "proc-1",
		time.Now(), 250, 50, 40, MethodCredit, StatusPaid)
	require.NoError(t, err)

	assert.Equal(t, 200.0, a.NetValue())
	assert.Equal(t, 160.0, a.Profit())
}

func TestAttendance_SatisfactionRating(t *testing.T) {
	a, err := NewAttendance("user-1", "client-1", "proc-1",
		time.Now(), 100, 0, 0, MethodDebit, StatusPaid)
	require.NoError(t, err)

	invalid := 6
	a.SatisfactionRating = &invalid
	assert.ErrorIs(t, a.Validate(), ErrInvalidRating)

	valid := 5
	a.SatisfactionRating = &valid
	assert.NoError(t, a.Validate())
}

func TestAttendance_SetPaymentStatus(t *testing.T) {
	a, err := NewAttendance("user-1", "client-1", "proc-1",
		time.Now(), 100, 0, 0, MethodPix, StatusPending)
	require.NoError(t, err)

	require.NoError(t, a.SetPaymentStatus(StatusPaid))
	assert.Equal(t, StatusPaid, a.PaymentStatus)

	assert.ErrorIs(t, a.SetPaymentStatus("unknown"), ErrInvalidStatus)
	assert.Equal(t, StatusPaid, a.PaymentStatus)
}
