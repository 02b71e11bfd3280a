package stock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		typ      MovementType
		quantity float64
		want     float64
	}{
		{"entrada soma", 10, TypeIn, 5, 15},
		{"saída subtrai", 10, TypeOut, 3, 7},
		{"saída trava em zero", 5, TypeOut, 8, 0},
		{"vencimento subtrai", 10, TypeExpired, 4, 6},
		{"perda trava em zero", 2, TypeLoss, 10, 0},
		{"ajuste define valor absoluto", 10, TypeAdjustment, 25, 25},
		{"ajuste para zero", 10, TypeAdjustment, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Apply(tt.current, tt.typ, tt.quantity))
		})
	}
}

func TestNewMovement_Snapshots(t *testing.T) {
	m, err := NewMovement("user-1", MovementInput{
		ProductID: "prod-1",
		Type:      TypeOut,
		Quantity:  3,
	}, 10)

	require.NoError(t, err)
	assert.Equal(t, 10.0, m.PreviousStock)
	assert.Equal(t, 7.0, m.ResultingStock)
	assert.Equal(t, -3.0, m.Delta())
}

func TestMovementInput_Validate(t *testing.T) {
	negative := -1.0
	tests := []struct {
		name    string
		in      MovementInput
		wantErr error
	}{
		{"produto vazio", MovementInput{Type: TypeIn, Quantity: 1}, ErrEmptyProduct},
		{"tipo inválido", MovementInput{ProductID: "p", Type: "transfer", Quantity: 1}, ErrInvalidType},
		{"quantidade zero", MovementInput{ProductID: "p", Type: TypeIn, Quantity: 0}, ErrInvalidQuantity},
		{"quantidade negativa", MovementInput{ProductID: "p", Type: TypeOut, Quantity: -2}, ErrInvalidQuantity},
		{"custo unitário negativo", MovementInput{ProductID: "p", Type: TypeIn, Quantity: 1, UnitCost: &negative}, ErrNegativeUnitCost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.in.Validate(), tt.wantErr)
		})
	}

	assert.NoError(t, MovementInput{ProductID: "p", Type: TypeIn, Quantity: 1}.Validate())
}

func TestMovement_Reverse(t *testing.T) {
	t.Run("entrada é subtraída", func(t *testing.T) {
		m, err := NewMovement("user-1", MovementInput{ProductID: "p", Type: TypeIn, Quantity: 5}, 10)
		require.NoError(t, err)
		assert.Equal(t, 10.0, m.Reverse(m.ResultingStock))
	})

	t.Run("saída é devolvida", func(t *testing.T) {
		m, err := NewMovement("user-1", MovementInput{ProductID: "p", Type: TypeOut, Quantity: 3}, 10)
		require.NoError(t, err)
		assert.Equal(t, 10.0, m.Reverse(m.ResultingStock))
	})

	t.Run("saída travada devolve apenas o debitado", func(t *testing.T) {
		// Estoque 5, saída de 8: trava em 0 e o débito efetivo foi 5
		m, err := NewMovement("user-1", MovementInput{ProductID: "p", Type: TypeOut, Quantity: 8}, 5)
		require.NoError(t, err)
		assert.Equal(t, 0.0, m.ResultingStock)
		assert.Equal(t, 5.0, m.Reverse(m.ResultingStock))
	})

	t.Run("ajuste restaura o estoque anterior", func(t *testing.T) {
		m, err := NewMovement("user-1", MovementInput{ProductID: "p", Type: TypeAdjustment, Quantity: 30}, 12)
		require.NoError(t, err)
		assert.Equal(t, 30.0, m.ResultingStock)
		assert.Equal(t, 12.0, m.Reverse(m.ResultingStock))
	})
}

func TestMovement_SequenceOfOutflows(t *testing.T) {
	stock := 10.0

	first, err := NewMovement("user-1", MovementInput{ProductID: "p", Type: TypeOut, Quantity: 3}, stock)
	require.NoError(t, err)
	stock = first.ResultingStock
	assert.Equal(t, 7.0, stock)

	second, err := NewMovement("user-1", MovementInput{ProductID: "p", Type: TypeOut, Quantity: 5}, stock)
	require.NoError(t, err)
	stock = second.ResultingStock
	assert.Equal(t, 2.0, stock)
}
