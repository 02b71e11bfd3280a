package repository

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marianaduarte/erp-estetica/internal/domain/stock"
)

func TestStockMovementRepository_Create(t *testing.T) {
	t.Run("sem custo e sem referência grava NULL", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewStockMovementRepository(mock)

		m, err := stock.NewMovement("user-1", stock.MovementInput{
			ProductID: "prod-1",
			Type:      stock.TypeOut,
			Quantity:  3,
		}, 8)
		require.NoError(t, err)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT current_stock FROM products").
			WithArgs("user-1", "prod-1").
			WillReturnRows(pgxmock.NewRows([]string{"current_stock"}).AddRow(8.0))
		// Custo unitário e referência ausentes devem chegar ao banco como
		// NULL, nunca como zero ou string vazia
		mock.ExpectExec("INSERT INTO stock_movements").
			WithArgs(m.ID, "user-1", "prod-1", stock.TypeOut, 3.0,
				8.0, 5.0, (*float64)(nil), "", (*string)(nil), "", m.CreatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectExec("UPDATE products SET current_stock").
			WithArgs(5.0, pgxmock.AnyArg(), "user-1", "prod-1").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectCommit()

		require.NoError(t, repo.Create(context.Background(), m))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("com referência grava o UUID informado", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewStockMovementRepository(mock)

		cost := 12.5
		ref := "7c9e6679-7425-40de-944b-e07fc1f90ae7"
		m, err := stock.NewMovement("user-1", stock.MovementInput{
			ProductID:     "prod-1",
			Type:          stock.TypeIn,
			Quantity:      2,
			UnitCost:      &cost,
			ReferenceID:   ref,
			ReferenceType: "attendance",
		}, 5)
		require.NoError(t, err)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT current_stock FROM products").
			WithArgs("user-1", "prod-1").
			WillReturnRows(pgxmock.NewRows([]string{"current_stock"}).AddRow(5.0))
		mock.ExpectExec("INSERT INTO stock_movements").
			WithArgs(m.ID, "user-1", "prod-1", stock.TypeIn, 2.0,
				5.0, 7.0, &cost, "", &ref, "attendance", m.CreatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectExec("UPDATE products SET current_stock").
			WithArgs(7.0, pgxmock.AnyArg(), "user-1", "prod-1").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectCommit()

		require.NoError(t, repo.Create(context.Background(), m))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestStockMovementRepository_FindByID_CamposOpcionaisNulos(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewStockMovementRepository(mock)

	createdAt := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	rows := pgxmock.NewRows([]string{
		"id", "user_id", "product_id", "movement_type", "quantity",
		"previous_stock", "resulting_stock", "unit_cost", "notes",
		"reference_id", "reference_type", "created_at",
	}).AddRow("mov-1", "user-1", "prod-1", stock.TypeOut, 3.0,
		8.0, 5.0, nil, "", "", "", createdAt)

	mock.ExpectQuery("SELECT (.+) FROM stock_movements").
		WithArgs("user-1", "mov-1").
		WillReturnRows(rows)

	m, err := repo.FindByID(context.Background(), "user-1", "mov-1")
	require.NoError(t, err)

	assert.Nil(t, m.UnitCost)
	assert.Empty(t, m.ReferenceID)
	assert.Equal(t, 5.0, m.ResultingStock)
	assert.NoError(t, mock.ExpectationsWereMet())
}
