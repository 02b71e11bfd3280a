package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/marianaduarte/erp-estetica/internal/domain/stock"
)

// Erros específicos do repositório
var (
	ErrMovementNotFound = errors.New("movimento de estoque não encontrado")
)

// movementSortColumns lista as colunas permitidas na ordenação
var movementSortColumns = map[string]string{
	"created_at": "m.created_at",
	"quantity":   "m.quantity",
	"type":       "m.movement_type",
}

const movementColumns = `m.id, m.user_id, m.product_id, m.movement_type,
	m.quantity, m.previous_stock, m.resulting_stock, m.unit_cost, m.notes,
	COALESCE(m.reference_id::text, ''), m.reference_type, m.created_at`

// DB reúne as operações do pool do pgx usadas pelo repositório de movimentos.
// *pgxpool.Pool a satisfaz; nos testes o pool é substituído por um mock.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// StockMovementRepository implementa a interface stock.Repository.
// Toda escrita aplica o lançamento e a projeção current_stock do produto em
// uma única transação, com o produto travado por FOR UPDATE.
type StockMovementRepository struct {
	db DB
}

// NewStockMovementRepository cria uma nova instância de StockMovementRepository
func NewStockMovementRepository(db DB) stock.Repository {
	return &StockMovementRepository{
		db: db,
	}
}

// Create implementa stock.Repository.Create
func (r *StockMovementRepository) Create(ctx context.Context, m *stock.Movement) error {
	return r.inTransaction(ctx, func(tx pgx.Tx) error {
		// Recalcular os campos de estoque sob o lock da linha do produto;
		// o valor lido pelo serviço pode estar defasado
		current, err := lockProductStock(ctx, tx, m.UserID, m.ProductID)
		if err != nil {
			return err
		}

		m.PreviousStock = current
		m.ResultingStock = stock.Apply(current, m.Type, m.Quantity)

		_, err = tx.Exec(ctx,
			`INSERT INTO stock_movements (
				id, user_id, product_id, movement_type, quantity,
				previous_stock, resulting_stock, unit_cost, notes,
				reference_id, reference_type, created_at
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
			)`,
			m.ID, m.UserID, m.ProductID, m.Type, m.Quantity,
			m.PreviousStock, m.ResultingStock, m.UnitCost, m.Notes,
			nullableUUID(m.ReferenceID), m.ReferenceType, m.CreatedAt)
		if err != nil {
			return fmt.Errorf("erro ao inserir movimento: %w", err)
		}

		return updateProductStock(ctx, tx, m.UserID, m.ProductID, m.ResultingStock)
	})
}

// FindByID implementa stock.Repository.FindByID
func (r *StockMovementRepository) FindByID(ctx context.Context, userID, id string) (*stock.Movement, error) {
	var m stock.Movement

	err := r.db.QueryRow(ctx,
		`SELECT `+movementColumns+`
		FROM stock_movements m
		WHERE m.user_id = $1 AND m.id = $2`,
		userID, id).Scan(
		&m.ID, &m.UserID, &m.ProductID, &m.Type, &m.Quantity,
		&m.PreviousStock, &m.ResultingStock, &m.UnitCost, &m.Notes,
		&m.ReferenceID, &m.ReferenceType, &m.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMovementNotFound
		}
		return nil, fmt.Errorf("erro ao buscar movimento: %w", err)
	}

	return &m, nil
}

// List implementa stock.Repository.List
func (r *StockMovementRepository) List(ctx context.Context, userID string, filter stock.Filter, sort stock.Sort, limit, offset int) ([]*stock.WithProduct, int, error) {
	where, args := buildMovementWhere(userID, filter)

	var total int
	countQuery := "SELECT COUNT(*) FROM stock_movements m " + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("erro ao contar movimentos: %w", err)
	}

	query := `SELECT ` + movementColumns + `,
			COALESCE(p.name, ''), COALESCE(p.unit, ''), COALESCE(p.sku, '')
		FROM stock_movements m
		LEFT JOIN products p ON p.id = m.product_id ` + where +
		orderClause(movementSortColumns, sort.Field, sort.Descending, "m.created_at DESC") +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao listar movimentos: %w", err)
	}
	defer rows.Close()

	var movements []*stock.WithProduct
	for rows.Next() {
		var m stock.WithProduct
		if err := rows.Scan(
			&m.ID, &m.UserID, &m.ProductID, &m.Type, &m.Quantity,
			&m.PreviousStock, &m.ResultingStock, &m.UnitCost, &m.Notes,
			&m.ReferenceID, &m.ReferenceType, &m.CreatedAt,
			&m.ProductName, &m.ProductUnit, &m.ProductSKU); err != nil {
			return nil, 0, fmt.Errorf("erro ao ler movimento: %w", err)
		}
		movements = append(movements, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("erro ao percorrer movimentos: %w", err)
	}

	return movements, total, nil
}

// FindAll implementa stock.Repository.FindAll
func (r *StockMovementRepository) FindAll(ctx context.Context, userID string, filter stock.Filter) ([]*stock.Movement, error) {
	where, args := buildMovementWhere(userID, filter)

	query := `SELECT ` + movementColumns +
		` FROM stock_movements m ` + where + " ORDER BY m.created_at"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar movimentos: %w", err)
	}
	defer rows.Close()

	var movements []*stock.Movement
	for rows.Next() {
		var m stock.Movement
		if err := rows.Scan(
			&m.ID, &m.UserID, &m.ProductID, &m.Type, &m.Quantity,
			&m.PreviousStock, &m.ResultingStock, &m.UnitCost, &m.Notes,
			&m.ReferenceID, &m.ReferenceType, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler movimento: %w", err)
		}
		movements = append(movements, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao percorrer movimentos: %w", err)
	}

	return movements, nil
}

// Update implementa stock.Repository.Update
func (r *StockMovementRepository) Update(ctx context.Context, original *stock.Movement, in stock.MovementInput) (*stock.Movement, error) {
	updated := &stock.Movement{
		ID:            original.ID,
		UserID:        original.UserID,
		ProductID:     in.ProductID,
		Type:          in.Type,
		Quantity:      in.Quantity,
		UnitCost:      in.UnitCost,
		Notes:         in.Notes,
		ReferenceID:   in.ReferenceID,
		ReferenceType: in.ReferenceType,
		CreatedAt:     original.CreatedAt,
	}

	err := r.inTransaction(ctx, func(tx pgx.Tx) error {
		// Reverter o efeito original sobre o produto de origem
		current, err := lockProductStock(ctx, tx, original.UserID, original.ProductID)
		if err != nil {
			return err
		}
		reversed := original.Reverse(current)
		if err := updateProductStock(ctx, tx, original.UserID, original.ProductID, reversed); err != nil {
			return err
		}

		// Aplicar o novo efeito; o produto pode ter mudado
		current = reversed
		if updated.ProductID != original.ProductID {
			current, err = lockProductStock(ctx, tx, updated.UserID, updated.ProductID)
			if err != nil {
				return err
			}
		}

		updated.PreviousStock = current
		updated.ResultingStock = stock.Apply(current, updated.Type, updated.Quantity)

		if err := updateProductStock(ctx, tx, updated.UserID, updated.ProductID, updated.ResultingStock); err != nil {
			return err
		}

		result, err := tx.Exec(ctx,
			`UPDATE stock_movements SET
				product_id = $1, movement_type = $2, quantity = $3,
				previous_stock = $4, resulting_stock = $5, unit_cost = $6,
				notes = $7, reference_id = $8, reference_type = $9
			WHERE user_id = $10 AND id = $11`,
			updated.ProductID, updated.Type, updated.Quantity,
			updated.PreviousStock, updated.ResultingStock, updated.UnitCost,
			updated.Notes, nullableUUID(updated.ReferenceID), updated.ReferenceType,
			updated.UserID, updated.ID)
		if err != nil {
			return fmt.Errorf("erro ao atualizar movimento: %w", err)
		}
		if result.RowsAffected() == 0 {
			return ErrMovementNotFound
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete implementa stock.Repository.Delete
func (r *StockMovementRepository) Delete(ctx context.Context, userID, id string) error {
	return r.inTransaction(ctx, func(tx pgx.Tx) error {
		m, err := lockMovement(ctx, tx, userID, id)
		if err != nil {
			return err
		}

		current, err := lockProductStock(ctx, tx, userID, m.ProductID)
		if err != nil {
			return err
		}

		if err := updateProductStock(ctx, tx, userID, m.ProductID, m.Reverse(current)); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx,
			"DELETE FROM stock_movements WHERE user_id = $1 AND id = $2",
			userID, id); err != nil {
			return fmt.Errorf("erro ao remover movimento: %w", err)
		}

		return nil
	})
}

// inTransaction executa uma função dentro de uma transação
func (r *StockMovementRepository) inTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("erro ao iniciar transação: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			return fmt.Errorf("%w (rollback falhou: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("erro ao confirmar transação: %w", err)
	}

	return nil
}

// lockProductStock lê o estoque atual do produto com lock de linha
func lockProductStock(ctx context.Context, tx pgx.Tx, userID, productID string) (float64, error) {
	var current float64
	err := tx.QueryRow(ctx,
		"SELECT current_stock FROM products WHERE user_id = $1 AND id = $2 FOR UPDATE",
		userID, productID).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrProductNotFound
		}
		return 0, fmt.Errorf("erro ao travar estoque do produto: %w", err)
	}
	return current, nil
}

// lockMovement carrega um movimento com lock de linha
func lockMovement(ctx context.Context, tx pgx.Tx, userID, id string) (*stock.Movement, error) {
	var m stock.Movement
	err := tx.QueryRow(ctx,
		`SELECT `+movementColumns+`
		FROM stock_movements m
		WHERE m.user_id = $1 AND m.id = $2 FOR UPDATE`,
		userID, id).Scan(
		&m.ID, &m.UserID, &m.ProductID, &m.Type, &m.Quantity,
		&m.PreviousStock, &m.ResultingStock, &m.UnitCost, &m.Notes,
		&m.ReferenceID, &m.ReferenceType, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMovementNotFound
		}
		return nil, fmt.Errorf("erro ao travar movimento: %w", err)
	}
	return &m, nil
}

// updateProductStock grava a projeção current_stock do produto
func updateProductStock(ctx context.Context, tx pgx.Tx, userID, productID string, newStock float64) error {
	result, err := tx.Exec(ctx,
		"UPDATE products SET current_stock = $1, updated_at = $2 WHERE user_id = $3 AND id = $4",
		newStock, time.Now(), userID, productID)
	if err != nil {
		return fmt.Errorf("erro ao atualizar estoque do produto: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	return nil
}

// nullableUUID converte a referência opcional para o parâmetro da coluna
// UUID: vazio vira NULL, nunca uma string vazia, que o pgx não codifica
func nullableUUID(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// buildMovementWhere monta a cláusula WHERE com argumentos posicionais a
// partir dos filtros
func buildMovementWhere(userID string, filter stock.Filter) (string, []interface{}) {
	conditions := []string{"m.user_id = $1"}
	args := []interface{}{userID}

	if filter.ProductID != "" {
		args = append(args, filter.ProductID)
		conditions = append(conditions, fmt.Sprintf("m.product_id = $%d", len(args)))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		conditions = append(conditions, fmt.Sprintf("m.movement_type = $%d", len(args)))
	}
	if filter.ReferenceID != "" {
		args = append(args, filter.ReferenceID)
		conditions = append(conditions, fmt.Sprintf("m.reference_id = $%d", len(args)))
	}
	if filter.ReferenceType != "" {
		args = append(args, filter.ReferenceType)
		conditions = append(conditions, fmt.Sprintf("m.reference_type = $%d", len(args)))
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		conditions = append(conditions, fmt.Sprintf("m.created_at >= $%d", len(args)))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		conditions = append(conditions, fmt.Sprintf("m.created_at <= $%d", len(args)))
	}

	return "WHERE " + strings.Join(conditions, " AND "), args
}
