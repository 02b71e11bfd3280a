package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/marianaduarte/erp-estetica/internal/domain/product"
)

// Erros específicos do repositório
var (
	ErrProductNotFound = errors.New("produto não encontrado")
)

// productSortColumns lista as colunas permitidas na ordenação
var productSortColumns = map[string]string{
	"name":          "p.name",
	"category":      "p.category",
	"cost_price":    "p.cost_price",
	"current_stock": "p.current_stock",
	"expiry_date":   "p.expiry_date",
	"created_at":    "p.created_at",
}

const productColumns = `p.id, p.user_id, p.name, p.description, p.sku,
	p.unit, p.category, p.cost_price, p.current_stock, p.min_stock,
	p.expiry_date, p.is_active, p.created_at, p.updated_at`

// ProductRepository implementa a interface product.Repository
type ProductRepository struct {
	db *pgxpool.Pool
}

// NewProductRepository cria uma nova instância de ProductRepository
func NewProductRepository(db *pgxpool.Pool) product.Repository {
	return &ProductRepository{
		db: db,
	}
}

// Create implementa product.Repository.Create
func (r *ProductRepository) Create(ctx context.Context, p *product.Product) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO products (
			id, user_id, name, description, sku, unit, category,
			cost_price, current_stock, min_stock, expiry_date, is_active,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		)`,
		p.ID, p.UserID, p.Name, p.Description, p.SKU, p.Unit, p.Category,
		p.CostPrice, p.CurrentStock, p.MinStock, p.ExpiryDate, p.IsActive,
		p.CreatedAt, p.UpdatedAt)

	if err != nil {
		return fmt.Errorf("erro ao criar produto: %w", err)
	}

	return nil
}

// FindByID implementa product.Repository.FindByID
func (r *ProductRepository) FindByID(ctx context.Context, userID, id string) (*product.Product, error) {
	var p product.Product

	err := r.db.QueryRow(ctx,
		`SELECT `+productColumns+`
		FROM products p WHERE p.user_id = $1 AND p.id = $2`,
		userID, id).Scan(
		&p.ID, &p.UserID, &p.Name, &p.Description, &p.SKU, &p.Unit,
		&p.Category, &p.CostPrice, &p.CurrentStock, &p.MinStock,
		&p.ExpiryDate, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("erro ao buscar produto: %w", err)
	}

	return &p, nil
}

// List implementa product.Repository.List
func (r *ProductRepository) List(ctx context.Context, userID string, filter product.Filter, sort product.Sort, limit, offset int) ([]*product.Product, int, error) {
	where, args := buildProductWhere(userID, filter)

	var total int
	countQuery := "SELECT COUNT(*) FROM products p " + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("erro ao contar produtos: %w", err)
	}

	query := `SELECT ` + productColumns + ` FROM products p ` + where +
		orderClause(productSortColumns, sort.Field, sort.Descending, "p.name ASC") +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao listar produtos: %w", err)
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// FindAllActive implementa product.Repository.FindAllActive
func (r *ProductRepository) FindAllActive(ctx context.Context, userID string) ([]*product.Product, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+productColumns+`
		FROM products p
		WHERE p.user_id = $1 AND p.is_active = TRUE
		ORDER BY p.name`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar produtos ativos: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// Update implementa product.Repository.Update
func (r *ProductRepository) Update(ctx context.Context, p *product.Product) error {
	result, err := r.db.Exec(ctx,
		`UPDATE products SET
			name = $1, description = $2, sku = $3, unit = $4, category = $5,
			cost_price = $6, current_stock = $7, min_stock = $8,
			expiry_date = $9, is_active = $10, updated_at = $11
		WHERE user_id = $12 AND id = $13`,
		p.Name, p.Description, p.SKU, p.Unit, p.Category, p.CostPrice,
		p.CurrentStock, p.MinStock, p.ExpiryDate, p.IsActive, p.UpdatedAt,
		p.UserID, p.ID)

	if err != nil {
		return fmt.Errorf("erro ao atualizar produto: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrProductNotFound
	}

	return nil
}

// Delete implementa product.Repository.Delete
func (r *ProductRepository) Delete(ctx context.Context, userID, id string) error {
	result, err := r.db.Exec(ctx,
		"DELETE FROM products WHERE user_id = $1 AND id = $2",
		userID, id)

	if err != nil {
		return fmt.Errorf("erro ao remover produto: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrProductNotFound
	}

	return nil
}

// ListCategories implementa product.Repository.ListCategories
func (r *ProductRepository) ListCategories(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT DISTINCT category FROM products
		WHERE user_id = $1 AND category <> ''
		ORDER BY category`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar categorias de produtos: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, fmt.Errorf("erro ao ler categoria: %w", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao percorrer categorias: %w", err)
	}

	return categories, nil
}

// buildProductWhere monta a cláusula WHERE com argumentos posicionais a
// partir dos filtros
func buildProductWhere(userID string, filter product.Filter) (string, []interface{}) {
	conditions := []string{"p.user_id = $1"}
	args := []interface{}{userID}

	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, fmt.Sprintf("p.category = $%d", len(args)))
	}
	if filter.IsActive != nil {
		args = append(args, *filter.IsActive)
		conditions = append(conditions, fmt.Sprintf("p.is_active = $%d", len(args)))
	}
	if filter.SearchTerm != "" {
		args = append(args, "%"+filter.SearchTerm+"%")
		idx := len(args)
		conditions = append(conditions, fmt.Sprintf(
			"(p.name ILIKE $%d OR p.sku ILIKE $%d OR p.description ILIKE $%d)", idx, idx, idx))
	}
	if filter.LowStock {
		conditions = append(conditions, "p.current_stock < p.min_stock")
	}
	if filter.ExpiringSoon {
		days := filter.ExpiryDays
		if days <= 0 {
			days = 30
		}
		args = append(args, days)
		conditions = append(conditions, fmt.Sprintf(
			"p.expiry_date IS NOT NULL AND p.expiry_date >= CURRENT_DATE AND p.expiry_date <= CURRENT_DATE + $%d * INTERVAL '1 day'", len(args)))
	}

	return "WHERE " + strings.Join(conditions, " AND "), args
}

// scanProducts lê as linhas do cursor para entidades de produto
func scanProducts(rows pgx.Rows) ([]*product.Product, error) {
	var products []*product.Product
	for rows.Next() {
		var p product.Product
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.Name, &p.Description, &p.SKU, &p.Unit,
			&p.Category, &p.CostPrice, &p.CurrentStock, &p.MinStock,
			&p.ExpiryDate, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler produto: %w", err)
		}
		products = append(products, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao percorrer produtos: %w", err)
	}

	return products, nil
}
