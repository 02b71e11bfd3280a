package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/marianaduarte/erp-estetica/internal/domain/procedure"
)

// Erros específicos do repositório
var (
	ErrProcedureNotFound = errors.New("procedimento não encontrado")
)

// procedureSortColumns lista as colunas permitidas na ordenação
var procedureSortColumns = map[string]string{
	"name":       "pr.name",
	"category":   "pr.category",
	"price":      "pr.price",
	"cost":       "pr.cost",
	"created_at": "pr.created_at",
}

const procedureColumns = `pr.id, pr.user_id, pr.name, pr.description,
	pr.category, pr.price, pr.cost, pr.duration_minutes, pr.is_active,
	pr.created_at, pr.updated_at`

// ProcedureRepository implementa a interface procedure.Repository
type ProcedureRepository struct {
	db *pgxpool.Pool
}

// NewProcedureRepository cria uma nova instância de ProcedureRepository
func NewProcedureRepository(db *pgxpool.Pool) procedure.Repository {
	return &ProcedureRepository{
		db: db,
	}
}

// Create implementa procedure.Repository.Create
func (r *ProcedureRepository) Create(ctx context.Context, p *procedure.Procedure) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO procedures (
			id, user_id, name, description, category, price, cost,
			duration_minutes, is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		p.ID, p.UserID, p.Name, p.Description, p.Category, p.Price, p.Cost,
		p.DurationMinutes, p.IsActive, p.CreatedAt, p.UpdatedAt)

	if err != nil {
		return fmt.Errorf("erro ao criar procedimento: %w", err)
	}

	return nil
}

// FindByID implementa procedure.Repository.FindByID
func (r *ProcedureRepository) FindByID(ctx context.Context, userID, id string) (*procedure.Procedure, error) {
	var p procedure.Procedure

	err := r.db.QueryRow(ctx,
		`SELECT `+procedureColumns+`
		FROM procedures pr WHERE pr.user_id = $1 AND pr.id = $2`,
		userID, id).Scan(
		&p.ID, &p.UserID, &p.Name, &p.Description, &p.Category, &p.Price,
		&p.Cost, &p.DurationMinutes, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProcedureNotFound
		}
		return nil, fmt.Errorf("erro ao buscar procedimento: %w", err)
	}

	return &p, nil
}

// List implementa procedure.Repository.List
func (r *ProcedureRepository) List(ctx context.Context, userID string, filter procedure.Filter, sort procedure.Sort, limit, offset int) ([]*procedure.Procedure, int, error) {
	where, args := buildProcedureWhere(userID, filter)

	var total int
	countQuery := "SELECT COUNT(*) FROM procedures pr " + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("erro ao contar procedimentos: %w", err)
	}

	query := `SELECT ` + procedureColumns + ` FROM procedures pr ` + where +
		orderClause(procedureSortColumns, sort.Field, sort.Descending, "pr.name ASC") +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao listar procedimentos: %w", err)
	}
	defer rows.Close()

	var procedures []*procedure.Procedure
	for rows.Next() {
		var p procedure.Procedure
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.Name, &p.Description, &p.Category, &p.Price,
			&p.Cost, &p.DurationMinutes, &p.IsActive, &p.CreatedAt,
			&p.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("erro ao ler procedimento: %w", err)
		}
		procedures = append(procedures, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("erro ao percorrer procedimentos: %w", err)
	}

	return procedures, total, nil
}

// Update implementa procedure.Repository.Update
func (r *ProcedureRepository) Update(ctx context.Context, p *procedure.Procedure) error {
	result, err := r.db.Exec(ctx,
		`UPDATE procedures SET
			name = $1, description = $2, category = $3, price = $4,
			cost = $5, duration_minutes = $6, is_active = $7, updated_at = $8
		WHERE user_id = $9 AND id = $10`,
		p.Name, p.Description, p.Category, p.Price, p.Cost,
		p.DurationMinutes, p.IsActive, p.UpdatedAt, p.UserID, p.ID)

	if err != nil {
		return fmt.Errorf("erro ao atualizar procedimento: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrProcedureNotFound
	}

	return nil
}

// Delete implementa procedure.Repository.Delete
func (r *ProcedureRepository) Delete(ctx context.Context, userID, id string) error {
	result, err := r.db.Exec(ctx,
		"DELETE FROM procedures WHERE user_id = $1 AND id = $2",
		userID, id)

	if err != nil {
		return fmt.Errorf("erro ao remover procedimento: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrProcedureNotFound
	}

	return nil
}

// ListCategories implementa procedure.Repository.ListCategories
func (r *ProcedureRepository) ListCategories(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT DISTINCT category FROM procedures
		WHERE user_id = $1 AND category <> ''
		ORDER BY category`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar categorias de procedimentos: %w", err)
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

// buildProcedureWhere monta a cláusula WHERE com argumentos posicionais a
// partir dos filtros
func buildProcedureWhere(userID string, filter procedure.Filter) (string, []interface{}) {
	conditions := []string{"pr.user_id = $1"}
	args := []interface{}{userID}

	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, fmt.Sprintf("pr.category = $%d", len(args)))
	}
	if filter.IsActive != nil {
		args = append(args, *filter.IsActive)
		conditions = append(conditions, fmt.Sprintf("pr.is_active = $%d", len(args)))
	}
	if filter.SearchTerm != "" {
		args = append(args, "%"+filter.SearchTerm+"%")
		idx := len(args)
		conditions = append(conditions, fmt.Sprintf(
			"(pr.name ILIKE $%d OR pr.description ILIKE $%d)", idx, idx))
	}

	return "WHERE " + strings.Join(conditions, " AND "), args
}
