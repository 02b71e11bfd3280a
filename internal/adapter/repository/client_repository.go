package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/marianaduarte/erp-estetica/internal/domain/client"
)

// Erros específicos do repositório
var (
	ErrClientNotFound = errors.New("cliente não encontrado")
)

// clientSortColumns lista as colunas permitidas na ordenação
var clientSortColumns = map[string]string{
	"name":          "c.name",
	"segment":       "c.segment",
	"total_spent":   "c.total_spent",
	"total_visits":  "c.total_visits",
	"last_visit_at": "c.last_visit_at",
	"created_at":    "c.created_at",
}

const clientColumns = `c.id, c.user_id, c.name, c.email, c.phone,
	c.birth_date, c.segment, c.notes, c.total_spent, c.total_visits,
	c.last_visit_at, c.is_active, c.created_at, c.updated_at`

// ClientRepository implementa a interface client.Repository
type ClientRepository struct {
	db *pgxpool.Pool
}

// NewClientRepository cria uma nova instância de ClientRepository
func NewClientRepository(db *pgxpool.Pool) client.Repository {
	return &ClientRepository{
		db: db,
	}
}

// Create implementa client.Repository.Create
func (r *ClientRepository) Create(ctx context.Context, c *client.Client) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO clients (
			id, user_id, name, email, phone, birth_date, segment, notes,
			total_spent, total_visits, last_visit_at, is_active,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		)`,
		c.ID, c.UserID, c.Name, c.Email, c.Phone, c.BirthDate, c.Segment,
		c.Notes, c.TotalSpent, c.TotalVisits, c.LastVisitAt, c.IsActive,
		c.CreatedAt, c.UpdatedAt)

	if err != nil {
		return fmt.Errorf("erro ao criar cliente: %w", err)
	}

	return nil
}

// FindByID implementa client.Repository.FindByID
func (r *ClientRepository) FindByID(ctx context.Context, userID, id string) (*client.Client, error) {
	var c client.Client

	err := r.db.QueryRow(ctx,
		`SELECT `+clientColumns+`
		FROM clients c WHERE c.user_id = $1 AND c.id = $2`,
		userID, id).Scan(
		&c.ID, &c.UserID, &c.Name, &c.Email, &c.Phone, &c.BirthDate,
		&c.Segment, &c.Notes, &c.TotalSpent, &c.TotalVisits, &c.LastVisitAt,
		&c.IsActive, &c.CreatedAt, &c.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("erro ao buscar cliente: %w", err)
	}

	return &c, nil
}

// List implementa client.Repository.List
func (r *ClientRepository) List(ctx context.Context, userID string, filter client.Filter, sort client.Sort, limit, offset int) ([]*client.Client, int, error) {
	where, args := buildClientWhere(userID, filter)

	var total int
	countQuery := "SELECT COUNT(*) FROM clients c " + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("erro ao contar clientes: %w", err)
	}

	query := `SELECT ` + clientColumns + ` FROM clients c ` + where +
		orderClause(clientSortColumns, sort.Field, sort.Descending, "c.name ASC") +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao listar clientes: %w", err)
	}
	defer rows.Close()

	clients, err := scanClients(rows)
	if err != nil {
		return nil, 0, err
	}

	return clients, total, nil
}

// FindAllActive implementa client.Repository.FindAllActive
func (r *ClientRepository) FindAllActive(ctx context.Context, userID string) ([]*client.Client, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+clientColumns+`
		FROM clients c
		WHERE c.user_id = $1 AND c.is_active = TRUE
		ORDER BY c.name`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar clientes ativos: %w", err)
	}
	defer rows.Close()

	return scanClients(rows)
}

// Update implementa client.Repository.Update
func (r *ClientRepository) Update(ctx context.Context, c *client.Client) error {
	result, err := r.db.Exec(ctx,
		`UPDATE clients SET
			name = $1, email = $2, phone = $3, birth_date = $4, segment = $5,
			notes = $6, total_spent = $7, total_visits = $8,
			last_visit_at = $9, is_active = $10, updated_at = $11
		WHERE user_id = $12 AND id = $13`,
		c.Name, c.Email, c.Phone, c.BirthDate, c.Segment, c.Notes,
		c.TotalSpent, c.TotalVisits, c.LastVisitAt, c.IsActive, c.UpdatedAt,
		c.UserID, c.ID)

	if err != nil {
		return fmt.Errorf("erro ao atualizar cliente: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrClientNotFound
	}

	return nil
}

// Delete implementa client.Repository.Delete
func (r *ClientRepository) Delete(ctx context.Context, userID, id string) error {
	result, err := r.db.Exec(ctx,
		"DELETE FROM clients WHERE user_id = $1 AND id = $2",
		userID, id)

	if err != nil {
		return fmt.Errorf("erro ao remover cliente: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrClientNotFound
	}

	return nil
}

// buildClientWhere monta a cláusula WHERE com argumentos posicionais a
// partir dos filtros
func buildClientWhere(userID string, filter client.Filter) (string, []interface{}) {
	conditions := []string{"c.user_id = $1"}
	args := []interface{}{userID}

	if filter.Segment != "" {
		args = append(args, filter.Segment)
		conditions = append(conditions, fmt.Sprintf("c.segment = $%d", len(args)))
	}
	if filter.IsActive != nil {
		args = append(args, *filter.IsActive)
		conditions = append(conditions, fmt.Sprintf("c.is_active = $%d", len(args)))
	}
	if filter.SearchTerm != "" {
		args = append(args, "%"+filter.SearchTerm+"%")
		idx := len(args)
		conditions = append(conditions, fmt.Sprintf(
			"(c.name ILIKE $%d OR c.email ILIKE $%d OR c.phone ILIKE $%d)", idx, idx, idx))
	}

	return "WHERE " + strings.Join(conditions, " AND "), args
}

// scanClients lê as linhas do cursor para entidades de cliente
func scanClients(rows pgx.Rows) ([]*client.Client, error) {
	var clients []*client.Client
	for rows.Next() {
		var c client.Client
		if err := rows.Scan(
			&c.ID, &c.UserID, &c.Name, &c.Email, &c.Phone, &c.BirthDate,
			&c.Segment, &c.Notes, &c.TotalSpent, &c.TotalVisits,
			&c.LastVisitAt, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler cliente: %w", err)
		}
		clients = append(clients, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao percorrer clientes: %w", err)
	}

	return clients, nil
}
