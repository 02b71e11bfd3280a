package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/marianaduarte/erp-estetica/internal/domain/attendance"
)

// Erros específicos do repositório
var (
	ErrAttendanceNotFound = errors.New("atendimento não encontrado")
)

// attendanceSortColumns lista as colunas permitidas na ordenação
var attendanceSortColumns = map[string]string{
	"date":           "a.date",
	"value":          "a.value",
	"payment_status": "a.payment_status",
	"created_at":     "a.created_at",
}

// AttendanceRepository implementa a interface attendance.Repository
type AttendanceRepository struct {
	db *pgxpool.Pool
}

// NewAttendanceRepository cria uma nova instância de AttendanceRepository
func NewAttendanceRepository(db *pgxpool.Pool) attendance.Repository {
	return &AttendanceRepository{
		db: db,
	}
}

// Create implementa attendance.Repository.Create
func (r *AttendanceRepository) Create(ctx context.Context, a *attendance.Attendance) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO attendances (
			id, user_id, client_id, procedure_id, date, value, discount,
			product_cost, payment_method, payment_status, notes,
			satisfaction_rating, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		)`,
		a.ID, a.UserID, a.ClientID, a.ProcedureID, a.Date, a.Value,
		a.Discount, a.ProductCost, a.PaymentMethod, a.PaymentStatus,
		a.Notes, a.SatisfactionRating, a.CreatedAt, a.UpdatedAt)

	if err != nil {
		return fmt.Errorf("erro ao criar atendimento: %w", err)
	}

	return nil
}

// FindByID implementa attendance.Repository.FindByID
func (r *AttendanceRepository) FindByID(ctx context.Context, userID, id string) (*attendance.WithDetails, error) {
	var a attendance.WithDetails

	err := r.db.QueryRow(ctx,
		`SELECT
			a.id, a.user_id, a.client_id, a.procedure_id, a.date, a.value,
			a.discount, a.product_cost, a.payment_method, a.payment_status,
			a.notes, a.satisfaction_rating, a.created_at, a.updated_at,
			COALESCE(c.name, ''), COALESCE(c.email, ''),
			COALESCE(p.name, ''), COALESCE(p.price, 0)
		FROM attendances a
		LEFT JOIN clients c ON c.id = a.client_id
		LEFT JOIN procedures p ON p.id = a.procedure_id
		WHERE a.user_id = $1 AND a.id = $2`,
		userID, id).Scan(
		&a.ID, &a.UserID, &a.ClientID, &a.ProcedureID, &a.Date, &a.Value,
		&a.Discount, &a.ProductCost, &a.PaymentMethod, &a.PaymentStatus,
		&a.Notes, &a.SatisfactionRating, &a.CreatedAt, &a.UpdatedAt,
		&a.ClientName, &a.ClientEmail, &a.ProcedureName, &a.ProcedurePrice)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAttendanceNotFound
		}
		return nil, fmt.Errorf("erro ao buscar atendimento: %w", err)
	}

	return &a, nil
}

// List implementa attendance.Repository.List
func (r *AttendanceRepository) List(ctx context.Context, userID string, filter attendance.Filter, sort attendance.Sort, limit, offset int) ([]*attendance.Attendance, int, error) {
	where, args := buildAttendanceWhere(userID, filter)

	var total int
	countQuery := "SELECT COUNT(*) FROM attendances a " + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("erro ao contar atendimentos: %w", err)
	}

	query := `SELECT
			a.id, a.user_id, a.client_id, a.procedure_id, a.date, a.value,
			a.discount, a.product_cost, a.payment_method, a.payment_status,
			a.notes, a.satisfaction_rating, a.created_at, a.updated_at
		FROM attendances a ` + where +
		orderClause(attendanceSortColumns, sort.Field, sort.Descending, "a.date DESC") +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao listar atendimentos: %w", err)
	}
	defer rows.Close()

	var attendances []*attendance.Attendance
	for rows.Next() {
		var a attendance.Attendance
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.ClientID, &a.ProcedureID, &a.Date, &a.Value,
			&a.Discount, &a.ProductCost, &a.PaymentMethod, &a.PaymentStatus,
			&a.Notes, &a.SatisfactionRating, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("erro ao ler atendimento: %w", err)
		}
		attendances = append(attendances, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("erro ao percorrer atendimentos: %w", err)
	}

	return attendances, total, nil
}

// ListWithDetails implementa attendance.Repository.ListWithDetails
func (r *AttendanceRepository) ListWithDetails(ctx context.Context, userID string, filter attendance.Filter, sort attendance.Sort, limit, offset int) ([]*attendance.WithDetails, int, error) {
	where, args := buildAttendanceWhere(userID, filter)

	var total int
	countQuery := "SELECT COUNT(*) FROM attendances a " + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("erro ao contar atendimentos: %w", err)
	}

	query := `SELECT
			a.id, a.user_id, a.client_id, a.procedure_id, a.date, a.value,
			a.discount, a.product_cost, a.payment_method, a.payment_status,
			a.notes, a.satisfaction_rating, a.created_at, a.updated_at,
			COALESCE(c.name, ''), COALESCE(c.email, ''),
			COALESCE(p.name, ''), COALESCE(p.price, 0)
		FROM attendances a
		LEFT JOIN clients c ON c.id = a.client_id
		LEFT JOIN procedures p ON p.id = a.procedure_id ` + where +
		orderClause(attendanceSortColumns, sort.Field, sort.Descending, "a.date DESC") +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao listar atendimentos detalhados: %w", err)
	}
	defer rows.Close()

	var attendances []*attendance.WithDetails
	for rows.Next() {
		var a attendance.WithDetails
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.ClientID, &a.ProcedureID, &a.Date, &a.Value,
			&a.Discount, &a.ProductCost, &a.PaymentMethod, &a.PaymentStatus,
			&a.Notes, &a.SatisfactionRating, &a.CreatedAt, &a.UpdatedAt,
			&a.ClientName, &a.ClientEmail, &a.ProcedureName, &a.ProcedurePrice); err != nil {
			return nil, 0, fmt.Errorf("erro ao ler atendimento detalhado: %w", err)
		}
		attendances = append(attendances, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("erro ao percorrer atendimentos detalhados: %w", err)
	}

	return attendances, total, nil
}

// FindAll implementa attendance.Repository.FindAll
func (r *AttendanceRepository) FindAll(ctx context.Context, userID string, filter attendance.Filter) ([]*attendance.Attendance, error) {
	where, args := buildAttendanceWhere(userID, filter)

	query := `SELECT
			a.id, a.user_id, a.client_id, a.procedure_id, a.date, a.value,
			a.discount, a.product_cost, a.payment_method, a.payment_status,
			a.notes, a.satisfaction_rating, a.created_at, a.updated_at
		FROM attendances a ` + where + " ORDER BY a.date"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar atendimentos: %w", err)
	}
	defer rows.Close()

	var attendances []*attendance.Attendance
	for rows.Next() {
		var a attendance.Attendance
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.ClientID, &a.ProcedureID, &a.Date, &a.Value,
			&a.Discount, &a.ProductCost, &a.PaymentMethod, &a.PaymentStatus,
			&a.Notes, &a.SatisfactionRating, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler atendimento: %w", err)
		}
		attendances = append(attendances, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao percorrer atendimentos: %w", err)
	}

	return attendances, nil
}

// Update implementa attendance.Repository.Update
func (r *AttendanceRepository) Update(ctx context.Context, a *attendance.Attendance) error {
	result, err := r.db.Exec(ctx,
		`UPDATE attendances SET
			client_id = $1, procedure_id = $2, date = $3, value = $4,
			discount = $5, product_cost = $6, payment_method = $7,
			payment_status = $8, notes = $9, satisfaction_rating = $10,
			updated_at = $11
		WHERE user_id = $12 AND id = $13`,
		a.ClientID, a.ProcedureID, a.Date, a.Value, a.Discount,
		a.ProductCost, a.PaymentMethod, a.PaymentStatus, a.Notes,
		a.SatisfactionRating, a.UpdatedAt, a.UserID, a.ID)

	if err != nil {
		return fmt.Errorf("erro ao atualizar atendimento: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrAttendanceNotFound
	}

	return nil
}

// UpdatePaymentStatus implementa attendance.Repository.UpdatePaymentStatus
func (r *AttendanceRepository) UpdatePaymentStatus(ctx context.Context, userID, id string, status attendance.PaymentStatus) error {
	result, err := r.db.Exec(ctx,
		`UPDATE attendances SET payment_status = $1, updated_at = NOW()
		WHERE user_id = $2 AND id = $3`,
		status, userID, id)

	if err != nil {
		return fmt.Errorf("erro ao atualizar status de pagamento: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrAttendanceNotFound
	}

	return nil
}

// Delete implementa attendance.Repository.Delete
func (r *AttendanceRepository) Delete(ctx context.Context, userID, id string) error {
	result, err := r.db.Exec(ctx,
		"DELETE FROM attendances WHERE user_id = $1 AND id = $2",
		userID, id)

	if err != nil {
		return fmt.Errorf("erro ao remover atendimento: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrAttendanceNotFound
	}

	return nil
}

// buildAttendanceWhere monta a cláusula WHERE com argumentos posicionais a
// partir dos filtros
func buildAttendanceWhere(userID string, filter attendance.Filter) (string, []interface{}) {
	conditions := []string{"a.user_id = $1"}
	args := []interface{}{userID}

	if filter.PaymentStatus != "" {
		args = append(args, filter.PaymentStatus)
		conditions = append(conditions, fmt.Sprintf("a.payment_status = $%d", len(args)))
	}
	if filter.PaymentMethod != "" {
		args = append(args, filter.PaymentMethod)
		conditions = append(conditions, fmt.Sprintf("a.payment_method = $%d", len(args)))
	}
	if filter.ClientID != "" {
		args = append(args, filter.ClientID)
		conditions = append(conditions, fmt.Sprintf("a.client_id = $%d", len(args)))
	}
	if filter.ProcedureID != "" {
		args = append(args, filter.ProcedureID)
		conditions = append(conditions, fmt.Sprintf("a.procedure_id = $%d", len(args)))
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		conditions = append(conditions, fmt.Sprintf("a.date >= $%d", len(args)))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		conditions = append(conditions, fmt.Sprintf("a.date <= $%d", len(args)))
	}

	return "WHERE " + strings.Join(conditions, " AND "), args
}
