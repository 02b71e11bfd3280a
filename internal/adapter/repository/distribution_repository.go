package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/marianaduarte/erp-estetica/internal/domain/distribution"
)

// Erros específicos do repositório
var (
	ErrConfigNotFound       = errors.New("configuração de distribuição não encontrada")
	ErrDistributionNotFound = errors.New("distribuição não encontrada")
	ErrDistributionExists   = errors.New("distribuição já executada para o período")
)

// DistributionConfigRepository implementa a interface
// distribution.ConfigRepository
type DistributionConfigRepository struct {
	db *pgxpool.Pool
}

// NewDistributionConfigRepository cria uma nova instância de
// DistributionConfigRepository
func NewDistributionConfigRepository(db *pgxpool.Pool) distribution.ConfigRepository {
	return &DistributionConfigRepository{
		db: db,
	}
}

// Create implementa distribution.ConfigRepository.Create
func (r *DistributionConfigRepository) Create(ctx context.Context, c *distribution.Config) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO profit_distribution_config (
			id, user_id, category, percentage, is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.UserID, c.Category, c.Percentage, c.IsActive,
		c.CreatedAt, c.UpdatedAt)

	if err != nil {
		return fmt.Errorf("erro ao criar configuração de distribuição: %w", err)
	}

	return nil
}

// FindByID implementa distribution.ConfigRepository.FindByID
func (r *DistributionConfigRepository) FindByID(ctx context.Context, userID, id string) (*distribution.Config, error) {
	var c distribution.Config

	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, category, percentage, is_active, created_at, updated_at
		FROM profit_distribution_config
		WHERE user_id = $1 AND id = $2`,
		userID, id).Scan(
		&c.ID, &c.UserID, &c.Category, &c.Percentage, &c.IsActive,
		&c.CreatedAt, &c.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("erro ao buscar configuração de distribuição: %w", err)
	}

	return &c, nil
}

// FindActive implementa distribution.ConfigRepository.FindActive
func (r *DistributionConfigRepository) FindActive(ctx context.Context, userID string) ([]*distribution.Config, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, category, percentage, is_active, created_at, updated_at
		FROM profit_distribution_config
		WHERE user_id = $1 AND is_active = TRUE
		ORDER BY created_at`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar configurações ativas: %w", err)
	}
	defer rows.Close()

	return scanConfigs(rows)
}

// List implementa distribution.ConfigRepository.List
func (r *DistributionConfigRepository) List(ctx context.Context, userID string) ([]*distribution.Config, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, category, percentage, is_active, created_at, updated_at
		FROM profit_distribution_config
		WHERE user_id = $1
		ORDER BY created_at`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar configurações de distribuição: %w", err)
	}
	defer rows.Close()

	return scanConfigs(rows)
}

// Update implementa distribution.ConfigRepository.Update
func (r *DistributionConfigRepository) Update(ctx context.Context, c *distribution.Config) error {
	result, err := r.db.Exec(ctx,
		`UPDATE profit_distribution_config SET
			category = $1, percentage = $2, is_active = $3, updated_at = $4
		WHERE user_id = $5 AND id = $6`,
		c.Category, c.Percentage, c.IsActive, c.UpdatedAt, c.UserID, c.ID)

	if err != nil {
		return fmt.Errorf("erro ao atualizar configuração de distribuição: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrConfigNotFound
	}

	return nil
}

// scanConfigs lê as linhas do cursor para entidades de configuração
func scanConfigs(rows pgx.Rows) ([]*distribution.Config, error) {
	var configs []*distribution.Config
	for rows.Next() {
		var c distribution.Config
		if err := rows.Scan(
			&c.ID, &c.UserID, &c.Category, &c.Percentage, &c.IsActive,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler configuração de distribuição: %w", err)
		}
		configs = append(configs, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao percorrer configurações de distribuição: %w", err)
	}

	return configs, nil
}

const distributionColumns = `id, user_id, period_month, period_year,
	total_revenue, total_costs, total_profit, pro_labore_amount,
	equipment_reserve_amount, emergency_reserve_amount, investment_amount,
	created_at`

// DistributionRepository implementa a interface distribution.Repository
type DistributionRepository struct {
	db *pgxpool.Pool
}

// NewDistributionRepository cria uma nova instância de DistributionRepository
func NewDistributionRepository(db *pgxpool.Pool) distribution.Repository {
	return &DistributionRepository{
		db: db,
	}
}

// Create implementa distribution.Repository.Create
func (r *DistributionRepository) Create(ctx context.Context, d *distribution.Distribution) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO profit_distributions (
			id, user_id, period_month, period_year, total_revenue,
			total_costs, total_profit, pro_labore_amount,
			equipment_reserve_amount, emergency_reserve_amount,
			investment_amount, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		d.ID, d.UserID, d.PeriodMonth, d.PeriodYear, d.TotalRevenue,
		d.TotalCosts, d.TotalProfit, d.ProLaboreAmount,
		d.EquipmentReserveAmount, d.EmergencyReserveAmount,
		d.InvestmentAmount, d.CreatedAt)

	if err != nil {
		// Restrição única (user_id, period_month, period_year)
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrDistributionExists
		}
		return fmt.Errorf("erro ao criar distribuição: %w", err)
	}

	return nil
}

// FindByPeriod implementa distribution.Repository.FindByPeriod
func (r *DistributionRepository) FindByPeriod(ctx context.Context, userID string, month, year int) (*distribution.Distribution, error) {
	var d distribution.Distribution

	err := r.db.QueryRow(ctx,
		`SELECT `+distributionColumns+`
		FROM profit_distributions
		WHERE user_id = $1 AND period_month = $2 AND period_year = $3`,
		userID, month, year).Scan(
		&d.ID, &d.UserID, &d.PeriodMonth, &d.PeriodYear, &d.TotalRevenue,
		&d.TotalCosts, &d.TotalProfit, &d.ProLaboreAmount,
		&d.EquipmentReserveAmount, &d.EmergencyReserveAmount,
		&d.InvestmentAmount, &d.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDistributionNotFound
		}
		return nil, fmt.Errorf("erro ao buscar distribuição do período: %w", err)
	}

	return &d, nil
}

// FindByDateRange implementa distribution.Repository.FindByDateRange
func (r *DistributionRepository) FindByDateRange(ctx context.Context, userID string, dateFrom, dateTo *time.Time) ([]*distribution.Distribution, error) {
	conditions := []string{"user_id = $1"}
	args := []interface{}{userID}

	if dateFrom != nil {
		args = append(args, *dateFrom)
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if dateTo != nil {
		args = append(args, *dateTo)
		conditions = append(conditions, fmt.Sprintf("created_at <= $%d", len(args)))
	}

	query := `SELECT ` + distributionColumns + `
		FROM profit_distributions
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar distribuições: %w", err)
	}
	defer rows.Close()

	return scanDistributions(rows)
}

// List implementa distribution.Repository.List
func (r *DistributionRepository) List(ctx context.Context, userID string, limit, offset int) ([]*distribution.Distribution, int, error) {
	var total int
	if err := r.db.QueryRow(ctx,
		"SELECT COUNT(*) FROM profit_distributions WHERE user_id = $1",
		userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("erro ao contar distribuições: %w", err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+distributionColumns+`
		FROM profit_distributions
		WHERE user_id = $1
		ORDER BY period_year DESC, period_month DESC
		LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao listar distribuições: %w", err)
	}
	defer rows.Close()

	distributions, err := scanDistributions(rows)
	if err != nil {
		return nil, 0, err
	}

	return distributions, total, nil
}

// scanDistributions lê as linhas do cursor para entidades de distribuição
func scanDistributions(rows pgx.Rows) ([]*distribution.Distribution, error) {
	var distributions []*distribution.Distribution
	for rows.Next() {
		var d distribution.Distribution
		if err := rows.Scan(
			&d.ID, &d.UserID, &d.PeriodMonth, &d.PeriodYear, &d.TotalRevenue,
			&d.TotalCosts, &d.TotalProfit, &d.ProLaboreAmount,
			&d.EquipmentReserveAmount, &d.EmergencyReserveAmount,
			&d.InvestmentAmount, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler distribuição: %w", err)
		}
		distributions = append(distributions, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao percorrer distribuições: %w", err)
	}

	return distributions, nil
}
