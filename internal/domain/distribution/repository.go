package distribution

import (
	"context"
	"time"
)

// ConfigRepository define a interface para operações de repositório de
// configurações de distribuição
type ConfigRepository interface {
	// Create cria uma nova configuração
	Create(ctx context.Context, c *Config) error

	// FindByID busca uma configuração pelo ID
	FindByID(ctx context.Context, userID, id string) (*Config, error)

	// FindActive lista as configurações ativas do usuário ordenadas pela
	// data de criação
	FindActive(ctx context.Context, userID string) ([]*Config, error)

	// List lista todas as configurações do usuário, ativas ou não
	List(ctx context.Context, userID string) ([]*Config, error)

	// Update atualiza uma configuração existente
	Update(ctx context.Context, c *Config) error
}

// Repository define a interface para operações de repositório de
// distribuições executadas
type Repository interface {
	// Create persiste uma distribuição executada. Falha se já existir uma
	// distribuição para o mesmo período
	Create(ctx context.Context, d *Distribution) error

	// FindByPeriod busca a distribuição de um período
	FindByPeriod(ctx context.Context, userID string, month, year int) (*Distribution, error)

	// FindByDateRange lista as distribuições executadas dentro de um
	// intervalo de datas de execução
	FindByDateRange(ctx context.Context, userID string, dateFrom, dateTo *time.Time) ([]*Distribution, error)

	// List lista as distribuições do usuário, mais recentes primeiro
	List(ctx context.Context, userID string, limit, offset int) ([]*Distribution, int, error)
}
