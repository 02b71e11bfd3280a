package attendance

import (
	"context"
	"time"
)

// Filter define os filtros de listagem de atendimentos
type Filter struct {
	PaymentStatus PaymentStatus
	PaymentMethod PaymentMethod
	ClientID      string
	ProcedureID   string
	DateFrom      *time.Time // inclusivo
	DateTo        *time.Time // inclusivo
}

// Sort define a ordenação da listagem
type Sort struct {
	Field      string // coluna permitida pelo repositório
	Descending bool
}

// Repository define a interface para operações de repositório de atendimentos
type Repository interface {
	// Create cria um novo atendimento
	Create(ctx context.Context, a *Attendance) error

	// FindByID busca um atendimento pelo ID com dados de cliente e procedimento
	FindByID(ctx context.Context, userID, id string) (*WithDetails, error)

	// List lista os atendimentos de um usuário com filtros e paginação,
	// retornando também o total de registros
	List(ctx context.Context, userID string, filter Filter, sort Sort, limit, offset int) ([]*Attendance, int, error)

	// ListWithDetails lista os atendimentos com dados de cliente e
	// procedimento agregados
	ListWithDetails(ctx context.Context, userID string, filter Filter, sort Sort, limit, offset int) ([]*WithDetails, int, error)

	// FindAll retorna todos os atendimentos do usuário que satisfazem o
	// filtro, sem paginação (usado pelas agregações financeiras)
	FindAll(ctx context.Context, userID string, filter Filter) ([]*Attendance, error)

	// Update atualiza os dados de um atendimento existente
	Update(ctx context.Context, a *Attendance) error

	// UpdatePaymentStatus atualiza apenas o status de pagamento
	UpdatePaymentStatus(ctx context.Context, userID, id string, status PaymentStatus) error

	// Delete remove um atendimento
	Delete(ctx context.Context, userID, id string) error
}
