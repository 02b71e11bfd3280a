package procedure

import (
	"context"
)

// Filter define os filtros de listagem de procedimentos
type Filter struct {
	Category   string
	IsActive   *bool
	SearchTerm string // busca em nome e descrição
}

// Sort define a ordenação da listagem
type Sort struct {
	Field      string
	Descending bool
}

// Repository define a interface para operações de repositório de
// procedimentos
type Repository interface {
	// Create cria um novo procedimento
	Create(ctx context.Context, p *Procedure) error

	// FindByID busca um procedimento pelo ID
	FindByID(ctx context.Context, userID, id string) (*Procedure, error)

	// List lista os procedimentos do usuário com filtros e paginação,
	// retornando também o total de registros
	List(ctx context.Context, userID string, filter Filter, sort Sort, limit, offset int) ([]*Procedure, int, error)

	// Update atualiza os dados de um procedimento existente
	Update(ctx context.Context, p *Procedure) error

	// Delete remove um procedimento
	Delete(ctx context.Context, userID, id string) error

	// ListCategories retorna as categorias distintas, não vazias e
	// ordenadas dos procedimentos do usuário
	ListCategories(ctx context.Context, userID string) ([]string, error)
}
