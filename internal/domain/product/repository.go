package product

import (
	"context"
)

// Filter define os filtros de listagem de produtos
type Filter struct {
	Category     string
	IsActive     *bool
	SearchTerm   string // busca em nome, sku e descrição
	LowStock     bool   // estoque atual abaixo do mínimo
	ExpiringSoon bool   // vence dentro de ExpiryDays (e ainda não venceu)
	ExpiryDays   int    // janela em dias para ExpiringSoon (padrão 30)
}

// Sort define a ordenação da listagem
type Sort struct {
	Field      string
	Descending bool
}

// Repository define a interface para operações de repositório de produtos
type Repository interface {
	// Create cria um novo produto
	Create(ctx context.Context, p *Product) error

	// FindByID busca um produto pelo ID
	FindByID(ctx context.Context, userID, id string) (*Product, error)

	// List lista os produtos do usuário com filtros e paginação,
	// retornando também o total de registros
	List(ctx context.Context, userID string, filter Filter, sort Sort, limit, offset int) ([]*Product, int, error)

	// FindAllActive retorna todos os produtos ativos do usuário, sem
	// paginação (usado pelas agregações de estoque)
	FindAllActive(ctx context.Context, userID string) ([]*Product, error)

	// Update atualiza os dados de um produto existente
	Update(ctx context.Context, p *Product) error

	// Delete remove um produto
	Delete(ctx context.Context, userID, id string) error

	// ListCategories retorna as categorias distintas, não vazias e
	// ordenadas dos produtos do usuário
	ListCategories(ctx context.Context, userID string) ([]string, error)
}
