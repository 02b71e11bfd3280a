package client

import (
	"context"
)

// Filter define os filtros de listagem de clientes
type Filter struct {
	Segment    Segment
	IsActive   *bool
	SearchTerm string // busca em nome, email e telefone
}

// Sort define a ordenação da listagem
type Sort struct {
	Field      string
	Descending bool
}

// Repository define a interface para operações de repositório de clientes
type Repository interface {
	// Create cria um novo cliente
	Create(ctx context.Context, c *Client) error

	// FindByID busca um cliente pelo ID
	FindByID(ctx context.Context, userID, id string) (*Client, error)

	// List lista os clientes do usuário com filtros e paginação,
	// retornando também o total de registros
	List(ctx context.Context, userID string, filter Filter, sort Sort, limit, offset int) ([]*Client, int, error)

	// FindAllActive retorna todos os clientes ativos do usuário
	FindAllActive(ctx context.Context, userID string) ([]*Client, error)

	// Update atualiza os dados de um cliente existente
	Update(ctx context.Context, c *Client) error

	// Delete remove um cliente
	Delete(ctx context.Context, userID, id string) error
}
