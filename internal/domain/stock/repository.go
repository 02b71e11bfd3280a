package stock

import (
	"context"
	"time"
)

// WithProduct agrega o movimento com dados do produto para exibição
type WithProduct struct {
	Movement
	ProductName string `json:"product_name"`
	ProductUnit string `json:"product_unit"`
	ProductSKU  string `json:"product_sku"`
}

// Filter define os filtros de listagem de movimentos
type Filter struct {
	ProductID     string
	Type          MovementType
	ReferenceID   string
	ReferenceType string
	DateFrom      *time.Time // inclusivo, sobre created_at
	DateTo        *time.Time // inclusivo, sobre created_at
}

// Sort define a ordenação da listagem
type Sort struct {
	Field      string
	Descending bool
}

// Repository define a interface para operações de repositório de movimentos
// de estoque. As operações de escrita aplicam o lançamento e a atualização
// da projeção current_stock do produto em uma única transação.
type Repository interface {
	// Create insere o lançamento e aplica seu efeito ao estoque do produto
	Create(ctx context.Context, m *Movement) error

	// FindByID busca um movimento pelo ID
	FindByID(ctx context.Context, userID, id string) (*Movement, error)

	// List lista os movimentos do usuário com filtros e paginação,
	// agregados com dados do produto, retornando também o total
	List(ctx context.Context, userID string, filter Filter, sort Sort, limit, offset int) ([]*WithProduct, int, error)

	// FindAll retorna todos os movimentos do usuário que satisfazem o
	// filtro, sem paginação (usado pelo resumo de movimentos)
	FindAll(ctx context.Context, userID string, filter Filter) ([]*Movement, error)

	// Update reverte o efeito do movimento original sobre o estoque,
	// aplica o novo movimento e atualiza o lançamento, tudo em uma
	// transação
	Update(ctx context.Context, original *Movement, in MovementInput) (*Movement, error)

	// Delete reverte o efeito do movimento sobre o estoque e remove o
	// lançamento, em uma transação
	Delete(ctx context.Context, userID, id string) error
}
