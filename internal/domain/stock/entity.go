package stock

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyProduct     = errors.New("produto não pode ser vazio")
	ErrInvalidType      = errors.New("tipo de movimento inválido")
	ErrInvalidQuantity  = errors.New("quantidade deve ser maior que zero")
	ErrNegativeUnitCost = errors.New("custo unitário não pode ser negativo")
)

// MovementType define o tipo de movimento de estoque
type MovementType string

const (
	TypeIn         MovementType = "in"         // Entrada
	TypeOut        MovementType = "out"        // Saída
	TypeAdjustment MovementType = "adjustment" // Ajuste (valor absoluto)
	TypeExpired    MovementType = "expired"    // Vencimento
	TypeLoss       MovementType = "loss"       // Perda
)

// IsValid verifica se o tipo de movimento é conhecido
func (t MovementType) IsValid() bool {
	switch t {
	case TypeIn, TypeOut, TypeAdjustment, TypeExpired, TypeLoss:
		return true
	}
	return false
}

// Movement representa um lançamento no razão de movimentos de estoque.
// Cada lançamento registra o estoque anterior e o resultante, permitindo
// reverter corretamente inclusive ajustes absolutos.
type Movement struct {
	ID             string       `json:"id"`              // ID do Movimento
	UserID         string       `json:"user_id"`         // ID do Usuário (dono)
	ProductID      string       `json:"product_id"`      // ID do Produto
	Type           MovementType `json:"movement_type"`   // Tipo do Movimento
	Quantity       float64      `json:"quantity"`        // Quantidade (alvo absoluto para ajuste)
	PreviousStock  float64      `json:"previous_stock"`  // Estoque antes do movimento
	ResultingStock float64      `json:"resulting_stock"` // Estoque após o movimento
	UnitCost       *float64     `json:"unit_cost"`       // Custo Unitário
	Notes          string       `json:"notes"`           // Observações
	ReferenceID    string       `json:"reference_id"`    // ID da entidade de origem
	ReferenceType  string       `json:"reference_type"`  // Tipo da entidade de origem
	CreatedAt      time.Time    `json:"created_at"`      // Data do Lançamento
}

// MovementInput agrupa os dados para criação de um movimento
type MovementInput struct {
	ProductID     string
	Type          MovementType
	Quantity      float64
	UnitCost      *float64
	Notes         string
	ReferenceID   string
	ReferenceType string
}

// Validate verifica os invariantes dos dados de movimento
func (in MovementInput) Validate() error {
	if in.ProductID == "" {
		return ErrEmptyProduct
	}
	if !in.Type.IsValid() {
		return ErrInvalidType
	}
	if in.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if in.UnitCost != nil && *in.UnitCost < 0 {
		return ErrNegativeUnitCost
	}
	return nil
}

// NewMovement cria um novo movimento a partir do estoque atual do produto.
// Os campos PreviousStock e ResultingStock são preenchidos aqui; a
// persistência do lançamento e da projeção de estoque ocorre em uma única
// transação no repositório.
func NewMovement(userID string, in MovementInput, currentStock float64) (*Movement, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	return &Movement{
		ID:             uuid.New().String(),
		UserID:         userID,
		ProductID:      in.ProductID,
		Type:           in.Type,
		Quantity:       in.Quantity,
		PreviousStock:  currentStock,
		ResultingStock: Apply(currentStock, in.Type, in.Quantity),
		UnitCost:       in.UnitCost,
		Notes:          in.Notes,
		ReferenceID:    in.ReferenceID,
		ReferenceType:  in.ReferenceType,
		CreatedAt:      time.Now(),
	}, nil
}

// Apply calcula o estoque resultante da aplicação de um movimento.
// Saídas nunca deixam o estoque negativo; o resultado é travado em zero.
// Ajuste define o estoque para o valor absoluto informado.
func Apply(current float64, t MovementType, quantity float64) float64 {
	switch t {
	case TypeIn:
		return current + quantity
	case TypeOut, TypeExpired, TypeLoss:
		result := current - quantity
		if result < 0 {
			return 0
		}
		return result
	case TypeAdjustment:
		if quantity < 0 {
			return 0
		}
		return quantity
	}
	return current
}

// Reverse calcula o estoque após desfazer o efeito deste movimento.
// Entradas são subtraídas, saídas devolvidas e ajustes restauram o
// estoque anterior registrado no próprio lançamento.
func (m *Movement) Reverse(current float64) float64 {
	switch m.Type {
	case TypeIn:
		result := current - m.Quantity
		if result < 0 {
			return 0
		}
		return result
	case TypeOut, TypeExpired, TypeLoss:
		// Devolve apenas o que foi efetivamente debitado, respeitando a
		// trava em zero aplicada na ida
		return current + (m.PreviousStock - m.ResultingStock)
	case TypeAdjustment:
		return m.PreviousStock
	}
	return current
}

// Delta retorna a variação de estoque causada pelo movimento, com sinal
func (m *Movement) Delta() float64 {
	return m.ResultingStock - m.PreviousStock
}
