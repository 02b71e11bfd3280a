package attendance

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyClient      = errors.New("cliente não pode ser vazio")
	ErrEmptyProcedure   = errors.New("procedimento não pode ser vazio")
	ErrNegativeValue    = errors.New("valor não pode ser negativo")
	ErrNegativeDiscount = errors.New("desconto não pode ser negativo")
	ErrNegativeCost     = errors.New("custo de produtos não pode ser negativo")
	ErrDiscountTooHigh  = errors.New("desconto não pode ser maior que o valor")
	ErrInvalidMethod    = errors.New("forma de pagamento inválida")
	ErrInvalidStatus    = errors.New("status de pagamento inválido")
	ErrInvalidRating    = errors.New("avaliação deve estar entre 1 e 5")
)

// PaymentMethod define a forma de pagamento do atendimento
type PaymentMethod string

const (
	MethodCash        PaymentMethod = "cash"        // Dinheiro
	MethodPix         PaymentMethod = "pix"         // Pix
	MethodDebit       PaymentMethod = "debit"       // Cartão de Débito
	MethodCredit      PaymentMethod = "credit"      // Cartão de Crédito
	MethodInstallment PaymentMethod = "installment" // Parcelado
)

// IsValid verifica se a forma de pagamento é conhecida
func (m PaymentMethod) IsValid() bool {
	switch m {
	case MethodCash, MethodPix, MethodDebit, MethodCredit, MethodInstallment:
		return true
	}
	return false
}

// PaymentStatus representa o estado do pagamento
type PaymentStatus string

const (
	StatusPending   PaymentStatus = "pending"   // Pendente
	StatusPaid      PaymentStatus = "paid"      // Pago
	StatusCancelled PaymentStatus = "cancelled" // Cancelado
	StatusRefunded  PaymentStatus = "refunded"  // Estornado
)

// IsValid verifica se o status de pagamento é conhecido
func (s PaymentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusCancelled, StatusRefunded:
		return true
	}
	return false
}

// Attendance representa um atendimento faturado (visita de cliente)
type Attendance struct {
	ID                 string        `json:"id"`                  // ID do Atendimento
	UserID             string        `json:"user_id"`             // ID do Usuário (dono)
	ClientID           string        `json:"client_id"`           // ID do Cliente
	ProcedureID        string        `json:"procedure_id"`        // ID do Procedimento
	Date               time.Time     `json:"date"`                // Data do Atendimento
	Value              float64       `json:"value"`               // Valor Bruto
	Discount           float64       `json:"discount"`            // Desconto
	ProductCost        float64       `json:"product_cost"`        // Custo de Produtos
	PaymentMethod      PaymentMethod `json:"payment_method"`      // Forma de Pagamento
	PaymentStatus      PaymentStatus `json:"payment_status"`      // Status do Pagamento
	Notes              string        `json:"notes"`               // Observações
	SatisfactionRating *int          `json:"satisfaction_rating"` // Avaliação (1-5)
	CreatedAt          time.Time     `json:"created_at"`          // Data de Criação
	UpdatedAt          time.Time     `json:"updated_at"`          // Data de Atualização
}

// WithDetails agrega o atendimento com dados do cliente e do procedimento
// para exibição
type WithDetails struct {
	Attendance
	ClientName     string  `json:"client_name"`
	ClientEmail    string  `json:"client_email"`
	ProcedureName  string  `json:"procedure_name"`
	ProcedurePrice float64 `json:"procedure_price"`
}

// NewAttendance cria um novo atendimento
func NewAttendance(
	userID string,
	clientID string,
	procedureID string,
	date time.Time,
	value float64,
	discount float64,
	productCost float64,
	method PaymentMethod,
	status PaymentStatus,
) (*Attendance, error) {
	a := &Attendance{
		ID:            uuid.New().String(),
		UserID:        userID,
		ClientID:      clientID,
		ProcedureID:   procedureID,
		Date:          date,
		Value:         value,
		Discount:      discount,
		ProductCost:   productCost,
		PaymentMethod: method,
		PaymentStatus: status,
	}

	if a.PaymentStatus == "" {
		a.PaymentStatus = StatusPending
	}

	if err := a.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now
	return a, nil
}

// Validate verifica os invariantes do atendimento
func (a *Attendance) Validate() error {
	if a.ClientID == "" {
		return ErrEmptyClient
	}
	if a.ProcedureID == "" {
		return ErrEmptyProcedure
	}
	if a.Value < 0 {
		return ErrNegativeValue
	}
	if a.Discount < 0 {
		return ErrNegativeDiscount
	}
	if a.Discount > a.Value {
		return ErrDiscountTooHigh
	}
	if a.ProductCost < 0 {
		return ErrNegativeCost
	}
	if !a.PaymentMethod.IsValid() {
		return ErrInvalidMethod
	}
	if !a.PaymentStatus.IsValid() {
		return ErrInvalidStatus
	}
	if a.SatisfactionRating != nil && (*a.SatisfactionRating < 1 || *a.SatisfactionRating > 5) {
		return ErrInvalidRating
	}
	return nil
}

// NetValue retorna o valor líquido do atendimento (valor - desconto)
func (a *Attendance) NetValue() float64 {
	return a.Value - a.Discount
}

// Profit retorna o lucro do atendimento (valor líquido - custo de produtos)
func (a *Attendance) Profit() float64 {
	return a.NetValue() - a.ProductCost
}

// SetPaymentStatus atualiza o status de pagamento
func (a *Attendance) SetPaymentStatus(status PaymentStatus) error {
	if !status.IsValid() {
		return ErrInvalidStatus
	}
	a.PaymentStatus = status
	a.UpdatedAt = time.Now()
	return nil
}
