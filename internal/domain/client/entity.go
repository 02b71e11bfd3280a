package client

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName      = errors.New("nome não pode ser vazio")
	ErrInvalidEmail   = errors.New("email inválido")
	ErrInvalidSegment = errors.New("segmento inválido")
)

// Segment define a classificação do cliente para ações de relacionamento
type Segment string

const (
	SegmentVIP     Segment = "vip"     // Alto valor
	SegmentRegular Segment = "regular" // Recorrente
	SegmentNew     Segment = "new"     // Novo
	SegmentAtRisk  Segment = "at_risk" // Em risco de perda
	SegmentLost    Segment = "lost"    // Perdido
)

// IsValid verifica se o segmento é conhecido
func (s Segment) IsValid() bool {
	switch s {
	case SegmentVIP, SegmentRegular, SegmentNew, SegmentAtRisk, SegmentLost:
		return true
	}
	return false
}

// Client representa um cliente da clínica
type Client struct {
	ID          string     `json:"id"`            // ID do Cliente
	UserID      string     `json:"user_id"`       // ID do Usuário (dono)
	Name        string     `json:"name"`          // Nome
	Email       string     `json:"email"`         // Email
	Phone       string     `json:"phone"`         // Telefone
	BirthDate   *time.Time `json:"birth_date"`    // Data de Nascimento
	Segment     Segment    `json:"segment"`       // Segmento
	Notes       string     `json:"notes"`         // Observações
	TotalSpent  float64    `json:"total_spent"`   // Total Gasto (LTV)
	TotalVisits int        `json:"total_visits"`  // Total de Visitas
	LastVisitAt *time.Time `json:"last_visit_at"` // Data da Última Visita
	IsActive    bool       `json:"is_active"`     // Ativo
	CreatedAt   time.Time  `json:"created_at"`    // Data de Criação
	UpdatedAt   time.Time  `json:"updated_at"`    // Data de Atualização
}

// NewClient cria um novo cliente
func NewClient(userID, name, email, phone string) (*Client, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if email != "" && !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}

	now := time.Now()
	return &Client{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      name,
		Email:     email,
		Phone:     phone,
		Segment:   SegmentNew,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Update atualiza os dados cadastrais do cliente
func (c *Client) Update(name, email, phone string, birthDate *time.Time, notes string) error {
	if name == "" {
		return ErrEmptyName
	}
	if email != "" && !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}

	c.Name = name
	c.Email = email
	c.Phone = phone
	c.BirthDate = birthDate
	c.Notes = notes
	c.UpdatedAt = time.Now()
	return nil
}

// Deactivate desativa o cliente
func (c *Client) Deactivate() {
	c.IsActive = false
	c.UpdatedAt = time.Now()
}

// Activate reativa o cliente
func (c *Client) Activate() {
	c.IsActive = true
	c.UpdatedAt = time.Now()
}

// ApplyRollup atualiza os acumulados de visitas do cliente
func (c *Client) ApplyRollup(totalSpent float64, totalVisits int, lastVisitAt *time.Time) {
	c.TotalSpent = totalSpent
	c.TotalVisits = totalVisits
	c.LastVisitAt = lastVisitAt
	c.UpdatedAt = time.Now()
}

// SetSegment atualiza o segmento do cliente
func (c *Client) SetSegment(segment Segment) error {
	if !segment.IsValid() {
		return ErrInvalidSegment
	}
	c.Segment = segment
	c.UpdatedAt = time.Now()
	return nil
}
