package service

import (
	"context"
	"errors"
	"time"

	"github.com/marianaduarte/erp-estetica/internal/domain/attendance"
	"github.com/marianaduarte/erp-estetica/internal/domain/client"
	"github.com/marianaduarte/erp-estetica/internal/domain/distribution"
	"github.com/marianaduarte/erp-estetica/internal/domain/product"
	"github.com/marianaduarte/erp-estetica/internal/domain/stock"
)

var errNotFound = errors.New("registro não encontrado")

// noopLogger descarta as mensagens de log nos testes
type noopLogger struct{}

func (noopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (noopLogger) Error(msg string, keysAndValues ...interface{}) {}
func (noopLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (noopLogger) Warn(msg string, keysAndValues ...interface{})  {}

// fakeAttendanceRepo implementa attendance.Repository em memória
type fakeAttendanceRepo struct {
	rows []*attendance.Attendance
}

func (r *fakeAttendanceRepo) Create(ctx context.Context, a *attendance.Attendance) error {
	r.rows = append(r.rows, a)
	return nil
}

func (r *fakeAttendanceRepo) FindByID(ctx context.Context, userID, id string) (*attendance.WithDetails, error) {
	for _, a := range r.rows {
		if a.UserID == userID && a.ID == id {
			return &attendance.WithDetails{Attendance: *a}, nil
		}
	}
	return nil, errNotFound
}

func (r *fakeAttendanceRepo) List(ctx context.Context, userID string, filter attendance.Filter, sort attendance.Sort, limit, offset int) ([]*attendance.Attendance, int, error) {
	rows, err := r.FindAll(ctx, userID, filter)
	return rows, len(rows), err
}

func (r *fakeAttendanceRepo) ListWithDetails(ctx context.Context, userID string, filter attendance.Filter, sort attendance.Sort, limit, offset int) ([]*attendance.WithDetails, int, error) {
	rows, err := r.FindAll(ctx, userID, filter)
	if err != nil {
		return nil, 0, err
	}
	details := make([]*attendance.WithDetails, 0, len(rows))
	for _, a := range rows {
		details = append(details, &attendance.WithDetails{Attendance: *a})
	}
	return details, len(details), nil
}

func (r *fakeAttendanceRepo) FindAll(ctx context.Context, userID string, filter attendance.Filter) ([]*attendance.Attendance, error) {
	var out []*attendance.Attendance
	for _, a := range r.rows {
		if a.UserID != userID {
			continue
		}
		if filter.PaymentStatus != "" && a.PaymentStatus != filter.PaymentStatus {
			continue
		}
		if filter.PaymentMethod != "" && a.PaymentMethod != filter.PaymentMethod {
			continue
		}
		if filter.ClientID != "" && a.ClientID != filter.ClientID {
			continue
		}
		if filter.ProcedureID != "" && a.ProcedureID != filter.ProcedureID {
			continue
		}
		if filter.DateFrom != nil && a.Date.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && a.Date.After(*filter.DateTo) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *fakeAttendanceRepo) Update(ctx context.Context, a *attendance.Attendance) error {
	for i, existing := range r.rows {
		if existing.UserID == a.UserID && existing.ID == a.ID {
			r.rows[i] = a
			return nil
		}
	}
	return errNotFound
}

func (r *fakeAttendanceRepo) UpdatePaymentStatus(ctx context.Context, userID, id string, status attendance.PaymentStatus) error {
	for _, a := range r.rows {
		if a.UserID == userID && a.ID == id {
			a.PaymentStatus = status
			return nil
		}
	}
	return errNotFound
}

func (r *fakeAttendanceRepo) Delete(ctx context.Context, userID, id string) error {
	for i, a := range r.rows {
		if a.UserID == userID && a.ID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return errNotFound
}

// fakeConfigRepo implementa distribution.ConfigRepository em memória
type fakeConfigRepo struct {
	configs []*distribution.Config
}

func (r *fakeConfigRepo) Create(ctx context.Context, c *distribution.Config) error {
	r.configs = append(r.configs, c)
	return nil
}

func (r *fakeConfigRepo) FindByID(ctx context.Context, userID, id string) (*distribution.Config, error) {
	for _, c := range r.configs {
		if c.UserID == userID && c.ID == id {
			return c, nil
		}
	}
	return nil, errNotFound
}

func (r *fakeConfigRepo) FindActive(ctx context.Context, userID string) ([]*distribution.Config, error) {
	var out []*distribution.Config
	for _, c := range r.configs {
		if c.UserID == userID && c.IsActive {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeConfigRepo) List(ctx context.Context, userID string) ([]*distribution.Config, error) {
	var out []*distribution.Config
	for _, c := range r.configs {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeConfigRepo) Update(ctx context.Context, c *distribution.Config) error {
	return nil
}

// fakeDistRepo implementa distribution.Repository em memória
type fakeDistRepo struct {
	rows []*distribution.Distribution
}

func (r *fakeDistRepo) Create(ctx context.Context, d *distribution.Distribution) error {
	for _, existing := range r.rows {
		if existing.UserID == d.UserID &&
			existing.PeriodMonth == d.PeriodMonth && existing.PeriodYear == d.PeriodYear {
			return errors.New("distribuição já executada para o período")
		}
	}
	r.rows = append(r.rows, d)
	return nil
}

func (r *fakeDistRepo) FindByPeriod(ctx context.Context, userID string, month, year int) (*distribution.Distribution, error) {
	for _, d := range r.rows {
		if d.UserID == userID && d.PeriodMonth == month && d.PeriodYear == year {
			return d, nil
		}
	}
	return nil, errNotFound
}

func (r *fakeDistRepo) FindByDateRange(ctx context.Context, userID string, dateFrom, dateTo *time.Time) ([]*distribution.Distribution, error) {
	var out []*distribution.Distribution
	for _, d := range r.rows {
		if d.UserID != userID {
			continue
		}
		if dateFrom != nil && d.CreatedAt.Before(*dateFrom) {
			continue
		}
		if dateTo != nil && d.CreatedAt.After(*dateTo) {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (r *fakeDistRepo) List(ctx context.Context, userID string, limit, offset int) ([]*distribution.Distribution, int, error) {
	var out []*distribution.Distribution
	for _, d := range r.rows {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	return out, len(out), nil
}

// fakeProductRepo implementa product.Repository em memória
type fakeProductRepo struct {
	products []*product.Product
}

func (r *fakeProductRepo) Create(ctx context.Context, p *product.Product) error {
	r.products = append(r.products, p)
	return nil
}

func (r *fakeProductRepo) FindByID(ctx context.Context, userID, id string) (*product.Product, error) {
	for _, p := range r.products {
		if p.UserID == userID && p.ID == id {
			return p, nil
		}
	}
	return nil, errNotFound
}

func (r *fakeProductRepo) List(ctx context.Context, userID string, filter product.Filter, sort product.Sort, limit, offset int) ([]*product.Product, int, error) {
	rows, err := r.FindAllActive(ctx, userID)
	return rows, len(rows), err
}

func (r *fakeProductRepo) FindAllActive(ctx context.Context, userID string) ([]*product.Product, error) {
	var out []*product.Product
	for _, p := range r.products {
		if p.UserID == userID && p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Update(ctx context.Context, p *product.Product) error {
	for i, existing := range r.products {
		if existing.UserID == p.UserID && existing.ID == p.ID {
			r.products[i] = p
			return nil
		}
	}
	return errNotFound
}

func (r *fakeProductRepo) Delete(ctx context.Context, userID, id string) error {
	for i, p := range r.products {
		if p.UserID == userID && p.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return errNotFound
}

func (r *fakeProductRepo) ListCategories(ctx context.Context, userID string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, p := range r.products {
		if p.UserID == userID && p.Category != "" && !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out, nil
}

// fakeMovementRepo implementa stock.Repository em memória, aplicando o
// efeito dos lançamentos à projeção de estoque do produto como faz o
// repositório transacional real
type fakeMovementRepo struct {
	products  *fakeProductRepo
	movements []*stock.Movement
}

func (r *fakeMovementRepo) Create(ctx context.Context, m *stock.Movement) error {
	p, err := r.products.FindByID(ctx, m.UserID, m.ProductID)
	if err != nil {
		return err
	}
	p.CurrentStock = m.ResultingStock
	r.movements = append(r.movements, m)
	return nil
}

func (r *fakeMovementRepo) FindByID(ctx context.Context, userID, id string) (*stock.Movement, error) {
	for _, m := range r.movements {
		if m.UserID == userID && m.ID == id {
			return m, nil
		}
	}
	return nil, errNotFound
}

func (r *fakeMovementRepo) List(ctx context.Context, userID string, filter stock.Filter, sort stock.Sort, limit, offset int) ([]*stock.WithProduct, int, error) {
	rows, err := r.FindAll(ctx, userID, filter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]*stock.WithProduct, 0, len(rows))
	for _, m := range rows {
		out = append(out, &stock.WithProduct{Movement: *m})
	}
	return out, len(out), nil
}

func (r *fakeMovementRepo) FindAll(ctx context.Context, userID string, filter stock.Filter) ([]*stock.Movement, error) {
	var out []*stock.Movement
	for _, m := range r.movements {
		if m.UserID != userID {
			continue
		}
		if filter.ProductID != "" && m.ProductID != filter.ProductID {
			continue
		}
		if filter.Type != "" && m.Type != filter.Type {
			continue
		}
		if filter.DateFrom != nil && m.CreatedAt.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && m.CreatedAt.After(*filter.DateTo) {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *fakeMovementRepo) Update(ctx context.Context, original *stock.Movement, in stock.MovementInput) (*stock.Movement, error) {
	p, err := r.products.FindByID(ctx, original.UserID, original.ProductID)
	if err != nil {
		return nil, err
	}

	reverted := original.Reverse(p.CurrentStock)
	updated, err := stock.NewMovement(original.UserID, in, reverted)
	if err != nil {
		return nil, err
	}
	updated.ID = original.ID
	updated.CreatedAt = original.CreatedAt

	p.CurrentStock = updated.ResultingStock
	for i, m := range r.movements {
		if m.ID == original.ID {
			r.movements[i] = updated
			return updated, nil
		}
	}
	return nil, errNotFound
}

func (r *fakeMovementRepo) Delete(ctx context.Context, userID, id string) error {
	for i, m := range r.movements {
		if m.UserID == userID && m.ID == id {
			p, err := r.products.FindByID(ctx, userID, m.ProductID)
			if err != nil {
				return err
			}
			p.CurrentStock = m.Reverse(p.CurrentStock)
			r.movements = append(r.movements[:i], r.movements[i+1:]...)
			return nil
		}
	}
	return errNotFound
}

// fakeClientRepo implementa client.Repository em memória
type fakeClientRepo struct {
	clients []*client.Client
}

func (r *fakeClientRepo) Create(ctx context.Context, c *client.Client) error {
	r.clients = append(r.clients, c)
	return nil
}

func (r *fakeClientRepo) FindByID(ctx context.Context, userID, id string) (*client.Client, error) {
	for _, c := range r.clients {
		if c.UserID == userID && c.ID == id {
			return c, nil
		}
	}
	return nil, errNotFound
}

func (r *fakeClientRepo) List(ctx context.Context, userID string, filter client.Filter, sort client.Sort, limit, offset int) ([]*client.Client, int, error) {
	rows, err := r.FindAllActive(ctx, userID)
	return rows, len(rows), err
}

func (r *fakeClientRepo) FindAllActive(ctx context.Context, userID string) ([]*client.Client, error) {
	var out []*client.Client
	for _, c := range r.clients {
		if c.UserID == userID && c.IsActive {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeClientRepo) Update(ctx context.Context, c *client.Client) error {
	for i, existing := range r.clients {
		if existing.UserID == c.UserID && existing.ID == c.ID {
			r.clients[i] = c
			return nil
		}
	}
	return errNotFound
}

func (r *fakeClientRepo) Delete(ctx context.Context, userID, id string) error {
	for i, c := range r.clients {
		if c.UserID == userID && c.ID == id {
			r.clients = append(r.clients[:i], r.clients[i+1:]...)
			return nil
		}
	}
	return errNotFound
}
