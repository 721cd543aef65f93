package memory

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sort"
	"time"

	"github.com/jhoicas/freelance-forge-api/internal/domain"
	"github.com/jhoicas/freelance-forge-api/internal/domain/entity"
	"github.com/jhoicas/freelance-forge-api/internal/domain/repository"
)

var (
	_ repository.UserRepository            = (*UserRepo)(nil)
	_ repository.SessionRepository         = (*SessionRepo)(nil)
	_ repository.CompanyRepository         = (*CompanyRepo)(nil)
	_ repository.InvoiceTemplateRepository = (*InvoiceTemplateRepo)(nil)
	_ repository.InvoiceRepository         = (*InvoiceRepo)(nil)
	_ repository.InvoiceCounterRepository  = (*InvoiceCounterRepo)(nil)
	_ repository.ExpenseRepository         = (*ExpenseRepo)(nil)
)

// ── Users ─────────────────────────────────────────────────────────────────────

// UserRepo usuarios en memoria.
type UserRepo struct {
	s      *Store
	locked bool
}

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	return r.s.write(r.locked, func(t *tables) error {
		for _, existing := range t.users {
			if existing.Email == u.Email {
				return domain.ErrEmailAlreadyExists
			}
		}
		t.users[u.ID] = *u
		t.touch(u.ID)
		return nil
	})
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	r.s.read(r.locked, func(t *tables) {
		if u, ok := t.users[id]; ok {
			out = &u
		}
	})
	return out, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	var out *entity.User
	r.s.read(r.locked, func(t *tables) {
		for _, u := range t.users {
			if u.Email == email {
				out = &u
				return
			}
		}
	})
	return out, nil
}

func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	return r.s.write(r.locked, func(t *tables) error {
		cur, ok := t.users[u.ID]
		if !ok {
			return domain.ErrUserNotFound
		}
		cur.Address = u.Address
		cur.CompanyID = u.CompanyID
		cur.UpdatedAt = u.UpdatedAt
		t.users[u.ID] = cur
		return nil
	})
}

// ── Sessions ──────────────────────────────────────────────────────────────────

// SessionRepo sesiones en memoria.
type SessionRepo struct {
	s      *Store
	locked bool
}

func (r *SessionRepo) Create(_ context.Context, sess *entity.Session) error {
	return r.s.write(r.locked, func(t *tables) error {
		t.sessions[sess.ID] = *sess
		return nil
	})
}

func (r *SessionRepo) GetByID(_ context.Context, id string) (*entity.Session, error) {
	var out *entity.Session
	r.s.read(r.locked, func(t *tables) {
		if sess, ok := t.sessions[id]; ok {
			out = &sess
		}
	})
	return out, nil
}

func (r *SessionRepo) Delete(_ context.Context, id string) error {
	return r.s.write(r.locked, func(t *tables) error {
		delete(t.sessions, id)
		return nil
	})
}

func (r *SessionRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	var n int64
	err := r.s.write(r.locked, func(t *tables) error {
		for id, sess := range t.sessions {
			if sess.Expired(now) {
				delete(t.sessions, id)
				n++
			}
		}
		return nil
	})
	return n, err
}

// ── Companies ─────────────────────────────────────────────────────────────────

// CompanyRepo empresas en memoria; replica los UNIQUE de registration_number y user_id.
type CompanyRepo struct {
	s      *Store
	locked bool
}

func (r *CompanyRepo) Create(_ context.Context, c *entity.Company) error {
	return r.s.write(r.locked, func(t *tables) error {
		if err := checkCompanyUnique(t, c); err != nil {
			return err
		}
		t.companies[c.ID] = *c
		t.touch(c.ID)
		return nil
	})
}

func (r *CompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	var out *entity.Company
	r.s.read(r.locked, func(t *tables) {
		if c, ok := t.companies[id]; ok {
			out = &c
		}
	})
	return out, nil
}

func (r *CompanyRepo) GetByUserID(_ context.Context, userID string) (*entity.Company, error) {
	var out *entity.Company
	r.s.read(r.locked, func(t *tables) {
		for _, c := range t.companies {
			if c.UserID == userID {
				out = &c
				return
			}
		}
	})
	return out, nil
}

func (r *CompanyRepo) Update(_ context.Context, c *entity.Company) error {
	return r.s.write(r.locked, func(t *tables) error {
		if _, ok := t.companies[c.ID]; !ok {
			return domain.ErrNotFound
		}
		if err := checkCompanyUnique(t, c); err != nil {
			return err
		}
		t.companies[c.ID] = *c
		return nil
	})
}

func (r *CompanyRepo) List(_ context.Context, limit, offset int) ([]*entity.Company, error) {
	var all []*entity.Company
	r.s.read(r.locked, func(t *tables) {
		for _, c := range t.companies {
			all = append(all, &c)
		}
	})
	sort.Slice(all, func(i, j int) bool {
		if all[i].Name != all[j].Name {
			return all[i].Name < all[j].Name
		}
		return all[i].ID < all[j].ID
	})
	return page(all, limit, offset), nil
}

func (r *CompanyRepo) Count(_ context.Context) (int, error) {
	var n int
	r.s.read(r.locked, func(t *tables) { n = len(t.companies) })
	return n, nil
}

func checkCompanyUnique(t *tables, c *entity.Company) error {
	for id, other := range t.companies {
		if id == c.ID {
			continue
		}
		if other.UserID == c.UserID {
			return fmt.Errorf("%w: el usuario ya tiene una empresa", domain.ErrConflict)
		}
		if other.RegistrationNumber == c.RegistrationNumber {
			return fmt.Errorf("%w: ya existe una empresa con ese número de registro", domain.ErrDuplicate)
		}
	}
	return nil
}

// ── Invoice templates ─────────────────────────────────────────────────────────

// InvoiceTemplateRepo plantillas en memoria.
type InvoiceTemplateRepo struct {
	s      *Store
	locked bool
}

func (r *InvoiceTemplateRepo) Create(_ context.Context, tpl *entity.InvoiceTemplate) error {
	return r.s.write(r.locked, func(t *tables) error {
		t.templates[tpl.ID] = *tpl
		t.touch(tpl.ID)
		return nil
	})
}

func (r *InvoiceTemplateRepo) GetByID(_ context.Context, id string) (*entity.InvoiceTemplate, error) {
	var out *entity.InvoiceTemplate
	r.s.read(r.locked, func(t *tables) {
		if tpl, ok := t.templates[id]; ok {
			out = &tpl
		}
	})
	return out, nil
}

func (r *InvoiceTemplateRepo) ListByUser(_ context.Context, userID string) ([]*entity.InvoiceTemplate, error) {
	var list []*entity.InvoiceTemplate
	var order map[string]int64
	r.s.read(r.locked, func(t *tables) {
		order = maps.Clone(t.order)
		for _, tpl := range t.templates {
			if tpl.UserID == userID {
				list = append(list, &tpl)
			}
		}
	})
	sort.Slice(list, func(i, j int) bool { return order[list[i].ID] > order[list[j].ID] })
	return list, nil
}

func (r *InvoiceTemplateRepo) Update(_ context.Context, tpl *entity.InvoiceTemplate) error {
	return r.s.write(r.locked, func(t *tables) error {
		if _, ok := t.templates[tpl.ID]; !ok {
			return domain.ErrNotFound
		}
		t.templates[tpl.ID] = *tpl
		return nil
	})
}

// Delete borra la plantilla y desvincula las facturas que la usaban (ON DELETE SET NULL).
func (r *InvoiceTemplateRepo) Delete(_ context.Context, id string) error {
	return r.s.write(r.locked, func(t *tables) error {
		delete(t.templates, id)
		for invID, inv := range t.invoices {
			if inv.TemplateID == id {
				inv.TemplateID = ""
				t.invoices[invID] = inv
			}
		}
		return nil
	})
}

// ── Invoices ──────────────────────────────────────────────────────────────────

// InvoiceRepo facturas en memoria; las líneas viven dentro de la factura.
type InvoiceRepo struct {
	s      *Store
	locked bool
}

func (r *InvoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	return r.s.write(r.locked, func(t *tables) error {
		for _, other := range t.invoices {
			if other.UserID == inv.UserID && other.InvoiceNumber == inv.InvoiceNumber {
				return fmt.Errorf("%w: número de factura %s repetido", domain.ErrDuplicate, inv.InvoiceNumber)
			}
		}
		stored := *inv
		stored.Items = nil
		t.invoices[inv.ID] = stored
		t.touch(inv.ID)
		return nil
	})
}

func (r *InvoiceRepo) Update(_ context.Context, inv *entity.Invoice) error {
	return r.s.write(r.locked, func(t *tables) error {
		cur, ok := t.invoices[inv.ID]
		if !ok {
			return domain.ErrNotFound
		}
		cur.CompanyID = inv.CompanyID
		cur.TemplateID = inv.TemplateID
		cur.ClientName = inv.ClientName
		cur.ClientAddress = inv.ClientAddress
		cur.Description = inv.Description
		cur.Currency = inv.Currency
		cur.Date = inv.Date
		cur.TotalAmount = inv.TotalAmount
		cur.UpdatedAt = inv.UpdatedAt
		t.invoices[inv.ID] = cur
		return nil
	})
}

func (r *InvoiceRepo) ReplaceItems(_ context.Context, invoiceID string, items []entity.LineItem) error {
	return r.s.write(r.locked, func(t *tables) error {
		cur, ok := t.invoices[invoiceID]
		if !ok {
			return domain.ErrNotFound
		}
		cur.Items = slices.Clone(items)
		for i := range cur.Items {
			cur.Items[i].InvoiceID = invoiceID
		}
		sort.SliceStable(cur.Items, func(i, j int) bool { return cur.Items[i].Position < cur.Items[j].Position })
		t.invoices[invoiceID] = cur
		return nil
	})
}

func (r *InvoiceRepo) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	var out *entity.Invoice
	r.s.read(r.locked, func(t *tables) {
		if inv, ok := t.invoices[id]; ok {
			inv.Items = slices.Clone(inv.Items)
			out = &inv
		}
	})
	return out, nil
}

func (r *InvoiceRepo) ListByUser(_ context.Context, userID string) ([]*entity.Invoice, error) {
	var list []*entity.Invoice
	var order map[string]int64
	r.s.read(r.locked, func(t *tables) {
		order = maps.Clone(t.order)
		for _, inv := range t.invoices {
			if inv.UserID == userID {
				inv.Items = nil
				list = append(list, &inv)
			}
		}
	})
	sortNewestFirst(list, order)
	return list, nil
}

func (r *InvoiceRepo) Delete(_ context.Context, id string) error {
	return r.s.write(r.locked, func(t *tables) error {
		delete(t.invoices, id)
		return nil
	})
}

func (r *InvoiceRepo) LastLineItemByUser(_ context.Context, userID string) (*entity.LineItem, error) {
	var list []*entity.Invoice
	var order map[string]int64
	r.s.read(r.locked, func(t *tables) {
		order = maps.Clone(t.order)
		for _, inv := range t.invoices {
			if inv.UserID == userID && len(inv.Items) > 0 {
				inv.Items = slices.Clone(inv.Items)
				list = append(list, &inv)
			}
		}
	})
	if len(list) == 0 {
		return nil, nil
	}
	sortNewestFirst(list, order)
	items := list[0].Items
	last := items[len(items)-1]
	return &last, nil
}

// sortNewestFirst ordena por fecha desc y, a igual fecha, por orden de inserción desc.
func sortNewestFirst(list []*entity.Invoice, order map[string]int64) {
	sort.Slice(list, func(i, j int) bool {
		if !list[i].Date.Equal(list[j].Date) {
			return list[i].Date.After(list[j].Date)
		}
		return order[list[i].ID] > order[list[j].ID]
	})
}

// InvoiceCounterRepo consecutivos en memoria.
type InvoiceCounterRepo struct {
	s      *Store
	locked bool
}

func (r *InvoiceCounterRepo) Next(_ context.Context, userID string) (int64, error) {
	var seq int64
	err := r.s.write(r.locked, func(t *tables) error {
		t.counters[userID]++
		seq = t.counters[userID]
		return nil
	})
	return seq, err
}

// ── Expenses ──────────────────────────────────────────────────────────────────

// ExpenseRepo gastos en memoria.
type ExpenseRepo struct {
	s      *Store
	locked bool
}

func (r *ExpenseRepo) Create(_ context.Context, e *entity.Expense) error {
	return r.s.write(r.locked, func(t *tables) error {
		t.expenses[e.ID] = *e
		t.touch(e.ID)
		return nil
	})
}

func (r *ExpenseRepo) GetByID(_ context.Context, id string) (*entity.Expense, error) {
	var out *entity.Expense
	r.s.read(r.locked, func(t *tables) {
		if e, ok := t.expenses[id]; ok {
			out = &e
		}
	})
	return out, nil
}

func (r *ExpenseRepo) ListByUser(_ context.Context, userID string) ([]*entity.Expense, error) {
	var list []*entity.Expense
	var order map[string]int64
	r.s.read(r.locked, func(t *tables) {
		order = maps.Clone(t.order)
		for _, e := range t.expenses {
			if e.UserID == userID {
				list = append(list, &e)
			}
		}
	})
	sort.Slice(list, func(i, j int) bool {
		if !list[i].Date.Equal(list[j].Date) {
			return list[i].Date.After(list[j].Date)
		}
		return order[list[i].ID] > order[list[j].ID]
	})
	return list, nil
}

func (r *ExpenseRepo) Update(_ context.Context, e *entity.Expense) error {
	return r.s.write(r.locked, func(t *tables) error {
		if _, ok := t.expenses[e.ID]; !ok {
			return domain.ErrNotFound
		}
		t.expenses[e.ID] = *e
		return nil
	})
}

func (r *ExpenseRepo) Delete(_ context.Context, id string) error {
	return r.s.write(r.locked, func(t *tables) error {
		delete(t.expenses, id)
		return nil
	})
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	end := offset + limit
	if end > len(list) {
		end = len(list)
	}
	return list[offset:end]
}
