// Package memory implementa los puertos de persistencia en memoria (demo local con DB_DRIVER=memory y tests).
// Las transacciones toman el lock exclusivo del Store y restauran una copia si el callback falla.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/jhoicas/freelance-forge-api/internal/application/billing"
	"github.com/jhoicas/freelance-forge-api/internal/application/usecase"
	"github.com/jhoicas/freelance-forge-api/internal/domain/entity"
	"github.com/jhoicas/freelance-forge-api/internal/domain/repository"
)

var (
	_ billing.InvoiceTxRunner = (*Store)(nil)
	_ usecase.CompanyTxRunner = (*Store)(nil)
)

type tables struct {
	users     map[string]entity.User
	sessions  map[string]entity.Session
	companies map[string]entity.Company
	templates map[string]entity.InvoiceTemplate
	invoices  map[string]entity.Invoice
	counters  map[string]int64
	expenses  map[string]entity.Expense
	seq       int64 // orden de inserción, desempata listados
	order     map[string]int64
}

func newTables() tables {
	return tables{
		users:     map[string]entity.User{},
		sessions:  map[string]entity.Session{},
		companies: map[string]entity.Company{},
		templates: map[string]entity.InvoiceTemplate{},
		invoices:  map[string]entity.Invoice{},
		counters:  map[string]int64{},
		expenses:  map[string]entity.Expense{},
		order:     map[string]int64{},
	}
}

func (t *tables) clone() tables {
	c := tables{
		users:     maps.Clone(t.users),
		sessions:  maps.Clone(t.sessions),
		companies: maps.Clone(t.companies),
		templates: maps.Clone(t.templates),
		invoices:  make(map[string]entity.Invoice, len(t.invoices)),
		counters:  maps.Clone(t.counters),
		expenses:  maps.Clone(t.expenses),
		seq:       t.seq,
		order:     maps.Clone(t.order),
	}
	for k, v := range t.invoices {
		v.Items = slices.Clone(v.Items)
		c.invoices[k] = v
	}
	return c
}

func (t *tables) touch(id string) {
	if _, ok := t.order[id]; ok {
		return
	}
	t.seq++
	t.order[id] = t.seq
}

// Store base de datos en memoria. Es seguro para uso concurrente.
type Store struct {
	mu sync.RWMutex
	t  tables
}

// NewStore crea un Store vacío.
func NewStore() *Store {
	return &Store{t: newTables()}
}

// Ping siempre responde; el Store no tiene conexión que verificar.
func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) read(locked bool, fn func(t *tables)) {
	if !locked {
		s.mu.RLock()
		defer s.mu.RUnlock()
	}
	fn(&s.t)
}

func (s *Store) write(locked bool, fn func(t *tables) error) error {
	if !locked {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return fn(&s.t)
}

// inTx serializa la transacción con el lock exclusivo; si fn falla restaura la copia previa.
func (s *Store) inTx(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := s.t.clone()
	if err := fn(); err != nil {
		s.t = snapshot
		return err
	}
	return nil
}

// RunInvoicing implementa billing.InvoiceTxRunner.
func (s *Store) RunInvoicing(_ context.Context, fn func(
	invoiceRepo repository.InvoiceRepository,
	counterRepo repository.InvoiceCounterRepository,
) error) error {
	return s.inTx(func() error {
		return fn(&InvoiceRepo{s: s, locked: true}, &InvoiceCounterRepo{s: s, locked: true})
	})
}

// RunCompany implementa usecase.CompanyTxRunner.
func (s *Store) RunCompany(_ context.Context, fn func(
	companyRepo repository.CompanyRepository,
	userRepo repository.UserRepository,
) error) error {
	return s.inTx(func() error {
		return fn(&CompanyRepo{s: s, locked: true}, &UserRepo{s: s, locked: true})
	})
}

// Users, Sessions, Companies, Templates, Invoices, Expenses devuelven repos fuera de transacción.
func (s *Store) Users() *UserRepo                { return &UserRepo{s: s} }
func (s *Store) Sessions() *SessionRepo          { return &SessionRepo{s: s} }
func (s *Store) Companies() *CompanyRepo         { return &CompanyRepo{s: s} }
func (s *Store) Templates() *InvoiceTemplateRepo { return &InvoiceTemplateRepo{s: s} }
func (s *Store) Invoices() *InvoiceRepo          { return &InvoiceRepo{s: s} }
func (s *Store) Expenses() *ExpenseRepo          { return &ExpenseRepo{s: s} }
