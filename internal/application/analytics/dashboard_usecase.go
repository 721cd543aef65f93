// Package analytics contiene el resumen financiero del dashboard del freelancer.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/freelance-forge-api/internal/application/dto"
	"github.com/jhoicas/freelance-forge-api/internal/domain/entity"
	"github.com/jhoicas/freelance-forge-api/internal/domain/repository"
)

const dashboardTopClients = 5 // número de clientes en el widget del dashboard

type clientKey struct{ name, currency string }

// DashboardUseCase genera el resumen del mes y del año en curso a partir de
// las facturas y los gastos del usuario (consultas read-only).
type DashboardUseCase struct {
	invoiceRepo repository.InvoiceRepository
	expenseRepo repository.ExpenseRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(invoiceRepo repository.InvoiceRepository, expenseRepo repository.ExpenseRepository) *DashboardUseCase {
	return &DashboardUseCase{invoiceRepo: invoiceRepo, expenseRepo: expenseRepo}
}

// GetSummary construye el DashboardSummaryDTO del usuario con fecha de referencia now.
//
// Dos lecturas en paralelo:
//  1. facturas del usuario → facturado por moneda + top clientes
//  2. gastos del usuario   → gastado por moneda
func (uc *DashboardUseCase) GetSummary(ctx context.Context, userID string, now time.Time) (*dto.DashboardSummaryDTO, error) {
	// ── Rangos de fecha ────────────────────────────────────────────────────────
	// Las fechas de factura y gasto son días (sin hora); se compara contra el inicio del período.
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	type invoicesResult struct {
		list []*entity.Invoice
		err  error
	}
	type expensesResult struct {
		list []*entity.Expense
		err  error
	}
	invoicesCh := make(chan invoicesResult, 1)
	expensesCh := make(chan expensesResult, 1)

	go func() {
		list, err := uc.invoiceRepo.ListByUser(ctx, userID)
		invoicesCh <- invoicesResult{list, err}
	}()
	go func() {
		list, err := uc.expenseRepo.ListByUser(ctx, userID)
		expensesCh <- expensesResult{list, err}
	}()

	invoices := <-invoicesCh
	expenses := <-expensesCh
	if invoices.err != nil {
		return nil, fmt.Errorf("dashboard: facturas: %w", invoices.err)
	}
	if expenses.err != nil {
		return nil, fmt.Errorf("dashboard: gastos: %w", expenses.err)
	}

	inPeriod := func(d, start time.Time) bool { return !d.Before(start) && !d.After(end) }

	sums := map[string]*dto.CurrencySummaryDTO{}
	bucket := func(currency string) *dto.CurrencySummaryDTO {
		s, ok := sums[currency]
		if !ok {
			s = &dto.CurrencySummaryDTO{Currency: currency}
			sums[currency] = s
		}
		return s
	}

	clients := map[clientKey]*dto.TopClientDTO{}

	out := &dto.DashboardSummaryDTO{DateLabel: monthLabel(now)}

	for _, inv := range invoices.list {
		if !inPeriod(inv.Date, yearStart) {
			continue
		}
		s := bucket(inv.Currency)
		s.YearlyInvoiced = s.YearlyInvoiced.Add(inv.TotalAmount)
		if inPeriod(inv.Date, monthStart) {
			s.MonthlyInvoiced = s.MonthlyInvoiced.Add(inv.TotalAmount)
			out.MonthlyInvoiceCount++
		}
		k := clientKey{inv.ClientName, inv.Currency}
		c, ok := clients[k]
		if !ok {
			c = &dto.TopClientDTO{ClientName: inv.ClientName, Currency: inv.Currency}
			clients[k] = c
		}
		c.InvoiceCount++
		c.TotalInvoiced = c.TotalInvoiced.Add(inv.TotalAmount)
	}

	for _, exp := range expenses.list {
		if !inPeriod(exp.Date, yearStart) {
			continue
		}
		s := bucket(exp.Currency)
		s.YearlyExpenses = s.YearlyExpenses.Add(exp.Amount)
		if inPeriod(exp.Date, monthStart) {
			s.MonthlyExpenses = s.MonthlyExpenses.Add(exp.Amount)
			out.MonthlyExpenseCount++
		}
	}

	// ── Construir DTO ──────────────────────────────────────────────────────────
	out.Currencies = make([]dto.CurrencySummaryDTO, 0, len(sums))
	for _, s := range sums {
		s.MonthlyNet = s.MonthlyInvoiced.Sub(s.MonthlyExpenses)
		s.YearlyNet = s.YearlyInvoiced.Sub(s.YearlyExpenses)
		out.Currencies = append(out.Currencies, *s)
	}
	sort.Slice(out.Currencies, func(i, j int) bool { return out.Currencies[i].Currency < out.Currencies[j].Currency })

	out.TopClients = topClients(clients, dashboardTopClients)
	return out, nil
}

func topClients(m map[clientKey]*dto.TopClientDTO, n int) []dto.TopClientDTO {
	list := make([]dto.TopClientDTO, 0, len(m))
	for _, c := range m {
		list = append(list, *c)
	}
	sort.Slice(list, func(i, j int) bool {
		if cmp := list[i].TotalInvoiced.Cmp(list[j].TotalInvoiced); cmp != 0 {
			return cmp > 0
		}
		if list[i].ClientName != list[j].ClientName {
			return list[i].ClientName < list[j].ClientName
		}
		return list[i].Currency < list[j].Currency
	})
	if len(list) > n {
		list = list[:n]
	}
	return list
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
