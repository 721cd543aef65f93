package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/freelance-forge-api/internal/application/analytics"
	"github.com/jhoicas/freelance-forge-api/internal/domain/entity"
	"github.com/jhoicas/freelance-forge-api/internal/infrastructure/memory"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDashboard_GetSummary(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	invoices := []entity.Invoice{
		{ID: "i1", UserID: "u1", InvoiceNumber: "IN-00001", ClientName: "ACME", Currency: "USD", Date: date(2026, 2, 3), TotalAmount: decimal.NewFromInt(100)},
		{ID: "i2", UserID: "u1", InvoiceNumber: "IN-00002", ClientName: "ACME", Currency: "USD", Date: date(2026, 1, 15), TotalAmount: decimal.NewFromInt(50)},
		{ID: "i3", UserID: "u1", InvoiceNumber: "IN-00003", ClientName: "Globex", Currency: "EUR", Date: date(2026, 2, 10), TotalAmount: decimal.NewFromInt(80)},
		{ID: "i4", UserID: "u1", InvoiceNumber: "IN-00004", ClientName: "Viejo", Currency: "USD", Date: date(2025, 12, 31), TotalAmount: decimal.NewFromInt(999)},
		{ID: "i5", UserID: "u1", InvoiceNumber: "IN-00005", ClientName: "Futuro", Currency: "USD", Date: date(2026, 2, 28), TotalAmount: decimal.NewFromInt(7)},
		{ID: "i6", UserID: "u2", InvoiceNumber: "IN-00001", ClientName: "Ajeno", Currency: "USD", Date: date(2026, 2, 3), TotalAmount: decimal.NewFromInt(500)},
	}
	for i := range invoices {
		require.NoError(t, store.Invoices().Create(ctx, &invoices[i]))
	}
	expenses := []entity.Expense{
		{ID: "e1", UserID: "u1", Vendor: "Hosting", Currency: "USD", Date: date(2026, 2, 1), Amount: decimal.RequireFromString("20.5")},
		{ID: "e2", UserID: "u1", Vendor: "Papelería", Currency: "COP", Date: date(2026, 1, 20), Amount: decimal.NewFromInt(30000)},
	}
	for i := range expenses {
		require.NoError(t, store.Expenses().Create(ctx, &expenses[i]))
	}

	uc := analytics.NewDashboardUseCase(store.Invoices(), store.Expenses())
	out, err := uc.GetSummary(ctx, "u1", time.Date(2026, 2, 14, 18, 30, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, "Febrero 2026", out.DateLabel)
	assert.Equal(t, 2, out.MonthlyInvoiceCount, "la factura del 28 queda fuera de la fecha de referencia")
	assert.Equal(t, 1, out.MonthlyExpenseCount)

	require.Len(t, out.Currencies, 3)
	cop, eur, usd := out.Currencies[0], out.Currencies[1], out.Currencies[2]
	assert.Equal(t, "COP", cop.Currency)
	assert.Equal(t, "-30000", cop.YearlyNet.String())
	assert.True(t, cop.MonthlyExpenses.IsZero())

	assert.Equal(t, "EUR", eur.Currency)
	assert.Equal(t, "80", eur.MonthlyNet.String())

	assert.Equal(t, "USD", usd.Currency)
	assert.Equal(t, "100", usd.MonthlyInvoiced.String())
	assert.Equal(t, "79.5", usd.MonthlyNet.String())
	assert.Equal(t, "150", usd.YearlyInvoiced.String())
	assert.Equal(t, "129.5", usd.YearlyNet.String())

	require.Len(t, out.TopClients, 2)
	assert.Equal(t, "ACME", out.TopClients[0].ClientName)
	assert.Equal(t, 2, out.TopClients[0].InvoiceCount)
	assert.Equal(t, "150", out.TopClients[0].TotalInvoiced.String())
	assert.Equal(t, "Globex", out.TopClients[1].ClientName)
}

func TestDashboard_SinDatos(t *testing.T) {
	store := memory.NewStore()
	uc := analytics.NewDashboardUseCase(store.Invoices(), store.Expenses())

	out, err := uc.GetSummary(context.Background(), "u1", date(2026, 10, 1))
	require.NoError(t, err)
	assert.Empty(t, out.Currencies)
	assert.Empty(t, out.TopClients)
	assert.Equal(t, "Octubre 2026", out.DateLabel)
}
