package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// Los importes se agrupan por moneda; no se convierten entre monedas.
type DashboardSummaryDTO struct {
	Currencies []CurrencySummaryDTO `json:"currencies"`

	// Top 5 clientes del año por importe facturado
	TopClients []TopClientDTO `json:"top_clients"`

	MonthlyInvoiceCount int `json:"monthly_invoice_count"`
	MonthlyExpenseCount int `json:"monthly_expense_count"`

	DateLabel string `json:"date_label"` // ej: "Febrero 2026"
}

// CurrencySummaryDTO facturado, gastado y neto de una moneda en el mes y en el año en curso.
type CurrencySummaryDTO struct {
	Currency        string          `json:"currency"`
	MonthlyInvoiced decimal.Decimal `json:"monthly_invoiced"`
	MonthlyExpenses decimal.Decimal `json:"monthly_expenses"`
	MonthlyNet      decimal.Decimal `json:"monthly_net"`
	YearlyInvoiced  decimal.Decimal `json:"yearly_invoiced"`
	YearlyExpenses  decimal.Decimal `json:"yearly_expenses"`
	YearlyNet       decimal.Decimal `json:"yearly_net"`
}

// TopClientDTO cliente con su total facturado en una moneda.
type TopClientDTO struct {
	ClientName    string          `json:"client_name"`
	Currency      string          `json:"currency"`
	InvoiceCount  int             `json:"invoice_count"`
	TotalInvoiced decimal.Decimal `json:"total_invoiced"`
}
