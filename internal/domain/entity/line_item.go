package entity

import "github.com/shopspring/decimal"

// LineItem es una línea de factura. Si UseQuantity es false la línea es un monto plano
// y Quantity se ignora en el cálculo.
type LineItem struct {
	ID          string
	InvoiceID   string
	Position    int
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	UseQuantity bool
	LineTotal   decimal.Decimal
}
