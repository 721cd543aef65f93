package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItemRequest línea de factura en la entrada. UseQuantity nil equivale a true.
type LineItemRequest struct {
	Description string          `json:"description" validate:"required,max=500"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	UseQuantity *bool           `json:"use_quantity"`
}

// InvoiceRequest entrada para crear o reemplazar una factura.
// Si CompanyID viene y ClientName/ClientAddress no, se copian de la empresa cliente.
type InvoiceRequest struct {
	CompanyID     string            `json:"company_id" validate:"omitempty,uuid"`
	TemplateID    string            `json:"template_id" validate:"omitempty,uuid"`
	ClientName    string            `json:"client_name" validate:"max=200"`
	ClientAddress string            `json:"client_address" validate:"max=500"`
	Description   string            `json:"description" validate:"max=2000"`
	Currency      string            `json:"currency" validate:"omitempty,len=3"`
	Date          string            `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Items         []LineItemRequest `json:"items" validate:"required,min=1,dive"`
}

// LineItemResponse línea de factura con su total calculado.
type LineItemResponse struct {
	ID          string          `json:"id"`
	Position    int             `json:"position"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	UseQuantity bool            `json:"use_quantity"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// InvoiceResponse salida de una factura. Items se omite en listados.
type InvoiceResponse struct {
	ID            string             `json:"id"`
	InvoiceNumber string             `json:"invoice_number"`
	CompanyID     string             `json:"company_id,omitempty"`
	TemplateID    string             `json:"template_id,omitempty"`
	ClientName    string             `json:"client_name"`
	ClientAddress string             `json:"client_address"`
	UserAddress   string             `json:"user_address"`
	Description   string             `json:"description"`
	Currency      string             `json:"currency"`
	Date          string             `json:"date"`
	TotalAmount   decimal.Decimal    `json:"total_amount"`
	Items         []LineItemResponse `json:"items,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// InvoiceListResponse listado de facturas del usuario.
type InvoiceListResponse struct {
	Items []InvoiceResponse `json:"items"`
}
