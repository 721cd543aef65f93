package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseRequest entrada para crear o reemplazar un gasto.
type ExpenseRequest struct {
	Vendor      string          `json:"vendor" validate:"required,max=200"`
	Description string          `json:"description" validate:"max=1000"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency" validate:"omitempty,len=3"`
	Date        string          `json:"date" validate:"required,datetime=2006-01-02"`
	Category    string          `json:"category" validate:"max=100"`
	ReceiptURL  string          `json:"receipt_url" validate:"omitempty,url,max=2048"`
}

// ExpenseResponse salida de un gasto.
type ExpenseResponse struct {
	ID          string          `json:"id"`
	Vendor      string          `json:"vendor"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Date        string          `json:"date"`
	Category    string          `json:"category,omitempty"`
	ReceiptURL  string          `json:"receipt_url,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ExpenseListResponse listado de gastos del usuario.
type ExpenseListResponse struct {
	Items []ExpenseResponse `json:"items"`
}
