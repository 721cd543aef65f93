package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense es un gasto registrado por el usuario.
type Expense struct {
	ID          string
	UserID      string
	Vendor      string
	Description string
	Amount      decimal.Decimal
	Currency    string
	Date        time.Time
	Category    string // opcional
	ReceiptURL  string // opcional, se guarda tal cual
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
