package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice representa la cabecera de una factura con sus líneas.
// ClientName, ClientAddress y UserAddress son copias tomadas al escribir la factura;
// no se resincronizan si cambian la empresa o el perfil de origen.
type Invoice struct {
	ID            string
	UserID        string
	CompanyID     string // cliente (opcional)
	TemplateID    string // plantilla para el PDF (opcional)
	InvoiceNumber string // IN-00001, secuencial por usuario
	ClientName    string
	ClientAddress string
	UserAddress   string
	Description   string
	Currency      string // ISO-4217
	Date          time.Time
	TotalAmount   decimal.Decimal
	Items         []LineItem
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsOwnedBy indica si la factura pertenece al usuario.
func (i *Invoice) IsOwnedBy(userID string) bool {
	return i != nil && i.UserID == userID
}
