package entity

import "time"

// InvoiceTemplate es una plantilla HTML con marcadores {{nombre}} para renderizar facturas.
type InvoiceTemplate struct {
	ID        string
	UserID    string
	Name      string
	HTML      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
