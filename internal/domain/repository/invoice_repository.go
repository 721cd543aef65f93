package repository

import (
	"context"

	"github.com/jhoicas/freelance-forge-api/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para Invoice y sus líneas.
type InvoiceRepository interface {
	// Create persiste la cabecera; las líneas se guardan con ReplaceItems en la misma tx.
	Create(ctx context.Context, invoice *entity.Invoice) error
	// Update actualiza la cabecera (cliente, moneda, fecha, total, plantilla, descripción).
	Update(ctx context.Context, invoice *entity.Invoice) error
	// ReplaceItems borra las líneas existentes e inserta items en orden de Position.
	ReplaceItems(ctx context.Context, invoiceID string, items []entity.LineItem) error
	// GetByID devuelve la factura con sus líneas ordenadas por Position.
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	// ListByUser devuelve las cabeceras del usuario (sin líneas), más recientes primero.
	ListByUser(ctx context.Context, userID string) ([]*entity.Invoice, error)
	Delete(ctx context.Context, id string) error
	// LastLineItemByUser devuelve la línea más reciente de cualquier factura del usuario.
	LastLineItemByUser(ctx context.Context, userID string) (*entity.LineItem, error)
}

// InvoiceCounterRepository consecutivo de facturas por usuario.
type InvoiceCounterRepository interface {
	// Next incrementa y devuelve el consecutivo del usuario (1 en la primera factura).
	Next(ctx context.Context, userID string) (int64, error)
}
