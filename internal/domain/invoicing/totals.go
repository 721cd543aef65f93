// Package invoicing contiene las reglas de cálculo de facturas (servicio de dominio, sin I/O).
package invoicing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/freelance-forge-api/internal/domain"
	"github.com/jhoicas/freelance-forge-api/internal/domain/entity"
)

// LineTotal calcula el total de una línea.
// Con useQuantity: quantity * unitPrice. Sin useQuantity la línea es un monto plano: unitPrice.
// No redondea; la presentación decide la escala.
func LineTotal(quantity, unitPrice decimal.Decimal, useQuantity bool) decimal.Decimal {
	if !useQuantity {
		return unitPrice
	}
	return quantity.Mul(unitPrice)
}

// ComputeTotals asigna Position y LineTotal a cada línea (en el orden recibido) y devuelve
// la suma exacta de los totales. Una lista vacía es ErrInvalidInput.
func ComputeTotals(items []entity.LineItem) (decimal.Decimal, error) {
	if len(items) == 0 {
		return decimal.Zero, fmt.Errorf("%w: la factura debe tener al menos una línea", domain.ErrInvalidInput)
	}
	total := decimal.Zero
	for i := range items {
		items[i].Position = i + 1
		items[i].LineTotal = LineTotal(items[i].Quantity, items[i].UnitPrice, items[i].UseQuantity)
		total = total.Add(items[i].LineTotal)
	}
	return total, nil
}
