package billing

import (
	"context"

	"github.com/jhoicas/freelance-forge-api/internal/domain/repository"
)

// InvoiceTxRunner ejecuta una función dentro de una transacción con los repos de facturación.
// La cabecera, las líneas y el consecutivo se escriben juntos o no se escriben.
type InvoiceTxRunner interface {
	RunInvoicing(ctx context.Context, fn func(
		invoiceRepo repository.InvoiceRepository,
		counterRepo repository.InvoiceCounterRepository,
	) error) error
}

// RenderedDocument HTML ya sustituido, listo para convertirse en PDF.
type RenderedDocument struct {
	Title  string
	Author string
	HTML   string
}

// InvoicePDFGenerator convierte el HTML renderizado de una factura en un PDF.
type InvoicePDFGenerator interface {
	RenderHTML(ctx context.Context, doc RenderedDocument) ([]byte, error)
}
