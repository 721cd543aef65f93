package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/freelance-forge-api/internal/domain"
	"github.com/jhoicas/freelance-forge-api/internal/domain/entity"
	"github.com/jhoicas/freelance-forge-api/internal/domain/repository"
)

var (
	_ repository.InvoiceRepository        = (*InvoiceRepo)(nil)
	_ repository.InvoiceCounterRepository = (*InvoiceCounterRepo)(nil)
)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, user_id, company_id, template_id, invoice_number, client_name, client_address,
	user_address, description, currency, date, total_amount, created_at, updated_at`

// Create persiste la cabecera de la factura.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.UserID, nullIfEmpty(inv.CompanyID), nullIfEmpty(inv.TemplateID), inv.InvoiceNumber,
		inv.ClientName, inv.ClientAddress, inv.UserAddress, inv.Description, inv.Currency,
		inv.Date, inv.TotalAmount, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: número de factura %s repetido", domain.ErrDuplicate, inv.InvoiceNumber)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// Update actualiza la cabecera; invoice_number y user_address no cambian.
func (r *InvoiceRepo) Update(ctx context.Context, inv *entity.Invoice) error {
	query := `
		UPDATE invoices
		SET company_id     = $2,
		    template_id    = $3,
		    client_name    = $4,
		    client_address = $5,
		    description    = $6,
		    currency       = $7,
		    date           = $8,
		    total_amount   = $9,
		    updated_at     = $10
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		inv.ID, nullIfEmpty(inv.CompanyID), nullIfEmpty(inv.TemplateID), inv.ClientName, inv.ClientAddress,
		inv.Description, inv.Currency, inv.Date, inv.TotalAmount, inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ReplaceItems borra las líneas actuales e inserta las nuevas en orden.
func (r *InvoiceRepo) ReplaceItems(ctx context.Context, invoiceID string, items []entity.LineItem) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM invoice_line_items WHERE invoice_id = $1`, invoiceID); err != nil {
		return fmt.Errorf("delete line items: %w", err)
	}
	query := `
		INSERT INTO invoice_line_items (id, invoice_id, position, description, quantity, unit_price, use_quantity, line_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for _, it := range items {
		_, err := r.q.Exec(ctx, query,
			it.ID, invoiceID, it.Position, it.Description, it.Quantity, it.UnitPrice, it.UseQuantity, it.LineTotal,
		)
		if err != nil {
			return fmt.Errorf("insert line item %d: %w", it.Position, err)
		}
	}
	return nil
}

// GetByID obtiene la factura con sus líneas.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	row := r.q.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id)
	inv, err := scanInvoice(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	items, err := r.items(ctx, id)
	if err != nil {
		return nil, err
	}
	inv.Items = items
	return inv, nil
}

// ListByUser cabeceras del usuario, más recientes primero.
func (r *InvoiceRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE user_id = $1 ORDER BY date DESC, created_at DESC`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// Delete borra la factura (las líneas caen por ON DELETE CASCADE).
func (r *InvoiceRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return nil
}

// LastLineItemByUser última línea de la factura más reciente del usuario.
func (r *InvoiceRepo) LastLineItemByUser(ctx context.Context, userID string) (*entity.LineItem, error) {
	query := `
		SELECT li.id, li.invoice_id, li.position, li.description, li.quantity, li.unit_price, li.use_quantity, li.line_total
		FROM invoice_line_items li
		JOIN invoices i ON i.id = li.invoice_id
		WHERE i.user_id = $1
		ORDER BY i.date DESC, i.created_at DESC, li.position DESC
		LIMIT 1`
	var it entity.LineItem
	err := r.q.QueryRow(ctx, query, userID).Scan(
		&it.ID, &it.InvoiceID, &it.Position, &it.Description, &it.Quantity, &it.UnitPrice, &it.UseQuantity, &it.LineTotal,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("last line item: %w", err)
	}
	return &it, nil
}

func (r *InvoiceRepo) items(ctx context.Context, invoiceID string) ([]entity.LineItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, invoice_id, position, description, quantity, unit_price, use_quantity, line_total
		FROM invoice_line_items WHERE invoice_id = $1 ORDER BY position`, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("get line items: %w", err)
	}
	defer rows.Close()

	var items []entity.LineItem
	for rows.Next() {
		var it entity.LineItem
		if err := rows.Scan(&it.ID, &it.InvoiceID, &it.Position, &it.Description, &it.Quantity, &it.UnitPrice, &it.UseQuantity, &it.LineTotal); err != nil {
			return nil, fmt.Errorf("scan line item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	var companyID, templateID *string
	err := row.Scan(
		&inv.ID, &inv.UserID, &companyID, &templateID, &inv.InvoiceNumber, &inv.ClientName, &inv.ClientAddress,
		&inv.UserAddress, &inv.Description, &inv.Currency, &inv.Date, &inv.TotalAmount, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	inv.CompanyID = derefStr(companyID)
	inv.TemplateID = derefStr(templateID)
	return &inv, nil
}

// InvoiceCounterRepo consecutivo por usuario; debe usarse dentro de la tx que crea la factura.
type InvoiceCounterRepo struct {
	q Querier
}

// NewInvoiceCounterRepository construye el adaptador.
func NewInvoiceCounterRepository(q Querier) *InvoiceCounterRepo {
	return &InvoiceCounterRepo{q: q}
}

// Next incrementa el consecutivo con un upsert atómico (la fila queda bloqueada hasta el commit).
func (r *InvoiceCounterRepo) Next(ctx context.Context, userID string) (int64, error) {
	var seq int64
	err := r.q.QueryRow(ctx, `
		INSERT INTO invoice_counters (user_id, last_seq) VALUES ($1, 1)
		ON CONFLICT (user_id) DO UPDATE SET last_seq = invoice_counters.last_seq + 1
		RETURNING last_seq`, userID).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next invoice number: %w", err)
	}
	return seq, nil
}
