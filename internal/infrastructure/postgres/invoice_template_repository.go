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

var _ repository.InvoiceTemplateRepository = (*InvoiceTemplateRepo)(nil)

// InvoiceTemplateRepo plantillas HTML en PostgreSQL.
type InvoiceTemplateRepo struct {
	q Querier
}

// NewInvoiceTemplateRepository construye el adaptador.
func NewInvoiceTemplateRepository(q Querier) *InvoiceTemplateRepo {
	return &InvoiceTemplateRepo{q: q}
}

const templateColumns = `id, user_id, name, html, created_at, updated_at`

func (r *InvoiceTemplateRepo) Create(ctx context.Context, t *entity.InvoiceTemplate) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO invoice_templates (`+templateColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		t.ID, t.UserID, t.Name, t.HTML, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert invoice template: %w", err)
	}
	return nil
}

func (r *InvoiceTemplateRepo) GetByID(ctx context.Context, id string) (*entity.InvoiceTemplate, error) {
	var t entity.InvoiceTemplate
	err := r.q.QueryRow(ctx, `SELECT `+templateColumns+` FROM invoice_templates WHERE id = $1`, id).Scan(
		&t.ID, &t.UserID, &t.Name, &t.HTML, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice template: %w", err)
	}
	return &t, nil
}

func (r *InvoiceTemplateRepo) ListByUser(ctx context.Context, userID string) ([]*entity.InvoiceTemplate, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+templateColumns+` FROM invoice_templates WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list invoice templates: %w", err)
	}
	defer rows.Close()

	var list []*entity.InvoiceTemplate
	for rows.Next() {
		var t entity.InvoiceTemplate
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name, &t.HTML, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan invoice template: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

func (r *InvoiceTemplateRepo) Update(ctx context.Context, t *entity.InvoiceTemplate) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE invoice_templates SET name = $2, html = $3, updated_at = $4 WHERE id = $1`,
		t.ID, t.Name, t.HTML, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice template: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete borra la plantilla; las facturas que la usaban quedan con template_id NULL.
func (r *InvoiceTemplateRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM invoice_templates WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete invoice template: %w", err)
	}
	return nil
}
