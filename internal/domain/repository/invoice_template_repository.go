package repository

import (
	"context"

	"github.com/jhoicas/freelance-forge-api/internal/domain/entity"
)

// InvoiceTemplateRepository persistencia de plantillas HTML de factura.
type InvoiceTemplateRepository interface {
	Create(ctx context.Context, tpl *entity.InvoiceTemplate) error
	GetByID(ctx context.Context, id string) (*entity.InvoiceTemplate, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.InvoiceTemplate, error)
	Update(ctx context.Context, tpl *entity.InvoiceTemplate) error
	Delete(ctx context.Context, id string) error
}
