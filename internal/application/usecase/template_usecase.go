package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/freelance-forge-api/internal/application/dto"
	"github.com/jhoicas/freelance-forge-api/internal/domain"
	"github.com/jhoicas/freelance-forge-api/internal/domain/entity"
	"github.com/jhoicas/freelance-forge-api/internal/domain/repository"
)

// InvoiceTemplateUseCase CRUD de plantillas HTML de factura del usuario.
type InvoiceTemplateUseCase struct {
	repo repository.InvoiceTemplateRepository
	now  func() time.Time
}

// NewInvoiceTemplateUseCase construye el caso de uso.
func NewInvoiceTemplateUseCase(repo repository.InvoiceTemplateRepository) *InvoiceTemplateUseCase {
	return &InvoiceTemplateUseCase{repo: repo, now: time.Now}
}

// Create guarda una plantilla nueva.
func (uc *InvoiceTemplateUseCase) Create(ctx context.Context, userID string, in dto.InvoiceTemplateRequest) (*dto.InvoiceTemplateResponse, error) {
	name, html, err := validateTemplate(in)
	if err != nil {
		return nil, err
	}
	now := uc.now().UTC()
	tpl := &entity.InvoiceTemplate{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      name,
		HTML:      html,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, tpl); err != nil {
		return nil, fmt.Errorf("template: crear: %w", err)
	}
	return entityToTemplateResponse(tpl), nil
}

// List devuelve las plantillas del usuario.
func (uc *InvoiceTemplateUseCase) List(ctx context.Context, userID string) (*dto.InvoiceTemplateListResponse, error) {
	list, err := uc.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("template: listar: %w", err)
	}
	out := &dto.InvoiceTemplateListResponse{Items: make([]dto.InvoiceTemplateResponse, 0, len(list))}
	for _, t := range list {
		out.Items = append(out.Items, *entityToTemplateResponse(t))
	}
	return out, nil
}

// Get devuelve una plantilla propia.
func (uc *InvoiceTemplateUseCase) Get(ctx context.Context, userID, id string) (*dto.InvoiceTemplateResponse, error) {
	tpl, err := uc.loadOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return entityToTemplateResponse(tpl), nil
}

// Update reemplaza nombre y HTML.
func (uc *InvoiceTemplateUseCase) Update(ctx context.Context, userID, id string, in dto.InvoiceTemplateRequest) (*dto.InvoiceTemplateResponse, error) {
	tpl, err := uc.loadOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	name, html, err := validateTemplate(in)
	if err != nil {
		return nil, err
	}
	tpl.Name = name
	tpl.HTML = html
	tpl.UpdatedAt = uc.now().UTC()
	if err := uc.repo.Update(ctx, tpl); err != nil {
		return nil, fmt.Errorf("template: actualizar: %w", err)
	}
	return entityToTemplateResponse(tpl), nil
}

// Delete borra la plantilla. Las facturas que la referencian vuelven a la plantilla por defecto.
func (uc *InvoiceTemplateUseCase) Delete(ctx context.Context, userID, id string) error {
	if _, err := uc.loadOwned(ctx, userID, id); err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("template: borrar: %w", err)
	}
	return nil
}

func (uc *InvoiceTemplateUseCase) loadOwned(ctx context.Context, userID, id string) (*entity.InvoiceTemplate, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	tpl, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("template: obtener: %w", err)
	}
	if tpl == nil {
		return nil, domain.ErrNotFound
	}
	if tpl.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return tpl, nil
}

func validateTemplate(in dto.InvoiceTemplateRequest) (name, html string, err error) {
	name = strings.TrimSpace(in.Name)
	if name == "" || strings.TrimSpace(in.HTML) == "" {
		return "", "", fmt.Errorf("%w: name y html son obligatorios", domain.ErrInvalidInput)
	}
	return name, in.HTML, nil
}

func entityToTemplateResponse(t *entity.InvoiceTemplate) *dto.InvoiceTemplateResponse {
	return &dto.InvoiceTemplateResponse{
		ID:        t.ID,
		Name:      t.Name,
		HTML:      t.HTML,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
