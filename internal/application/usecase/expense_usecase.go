package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/freelance-forge-api/internal/application/dto"
	"github.com/jhoicas/freelance-forge-api/internal/application/ports"
	"github.com/jhoicas/freelance-forge-api/internal/domain"
	"github.com/jhoicas/freelance-forge-api/internal/domain/entity"
	"github.com/jhoicas/freelance-forge-api/internal/domain/invoicing"
	"github.com/jhoicas/freelance-forge-api/internal/domain/repository"
)

// ExpenseUseCase CRUD de gastos del usuario y exportación.
type ExpenseUseCase struct {
	repo     repository.ExpenseRepository
	exporter ports.ExpenseExporter
	now      func() time.Time
}

// NewExpenseUseCase construye el caso de uso.
func NewExpenseUseCase(repo repository.ExpenseRepository, exporter ports.ExpenseExporter) *ExpenseUseCase {
	return &ExpenseUseCase{repo: repo, exporter: exporter, now: time.Now}
}

// Create registra un gasto.
func (uc *ExpenseUseCase) Create(ctx context.Context, userID string, in dto.ExpenseRequest) (*dto.ExpenseResponse, error) {
	now := uc.now().UTC()
	exp := &entity.Expense{
		ID:        uuid.New().String(),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := applyExpense(exp, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, exp); err != nil {
		return nil, fmt.Errorf("expense: crear: %w", err)
	}
	return entityToExpenseResponse(exp), nil
}

// List devuelve los gastos del usuario, más recientes primero.
func (uc *ExpenseUseCase) List(ctx context.Context, userID string) (*dto.ExpenseListResponse, error) {
	list, err := uc.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("expense: listar: %w", err)
	}
	out := &dto.ExpenseListResponse{Items: make([]dto.ExpenseResponse, 0, len(list))}
	for _, e := range list {
		out.Items = append(out.Items, *entityToExpenseResponse(e))
	}
	return out, nil
}

// Get devuelve un gasto propio.
func (uc *ExpenseUseCase) Get(ctx context.Context, userID, id string) (*dto.ExpenseResponse, error) {
	exp, err := uc.loadOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return entityToExpenseResponse(exp), nil
}

// Update reemplaza los datos del gasto.
func (uc *ExpenseUseCase) Update(ctx context.Context, userID, id string, in dto.ExpenseRequest) (*dto.ExpenseResponse, error) {
	exp, err := uc.loadOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := applyExpense(exp, in); err != nil {
		return nil, err
	}
	exp.UpdatedAt = uc.now().UTC()
	if err := uc.repo.Update(ctx, exp); err != nil {
		return nil, fmt.Errorf("expense: actualizar: %w", err)
	}
	return entityToExpenseResponse(exp), nil
}

// Delete borra un gasto propio.
func (uc *ExpenseUseCase) Delete(ctx context.Context, userID, id string) error {
	if _, err := uc.loadOwned(ctx, userID, id); err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("expense: borrar: %w", err)
	}
	return nil
}

// Export genera el archivo con todos los gastos del usuario.
func (uc *ExpenseUseCase) Export(ctx context.Context, userID string) (content []byte, contentType, filename string, err error) {
	list, err := uc.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, "", "", fmt.Errorf("expense: listar: %w", err)
	}
	content, contentType, ext, err := uc.exporter.Export(list)
	if err != nil {
		return nil, "", "", fmt.Errorf("expense: exportar: %w", err)
	}
	filename = fmt.Sprintf("gastos_%s.%s", uc.now().UTC().Format("20060102"), ext)
	return content, contentType, filename, nil
}

func (uc *ExpenseUseCase) loadOwned(ctx context.Context, userID, id string) (*entity.Expense, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	exp, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("expense: obtener: %w", err)
	}
	if exp == nil {
		return nil, domain.ErrNotFound
	}
	if exp.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return exp, nil
}

func applyExpense(exp *entity.Expense, in dto.ExpenseRequest) error {
	vendor := strings.TrimSpace(in.Vendor)
	if vendor == "" {
		return fmt.Errorf("%w: vendor es obligatorio", domain.ErrInvalidInput)
	}
	currency, err := invoicing.NormalizeCurrency(in.Currency)
	if err != nil {
		return err
	}
	date, err := time.Parse(dto.DateLayout, in.Date)
	if err != nil {
		return fmt.Errorf("%w: fecha %q inválida, formato YYYY-MM-DD", domain.ErrInvalidInput, in.Date)
	}
	exp.Vendor = vendor
	exp.Description = strings.TrimSpace(in.Description)
	exp.Amount = in.Amount
	exp.Currency = currency
	exp.Date = date
	exp.Category = strings.TrimSpace(in.Category)
	exp.ReceiptURL = strings.TrimSpace(in.ReceiptURL)
	return nil
}

func entityToExpenseResponse(e *entity.Expense) *dto.ExpenseResponse {
	return &dto.ExpenseResponse{
		ID:          e.ID,
		Vendor:      e.Vendor,
		Description: e.Description,
		Amount:      e.Amount,
		Currency:    e.Currency,
		Date:        e.Date.Format(dto.DateLayout),
		Category:    e.Category,
		ReceiptURL:  e.ReceiptURL,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
