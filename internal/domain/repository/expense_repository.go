package repository

import (
	"context"

	"github.com/jhoicas/freelance-forge-api/internal/domain/entity"
)

// ExpenseRepository persistencia de gastos.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *entity.Expense) error
	GetByID(ctx context.Context, id string) (*entity.Expense, error)
	// ListByUser devuelve los gastos del usuario ordenados por fecha descendente.
	ListByUser(ctx context.Context, userID string) ([]*entity.Expense, error)
	Update(ctx context.Context, expense *entity.Expense) error
	Delete(ctx context.Context, id string) error
}
