package repository

import (
	"context"
	"time"

	"github.com/jhoicas/freelance-forge-api/internal/domain/entity"
)

// SessionRepository persistencia de sesiones de login.
type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	Delete(ctx context.Context, id string) error
	// DeleteExpired borra las sesiones vencidas a la fecha now y devuelve cuántas borró.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
