package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/freelance-forge-api/internal/application/dto"
	"github.com/jhoicas/freelance-forge-api/internal/domain"
	"github.com/jhoicas/freelance-forge-api/internal/domain/entity"
	"github.com/jhoicas/freelance-forge-api/internal/domain/repository"
	"github.com/jhoicas/freelance-forge-api/pkg/jwt"
)

// maxPasswordBytes límite de entrada de bcrypt.
const maxPasswordBytes = 72

// SessionConfig configuración para las sesiones y el token que viaja en el cookie.
type SessionConfig struct {
	Secret string
	TTL    time.Duration
	Issuer string
}

// Principal identidad resuelta a partir del cookie o del header Authorization.
type Principal struct {
	UserID    string
	SessionID string
}

// AuthUseCase casos de uso de autenticación: registro, login, logout y perfil.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	cfg         SessionConfig
	now         func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, cfg SessionConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, sessionRepo: sessionRepo, cfg: cfg, now: time.Now}
}

// Register crea un usuario (password con bcrypt) y abre su primera sesión.
// Devuelve ErrEmailAlreadyExists si el email ya está registrado.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.LoginResponse, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: email y password son obligatorios", domain.ErrInvalidInput)
	}
	// bcrypt solo admite 72 bytes; con caracteres multibyte el límite de runas no basta.
	if len(in.Password) > maxPasswordBytes {
		return nil, fmt.Errorf("%w: password no puede superar %d bytes", domain.ErrInvalidInput, maxPasswordBytes)
	}
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("auth: buscar email: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, fmt.Errorf("%w: password demasiado largo", domain.ErrInvalidInput)
	}
	if err != nil {
		return nil, fmt.Errorf("auth: hash password: %w", err)
	}
	now := uc.now().UTC()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Address:      strings.TrimSpace(in.Address),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return uc.openSession(ctx, user)
}

// Login verifica email/password y abre una sesión nueva.
// Credenciales incorrectas y email desconocido devuelven el mismo ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return nil, fmt.Errorf("auth: buscar email: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	return uc.openSession(ctx, user)
}

// Logout borra la sesión; el token que la referencia deja de ser válido.
func (uc *AuthUseCase) Logout(ctx context.Context, sessionID string) error {
	if err := uc.sessionRepo.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("auth: borrar sesión: %w", err)
	}
	return nil
}

// Authenticate valida la firma del token y que la sesión siga viva en la base.
func (uc *AuthUseCase) Authenticate(ctx context.Context, token string) (*Principal, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized
	}
	sessionID, userID, err := jwt.Parse(uc.cfg.Secret, token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	session, err := uc.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("auth: obtener sesión: %w", err)
	}
	if session == nil || session.UserID != userID {
		return nil, domain.ErrUnauthorized
	}
	if session.Expired(uc.now()) {
		_ = uc.sessionRepo.Delete(ctx, session.ID)
		return nil, domain.ErrSessionExpired
	}
	return &Principal{UserID: userID, SessionID: sessionID}, nil
}

// Me devuelve el usuario autenticado.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("auth: obtener usuario: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

// UpdateProfile actualiza la dirección del usuario (la que se copia en cada factura nueva).
func (uc *AuthUseCase) UpdateProfile(ctx context.Context, userID string, in dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("auth: obtener usuario: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Address != nil {
		user.Address = strings.TrimSpace(*in.Address)
	}
	user.UpdatedAt = uc.now().UTC()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("auth: actualizar usuario: %w", err)
	}
	return toUserResponse(user), nil
}

// PurgeExpiredSessions borra las sesiones vencidas.
func (uc *AuthUseCase) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	return uc.sessionRepo.DeleteExpired(ctx, uc.now())
}

func (uc *AuthUseCase) openSession(ctx context.Context, user *entity.User) (*dto.LoginResponse, error) {
	now := uc.now().UTC()
	session := &entity.Session{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(uc.cfg.TTL),
	}
	if err := uc.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("auth: crear sesión: %w", err)
	}
	token, err := jwt.Generate(uc.cfg.Secret, session.ID, user.ID, uc.cfg.Issuer, uc.cfg.TTL)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("auth: firmar token: %w", err), uc.sessionRepo.Delete(ctx, session.ID))
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: session.ExpiresAt,
		User:      *toUserResponse(user),
	}, nil
}

func normalizeEmail(s string) string {
	return dto.NormalizeEmail(s)
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Address:   u.Address,
		CompanyID: u.CompanyID,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
