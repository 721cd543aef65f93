package dto

import (
	"strings"
	"time"
)

// RegisterRequest entrada para registro (auth). El password se hashea en el use case.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Address  string `json:"address" validate:"omitempty,max=500"`
}

// Normalize recorta y pasa a minúsculas el email antes de validarlo.
func (r *RegisterRequest) Normalize() { r.Email = NormalizeEmail(r.Email) }

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Normalize recorta y pasa a minúsculas el email antes de validarlo.
func (r *LoginRequest) Normalize() { r.Email = NormalizeEmail(r.Email) }

// NormalizeEmail forma canónica del email: sin espacios alrededor y en minúsculas.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// UpdateProfileRequest actualización parcial del perfil. Address vacío borra la dirección.
type UpdateProfileRequest struct {
	Address *string `json:"address" validate:"omitempty,max=500"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Address   string    `json:"address,omitempty"`
	CompanyID string    `json:"company_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginResponse salida de register/login. Token es el mismo valor del cookie session_id,
// para clientes que prefieran el header Authorization: Bearer.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}
