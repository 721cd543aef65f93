package http

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/freelance-forge-api/internal/application/auth"
	"github.com/jhoicas/freelance-forge-api/internal/application/dto"
	"github.com/jhoicas/freelance-forge-api/internal/domain"
)

// SessionCookieName nombre del cookie de sesión.
const SessionCookieName = "session_id"

// Locals keys para UserID y SessionID en Fiber.
const (
	LocalUserID    = "user_id"
	LocalSessionID = "session_id"
)

// Authenticator resuelve el token de sesión en una identidad. Lo implementa *auth.AuthUseCase.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*auth.Principal, error)
}

// AuthMiddleware lee el token del cookie session_id (o, en su defecto, del header
// Authorization: Bearer), valida la sesión y carga UserID y SessionID en c.Locals.
func AuthMiddleware(authn Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := sessionToken(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_SESSION", Message: "sesión requerida"})
		}
		p, err := authn.Authenticate(c.UserContext(), token)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrSessionExpired):
				clearSessionCookie(c, false)
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "SESSION_EXPIRED", Message: "la sesión expiró"})
			case errors.Is(err, domain.ErrUnauthorized):
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_SESSION", Message: "sesión inválida o cerrada"})
			default:
				return writeError(c, err)
			}
		}
		c.Locals(LocalUserID, p.UserID)
		c.Locals(LocalSessionID, p.SessionID)
		return c.Next()
	}
}

func sessionToken(c *fiber.Ctx) (string, bool) {
	if v := strings.TrimSpace(c.Cookies(SessionCookieName)); v != "" {
		return v, true
	}
	parts := strings.SplitN(c.Get(fiber.HeaderAuthorization), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		if tok := strings.TrimSpace(parts[1]); tok != "" {
			return tok, true
		}
	}
	return "", false
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetSessionID devuelve el SessionID del contexto (después del middleware de auth).
func GetSessionID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalSessionID).(string)
	return s
}
