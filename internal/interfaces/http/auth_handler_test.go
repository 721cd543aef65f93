package http_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/freelance-forge-api/internal/application/dto"
	apphttp "github.com/jhoicas/freelance-forge-api/internal/interfaces/http"
)

func TestRegister_FijaCookieDeSesion(t *testing.T) {
	app := buildTestApp(t)
	resp := doRequest(t, app, http.MethodPost, "/api/auth/register", map[string]any{
		"email":    "  Ana@Example.com ",
		"password": "supersecreto",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	c := sessionCookie(resp)
	require.NotNil(t, c)
	assert.True(t, c.HttpOnly, "el cookie debe ser HttpOnly")
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.Equal(t, "/", c.Path)
	assert.False(t, c.Secure)
	assert.Greater(t, c.MaxAge, 0)

	body := decode[dto.LoginResponse](t, resp)
	assert.Equal(t, "ana@example.com", body.User.Email, "el email se normaliza")
	assert.Equal(t, c.Value, body.Token)
}

func TestRegister_EmailDuplicado_Retorna409(t *testing.T) {
	app := buildTestApp(t)
	register(t, app, "ana@example.com")

	resp := doRequest(t, app, http.MethodPost, "/api/auth/register", map[string]any{
		"email": "ANA@example.com", "password": "otrosecreto",
	}, "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "EMAIL_EXISTS", decode[errorBody](t, resp).Code)
}

func TestRegister_Validacion_Retorna400(t *testing.T) {
	app := buildTestApp(t)
	resp := doRequest(t, app, http.MethodPost, "/api/auth/register", map[string]any{
		"email": "no-es-email", "password": "corto",
	}, "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decode[errorBody](t, resp)
	assert.Equal(t, "VALIDATION", body.Code)
	assert.Contains(t, body.Message, "email")
	assert.Contains(t, body.Message, "password")
}

func TestLogin_PasswordIncorrecto_Retorna401(t *testing.T) {
	app := buildTestApp(t)
	register(t, app, "ana@example.com")

	resp := doRequest(t, app, http.MethodPost, "/api/auth/login", map[string]any{
		"email": "ana@example.com", "password": "incorrecto",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Nil(t, sessionCookie(resp))
}

func TestLogin_AbreNuevaSesion(t *testing.T) {
	app := buildTestApp(t)
	first := register(t, app, "ana@example.com")

	resp := doRequest(t, app, http.MethodPost, "/api/auth/login", map[string]any{
		"email": "ana@example.com", "password": "supersecreto",
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	c := sessionCookie(resp)
	require.NotNil(t, c)
	assert.NotEqual(t, first, c.Value)

	me := doRequest(t, app, http.MethodGet, "/api/auth/me", nil, c.Value)
	assert.Equal(t, http.StatusOK, me.StatusCode)
}

func TestRegister_PasswordMultibyteLargo_Retorna400(t *testing.T) {
	app := buildTestApp(t)
	// 72 runas pero 144 bytes: pasa max=72 y excede el límite de bcrypt.
	resp := doRequest(t, app, http.MethodPost, "/api/auth/register", map[string]any{
		"email": "ana@example.com", "password": strings.Repeat("ñ", 72),
	}, "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[errorBody](t, resp).Code)
}

func TestLogin_EmailConEspaciosYMayusculas(t *testing.T) {
	app := buildTestApp(t)
	register(t, app, "ana@example.com")

	resp := doRequest(t, app, http.MethodPost, "/api/auth/login", map[string]any{
		"email": " ANA@Example.com  ", "password": "supersecreto",
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotNil(t, sessionCookie(resp))
	assert.Equal(t, "ana@example.com", decode[dto.LoginResponse](t, resp).User.Email)
}

func TestMe_SinSesion_Retorna401(t *testing.T) {
	app := buildTestApp(t)
	resp := doRequest(t, app, http.MethodGet, "/api/auth/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_SESSION", decode[errorBody](t, resp).Code)
}

func TestMe_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(t)
	resp := doRequest(t, app, http.MethodGet, "/api/auth/me", nil, "token.invalido.aqui")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMe_BearerComoAlternativa(t *testing.T) {
	app := buildTestApp(t)
	token := register(t, app, "ana@example.com")

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ana@example.com", decode[dto.UserResponse](t, resp).Email)
}

func TestLogout_RevocaLaSesion(t *testing.T) {
	app := buildTestApp(t)
	token := register(t, app, "ana@example.com")

	resp := doRequest(t, app, http.MethodPost, "/api/auth/logout", nil, token)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	c := sessionCookie(resp)
	require.NotNil(t, c, "logout debe expirar el cookie")
	assert.Empty(t, c.Value)

	me := doRequest(t, app, http.MethodGet, "/api/auth/me", nil, token)
	assert.Equal(t, http.StatusUnauthorized, me.StatusCode, "el token de una sesión cerrada no sirve")
}

func TestUpdateProfile_CambiaDireccion(t *testing.T) {
	app := buildTestApp(t)
	token := register(t, app, "ana@example.com")

	resp := doRequest(t, app, http.MethodPatch, "/api/auth/profile", map[string]any{"address": "Carrera 7 #8-9"}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Carrera 7 #8-9", decode[dto.UserResponse](t, resp).Address)

	me := doRequest(t, app, http.MethodGet, "/api/auth/me", nil, token)
	assert.Equal(t, "Carrera 7 #8-9", decode[dto.UserResponse](t, me).Address)
}

func TestSessionCookieName(t *testing.T) {
	assert.Equal(t, "session_id", apphttp.SessionCookieName)
}
