package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/freelance-forge-api/internal/application/analytics"
	"github.com/jhoicas/freelance-forge-api/internal/application/auth"
	"github.com/jhoicas/freelance-forge-api/internal/application/billing"
	"github.com/jhoicas/freelance-forge-api/internal/application/ports"
	"github.com/jhoicas/freelance-forge-api/internal/application/usecase"
	"github.com/jhoicas/freelance-forge-api/internal/infrastructure/memory"
	"github.com/jhoicas/freelance-forge-api/internal/infrastructure/pdf"
	"github.com/jhoicas/freelance-forge-api/internal/infrastructure/xlsx"
	apphttp "github.com/jhoicas/freelance-forge-api/internal/interfaces/http"
	"github.com/jhoicas/freelance-forge-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testSessionSecret = "test-secret-key-for-unit-tests"

type testOptions struct {
	pdf billing.InvoicePDFGenerator
	llm ports.LLMService
}

type testOption func(*testOptions)

func withPDFGenerator(g billing.InvoicePDFGenerator) testOption {
	return func(o *testOptions) { o.pdf = g }
}

func withLLM(l ports.LLMService) testOption {
	return func(o *testOptions) { o.llm = l }
}

// buildTestApp arma la API completa sobre el store en memoria.
func buildTestApp(t *testing.T, opts ...testOption) *fiber.App {
	t.Helper()
	o := testOptions{pdf: pdf.NewMarotoPDFGenerator()}
	for _, opt := range opts {
		opt(&o)
	}

	store := memory.NewStore()
	authUC := auth.NewAuthUseCase(store.Users(), store.Sessions(), auth.SessionConfig{
		Secret: testSessionSecret,
		TTL:    7 * 24 * time.Hour,
		Issuer: "freelance-forge-test",
	})

	app := fiber.New()
	app.Use(requestid.New())
	app.Use(apphttp.RequestLogger(logger.Nop()))
	metrics := apphttp.NewMetrics()
	app.Use(metrics.Middleware())

	apphttp.Router(app, apphttp.RouterDeps{
		ServiceName: "freelance-forge-test",
		Store:       store,
		Metrics:     metrics,
		AuthUC:      authUC,
		CompanyUC:   usecase.NewCompanyUseCase(store, store.Companies()),
		TemplateUC:  usecase.NewInvoiceTemplateUseCase(store.Templates()),
		InvoiceUC:   billing.NewInvoiceUseCase(store, store.Invoices(), store.Users(), store.Companies(), store.Templates()),
		PDFUC:       billing.NewPDFUseCase(store.Invoices(), store.Users(), store.Companies(), store.Templates(), o.pdf),
		ExpenseUC:   usecase.NewExpenseUseCase(store.Expenses(), xlsx.NewExpenseExporter()),
		AIUC:        usecase.NewAIUseCase(o.llm, store.Invoices()),
		DashboardUC: appanalytics.NewDashboardUseCase(store.Invoices(), store.Expenses()),
	})
	return app
}

// doRequest lanza la petición con body JSON opcional y el cookie de sesión si token no está vacío.
func doRequest(t *testing.T, app *fiber.App, method, path string, body any, token string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: apphttp.SessionCookieName, Value: token})
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == apphttp.SessionCookieName {
			return c
		}
	}
	return nil
}

// register crea un usuario con dirección y devuelve el token de sesión.
func register(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	resp := doRequest(t, app, http.MethodPost, "/api/auth/register", map[string]any{
		"email":    email,
		"password": "supersecreto",
		"address":  "Calle 1 #2-3",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	c := sessionCookie(resp)
	require.NotNil(t, c, "register debe fijar el cookie de sesión")
	resp.Body.Close()
	return c.Value
}

// sampleInvoice 2×50 + 30 (tarifa plana) = 130.
func sampleInvoice() map[string]any {
	return map[string]any{
		"client_name":    "ACME Corp",
		"client_address": "Av. Siempre Viva 742",
		"currency":       "usd",
		"date":           "2024-05-01",
		"items": []map[string]any{
			{"description": "Diseño de logo", "quantity": "2", "unit_price": "50"},
			{"description": "Hosting", "quantity": "7", "unit_price": "30", "use_quantity": false},
		},
	}
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type failingPDF struct{}

func (failingPDF) RenderHTML(context.Context, billing.RenderedDocument) ([]byte, error) {
	return nil, errors.New("motor pdf caído")
}

type fakeLLM struct {
	gotDescription string
	gotPrevious    string
	reply          string
}

func (f *fakeLLM) ImproveLineItem(_ context.Context, description, previous string) (string, error) {
	f.gotDescription = description
	f.gotPrevious = previous
	return f.reply, nil
}
