package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/freelance-forge-api/internal/interfaces/http"
	"github.com/jhoicas/freelance-forge-api/pkg/logger"
)

func TestRequestLogger_RegistraPathYRuta(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()
	app.Use(apphttp.RequestLogger(logger.NewWithWriter(&buf, "info")))
	app.Get("/api/invoices/:id", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNotFound)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/invoices/42", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "/api/invoices/42", line["path"])
	assert.Equal(t, "/api/invoices/:id", line["route"])
	assert.Equal(t, "warn", line["level"])
	assert.EqualValues(t, 404, line["status"])
}
