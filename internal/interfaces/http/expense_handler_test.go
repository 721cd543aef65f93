package http_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/freelance-forge-api/internal/application/dto"
	"github.com/jhoicas/freelance-forge-api/internal/infrastructure/xlsx"
)

func sampleExpense() map[string]any {
	return map[string]any{
		"vendor":      "Papelería Central",
		"description": "Resmas de papel",
		"amount":      "12.50",
		"currency":    "eur",
		"date":        "2024-03-09",
		"category":    "oficina",
	}
}

func TestExpense_CRUD(t *testing.T) {
	app := buildTestApp(t)
	token := register(t, app, "ana@example.com")

	resp := doRequest(t, app, http.MethodPost, "/api/expenses", sampleExpense(), token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	exp := decode[dto.ExpenseResponse](t, resp)
	assert.Equal(t, "EUR", exp.Currency)
	assert.Equal(t, "12.5", exp.Amount.String())

	update := sampleExpense()
	update["vendor"] = "Papelería Norte"
	resp = doRequest(t, app, http.MethodPut, "/api/expenses/"+exp.ID, update, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Papelería Norte", decode[dto.ExpenseResponse](t, resp).Vendor)

	resp = doRequest(t, app, http.MethodGet, "/api/expenses", nil, token)
	assert.Len(t, decode[dto.ExpenseListResponse](t, resp).Items, 1)

	resp = doRequest(t, app, http.MethodDelete, "/api/expenses/"+exp.ID, nil, token)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doRequest(t, app, http.MethodGet, "/api/expenses/"+exp.ID, nil, token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestExpense_Validacion(t *testing.T) {
	app := buildTestApp(t)
	token := register(t, app, "ana@example.com")

	body := sampleExpense()
	body["receipt_url"] = "no es url"
	resp := doRequest(t, app, http.MethodPost, "/api/expenses", body, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body = sampleExpense()
	delete(body, "vendor")
	resp = doRequest(t, app, http.MethodPost, "/api/expenses", body, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestExpense_DeOtroUsuario_Retorna403(t *testing.T) {
	app := buildTestApp(t)
	ana := register(t, app, "ana@example.com")
	beto := register(t, app, "beto@example.com")

	exp := decode[dto.ExpenseResponse](t, doRequest(t, app, http.MethodPost, "/api/expenses", sampleExpense(), ana))

	resp := doRequest(t, app, http.MethodGet, "/api/expenses/"+exp.ID, nil, beto)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestExpense_ExportarXLSX(t *testing.T) {
	app := buildTestApp(t)
	token := register(t, app, "ana@example.com")
	doRequest(t, app, http.MethodPost, "/api/expenses", sampleExpense(), token).Body.Close()

	resp := doRequest(t, app, http.MethodGet, "/api/expenses/export", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, xlsx.ContentType, resp.Header.Get("Content-Type"))
	disposition := resp.Header.Get("Content-Disposition")
	assert.True(t, strings.HasPrefix(disposition, "attachment"))
	assert.Contains(t, disposition, ".xlsx")
}
