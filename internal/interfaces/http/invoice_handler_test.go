package http_test

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/freelance-forge-api/internal/application/dto"
)

func TestInvoice_CrearCalculaTotal(t *testing.T) {
	app := buildTestApp(t)
	token := register(t, app, "ana@example.com")

	resp := doRequest(t, app, http.MethodPost, "/api/invoices", sampleInvoice(), token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	inv := decode[dto.InvoiceResponse](t, resp)

	assert.Equal(t, "130", inv.TotalAmount.String())
	assert.Equal(t, "IN-00001", inv.InvoiceNumber)
	assert.Equal(t, "USD", inv.Currency)
	assert.Equal(t, "2024-05-01", inv.Date)
	assert.Equal(t, "Calle 1 #2-3", inv.UserAddress, "se copia la dirección del usuario")
	require.Len(t, inv.Items, 2)
	assert.Equal(t, "100", inv.Items[0].LineTotal.String())
	assert.Equal(t, "30", inv.Items[1].LineTotal.String(), "sin cantidad el total de línea es el precio")
	assert.False(t, inv.Items[1].UseQuantity)

	resp = doRequest(t, app, http.MethodPost, "/api/invoices", sampleInvoice(), token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "IN-00002", decode[dto.InvoiceResponse](t, resp).InvoiceNumber, "consecutivo por usuario")
}

func TestInvoice_ConsecutivoIndependientePorUsuario(t *testing.T) {
	app := buildTestApp(t)
	ana := register(t, app, "ana@example.com")
	beto := register(t, app, "beto@example.com")

	doRequest(t, app, http.MethodPost, "/api/invoices", sampleInvoice(), ana).Body.Close()
	resp := doRequest(t, app, http.MethodPost, "/api/invoices", sampleInvoice(), beto)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "IN-00001", decode[dto.InvoiceResponse](t, resp).InvoiceNumber)
}

func TestInvoice_SinLineas_Retorna400(t *testing.T) {
	app := buildTestApp(t)
	token := register(t, app, "ana@example.com")

	body := sampleInvoice()
	body["items"] = []map[string]any{}
	resp := doRequest(t, app, http.MethodPost, "/api/invoices", body, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	list := doRequest(t, app, http.MethodGet, "/api/invoices", nil, token)
	assert.Empty(t, decode[dto.InvoiceListResponse](t, list).Items, "no se guardó nada")
}

func TestInvoice_UsuarioSinDireccion_Retorna400(t *testing.T) {
	app := buildTestApp(t)
	resp := doRequest(t, app, http.MethodPost, "/api/auth/register", map[string]any{
		"email": "sin@direccion.com", "password": "supersecreto",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	token := sessionCookie(resp).Value

	resp = doRequest(t, app, http.MethodPost, "/api/invoices", sampleInvoice(), token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decode[errorBody](t, resp).Message, "dirección")
}

func TestInvoice_MonedaInvalida_Retorna400(t *testing.T) {
	app := buildTestApp(t)
	token := register(t, app, "ana@example.com")

	body := sampleInvoice()
	body["currency"] = "XYZ"
	resp := doRequest(t, app, http.MethodPost, "/api/invoices", body, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestInvoice_Desconocida_Retorna404(t *testing.T) {
	app := buildTestApp(t)
	token := register(t, app, "ana@example.com")

	for _, id := range []string{uuid.NewString(), "no-es-uuid"} {
		resp := doRequest(t, app, http.MethodGet, "/api/invoices/"+id, nil, token)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, id)
		resp.Body.Close()

		resp = doRequest(t, app, http.MethodGet, "/api/invoices/"+id+"/pdf", nil, token)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, id)
		resp.Body.Close()
	}
}

func TestInvoice_DeOtroUsuario_Retorna403(t *testing.T) {
	app := buildTestApp(t)
	ana := register(t, app, "ana@example.com")
	beto := register(t, app, "beto@example.com")

	resp := doRequest(t, app, http.MethodPost, "/api/invoices", sampleInvoice(), ana)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	inv := decode[dto.InvoiceResponse](t, resp)

	for _, tc := range []struct {
		method, path string
		body         any
	}{
		{http.MethodGet, "/api/invoices/" + inv.ID, nil},
		{http.MethodPut, "/api/invoices/" + inv.ID, sampleInvoice()},
		{http.MethodDelete, "/api/invoices/" + inv.ID, nil},
		{http.MethodGet, "/api/invoices/" + inv.ID + "/pdf", nil},
	} {
		resp := doRequest(t, app, tc.method, tc.path, tc.body, beto)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, tc.method+" "+tc.path)
		resp.Body.Close()
	}

	list := doRequest(t, app, http.MethodGet, "/api/invoices", nil, beto)
	assert.Empty(t, decode[dto.InvoiceListResponse](t, list).Items)
}

func TestInvoice_ActualizarRecalculaYConservaNumero(t *testing.T) {
	app := buildTestApp(t)
	token := register(t, app, "ana@example.com")

	resp := doRequest(t, app, http.MethodPost, "/api/invoices", sampleInvoice(), token)
	created := decode[dto.InvoiceResponse](t, resp)

	// cambia la dirección del usuario: la factura conserva la copia original
	doRequest(t, app, http.MethodPatch, "/api/auth/profile", map[string]any{"address": "Otra 99"}, token).Body.Close()

	update := sampleInvoice()
	update["items"] = []map[string]any{
		{"description": "Consultoría", "quantity": "3", "unit_price": "40.5"},
	}
	resp = doRequest(t, app, http.MethodPut, "/api/invoices/"+created.ID, update, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[dto.InvoiceResponse](t, resp)

	assert.Equal(t, "121.5", updated.TotalAmount.String())
	assert.Equal(t, created.InvoiceNumber, updated.InvoiceNumber)
	assert.Equal(t, "Calle 1 #2-3", updated.UserAddress)
	require.Len(t, updated.Items, 1)

	resp = doRequest(t, app, http.MethodGet, "/api/invoices/"+created.ID, nil, token)
	got := decode[dto.InvoiceResponse](t, resp)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Consultoría", got.Items[0].Description)
}

func TestInvoice_EmpresaClienteCopiaDatos(t *testing.T) {
	app := buildTestApp(t)
	ana := register(t, app, "ana@example.com")
	cliente := register(t, app, "cliente@example.com")

	resp := doRequest(t, app, http.MethodPost, "/api/company", map[string]any{
		"name": "Cliente SAS", "address": "Zona Franca 1", "registration_number": "800-1",
	}, cliente)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	company := decode[dto.CompanyResponse](t, resp)

	body := sampleInvoice()
	delete(body, "client_name")
	delete(body, "client_address")
	body["company_id"] = company.ID
	resp = doRequest(t, app, http.MethodPost, "/api/invoices", body, ana)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	inv := decode[dto.InvoiceResponse](t, resp)
	assert.Equal(t, "Cliente SAS", inv.ClientName)
	assert.Equal(t, "Zona Franca 1", inv.ClientAddress)

	body["company_id"] = uuid.NewString()
	resp = doRequest(t, app, http.MethodPost, "/api/invoices", body, ana)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestInvoice_Eliminar(t *testing.T) {
	app := buildTestApp(t)
	token := register(t, app, "ana@example.com")
	inv := decode[dto.InvoiceResponse](t, doRequest(t, app, http.MethodPost, "/api/invoices", sampleInvoice(), token))

	resp := doRequest(t, app, http.MethodDelete, "/api/invoices/"+inv.ID, nil, token)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doRequest(t, app, http.MethodGet, "/api/invoices/"+inv.ID, nil, token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestInvoice_DescargarPDF(t *testing.T) {
	app := buildTestApp(t)
	token := register(t, app, "ana@example.com")
	inv := decode[dto.InvoiceResponse](t, doRequest(t, app, http.MethodPost, "/api/invoices", sampleInvoice(), token))

	resp := doRequest(t, app, http.MethodGet, "/api/invoices/"+inv.ID+"/pdf", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	disposition := resp.Header.Get("Content-Disposition")
	assert.True(t, strings.HasPrefix(disposition, "attachment"))
	assert.Contains(t, disposition, inv.ID, "el nombre del archivo contiene el id")

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "%PDF"))
}

func TestInvoice_PDFFallaGenerador_Retorna500(t *testing.T) {
	app := buildTestApp(t, withPDFGenerator(failingPDF{}))
	token := register(t, app, "ana@example.com")
	inv := decode[dto.InvoiceResponse](t, doRequest(t, app, http.MethodPost, "/api/invoices", sampleInvoice(), token))

	resp := doRequest(t, app, http.MethodGet, "/api/invoices/"+inv.ID+"/pdf", nil, token)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.NotEqual(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Equal(t, "INTERNAL", decode[errorBody](t, resp).Code)
}
