package http_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/freelance-forge-api/internal/application/dto"
)

const customTemplate = `<h1>{{ company_name }}</h1><p>Factura {{invoice_number}} para {{ client_name }}</p>{{ line_items }}<p>Total {{ total }}</p>`

func TestInvoiceTemplate_CRUD(t *testing.T) {
	app := buildTestApp(t)
	token := register(t, app, "ana@example.com")

	resp := doRequest(t, app, http.MethodPost, "/api/invoice-templates", map[string]any{"name": "Sobria", "html": customTemplate}, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	tpl := decode[dto.InvoiceTemplateResponse](t, resp)
	assert.Equal(t, "Sobria", tpl.Name)

	resp = doRequest(t, app, http.MethodGet, "/api/invoice-templates", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[dto.InvoiceTemplateListResponse](t, resp).Items, 1)

	resp = doRequest(t, app, http.MethodPut, "/api/invoice-templates/"+tpl.ID, map[string]any{"name": "Sobria v2", "html": customTemplate}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Sobria v2", decode[dto.InvoiceTemplateResponse](t, resp).Name)

	resp = doRequest(t, app, http.MethodGet, "/api/invoice-templates/"+tpl.ID, nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, customTemplate, decode[dto.InvoiceTemplateResponse](t, resp).HTML)

	resp = doRequest(t, app, http.MethodDelete, "/api/invoice-templates/"+tpl.ID, nil, token)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doRequest(t, app, http.MethodGet, "/api/invoice-templates/"+tpl.ID, nil, token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestInvoiceTemplate_SinHTML_Retorna400(t *testing.T) {
	app := buildTestApp(t)
	token := register(t, app, "ana@example.com")

	resp := doRequest(t, app, http.MethodPost, "/api/invoice-templates", map[string]any{"name": "Vacía"}, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestInvoiceTemplate_DeOtroUsuario(t *testing.T) {
	app := buildTestApp(t)
	ana := register(t, app, "ana@example.com")
	beto := register(t, app, "beto@example.com")

	tpl := decode[dto.InvoiceTemplateResponse](t, doRequest(t, app, http.MethodPost, "/api/invoice-templates",
		map[string]any{"name": "Privada", "html": customTemplate}, ana))

	resp := doRequest(t, app, http.MethodGet, "/api/invoice-templates/"+tpl.ID, nil, beto)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// tampoco puede usarla en sus facturas
	body := sampleInvoice()
	body["template_id"] = tpl.ID
	resp = doRequest(t, app, http.MethodPost, "/api/invoices", body, beto)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestInvoiceTemplate_PDFConPlantilla(t *testing.T) {
	app := buildTestApp(t)
	token := register(t, app, "ana@example.com")

	tpl := decode[dto.InvoiceTemplateResponse](t, doRequest(t, app, http.MethodPost, "/api/invoice-templates",
		map[string]any{"name": "Sobria", "html": customTemplate}, token))

	body := sampleInvoice()
	body["template_id"] = tpl.ID
	resp := doRequest(t, app, http.MethodPost, "/api/invoices", body, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	inv := decode[dto.InvoiceResponse](t, resp)
	assert.Equal(t, tpl.ID, inv.TemplateID)

	resp = doRequest(t, app, http.MethodGet, "/api/invoices/"+inv.ID+"/pdf", nil, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// al borrar la plantilla la factura vuelve a la plantilla por defecto
	doRequest(t, app, http.MethodDelete, "/api/invoice-templates/"+tpl.ID, nil, token).Body.Close()
	resp = doRequest(t, app, http.MethodGet, "/api/invoices/"+inv.ID, nil, token)
	assert.Empty(t, decode[dto.InvoiceResponse](t, resp).TemplateID)

	resp = doRequest(t, app, http.MethodGet, "/api/invoices/"+inv.ID+"/pdf", nil, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// template_id en la query que no existe
	resp = doRequest(t, app, http.MethodGet, "/api/invoices/"+inv.ID+"/pdf?template_id="+tpl.ID, nil, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}
