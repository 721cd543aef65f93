package http_test

import (
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	app := buildTestApp(t)
	resp := doRequest(t, app, http.MethodGet, "/health", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[map[string]string](t, resp)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "freelance-forge-test", body["service"])
}

func TestMetrics_ExponeContadores(t *testing.T) {
	app := buildTestApp(t)
	doRequest(t, app, http.MethodGet, "/api/auth/me", nil, "").Body.Close()

	resp := doRequest(t, app, http.MethodGet, "/metrics", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "freelance_forge_api_requests_total")
	assert.Contains(t, string(raw), `status="401"`)
}
