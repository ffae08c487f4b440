package swaggerkit_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pontual/internal/modkit/swaggerkit"
	_ "pontual/internal/services/api/docs"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(t *testing.T, h http.Handler, path string) *http.Response {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr.Result()
}

func TestMount_ServesRegisteredDocument(t *testing.T) {
	r := chi.NewRouter()
	swaggerkit.Mount(r, true)

	res := get(t, r, "/api/docs/doc.json")
	require.Equal(t, http.StatusOK, res.StatusCode)
	body, _ := io.ReadAll(res.Body)
	assert.Contains(t, string(body), `"/ingest/documents"`)
	assert.Contains(t, string(body), `"/audit/report.xlsx"`)
	assert.Contains(t, string(body), `"basePath": "/api/v1"`)
	assert.True(t, strings.HasPrefix(res.Header.Get("Content-Type"), "application/json"))

	res = get(t, r, "/api/docs")
	assert.Equal(t, http.StatusPermanentRedirect, res.StatusCode)
	assert.Equal(t, "/api/docs/", res.Header.Get("Location"))
}

func TestMount_Disabled(t *testing.T) {
	r := chi.NewRouter()
	swaggerkit.Mount(r, false)
	assert.Equal(t, http.StatusNotFound, get(t, r, "/api/docs/doc.json").StatusCode)
}
