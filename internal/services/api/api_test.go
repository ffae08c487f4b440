package api

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pontual/internal/platform/config"
	"pontual/internal/platform/metrics"
	auditdom "pontual/internal/services/audit/domain"
	ingestdom "pontual/internal/services/ingest/domain"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAPI(t *testing.T) stdhttp.Handler {
	t.Helper()
	mux := chi.NewRouter()
	err := Mount(context.Background(), mux, Options{
		Config:      config.New(),
		Metrics:     metrics.New(),
		ServiceName: "pontual-test",
	})
	require.NoError(t, err)
	return mux
}

func do(t *testing.T, h stdhttp.Handler, method, path, body string, out any) int {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if out != nil {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
	}
	return rec.Code
}

const twoCopies = `{"documents":[
 {"header":{"employee_name":"Ana Lima","period":"07/2025","source_file":"a.pdf"},
  "rows":[{"date":"01/07/2025","predicted":"480","realized":"450"}]},
 {"header":{"employee_name":"Ana Lima","period":"07/2025","source_file":"b.pdf"},
  "rows":[{"date":"01/07/2025","predicted":"480","realized":"480"}]}
]}`

func TestMount_IngestThenAudit(t *testing.T) {
	h := newAPI(t)

	var ing struct {
		Data ingestdom.BatchResult `json:"data"`
	}
	code := do(t, h, stdhttp.MethodPost, "/api/v1/ingest/documents", twoCopies, &ing)
	require.Equal(t, stdhttp.StatusOK, code)
	assert.Equal(t, 2, ing.Data.Ingested)
	assert.Zero(t, ing.Data.Failed)

	var rep struct {
		Data auditdom.Report `json:"data"`
	}
	code = do(t, h, stdhttp.MethodPost, "/api/v1/audit/report", `{"period":"07/2025"}`, &rep)
	require.Equal(t, stdhttp.StatusOK, code)
	assert.Equal(t, 2, rep.Data.SnapshotRecords)
	require.Len(t, rep.Data.Duplicates.Groups, 1)
	assert.Equal(t, 1, rep.Data.Duplicates.StaleRecords)
}

func TestMount_MetaAndMetrics(t *testing.T) {
	h := newAPI(t)

	var meta struct {
		Data struct {
			Service string `json:"service"`
		} `json:"data"`
	}
	require.Equal(t, stdhttp.StatusOK, do(t, h, stdhttp.MethodGet, "/api/v1/meta/health", "", &meta))
	assert.Equal(t, "pontual-test", meta.Data.Service)

	var heur struct {
		Data struct {
			StandardDayMinutes int `json:"standard_day_minutes"`
		} `json:"data"`
	}
	require.Equal(t, stdhttp.StatusOK, do(t, h, stdhttp.MethodGet, "/api/v1/meta/heuristics", "", &heur))
	assert.Positive(t, heur.Data.StandardDayMinutes)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/metrics", nil))
	require.Equal(t, stdhttp.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "pontual_http_request_seconds")
}

func TestMount_InvalidHeuristicsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "heuristics.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: [\n"), 0o600))
	t.Setenv("CORE_AUDIT_HEURISTICS_FILE", path)

	err := Mount(context.Background(), chi.NewRouter(), Options{Config: config.New()})
	require.Error(t, err)
}

func TestMount_HeartbeatAndDocs(t *testing.T) {
	mux := chi.NewRouter()
	require.NoError(t, Mount(context.Background(), mux, Options{Config: config.New(), EnableSwagger: true}))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/health", nil))
	assert.Equal(t, stdhttp.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/api/docs/doc.json", nil))
	require.Equal(t, stdhttp.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"/audit/names"`)
}
