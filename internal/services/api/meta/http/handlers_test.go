package http

import (
	"context"
	"encoding/json"
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pontual/internal/core/heuristics"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

func get[T any](t *testing.T, d Deps, path string) T {
	t.Helper()
	mux := chi.NewRouter()
	Register(mux, d)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, path, nil))
	require.Equal(t, stdhttp.StatusOK, rec.Code, rec.Body.String())

	var env struct {
		Data T `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env.Data
}

func TestReady(t *testing.T) {
	cases := []struct {
		name   string
		pg, ch Pinger
		ready  bool
		states []string
	}{
		{"both up", pinger{}, pinger{}, true, []string{BackendUp, BackendUp}},
		{"memory only", nil, nil, true, []string{BackendDisabled, BackendDisabled}},
		{"mirror off", pinger{}, nil, true, []string{BackendUp, BackendDisabled}},
		{"records down", pinger{err: errors.New("connection refused")}, pinger{}, false, []string{BackendDown, BackendUp}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := get[Readiness](t, Deps{PG: c.pg, CH: c.ch}, "/ready")
			assert.Equal(t, c.ready, got.Ready)
			require.Len(t, got.Backends, 2)
			assert.Equal(t, "records", got.Backends[0].Name)
			for i, s := range c.states {
				assert.Equal(t, s, got.Backends[i].State)
			}
		})
	}

	got := get[Readiness](t, Deps{PG: pinger{err: errors.New("connection refused")}}, "/ready")
	assert.Equal(t, "connection refused", got.Backends[0].Error)
}

func TestHealth_Uptime(t *testing.T) {
	got := get[Health](t, Deps{ServiceName: "pontual-api", StartedAt: time.Now().Add(-90 * time.Second)}, "/health")
	assert.True(t, got.OK)
	assert.Equal(t, "pontual-api", got.Service)
	assert.GreaterOrEqual(t, got.Uptime, int64(90))
}

func TestVersion(t *testing.T) {
	got := get[map[string]string](t, Deps{ServiceName: "pontual-api"}, "/version")
	assert.Equal(t, "pontual-api", got["service"])
	assert.NotEmpty(t, got["version"])
}

func TestHeuristics(t *testing.T) {
	pack, err := heuristics.Load()
	require.NoError(t, err)

	got := get[Heuristics](t, Deps{Heuristics: pack.Merge([]string{"PQ"})}, "/heuristics")
	assert.Equal(t, 1, got.Version)
	assert.Equal(t, 480, got.StandardDayMinutes)
	assert.Len(t, got.Weekend, 2)
	assert.Equal(t, []string{"pq"}, got.Fragments)

	// falls back to the embedded pack
	got = get[Heuristics](t, Deps{}, "/heuristics")
	assert.Equal(t, 5, got.MinNameLength)
	assert.NotNil(t, got.Holidays)
}
