package modkit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"pontual/internal/modkit/httpkit"
	kit "pontual/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

type lookup interface{ Find(string) bool }

type names struct{}

func (names) Find(string) bool { return true }

type stub struct {
	base  Base
	ports any
}

func (s stub) Name() string                 { return s.base.Name }
func (s stub) Ports() any                   { return s.ports }
func (s stub) MountRoutes(r httpkit.Router) {}

func TestBuild_AppliesOptions(t *testing.T) {
	b := Build("audit", "/audit", WithPorts(names{}))
	assert.Equal(t, "audit", b.Name)
	assert.Equal(t, "/audit", b.Prefix)
	assert.True(t, NeedsOf[lookup](b).Find("x"))
}

func TestNeedsOf_MissingPortsPanics(t *testing.T) {
	kit.MustPanic(t, func() { NeedsOf[lookup](Build("audit", "/audit")) })
	kit.MustPanic(t, func() { NeedsOf[lookup](Build("audit", "/audit", WithPorts(42))) })
}

func TestMustPortsOf(t *testing.T) {
	m := stub{base: Build("records", ""), ports: names{}}
	assert.True(t, MustPortsOf[lookup](m).Find("x"))
	kit.MustPanic(t, func() { MustPortsOf[lookup](stub{base: Build("meta", "/meta"), ports: "nope"}) })
}

func TestBase_Mount(t *testing.T) {
	r := chi.NewRouter()
	register := func(sub httpkit.Router) {
		sub.Get("/ping", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })
	}
	Build("meta", "/meta").Mount(r, register)
	Build("records", "").Mount(r, register)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/meta/ping", nil))
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
