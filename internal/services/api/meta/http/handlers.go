// Package http serves the meta endpoints: liveness, backend readiness, build
// info and the audit heuristics the process runs with
package http

import (
	"context"
	"net/http"
	"time"

	"pontual/internal/core/heuristics"
	"pontual/internal/core/version"
	"pontual/internal/modkit/httpkit"
)

// Pinger is a backend that can report readiness
type Pinger interface {
	Ping(context.Context) error
}

// Deps are the handler dependencies. A nil PG means records live in memory;
// a nil CH means the analytics mirror is off
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	PG          Pinger
	CH          Pinger
	Heuristics  *heuristics.Pack // embedded pack when nil
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	httpkit.Get(r, "/health", d.health)
	httpkit.Get(r, "/ready", d.ready)
	httpkit.Get(r, "/version", func(*http.Request) (any, error) { return version.Info(d.ServiceName), nil })
	httpkit.Get(r, "/heuristics", d.heuristics)
}

// Health is the liveness payload
type Health struct {
	OK      bool   `json:"ok"      example:"true"`
	Service string `json:"service" example:"pontual-api"`
	Started string `json:"started" example:"2025-08-01T09:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// @Summary Liveness and uptime
// @Tags Meta
// @Produce json
// @Success 200 {object} Health
// @Router /meta/health [get]
func (d Deps) health(*http.Request) (any, error) {
	return Health{
		OK:      true,
		Service: d.ServiceName,
		Started: d.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(time.Since(d.StartedAt) / time.Second),
	}, nil
}

// Backend states reported by /ready
const (
	BackendUp       = "up"
	BackendDown     = "down"
	BackendDisabled = "disabled"
)

// Backend is the readiness of one store
type Backend struct {
	Name  string `json:"name"  example:"records"`
	State string `json:"state" example:"up"`
	Error string `json:"error,omitempty"`
}

// Readiness is ready when no enabled backend is down. Ingesting into the
// in-memory store is allowed, so a disabled backend does not block it
type Readiness struct {
	Ready    bool      `json:"ready"`
	Backends []Backend `json:"backends"`
}

// @Summary Readiness of the record store and analytics mirror
// @Tags Meta
// @Produce json
// @Success 200 {object} Readiness
// @Router /meta/ready [get]
func (d Deps) ready(r *http.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	out := Readiness{Ready: true}
	for _, b := range []struct {
		name string
		p    Pinger
	}{{"records", d.PG}, {"mirror", d.CH}} {
		s := Backend{Name: b.name, State: BackendDisabled}
		if b.p != nil {
			s.State = BackendUp
			if err := b.p.Ping(ctx); err != nil {
				s.State, s.Error, out.Ready = BackendDown, err.Error(), false
			}
		}
		out.Backends = append(out.Backends, s)
	}
	return out, nil
}

// Heuristics is the audit configuration in effect
type Heuristics struct {
	Version            int      `json:"version"              example:"1"`
	MinNameLength      int      `json:"min_name_length"      example:"5"`
	Fragments          []string `json:"fragments"`
	Weekend            []string `json:"weekend"              example:"Saturday,Sunday"`
	Holidays           []string `json:"holidays"             example:"2025-12-25"`
	StandardDayMinutes int      `json:"standard_day_minutes" example:"480"`
}

// @Summary Audit heuristics in effect
// @Tags Meta
// @Produce json
// @Success 200 {object} Heuristics
// @Router /meta/heuristics [get]
func (d Deps) heuristics(*http.Request) (any, error) {
	p := d.Heuristics
	if p == nil {
		var err error
		if p, err = heuristics.Load(); err != nil {
			return nil, err
		}
	}
	out := Heuristics{
		Version:            p.Version,
		MinNameLength:      p.MinNameLength,
		Fragments:          append([]string{}, p.Fragments...),
		StandardDayMinutes: p.StandardDayMinutes,
	}
	for _, wd := range p.Weekend {
		out.Weekend = append(out.Weekend, wd.String())
	}
	for _, h := range p.Holidays {
		out.Holidays = append(out.Holidays, h.String())
	}
	if out.Holidays == nil {
		out.Holidays = []string{}
	}
	return out, nil
}
