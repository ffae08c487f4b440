// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"time"

	"pontual/internal/core/heuristics"
	"pontual/internal/modkit"
	"pontual/internal/modkit/httpkit"
	metahttp "pontual/internal/services/api/meta/http"
)

// Ports declares what meta reports on besides the shared deps
type Ports struct {
	ServiceName string
	Heuristics  *heuristics.Pack
}

// Module implements the modkit.Module interface
type Module struct {
	base modkit.Base
	deps metahttp.Deps
}

// New constructs a meta module; Ports given through modkit.WithPorts are optional
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build("meta", "/meta", opts...)
	info, _ := b.Needs.(Ports)
	if info.ServiceName == "" {
		info.ServiceName = "pontual-api"
	}

	return &Module{base: b, deps: metahttp.Deps{
		ServiceName: info.ServiceName,
		StartedAt:   time.Now(),
		PG:          pinger(deps.PG),
		CH:          pinger(deps.CH),
		Heuristics:  info.Heuristics,
	}}
}

func pinger(b any) metahttp.Pinger {
	p, _ := b.(metahttp.Pinger)
	return p
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.base.Mount(r, func(sub httpkit.Router) { metahttp.Register(sub, m.deps) })
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return m.base.Name }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
