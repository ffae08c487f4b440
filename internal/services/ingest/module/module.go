// Package module wires ingestion into the API using modkit
package module

import (
	"pontual/internal/core/calendar"
	"pontual/internal/modkit"
	"pontual/internal/modkit/httpkit"
	"pontual/internal/services/ingest/domain"
	ihttp "pontual/internal/services/ingest/http"
	"pontual/internal/services/ingest/service"
	recdom "pontual/internal/services/records/domain"
)

// Needs declares the ports this module requires from other modules
type Needs struct {
	Writer   recdom.WriterPort
	Calendar calendar.Calendar
}

// Ports exposed by the ingest module
type Ports struct {
	Ingest domain.IngestPort
}

// Module implements the ingest API module
type Module struct {
	base  modkit.Base
	opts  Options
	ports Ports
}

// New constructs the ingest module; the records Writer must be injected via modkit.WithPorts(Needs{...})
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build("ingest", "/ingest", opts...)
	needs := modkit.NeedsOf[Needs](b)
	if needs.Writer == nil {
		panic("ingest module requires a records Writer port")
	}

	o := FromConfig(deps.Cfg)
	svc := service.New(needs.Writer, needs.Calendar, service.Config{
		Workers:    o.Workers,
		DocTimeout: o.DocTimeout,
	})
	svc.Metrics = deps.Metrics

	return &Module{base: b, opts: o, ports: Ports{Ingest: svc}}
}

// MountRoutes mounts the ingest endpoints under the module prefix
func (m *Module) MountRoutes(r httpkit.Router) {
	m.base.Mount(r, func(sub httpkit.Router) { ihttp.Register(sub, m.ports.Ingest, m.opts.MaxUpload) })
}

// Name returns the module name
func (m *Module) Name() string { return m.base.Name }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
