// Package module wires the audit service into the API using modkit
package module

import (
	"context"

	"pontual/internal/core/heuristics"
	"pontual/internal/modkit"
	"pontual/internal/modkit/httpkit"
	"pontual/internal/platform/logger"
	"pontual/internal/services/audit/domain"
	ahttp "pontual/internal/services/audit/http"
	"pontual/internal/services/audit/repo"
	"pontual/internal/services/audit/service"
	recdom "pontual/internal/services/records/domain"
)

// Needs declares what this module takes from the rest of the process
type Needs struct {
	Reader     recdom.ReaderPort
	Heuristics *heuristics.Pack // embedded default when nil
}

// Ports exposed by the audit module
type Ports struct {
	Audit domain.AuditPort
}

// Module implements the audit API module
type Module struct {
	base  modkit.Base
	ports Ports
	runs  *repo.Runs
}

// New constructs the audit module; the records Reader must be injected via modkit.WithPorts(Needs{...})
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build("audit", "/audit", opts...)
	needs := modkit.NeedsOf[Needs](b)
	if needs.Reader == nil {
		panic("audit module requires a records Reader port")
	}
	pack := needs.Heuristics
	if pack == nil {
		var err error
		if pack, err = heuristics.Load(); err != nil {
			logger.Get().Panic().Err(err).Msg("embedded heuristics invalid")
		}
	}

	o := FromConfig(deps.Cfg)
	svc := service.New(needs.Reader, pack, service.Config{Timeout: o.Timeout})
	svc.Metrics = deps.Metrics

	m := &Module{base: b, ports: Ports{Audit: svc}}
	if o.PublishRuns && deps.CH != nil {
		m.runs = &repo.Runs{CH: deps.CH}
		svc.Runs = m.runs
	}
	return m
}

// Init creates the run history table when publishing is enabled
func (m *Module) Init(ctx context.Context) error {
	if m.runs == nil {
		return nil
	}
	if err := m.runs.EnsureTable(ctx); err != nil {
		return err
	}
	logger.Named("audit").Info().Str("table", repo.RunsTable).Msg("audit run history ready")
	return nil
}

// MountRoutes mounts the audit endpoints under the module prefix
func (m *Module) MountRoutes(r httpkit.Router) {
	m.base.Mount(r, func(sub httpkit.Router) { ahttp.Register(sub, m.ports.Audit) })
}

// Name returns the module name
func (m *Module) Name() string { return m.base.Name }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
