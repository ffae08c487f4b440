// Package module implements the records service module
package module

import (
	"context"

	"pontual/internal/modkit"
	"pontual/internal/modkit/httpkit"
	"pontual/internal/platform/logger"
	"pontual/internal/services/records/domain"
	"pontual/internal/services/records/repo"
	"pontual/internal/services/records/service"
)

// Ports exposed by the records module
type Ports struct {
	Writer domain.WriterPort
	Reader domain.ReaderPort
}

// Module implements the records service module
type Module struct {
	deps  modkit.Deps
	opts  Options
	ports Ports
}

// New constructs a new records module.
// Without Postgres the module serves an in-process store so dry runs still work
func New(deps modkit.Deps) *Module {
	opts := FromConfig(deps.Cfg)
	m := &Module{deps: deps, opts: opts}

	if deps.PG == nil {
		mem := service.NewMemory()
		m.ports = Ports{Writer: mem, Reader: mem}
		return m
	}

	svc := service.New(deps.PG, repo.NewPG, service.Config{
		QueryTimeout: opts.QueryTimeout,
		WriteTimeout: opts.WriteTimeout,
	})
	svc.Metrics = deps.Metrics
	if opts.DayMirror && deps.CH != nil {
		svc.Mirror = &repo.Mirror{CH: deps.CH}
	}
	m.ports = Ports{Writer: svc, Reader: svc}
	return m
}

// Init applies the schema when enabled; call once at startup before serving
func (m *Module) Init(ctx context.Context) error {
	log := logger.Named("records")
	if m.deps.PG != nil && m.opts.Migrate {
		if err := repo.Migrate(ctx, m.deps.PG); err != nil {
			return err
		}
		log.Info().Msg("records schema ready")
	}
	if m.opts.DayMirror && m.deps.CH != nil {
		if err := (&repo.Mirror{CH: m.deps.CH}).EnsureTable(ctx); err != nil {
			return err
		}
		log.Info().Str("table", repo.DayFactsTable).Msg("day mirror ready")
	}
	return nil
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "records" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module; records are reached through the ingest and audit modules
func (m *Module) MountRoutes(httpkit.Router) {}
