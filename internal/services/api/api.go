// Package api provides the HTTP API for the application
package api

import (
	"context"

	"pontual/internal/core/heuristics"
	"pontual/internal/platform/config"
	"pontual/internal/platform/logger"
	"pontual/internal/platform/metrics"
	"pontual/internal/platform/store"

	"pontual/internal/modkit"
	"pontual/internal/modkit/httpkit"
	"pontual/internal/modkit/swaggerkit"
	_ "pontual/internal/services/api/docs"

	auditmod "pontual/internal/services/audit/module"
	ingestmod "pontual/internal/services/ingest/module"
	recordsmod "pontual/internal/services/records/module"

	metamod "pontual/internal/services/api/meta/module"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	Metrics        *metrics.Metrics
	ServiceName    string
	EnableSwagger  bool
	EnableProfiler bool
}

// initer is implemented by modules that prepare storage before serving
type initer interface {
	Init(context.Context) error
}

// Mount mounts the API service onto the given router.
// Storage setup (migrations, mirror tables) runs before any route is exposed
func Mount(ctx context.Context, r httpkit.Router, opt Options) error {
	l := opt.Logger
	if l == nil {
		l = logger.Get()
	}
	st := opt.Store
	if st == nil {
		st = &store.Store{}
	}

	// shared deps for modules
	deps := modkit.Deps{
		Log:     *l,
		Cfg:     opt.Config,
		PG:      st.PG,
		CH:      st.CH,
		Metrics: opt.Metrics,
	}

	// one heuristics pack feeds both the ingest calendar check and the audit
	pack, err := heuristics.FromConfig(opt.Config.Prefix("CORE_AUDIT_"))
	if err != nil {
		return err
	}

	// records owns storage; its ports are injected into ingest and audit
	records := recordsmod.New(deps)
	rp := modkit.MustPortsOf[recordsmod.Ports](records)

	ingest := ingestmod.New(deps, modkit.WithPorts(ingestmod.Needs{
		Writer:   rp.Writer,
		Calendar: pack.Calendar(),
	}))
	audit := auditmod.New(deps, modkit.WithPorts(auditmod.Needs{
		Reader:     rp.Reader,
		Heuristics: pack,
	}))

	for _, m := range []initer{records, audit} {
		if err := m.Init(ctx); err != nil {
			return err
		}
	}

	mods := []modkit.Module{
		metamod.New(deps, modkit.WithPorts(metamod.Ports{
			ServiceName: opt.ServiceName,
			Heuristics:  pack,
		})),
		records,
		ingest,
		audit,
	}

	origins := opt.Config.Prefix("CORE_API_").MayCSV("CORS_ORIGINS", []string{"*"})
	stack := append(httpkit.CommonStack(origins), opt.Metrics.Instrument)

	// liveness for load balancers, answered before any routing
	r.Use(chimw.Heartbeat("/health"))

	// versioned API with a common middleware stack
	httpkit.MountAPI(r, "v1", stack, func(api httpkit.Router) {
		for _, m := range mods {
			m.MountRoutes(api)
		}
	})

	// Swagger, profiler and scrape endpoint sit outside the versioned scope
	swaggerkit.Mount(r, opt.EnableSwagger)
	if opt.EnableProfiler {
		r.Mount("/debug", chimw.Profiler())
	}
	if opt.Metrics != nil {
		r.Handle("/metrics", opt.Metrics.Handler())
	}

	l.Info().
		Int("heuristics_version", pack.Version).
		Bool("pg", st.PG != nil).
		Bool("ch", st.CH != nil).
		Msg("api mounted")
	return nil
}
