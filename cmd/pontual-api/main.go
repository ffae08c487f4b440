// @title         Pontual API
// @version       0.1.0
// @description   Attendance ingestion, reconciliation and audit endpoints

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"pontual/internal/core/version"
	"pontual/internal/modkit/repokit"
	"pontual/internal/platform/config"
	"pontual/internal/platform/logger"
	"pontual/internal/platform/metrics"
	phttp "pontual/internal/platform/net/http"
	"pontual/internal/platform/store"

	"pontual/internal/services/api"
)

const serviceName = "pontual-api"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	// bring up logging early
	l := logger.Get()

	// open the platform store; each backend is enabled by its DBURL
	st, err := store.Open(ctx,
		store.FromEnv(root, serviceName),
		store.WithLogger(*l),
		store.WithBuildTag(version.Tag()),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	repokit.MustGuard(ctx, st)

	var m *metrics.Metrics
	if apiCfg.MayBool("METRICS", true) {
		m = metrics.New()
	}

	// http server (reads CORE_API_PORT and friends)
	srv := phttp.NewServer(root.Prefix("CORE_"))

	// mount our API
	if err := api.Mount(ctx, srv.Router(), api.Options{
		Config:         root,
		Store:          st,
		Logger:         l,
		Metrics:        m,
		ServiceName:    serviceName,
		EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
		EnableProfiler: apiCfg.MayBool("PROFILER", false),
	}); err != nil {
		l.Panic().Err(err).Msg("api mount failed")
	}

	// run until signalled
	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
