package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"pontual/internal/platform/config"
	"pontual/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// Server runs a chi router until its context ends
type Server struct {
	mux   *chi.Mux
	srv   *http.Server
	grace time.Duration
}

// NewServer reads API_PORT, API_READ_TIMEOUT, API_WRITE_TIMEOUT and
// API_SHUTDOWN_GRACE from cfg. Uploads and workbook exports are slow, so the
// timeouts are generous
func NewServer(cfg config.Conf) *Server {
	mux := chi.NewRouter()
	return &Server{
		mux:   mux,
		grace: cfg.MayDuration("API_SHUTDOWN_GRACE", 10*time.Second),
		srv: &http.Server{
			Addr:              cfg.MayString("API_PORT", ":4000"),
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       cfg.MayDuration("API_READ_TIMEOUT", time.Minute),
			WriteTimeout:      cfg.MayDuration("API_WRITE_TIMEOUT", 2*time.Minute),
			IdleTimeout:       2 * time.Minute,
		},
	}
}

// Router is where routes are mounted before Run
func (s *Server) Router() chi.Router { return s.mux }

// Addr is the configured listen address
func (s *Server) Addr() string { return s.srv.Addr }

// Run serves until ctx is cancelled, then drains within the shutdown grace
func (s *Server) Run(ctx context.Context) error {
	log := logger.Named("http")
	stop := context.AfterFunc(ctx, func() {
		sctx, cancel := context.WithTimeout(context.Background(), s.grace)
		defer cancel()
		if err := s.srv.Shutdown(sctx); err != nil {
			log.Warn().Err(err).Msg("http shutdown")
		}
	})
	defer stop()

	log.Info().Str("addr", s.srv.Addr).Msg("http listening")
	if err := s.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
