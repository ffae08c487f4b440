// Package middleware holds the request-scoped chi middleware of the API:
// correlation ids, panic recovery into the JSON envelope and the access log
package middleware

import (
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	perr "pontual/internal/platform/errors"
	"pontual/internal/platform/logger"
	pnet "pontual/internal/platform/net"
	phttp "pontual/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

const maxBatchIDLen = 64

// RequestScope puts the request id and the client's batch id on the context and
// logger, echoing the batch id back. It must run after chi's RequestID
func RequestScope(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		batch := strings.TrimSpace(r.Header.Get(pnet.BatchHeader))
		if len(batch) > maxBatchIDLen {
			batch = batch[:maxBatchIDLen]
		}
		ctx := pnet.WithBatch(r.Context(), batch)
		ctx = logger.WithRequest(ctx, pnet.RequestID(ctx), batch)
		if batch != "" {
			w.Header().Set(pnet.BatchHeader, batch)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Recover turns a panic into a 500 envelope and logs the stack
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}
			logger.C(r.Context()).Error().
				Interface("panic", v).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")
			phttp.RespondError(w, r, perr.PanicErrf("internal error"))
		}()
		next.ServeHTTP(w, r)
	})
}

// AccessLog writes one line per request: error level for 5xx, warn at or past slow
func AccessLog(slow time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			took := time.Since(start)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			log := logger.C(r.Context())
			ev := log.Info()
			switch {
			case status >= http.StatusInternalServerError:
				ev = log.Error()
			case slow > 0 && took >= slow:
				ev = log.Warn()
			}
			if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
				ev = ev.Str("route", rc.RoutePattern())
			}
			ev.Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Dur("took", took).
				Msg("request")
		})
	}
}
