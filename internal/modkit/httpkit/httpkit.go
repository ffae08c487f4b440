// Package httpkit mounts module routes on chi behind the shared API middleware
package httpkit

import (
	"compress/flate"
	"net/http"
	"strings"
	"time"

	phttp "pontual/internal/platform/net/http"
	"pontual/internal/platform/net/http/bind"
	"pontual/internal/platform/net/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Router is the router modules register on
type Router = chi.Router

type (
	Upload        = bind.Upload
	UploadOptions = bind.UploadOptions
)

// CommonStack is the middleware of the versioned API. Batch ingestion of large
// documents runs long, hence the two minute timeout
func CommonStack(origins []string) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		chimw.RequestID,
		chimw.RealIP,
		middleware.RequestScope,
		middleware.Recover,
		chimw.NoCache,
		middleware.AccessLog(2 * time.Second),
		cors.Handler(cors.Options{
			AllowedOrigins: origins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID", "X-Batch-ID"},
			ExposedHeaders: []string{"X-Batch-ID", "Content-Disposition"},
			MaxAge:         300,
		}),
		chimw.Compress(flate.BestSpeed),
		chimw.Timeout(2 * time.Minute),
	}
}

// MountAPI registers mount under /api/<version> behind mw
func MountAPI(r Router, version string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route("/api/"+strings.Trim(version, "/"), func(api Router) {
		api.Use(mw...)
		mount(api)
	})
}

// bodyOptions allow batches of already-extracted documents
var bodyOptions = bind.Options{MaxBytes: 16 << 20}

// Get answers GET path with fn's result in the envelope
func Get(r Router, path string, fn func(*http.Request) (any, error)) {
	r.Method(http.MethodGet, path, phttp.Query(fn))
}

// PostJSON answers POST path with a validated T body
func PostJSON[T any](r Router, path string, fn func(*http.Request, T) (any, error)) {
	r.Post(path, phttp.JSON(bodyOptions, fn))
}

// PostUpload answers POST path with the multipart files o selects
func PostUpload(r Router, path string, o UploadOptions, fn func(*http.Request, []Upload) (any, error)) {
	r.Post(path, phttp.Upload(o, fn))
}
