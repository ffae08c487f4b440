package http

import (
	"net/http"

	"pontual/internal/platform/net/http/bind"
)

// Query answers a body-less request
type Query func(r *http.Request) (any, error)

func (q Query) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	reply(w, r, q)
}

func reply(w http.ResponseWriter, r *http.Request, fn func(*http.Request) (any, error)) {
	out, err := fn(r)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondOK(w, r, out)
}

// JSON decodes and validates a T from the body before calling fn
func JSON[T any](o bind.Options, fn func(*http.Request, T) (any, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reply(w, r, func(r *http.Request) (any, error) {
			in, err := bind.JSON[T](r, o)
			if err != nil {
				return nil, err
			}
			return fn(r, in)
		})
	}
}

// Upload reads the multipart files described by o before calling fn
func Upload(o bind.UploadOptions, fn func(*http.Request, []bind.Upload) (any, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reply(w, r, func(r *http.Request) (any, error) {
			files, err := bind.ParseUploads(w, r, o)
			if err != nil {
				return nil, err
			}
			return fn(r, files)
		})
	}
}
