// Package net carries per-request identifiers through a context
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// BatchHeader lets a client name an ingestion batch; the name is echoed back
const BatchHeader = "X-Batch-ID"

type batchKey struct{}

// WithBatch tags ctx with an ingestion batch id
func WithBatch(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, batchKey{}, id)
}

// BatchID returns the batch id set by WithBatch, or ""
func BatchID(ctx context.Context) string {
	id, _ := ctx.Value(batchKey{}).(string)
	return id
}

// RequestID returns the id chi's RequestID middleware assigned, or ""
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }
