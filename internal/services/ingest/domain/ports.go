package domain

import (
	"context"

	"pontual/internal/core/attendance"
)

// IngestPort turns extracted documents into stored period records
type IngestPort interface {
	IngestDocument(ctx context.Context, doc attendance.RawDocument) (Outcome, error)
	IngestBatch(ctx context.Context, docs []attendance.RawDocument) BatchResult
	IngestFiles(ctx context.Context, files []File) BatchResult
}
