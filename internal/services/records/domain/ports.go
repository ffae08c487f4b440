package domain

import (
	"context"

	"pontual/internal/core/attendance"
)

// WriterPort appends reconciled records. There is no update and no delete
type WriterPort interface {
	Append(ctx context.Context, rec attendance.Record) error
}

// ReaderPort loads every stored record matching a filter, days included
type ReaderPort interface {
	Snapshot(ctx context.Context, f Filter) ([]attendance.Record, error)
}
