package domain

import (
	"context"

	"pontual/internal/core/namecheck"
	recdom "pontual/internal/services/records/domain"
)

// AuditPort produces advisory reports over stored records; it never mutates them
type AuditPort interface {
	Run(ctx context.Context, f recdom.Filter) (Report, error)
	Duplicates(ctx context.Context, f recdom.Filter) (Duplicates, error)
	ClassifyNames(names []string) []namecheck.Verdict
}
