// Package repokit is the storage surface repositories are written against
package repokit

import (
	"context"
	"fmt"
	"time"

	"pontual/internal/platform/store"
)

type (
	Queryer    = store.Queryer
	TxRunner   = store.TxRunner
	Clickhouse = store.Clickhouse
)

// MirrorRows appends rows to an analytics table. No mirror or no rows is a no-op
func MirrorRows(ctx context.Context, c Clickhouse, table string, rows [][]any) error {
	if c == nil || len(rows) == 0 {
		return nil
	}
	return c.Insert(ctx, table, rows)
}

// MustPing panics when p is missing or does not answer within 5s (or ctx's deadline)
func MustPing(ctx context.Context, name string, p store.Pinger) {
	if p == nil {
		panic(name + ": not configured")
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
	}
	if err := p.Ping(ctx); err != nil {
		panic(fmt.Sprintf("%s: ping: %v", name, err))
	}
}

// MustGuard panics unless every opened backend answers
func MustGuard(ctx context.Context, st interface{ Guard(context.Context) error }) {
	if err := st.Guard(ctx); err != nil {
		panic(fmt.Errorf("storage not ready: %w", err))
	}
}
