// Package store opens the record store (Postgres) and the optional analytics
// mirror (ClickHouse) behind the small interfaces repositories use
package store

import (
	"context"
	"errors"
	"fmt"

	"pontual/internal/platform/logger"
	"pontual/internal/platform/store/ch"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Queryer is the SQL surface a repository sees, inside or outside a transaction.
// *pgxpool.Pool and pgx.Tx both satisfy it
type Queryer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TxRunner runs fn in one transaction, committing when it returns nil
type TxRunner interface {
	Queryer
	Tx(ctx context.Context, fn func(q Queryer) error) error
}

// Clickhouse receives append-only analytics rows. *ch.CH satisfies it
type Clickhouse interface {
	Insert(ctx context.Context, table string, rows [][]any) error
	Exec(ctx context.Context, sql string, args ...any) error
	Ping(ctx context.Context) error
	Close() error
}

// Pinger reports readiness
type Pinger interface{ Ping(context.Context) error }

var _ Clickhouse = (*ch.CH)(nil)

// Store holds the opened backends. Disabled backends stay nil
type Store struct {
	Log logger.Logger
	PG  TxRunner
	CH  Clickhouse

	buildTag string
}

// Option adjusts Open
type Option func(*Store)

// WithLogger sets the logger used for SQL tracing and boot retries
func WithLogger(l logger.Logger) Option { return func(s *Store) { s.Log = l } }

// WithBuildTag is reported to ClickHouse in client info
func WithBuildTag(tag string) Option { return func(s *Store) { s.buildTag = tag } }

// Open connects the backends cfg enables. Postgres is pinged with backoff;
// ClickHouse connects lazily
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{Log: *logger.Get()}
	for _, o := range opts {
		o(s)
	}

	if cfg.PG.Enabled {
		p, err := openPG(ctx, cfg, s.Log)
		if err != nil {
			return nil, err
		}
		s.PG = p
	}
	if cfg.CH.Enabled {
		c, err := ch.Open(ctx, ch.Config{
			URL:         cfg.CH.URL,
			Role:        cfg.CH.Role,
			Tag:         s.buildTag,
			DialTimeout: cfg.CH.DialTimeout,
		})
		if err != nil {
			_ = s.Close()
			return nil, err
		}
		s.CH = c
	}
	return s, nil
}

// Guard pings every opened backend and joins the failures
func (s *Store) Guard(ctx context.Context) error {
	var errs []error
	if p, ok := s.PG.(Pinger); ok {
		if err := p.Ping(ctx); err != nil {
			errs = append(errs, fmt.Errorf("pg: %w", err))
		}
	}
	if s.CH != nil {
		if err := s.CH.Ping(ctx); err != nil {
			errs = append(errs, fmt.Errorf("ch: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Close releases every opened backend
func (s *Store) Close() error {
	var errs []error
	if s.CH != nil {
		errs = append(errs, s.CH.Close())
	}
	if c, ok := s.PG.(interface{ Close() }); ok {
		c.Close()
	}
	return errors.Join(errs...)
}
