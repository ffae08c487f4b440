package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	perr "pontual/internal/platform/errors"
	"pontual/internal/platform/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const (
	backoffStart   = 250 * time.Millisecond
	backoffCeiling = 16 * time.Second

	// txAttempts bounds replays of a transaction that hit a serialization failure or deadlock
	txAttempts = 3
)

// PG is the pooled Postgres record store
type PG struct {
	*pgxpool.Pool
}

var _ TxRunner = (*PG)(nil)

// Tx runs fn in a transaction, replaying it while the failure is retryable
func (p *PG) Tx(ctx context.Context, fn func(q Queryer) error) error {
	var err error
	for range txAttempts {
		err = pgx.BeginFunc(ctx, p.Pool, func(tx pgx.Tx) error { return fn(tx) })
		if err == nil || !perr.IsRetryable(err) || ctx.Err() != nil {
			return err
		}
	}
	return err
}

// pingPool is swapped by tests
var pingPool = func(ctx context.Context, p *pgxpool.Pool) error { return p.Ping(ctx) }

func openPG(ctx context.Context, cfg Config, log logger.Logger) (*PG, error) {
	pc, err := pgxpool.ParseConfig(cfg.PG.URL)
	if err != nil {
		return nil, fmt.Errorf("pg: parse url: %w", err)
	}
	if cfg.PG.MaxConns > 0 {
		pc.MaxConns = cfg.PG.MaxConns
	}
	if cfg.AppName != "" {
		pc.ConnConfig.RuntimeParams["application_name"] = cfg.AppName
	}
	if cfg.PG.LogSQL {
		pc.ConnConfig.Tracer = sqlTracer{
			log:  log.Level(zerolog.DebugLevel).With().Str("component", "pg").Logger(),
			slow: time.Duration(cfg.PG.SlowQueryMs) * time.Millisecond,
		}
	}
	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("pg: pool: %w", err)
	}

	attempts := max(cfg.PG.ConnectRetries, 1)
	timeout := cfg.PG.PingTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	wait := backoffStart
	for i := 1; ; i++ {
		pctx, cancel := context.WithTimeout(ctx, timeout)
		err = pingPool(pctx, pool)
		cancel()
		if err == nil {
			return &PG{Pool: pool}, nil
		}
		log.Warn().Err(err).Int("attempt", i).Int("of", attempts).Msg("postgres not ready")
		if i == attempts {
			break
		}
		select {
		case <-ctx.Done():
			pool.Close()
			return nil, ctx.Err()
		case <-time.After(wait):
		}
		wait = min(wait*2, backoffCeiling)
	}
	pool.Close()
	return nil, fmt.Errorf("postgres ping failed after %d attempts: %w", attempts, err)
}

// sqlTracer logs every statement, at warn once it exceeds slow
type sqlTracer struct {
	log  zerolog.Logger
	slow time.Duration
}

type traceKey struct{}

type traceStart struct {
	sql  string
	args []any
	at   time.Time
}

func (t sqlTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, d pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, traceKey{}, traceStart{sql: d.SQL, args: d.Args, at: time.Now()})
}

func (t sqlTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, d pgx.TraceQueryEndData) {
	st, ok := ctx.Value(traceKey{}).(traceStart)
	if !ok {
		return
	}
	took := time.Since(st.at)
	slow := t.slow > 0 && took >= t.slow
	ev := t.log.Info()
	if slow || d.Err != nil {
		ev = t.log.Warn()
	}
	ev.Dur("took", took).
		Bool("slow", slow).
		Str("sql", strings.Join(strings.Fields(st.sql), " ")).
		Int("args", len(st.args)).
		Str("tag", d.CommandTag.String()).
		Err(d.Err).
		Msg("pg query")
}
