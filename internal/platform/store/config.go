package store

import (
	"time"

	"pontual/internal/platform/config"
)

// Config aggregates per backend configuration
type Config struct {
	AppName string

	PG PGConfig
	CH CHConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	// Guard/boot knobs:
	ConnectRetries int           // default 6 (63s(ish) max with exponential backoff)
	PingTimeout    time.Duration // default 5s
}

// CHConfig configures the clickhouse analytics mirror
type CHConfig struct {
	Enabled     bool
	URL         string
	Role        string
	DialTimeout time.Duration
}

// FromEnv reads SERVICE_PGSQL_* and SERVICE_CLICKHOUSE_* under root.
// A backend is enabled when its DBURL is set, unless ENABLED says otherwise
func FromEnv(root config.Conf, appName string) Config {
	pgc := root.Prefix("SERVICE_PGSQL_")
	chc := root.Prefix("SERVICE_CLICKHOUSE_")

	pgURL := pgc.MayString("DBURL", "")
	chURL := chc.MayString("DBURL", "")

	return Config{
		AppName: appName,
		PG: PGConfig{
			Enabled:        pgc.MayBool("ENABLED", pgURL != ""),
			URL:            pgURL,
			MaxConns:       int32(pgc.MayIntRange("MAX_CONNS", 8, 1, 512)),
			LogSQL:         pgc.MayBool("LOG_SQL", false),
			SlowQueryMs:    pgc.MayInt("SLOW_MS", 250),
			ConnectRetries: pgc.MayIntRange("CONNECT_RETRIES", 6, 1, 20),
			PingTimeout:    pgc.MayDuration("PING_TIMEOUT", 5*time.Second),
		},
		CH: CHConfig{
			Enabled:     chc.MayBool("ENABLED", chURL != ""),
			URL:         chURL,
			Role:        appName,
			DialTimeout: chc.MayDuration("DIAL_TIMEOUT", 5*time.Second),
		},
	}
}
