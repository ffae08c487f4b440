package module

import (
	"time"

	"pontual/internal/platform/config"
)

// Options holds configuration settings for the records module
type Options struct {
	DayMirror    bool
	Migrate      bool
	QueryTimeout time.Duration
	WriteTimeout time.Duration
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	rc := cfg.Prefix("CORE_RECORDS_")
	return Options{
		DayMirror:    rc.MayBool("DAY_MIRROR", false),
		Migrate:      rc.MayBool("MIGRATE", true),
		QueryTimeout: rc.MayDuration("QUERY_TIMEOUT", 30*time.Second),
		WriteTimeout: rc.MayDuration("WRITE_TIMEOUT", 10*time.Second),
	}
}
