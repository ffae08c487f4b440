package module

import (
	"time"

	"pontual/internal/platform/config"
)

// Options holds configuration settings for the ingest module
type Options struct {
	Workers    int
	DocTimeout time.Duration
	MaxUpload  int64
}

// FromConfig reads CORE_INGEST_* settings
func FromConfig(cfg config.Conf) Options {
	ic := cfg.Prefix("CORE_INGEST_")
	return Options{
		Workers:    ic.MayIntRange("WORKERS", 4, 1, 64),
		DocTimeout: ic.MayDuration("DOC_TIMEOUT", time.Minute),
		MaxUpload:  int64(ic.MayIntRange("MAX_UPLOAD_MB", 32, 1, 1024)) << 20,
	}
}
