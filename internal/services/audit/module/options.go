package module

import (
	"time"

	"pontual/internal/platform/config"
)

// Options holds configuration settings for the audit module
type Options struct {
	PublishRuns bool
	Timeout     time.Duration
}

// FromConfig reads CORE_AUDIT_* settings; heuristics keys are read by heuristics.FromConfig
func FromConfig(cfg config.Conf) Options {
	ac := cfg.Prefix("CORE_AUDIT_")
	return Options{
		PublishRuns: ac.MayBool("PUBLISH_RUNS", false),
		Timeout:     ac.MayDuration("TIMEOUT", time.Minute),
	}
}
