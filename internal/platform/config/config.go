// Package config reads process settings from environment variables.
// Every accessor has a fallback; malformed values are logged and replaced by it
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"pontual/internal/platform/logger"
)

// Conf is a namespaced view over the environment, e.g. Conf.Prefix("CORE_INGEST_")
type Conf struct{ ns string }

// New returns the root view
func New() Conf { return Conf{} }

// Prefix narrows the view; prefixes nest left to right
func (c Conf) Prefix(p string) Conf { return Conf{ns: c.ns + p} }

// Name is the full variable name of key under this view
func (c Conf) Name(key string) string { return c.ns + key }

func (c Conf) value(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(c.Name(key)))
	return v, v != ""
}

// parsed reads key through parse, falling back to def when unset or unparsable
func parsed[T any](c Conf, key string, def T, parse func(string) (T, error)) T {
	s, ok := c.value(key)
	if !ok {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().Str("key", c.Name(key)).Str("value", s).Interface("default", def).
			Msg("unparsable setting; using default")
		return def
	}
	return v
}

// MayString returns the value of key or def
func (c Conf) MayString(key, def string) string {
	return parsed(c, key, def, func(s string) (string, error) { return s, nil })
}

// MayInt returns the integer value of key or def
func (c Conf) MayInt(key string, def int) int { return parsed(c, key, def, strconv.Atoi) }

// MayIntRange is MayInt bounded to [lo, hi]; values outside fall back to def
func (c Conf) MayIntRange(key string, def, lo, hi int) int {
	v := c.MayInt(key, def)
	if v < lo || v > hi {
		logger.Get().Warn().Str("key", c.Name(key)).Int("value", v).Int("min", lo).Int("max", hi).
			Msg("setting out of range; using default")
		return def
	}
	return v
}

// MayBool returns the boolean value of key or def
func (c Conf) MayBool(key string, def bool) bool { return parsed(c, key, def, strconv.ParseBool) }

// MayDuration returns the duration value of key (e.g. "90s") or def
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return parsed(c, key, def, time.ParseDuration)
}

// MayCSV splits a comma separated value, dropping blank items. No items means def
func (c Conf) MayCSV(key string, def []string) []string {
	s, ok := c.value(key)
	if !ok {
		return def
	}
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayFile returns the path in key, or "" when unset.
// A path that is not a regular file is a deployment mistake and panics
func (c Conf) MayFile(key string) string {
	p, ok := c.value(key)
	if !ok {
		return ""
	}
	if fi, err := os.Stat(p); err != nil || !fi.Mode().IsRegular() {
		logger.Get().Panic().Str("key", c.Name(key)).Str("path", p).Msg("setting does not name a regular file")
	}
	return p
}
