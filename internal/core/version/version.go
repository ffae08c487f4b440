// Package version reports build information stamped at link time
package version

// BuildInfo holds version information about a pontual binary
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Set via -ldflags "-X 'pontual/internal/core/version.version=v0.3.0'
// -X 'pontual/internal/core/version.commit=abcd' -X 'pontual/internal/core/version.date=2025-08-01'"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Info returns the build information for service
func Info(service string) BuildInfo {
	if service == "" {
		service = "pontual"
	}
	return BuildInfo{
		Service: service,
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

// Tag is the short build label used in client info and logs, e.g. "dev@none"
func Tag() string { return version + "@" + commit }
