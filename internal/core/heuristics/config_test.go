package heuristics

import (
	"os"
	"path/filepath"
	"testing"

	"pontual/internal/platform/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromConfig_EmbeddedWithOverrides(t *testing.T) {
	t.Setenv("CORE_AUDIT_FRAGMENTS", "PQ, xx")
	t.Setenv("CORE_AUDIT_MIN_NAME_LENGTH", "7")
	t.Setenv("CORE_AUDIT_STANDARD_DAY_MINUTES", "440")

	p, err := FromConfig(config.New().Prefix("CORE_AUDIT_"))
	require.NoError(t, err)
	assert.Equal(t, []string{"pq", "xx"}, p.Fragments)
	assert.Equal(t, 7, p.MinNameLength)
	assert.Equal(t, 440, p.StandardDayMinutes)
}

func TestFromConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "heuristics.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
version: 1
names:
  min_length: 4
  fragments: [zz]
calendar:
  weekend: [sunday]
  holidays: ["2025-07-04"]
standard_day_minutes: 360
`), 0o600))
	t.Setenv("CORE_AUDIT_HEURISTICS_FILE", path)
	t.Setenv("CORE_AUDIT_FRAGMENTS", "yy")

	p, err := FromConfig(config.New().Prefix("CORE_AUDIT_"))
	require.NoError(t, err)
	assert.Equal(t, []string{"yy", "zz"}, p.Fragments)
	assert.Equal(t, 4, p.MinNameLength)
	assert.Equal(t, 360, p.StandardDayMinutes)
	assert.Len(t, p.Holidays, 1)
}

func TestFromConfig_BadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: 9\n"), 0o600))
	t.Setenv("CORE_AUDIT_HEURISTICS_FILE", path)

	_, err := FromConfig(config.New().Prefix("CORE_AUDIT_"))
	require.Error(t, err)
}
