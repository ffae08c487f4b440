package heuristics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EmbeddedDefaults(t *testing.T) {
	p, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 1, p.Version)
	assert.Equal(t, 5, p.MinNameLength)
	assert.Empty(t, p.Fragments)
	assert.Equal(t, []time.Weekday{time.Sunday, time.Saturday}, p.Weekend)
	assert.Empty(t, p.Holidays)
	assert.Equal(t, 480, p.StandardDayMinutes)
}

func TestParse_FullFile(t *testing.T) {
	p, err := Parse([]byte(`
version: 1
names:
  min_length: 6
  fragments: ["  PQ ", "pq", "Xx"]
calendar:
  weekend: [domingo, Sábado]
  holidays: ["2025-12-25", "2025-01-01"]
standard_day_minutes: 440
`))
	require.NoError(t, err)
	assert.Equal(t, 6, p.MinNameLength)
	assert.Equal(t, []string{"pq", "xx"}, p.Fragments)
	assert.Equal(t, []time.Weekday{time.Sunday, time.Saturday}, p.Weekend)
	require.Len(t, p.Holidays, 2)
	assert.Equal(t, "2025-01-01", p.Holidays[0].String())
	assert.Equal(t, 440, p.StandardDayMinutes)

	rules := p.Calendar()
	assert.Len(t, rules.Holidays, 2)
	assert.Len(t, rules.Weekend, 2)
}

func TestParse_Rejects(t *testing.T) {
	cases := map[string]string{
		"version":      "version: 2\nnames: {min_length: 5}\nstandard_day_minutes: 480\n",
		"min length":   "version: 1\nnames: {min_length: 0}\nstandard_day_minutes: 480\n",
		"weekday":      "version: 1\nnames: {min_length: 5}\ncalendar: {weekend: [funday]}\nstandard_day_minutes: 480\n",
		"holiday":      "version: 1\nnames: {min_length: 5}\ncalendar: {holidays: [\"25/12/2025\"]}\nstandard_day_minutes: 480\n",
		"day minutes":  "version: 1\nnames: {min_length: 5}\nstandard_day_minutes: 1441\n",
		"zero minutes": "version: 1\nnames: {min_length: 5}\nstandard_day_minutes: 0\n",
		"unknown key":  "version: 1\nnames: {min_length: 5}\nstandard_day_minutes: 480\nextra: true\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			require.Error(t, err)
		})
	}
}

func TestMerge_DoesNotMutate(t *testing.T) {
	p, err := Parse([]byte("version: 1\nnames: {min_length: 5, fragments: [pq]}\nstandard_day_minutes: 480\n"))
	require.NoError(t, err)

	m := p.Merge([]string{"ZZ", "PQ", ""})
	assert.Equal(t, []string{"pq", "zz"}, m.Fragments)
	assert.Equal(t, []string{"pq"}, p.Fragments)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "h.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: 1\nnames: {min_length: 3}\nstandard_day_minutes: 480\n"), 0o600))

	p, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, p.MinNameLength)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}

func TestParseWeekday(t *testing.T) {
	wd, err := ParseWeekday(" Friday ")
	require.NoError(t, err)
	assert.Equal(t, time.Friday, wd)

	_, err = ParseWeekday("")
	require.Error(t, err)
}
