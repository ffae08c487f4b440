// Package heuristics loads the tunable audit values (name thresholds, corruption
// fragments, calendar rules, standard day length) from the embedded heuristics.yaml
// or an operator-supplied override file
package heuristics

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"gopkg.in/yaml.v2"

	"pontual/internal/core/attendance"
	"pontual/internal/core/calendar"
)

//go:embed heuristics.yaml
var embedded []byte

// Version is the only file version understood by this package
const Version = 1

type rawNames struct {
	MinLength int      `yaml:"min_length"`
	Fragments []string `yaml:"fragments"`
}

type rawCalendar struct {
	Weekend  []string `yaml:"weekend"`
	Holidays []string `yaml:"holidays"`
}

type rawPack struct {
	Version            int         `yaml:"version"`
	Names              rawNames    `yaml:"names"`
	Calendar           rawCalendar `yaml:"calendar"`
	StandardDayMinutes int         `yaml:"standard_day_minutes"`
}

// Pack is a validated heuristics set
type Pack struct {
	Version            int
	MinNameLength      int
	Fragments          []string // trimmed, case-folded, deduplicated, sorted
	Weekend            []time.Weekday
	Holidays           []attendance.Date
	StandardDayMinutes int
}

// Load returns the embedded default pack
func Load() (*Pack, error) {
	return Parse(embedded)
}

// LoadFile reads and validates a pack from path
func LoadFile(path string) (*Pack, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("heuristics: read %s: %w", path, err)
	}
	p, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("heuristics: %s: %w", path, err)
	}
	return p, nil
}

// Parse decodes and validates a YAML pack
func Parse(b []byte) (*Pack, error) {
	var rp rawPack
	if err := yaml.UnmarshalStrict(b, &rp); err != nil {
		return nil, fmt.Errorf("heuristics: parse: %w", err)
	}
	if rp.Version != Version {
		return nil, fmt.Errorf("heuristics: unsupported version %d (want %d)", rp.Version, Version)
	}
	if rp.Names.MinLength < 1 {
		return nil, fmt.Errorf("heuristics: names.min_length must be >= 1, got %d", rp.Names.MinLength)
	}
	if rp.StandardDayMinutes <= 0 || rp.StandardDayMinutes > attendance.MaxDayMinutes {
		return nil, fmt.Errorf("heuristics: standard_day_minutes must be in (0,%d], got %d",
			attendance.MaxDayMinutes, rp.StandardDayMinutes)
	}

	p := &Pack{
		Version:            rp.Version,
		MinNameLength:      rp.Names.MinLength,
		StandardDayMinutes: rp.StandardDayMinutes,
	}

	seenDay := make(map[time.Weekday]bool, 7)
	for _, s := range rp.Calendar.Weekend {
		wd, err := ParseWeekday(s)
		if err != nil {
			return nil, err
		}
		if !seenDay[wd] {
			seenDay[wd] = true
			p.Weekend = append(p.Weekend, wd)
		}
	}
	sort.Slice(p.Weekend, func(i, j int) bool { return p.Weekend[i] < p.Weekend[j] })

	for _, s := range rp.Calendar.Holidays {
		d, err := attendance.ParseISODate(strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("heuristics: holiday %q: %w", s, err)
		}
		p.Holidays = append(p.Holidays, d)
	}
	attendance.SortDates(p.Holidays)

	p.Fragments = foldFragments(rp.Names.Fragments)
	return p, nil
}

// Merge returns a copy of p with extra fragments appended (folded and deduplicated)
func (p *Pack) Merge(extra []string) *Pack {
	c := *p
	all := make([]string, 0, len(p.Fragments)+len(extra))
	all = append(all, p.Fragments...)
	all = append(all, extra...)
	c.Fragments = foldFragments(all)
	c.Weekend = append([]time.Weekday(nil), p.Weekend...)
	c.Holidays = append([]attendance.Date(nil), p.Holidays...)
	return &c
}

// Calendar returns the calendar rules described by the pack
func (p *Pack) Calendar() calendar.Rules {
	return calendar.Rules{
		Weekend:  append([]time.Weekday(nil), p.Weekend...),
		Holidays: append([]attendance.Date(nil), p.Holidays...),
	}
}

var weekdays = map[string]time.Weekday{
	"sunday": time.Sunday, "sun": time.Sunday, "domingo": time.Sunday,
	"monday": time.Monday, "mon": time.Monday, "segunda": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday, "terça": time.Tuesday, "terca": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday, "quarta": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday, "quinta": time.Thursday,
	"friday": time.Friday, "fri": time.Friday, "sexta": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday, "sábado": time.Saturday, "sabado": time.Saturday,
}

// ParseWeekday accepts English or Portuguese weekday names, full or abbreviated
func ParseWeekday(s string) (time.Weekday, error) {
	if wd, ok := weekdays[strings.ToLower(strings.TrimSpace(s))]; ok {
		return wd, nil
	}
	return 0, fmt.Errorf("heuristics: unknown weekday %q", s)
}

func foldFragments(in []string) []string {
	fold := cases.Fold()
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, f := range in {
		f = fold.String(strings.TrimSpace(f))
		if f == "" {
			continue
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}
