package heuristics

import (
	"pontual/internal/core/attendance"
	"pontual/internal/platform/config"
)

// FromConfig loads the pack named by HEURISTICS_FILE (embedded default when unset) and
// applies the MIN_NAME_LENGTH, FRAGMENTS and STANDARD_DAY_MINUTES overrides found under c
func FromConfig(c config.Conf) (*Pack, error) {
	var (
		p   *Pack
		err error
	)
	if path := c.MayFile("HEURISTICS_FILE"); path != "" {
		p, err = LoadFile(path)
	} else {
		p, err = Load()
	}
	if err != nil {
		return nil, err
	}

	p = p.Merge(c.MayCSV("FRAGMENTS", nil))
	p.MinNameLength = c.MayIntRange("MIN_NAME_LENGTH", p.MinNameLength, 1, 256)
	p.StandardDayMinutes = c.MayIntRange("STANDARD_DAY_MINUTES", p.StandardDayMinutes, 1, attendance.MaxDayMinutes)
	return p, nil
}
