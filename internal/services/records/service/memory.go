package service

import (
	"context"
	"sort"
	"sync"

	"pontual/internal/core/attendance"
	"pontual/internal/core/dedup"
	perr "pontual/internal/platform/errors"
	"pontual/internal/services/records/domain"
)

// Memory is an in-process store with the same append-only contract as Service.
// Dry runs and tests use it when no database is configured
type Memory struct {
	mu   sync.RWMutex
	recs []attendance.Record
}

// NewMemory returns an empty in-process store
func NewMemory() *Memory { return &Memory{} }

// Append implements domain.WriterPort
func (m *Memory) Append(_ context.Context, rec attendance.Record) error {
	if err := check(rec); err != nil {
		return perr.WithOp(err, "records.append")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.recs {
		if r.ID == rec.ID {
			return perr.WithOp(perr.Newf(perr.ErrorCodeDuplicateKey, "record %s already stored", rec.ID), "records.append")
		}
	}
	rec.Days = append([]attendance.DayEntry(nil), rec.Days...)
	m.recs = append(m.recs, rec)
	return nil
}

// Snapshot implements domain.ReaderPort with the repo's ordering
func (m *Memory) Snapshot(_ context.Context, f domain.Filter) ([]attendance.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []attendance.Record
	for _, r := range m.recs {
		if f.Match(r) {
			r.Days = append([]attendance.DayEntry(nil), r.Days...)
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.EmployeeName != b.EmployeeName {
			return a.EmployeeName < b.EmployeeName
		}
		if a.Period != b.Period {
			return a.Period.Before(b.Period)
		}
		return dedup.Less(a, b)
	})
	return out, nil
}

// Len reports how many records are stored
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.recs)
}
