// Package dedup finds employee/period buckets that were ingested more than once
// and picks the current record of each bucket. Records are never removed
package dedup

import (
	"sort"

	"pontual/internal/core/attendance"
)

// Status marks a record's standing inside its group
type Status string

// Record standings
const (
	StatusCurrent Status = "current"
	StatusStale   Status = "stale"
)

// Member is one record of a duplicate group
type Member struct {
	Record attendance.Record `json:"record"`
	Status Status            `json:"status"`
}

// Group holds every record sharing one key, oldest first; the last member is current
type Group struct {
	Key     attendance.Key `json:"key"`
	Members []Member       `json:"members"`
}

// Current returns the group's current record
func (g Group) Current() attendance.Record { return g.Members[len(g.Members)-1].Record }

// Stale returns every non-current record, oldest first
func (g Group) Stale() []attendance.Record {
	out := make([]attendance.Record, 0, len(g.Members)-1)
	for _, m := range g.Members[:len(g.Members)-1] {
		out = append(out, m.Record)
	}
	return out
}

// Resolution is the outcome of resolving a snapshot
type Resolution struct {
	Groups  []Group             `json:"groups"`  // keys with more than one record
	Current []attendance.Record `json:"current"` // one record per key
}

// StaleCount returns how many records were superseded
func (r Resolution) StaleCount() int {
	n := 0
	for _, g := range r.Groups {
		n += len(g.Members) - 1
	}
	return n
}

// Less orders two records of the same key from oldest to newest:
// IngestedAt, then SourceFile, then ID
func Less(a, b attendance.Record) bool {
	if !a.IngestedAt.Equal(b.IngestedAt) {
		return a.IngestedAt.Before(b.IngestedAt)
	}
	if a.SourceFile != b.SourceFile {
		return a.SourceFile < b.SourceFile
	}
	return a.ID < b.ID
}

func keyLess(a, b attendance.Key) bool {
	if a.EmployeeName != b.EmployeeName {
		return a.EmployeeName < b.EmployeeName
	}
	return a.Period.Before(b.Period)
}

// Resolve groups records by (EmployeeName, Period) and elects the newest record of each
// group as current. The input slice is not modified
func Resolve(records []attendance.Record) Resolution {
	buckets := make(map[attendance.Key][]attendance.Record, len(records))
	keys := make([]attendance.Key, 0, len(records))
	for _, r := range records {
		k := r.Key()
		if _, ok := buckets[k]; !ok {
			keys = append(keys, k)
		}
		buckets[k] = append(buckets[k], r)
	}
	sort.Slice(keys, func(i, j int) bool { return keyLess(keys[i], keys[j]) })

	res := Resolution{Groups: []Group{}, Current: make([]attendance.Record, 0, len(keys))}
	for _, k := range keys {
		recs := buckets[k]
		sort.SliceStable(recs, func(i, j int) bool { return Less(recs[i], recs[j]) })

		res.Current = append(res.Current, recs[len(recs)-1])
		if len(recs) < 2 {
			continue
		}
		g := Group{Key: k, Members: make([]Member, len(recs))}
		for i, r := range recs {
			g.Members[i] = Member{Record: r, Status: StatusStale}
		}
		g.Members[len(recs)-1].Status = StatusCurrent
		res.Groups = append(res.Groups, g)
	}
	return res
}
