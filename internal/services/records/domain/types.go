// Package domain defines the types and ports of the records service
package domain

import "pontual/internal/core/attendance"

// Filter narrows a snapshot; zero fields match everything
type Filter struct {
	Period   attendance.Period
	Employee string // exact name, corruption variants are distinct employees
}

// Match reports whether rec passes f
func (f Filter) Match(rec attendance.Record) bool {
	if !f.Period.IsZero() && rec.Period != f.Period {
		return false
	}
	return f.Employee == "" || rec.EmployeeName == f.Employee
}
