package domain

import (
	"testing"

	"pontual/internal/core/attendance"
)

func TestFilter_Match(t *testing.T) {
	rec := attendance.Record{EmployeeName: "Breno Silva", Period: attendance.MustPeriod("07/2025")}
	cases := []struct {
		f    Filter
		want bool
	}{
		{Filter{}, true},
		{Filter{Period: attendance.MustPeriod("07/2025")}, true},
		{Filter{Period: attendance.MustPeriod("08/2025")}, false},
		{Filter{Employee: "Breno Silva"}, true},
		{Filter{Employee: "breno silva"}, false},
		{Filter{Period: attendance.MustPeriod("07/2025"), Employee: "Ana Lima"}, false},
	}
	for i, c := range cases {
		if got := c.f.Match(rec); got != c.want {
			t.Fatalf("case %d: Match = %v, want %v", i, got, c.want)
		}
	}
}
