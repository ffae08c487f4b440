package attendance

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriod(t *testing.T) {
	cases := []struct {
		in   string
		want Period
		ok   bool
	}{
		{"07/2025", Period{2025, time.July}, true},
		{" 7/2025 ", Period{2025, time.July}, true},
		{"2025-12", Period{2025, time.December}, true},
		{"13/2025", Period{}, false},
		{"00/2025", Period{}, false},
		{"07/25x", Period{}, false},
		{"072025", Period{}, false},
		{"", Period{}, false},
	}
	for _, c := range cases {
		got, err := ParsePeriod(c.in)
		if !c.ok {
			assert.Error(t, err, c.in)
			continue
		}
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, got, c.in)
	}
}

func TestPeriod_StringAndJSON(t *testing.T) {
	p := MustPeriod("3/2024")
	assert.Equal(t, "03/2024", p.String())

	b, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `"03/2024"`, string(b))

	var back Period
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, p, back)

	assert.Error(t, json.Unmarshal([]byte(`"99/2024"`), &back))
	assert.Panics(t, func() { MustPeriod("nope") })
}

func TestPeriod_Days(t *testing.T) {
	assert.Len(t, MustPeriod("02/2024").Days(), 29)
	assert.Len(t, MustPeriod("02/2025").Days(), 28)

	days := MustPeriod("07/2025").Days()
	require.Len(t, days, 31)
	assert.Equal(t, Date{2025, time.July, 1}, days[0])
	assert.Equal(t, Date{2025, time.July, 31}, days[30])
	assert.True(t, MustPeriod("07/2025").Contains(days[10]))
	assert.False(t, MustPeriod("08/2025").Contains(days[10]))
}

func TestPeriod_Before(t *testing.T) {
	assert.True(t, MustPeriod("12/2024").Before(MustPeriod("01/2025")))
	assert.True(t, MustPeriod("01/2025").Before(MustPeriod("02/2025")))
	assert.False(t, MustPeriod("02/2025").Before(MustPeriod("02/2025")))
	assert.True(t, Period{}.IsZero())
}

func TestDate_ISOAndOrder(t *testing.T) {
	d, err := ParseISODate(" 2025-07-01 ")
	require.NoError(t, err)
	assert.Equal(t, "2025-07-01", d.String())
	assert.Equal(t, time.Tuesday, d.Weekday())
	assert.Equal(t, MustPeriod("07/2025"), d.Period())

	_, err = ParseISODate("01/07/2025")
	assert.Error(t, err)

	ds := []Date{{2025, 7, 3}, {2024, 12, 31}, {2025, 7, 1}}
	SortDates(ds)
	assert.Equal(t, []Date{{2024, 12, 31}, {2025, 7, 1}, {2025, 7, 3}}, ds)

	var back Date
	require.NoError(t, json.Unmarshal([]byte(`"2025-07-03"`), &back))
	assert.Equal(t, Date{2025, 7, 3}, back)
}

func TestRowErrors(t *testing.T) {
	cause := errors.New("strconv")
	malformed := &MalformedRowError{Field: FieldPredicted, Value: "8h", Err: cause}
	wrapped := &RowError{Index: 2, Err: malformed}

	assert.Equal(t, `row 3: malformed predicted "8h": strconv`, wrapped.Error())
	assert.Equal(t, FieldPredicted, FieldOf(wrapped))
	assert.ErrorIs(t, wrapped, cause)

	var oor *OutOfRangeError
	wrapped = &RowError{Index: 0, Err: &OutOfRangeError{Field: FieldRealized, Value: 1441}}
	require.ErrorAs(t, wrapped, &oor)
	assert.Equal(t, FieldRealized, FieldOf(wrapped))
	assert.Contains(t, oor.Error(), "1441 out of range [0,1440]")

	assert.Empty(t, FieldOf(&EmptyPeriodError{}))
}

func TestRecord_KeyAndObservedDates(t *testing.T) {
	rec := Record{
		EmployeeName: "Ana Lima",
		Period:       MustPeriod("07/2025"),
		Days: []DayEntry{
			{Date: Date{2025, 7, 2}}, {Date: Date{2025, 7, 1}}, {Date: Date{2025, 7, 2}},
		},
	}
	assert.Equal(t, Key{EmployeeName: "Ana Lima", Period: MustPeriod("07/2025")}, rec.Key())
	assert.Equal(t, []Date{{2025, 7, 1}, {2025, 7, 2}}, rec.ObservedDates())
}
