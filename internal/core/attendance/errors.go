package attendance

import "fmt"

// Field names used in row-level errors
const (
	FieldDate      = "date"
	FieldPredicted = "predicted"
	FieldRealized  = "realized"
)

// MalformedRowError reports a row field that does not parse
type MalformedRowError struct {
	Field string
	Value string
	Err   error
}

func (e *MalformedRowError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed %s %q: %v", e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("malformed %s %q", e.Field, e.Value)
}

// Unwrap returns the parse cause
func (e *MalformedRowError) Unwrap() error { return e.Err }

// OutOfRangeError reports a minute value outside [0, MaxDayMinutes]
type OutOfRangeError struct {
	Field string
	Value int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s %d out of range [0,%d]", e.Field, e.Value, MaxDayMinutes)
}

// EmptyPeriodError reports an attempt to aggregate zero days
type EmptyPeriodError struct {
	EmployeeName string
	Period       string
	SourceFile   string
}

func (e *EmptyPeriodError) Error() string {
	return fmt.Sprintf("no day entries for %q in %s (%s)", e.EmployeeName, e.Period, e.SourceFile)
}

// RowError ties a row-level failure to its position in the document
type RowError struct {
	Index int // zero-based row index in document order
	Err   error
}

func (e *RowError) Error() string { return fmt.Sprintf("row %d: %v", e.Index+1, e.Err) }

// Unwrap returns the underlying row failure
func (e *RowError) Unwrap() error { return e.Err }

// FieldOf returns the offending field of a row-level error, if any
func FieldOf(err error) string {
	switch e := err.(type) {
	case *RowError:
		return FieldOf(e.Err)
	case *MalformedRowError:
		return e.Field
	case *OutOfRangeError:
		return e.Field
	}
	return ""
}
