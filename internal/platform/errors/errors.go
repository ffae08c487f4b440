// Package errors is the error model shared by the engine, the stores and the API.
// Import it as perr
package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
)

// ErrorCode classifies an error for callers and clients. Values are on the wire; append only
type ErrorCode uint16

const (
	ErrorCodeUnknown         ErrorCode = iota
	ErrorCodePanic                     // recovered by middleware
	ErrorCodeUnavailable               // transient; a retry may succeed
	ErrorCodeConflict                  // state conflict
	ErrorCodeInvalidArgument           // bad request parameters
	ErrorCodeValidation                // input that breaks a domain rule (bad rows, empty periods)
	ErrorCodeJSON                      // undecodable request body
	ErrorCodeNotFound
	ErrorCodeDuplicateKey
	ErrorCodeDB
	ErrorCodeExtraction // a source document the extractors cannot read
)

var codes = [...]struct {
	name   string
	status int
}{
	ErrorCodeUnknown:         {"unknown", http.StatusInternalServerError},
	ErrorCodePanic:           {"panic", http.StatusInternalServerError},
	ErrorCodeUnavailable:     {"unavailable", http.StatusServiceUnavailable},
	ErrorCodeConflict:        {"conflict", http.StatusConflict},
	ErrorCodeInvalidArgument: {"invalid_argument", http.StatusUnprocessableEntity},
	ErrorCodeValidation:      {"validation", http.StatusBadRequest},
	ErrorCodeJSON:            {"json", http.StatusBadRequest},
	ErrorCodeNotFound:        {"not_found", http.StatusNotFound},
	ErrorCodeDuplicateKey:    {"duplicate_key", http.StatusConflict},
	ErrorCodeDB:              {"db", http.StatusInternalServerError},
	ErrorCodeExtraction:      {"extraction", http.StatusUnprocessableEntity},
}

// String is the label used in logs and metrics
func (c ErrorCode) String() string {
	if int(c) < len(codes) {
		return codes[c].name
	}
	return fmt.Sprintf("code_%d", uint16(c))
}

// Status is the HTTP status a response carrying c uses
func (c ErrorCode) Status() int {
	if int(c) < len(codes) {
		return codes[c].status
	}
	return http.StatusInternalServerError
}

// ErrNotFound is the shared not found sentinel
var ErrNotFound = New(ErrorCodeNotFound, "not found")

// Error carries a code plus the optional field, operation and per-item details.
// The wrapped cause is logged but never sent to clients
type Error struct {
	cause   error
	msg     string
	code    ErrorCode
	field   string
	op      string
	details []Wire
}

// Wire is what clients see
type Wire struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
	Details []Wire    `json:"details,omitempty"`
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.msg + ": " + e.cause.Error()
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.cause }

func (e *Error) Code() ErrorCode { return e.code }
func (e *Error) Field() string   { return e.field }
func (e *Error) Op() string      { return e.op }

// As returns the outermost *Error in err's chain
func As(err error) (*Error, bool) {
	var e *Error
	ok := stderrs.As(err, &e)
	return e, ok
}

// WireFrom renders any error for clients. Foreign errors become unknown
func WireFrom(err error) Wire {
	if err == nil {
		return Wire{}
	}
	if e, ok := As(err); ok {
		return Wire{Code: e.code, Message: e.msg, Field: e.field, Details: e.details}
	}
	return Wire{Code: ErrorCodeUnknown, Message: err.Error()}
}

// CodeOf returns err's code, or unknown for foreign errors
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

// IsCode reports whether err carries code
func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// HTTPStatus maps any error to a response status
func HTTPStatus(err error) int { return CodeOf(err).Status() }

// with returns a copy of err's *Error changed by set. Foreign errors pass through
func with(err error, set func(*Error)) error {
	e, ok := As(err)
	if !ok {
		return err
	}
	c := *e
	set(&c)
	return &c
}

// WithField names the offending input field
func WithField(err error, field string) error {
	return with(err, func(e *Error) { e.field = field })
}

// WithOp tags the operation that failed, e.g. "records.append"
func WithOp(err error, op string) error {
	return with(err, func(e *Error) { e.op = op })
}

// WithDetails appends per-item failures such as each unreadable row of a document
func WithDetails(err error, items ...error) error {
	return with(err, func(e *Error) {
		d := append([]Wire(nil), e.details...)
		for _, it := range items {
			if it != nil {
				d = append(d, WireFrom(it))
			}
		}
		e.details = d
	})
}

func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

func Newf(code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...)}
}

// Wrap keeps cause behind a coded message
func Wrap(cause error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, cause: cause}
}

func Wrapf(cause error, code ErrorCode, format string, a ...any) error {
	return Wrap(cause, code, fmt.Sprintf(format, a...))
}

func coded(code ErrorCode) func(string, ...any) error {
	return func(format string, a ...any) error { return Newf(code, format, a...) }
}

// Shorthands for the codes the engine raises most
var (
	InvalidArgf  = coded(ErrorCodeInvalidArgument)
	Validationf  = coded(ErrorCodeValidation)
	Extractionf  = coded(ErrorCodeExtraction)
	Unavailablef = coded(ErrorCodeUnavailable)
	JSONErrf     = coded(ErrorCodeJSON)
	DBf          = coded(ErrorCodeDB)
	PanicErrf    = coded(ErrorCodePanic)
)
