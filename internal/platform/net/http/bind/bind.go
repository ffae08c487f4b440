// Package bind decodes request bodies and validates them with go-playground/validator.
// Failures come back as perr errors naming the offending json field
package bind

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"

	perr "pontual/internal/platform/errors"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entrans "github.com/go-playground/validator/v10/translations/en"
)

var periodRe = regexp.MustCompile(`^(0[1-9]|1[0-2])/[0-9]{4}$`)

// tags are the attendance-specific rules plus shorter min/max messages.
// Custom rules accept "" so optional fields are left to required/omitempty
var tags = []struct {
	name string
	msg  string
	fn   validator.Func
}{
	{name: "min", msg: "{0} must be at least {1}"},
	{name: "max", msg: "{0} must be at most {1}"},
	{name: "period", msg: "{0} must be a period like 07/2025", fn: func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || periodRe.MatchString(s)
	}},
	{name: "isodate", msg: "{0} must be a date like 2025-07-15", fn: func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return true
		}
		_, err := time.Parse(time.DateOnly, s)
		return err == nil
	}},
}

var (
	setupOnce sync.Once
	validate  *validator.Validate
	trans     ut.Translator
)

func setup() {
	setupOnce.Do(func() {
		loc := en.New()
		trans, _ = ut.New(loc, loc).GetTranslator("en")

		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})
		_ = entrans.RegisterDefaultTranslations(validate, trans)

		for _, t := range tags {
			if t.fn != nil {
				_ = validate.RegisterValidation(t.name, t.fn)
			}
			_ = validate.RegisterTranslation(t.name, trans,
				func(u ut.Translator) error { return u.Add(t.name, t.msg, true) },
				func(u ut.Translator, fe validator.FieldError) string {
					s, _ := u.T(t.name, fe.Field(), fe.Param())
					return s
				})
		}
	})
}

// Struct validates v, returning the first failure as a Validation error on its field
func Struct(v any) error {
	setup()
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		fe := ves[0]
		return perr.WithField(perr.Validationf("%s", fe.Translate(trans)), fe.Field())
	}
	return perr.Wrap(err, perr.ErrorCodeJSON, "cannot validate payload")
}

// Options bounds JSON decoding
type Options struct {
	MaxBytes     int64 // 1MB when zero
	AllowUnknown bool  // accept fields T does not declare
}

// JSON decodes exactly one JSON value of type T from the body and validates it
func JSON[T any](r *http.Request, o Options) (T, error) {
	var v T
	if o.MaxBytes <= 0 {
		o.MaxBytes = 1 << 20
	}
	defer r.Body.Close()

	dec := json.NewDecoder(io.LimitReader(r.Body, o.MaxBytes))
	if !o.AllowUnknown {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return v, perr.JSONErrf("empty body")
		}
		return v, perr.JSONErrf("invalid JSON: %v", err)
	}
	if dec.More() {
		return v, perr.JSONErrf("unexpected data after the JSON body")
	}
	return v, Struct(v)
}
