package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCode_StatusAndName(t *testing.T) {
	cases := []struct {
		code   ErrorCode
		status int
		name   string
	}{
		{ErrorCodeNotFound, http.StatusNotFound, "not_found"},
		{ErrorCodeInvalidArgument, http.StatusUnprocessableEntity, "invalid_argument"},
		{ErrorCodeExtraction, http.StatusUnprocessableEntity, "extraction"},
		{ErrorCodeDuplicateKey, http.StatusConflict, "duplicate_key"},
		{ErrorCodeValidation, http.StatusBadRequest, "validation"},
		{ErrorCodeJSON, http.StatusBadRequest, "json"},
		{ErrorCodeUnavailable, http.StatusServiceUnavailable, "unavailable"},
		{ErrorCodeDB, http.StatusInternalServerError, "db"},
		{ErrorCode(9999), http.StatusInternalServerError, "code_9999"},
	}
	for _, c := range cases {
		assert.Equal(t, c.status, c.code.Status(), c.name)
		assert.Equal(t, c.name, c.code.String())
	}
}

func TestWrap_KeepsCauseOutOfWire(t *testing.T) {
	cause := stderrs.New("zip: not a valid zip file")
	err := Wrapf(cause, ErrorCodeExtraction, "cannot read %s", "ponto-07.xlsx")

	require.ErrorIs(t, err, cause)
	assert.Equal(t, "cannot read ponto-07.xlsx: zip: not a valid zip file", err.Error())
	assert.Equal(t, http.StatusUnprocessableEntity, HTTPStatus(err))

	w := WireFrom(err)
	assert.Equal(t, Wire{Code: ErrorCodeExtraction, Message: "cannot read ponto-07.xlsx"}, w)
}

func TestMutators_CopyOnWrite(t *testing.T) {
	base := Validationf("row %d: predicted minutes out of range", 3)
	tagged := WithOp(WithField(base, "predicted"), "ingest.document")

	e, ok := As(tagged)
	require.True(t, ok)
	assert.Equal(t, "predicted", e.Field())
	assert.Equal(t, "ingest.document", e.Op())

	orig, _ := As(base)
	assert.Empty(t, orig.Field(), "base error must not change")
	assert.Empty(t, orig.Op())
}

func TestWithDetails_CollectsRowFailures(t *testing.T) {
	rows := []error{
		WithField(Validationf("row 2: bad date"), "date"),
		nil,
		fmt.Errorf("row 5: unreadable"),
	}
	err := WithDetails(Extractionf("2 rows rejected"), rows...)

	w := WireFrom(err)
	require.Len(t, w.Details, 2)
	assert.Equal(t, Wire{Code: ErrorCodeValidation, Message: "row 2: bad date", Field: "date"}, w.Details[0])
	assert.Equal(t, ErrorCodeUnknown, w.Details[1].Code)
}

func TestForeignErrors(t *testing.T) {
	plain := stderrs.New("boom")

	assert.Equal(t, ErrorCodeUnknown, CodeOf(plain))
	assert.Equal(t, plain, WithField(plain, "x"), "mutators pass foreign errors through")
	assert.Equal(t, Wire{Code: ErrorCodeUnknown, Message: "boom"}, WireFrom(plain))
	assert.Equal(t, Wire{}, WireFrom(nil))
	assert.True(t, IsCode(fmt.Errorf("lookup: %w", ErrNotFound), ErrorCodeNotFound))
}
