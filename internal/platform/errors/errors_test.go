package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestErrorCode_StatusAndName(t *testing.T) {
	cases := []struct {
		code   ErrorCode
		status int
		name   string
	}{
		{ErrorCodeNotFound, http.StatusNotFound, "not_found"},
		{ErrorCodeInvalidArgument, http.StatusUnprocessableEntity, "invalid_argument"},
		{ErrorCodeCorrupt, http.StatusUnprocessableEntity, "corrupt"},
		{ErrorCodeValidation, http.StatusBadRequest, "validation"},
		{ErrorCodeDecode, http.StatusBadRequest, "decode"},
		{ErrorCodeUnavailable, http.StatusServiceUnavailable, "unavailable"},
		{ErrorCodeModel, http.StatusInternalServerError, "model"},
		{ErrorCodePanic, http.StatusInternalServerError, "panic"},
		{ErrorCodeUnknown, http.StatusInternalServerError, "unknown"},
		{9999, http.StatusInternalServerError, "code(9999)"},
	}
	for _, c := range cases {
		if got := c.code.Status(); got != c.status {
			t.Errorf("%v.Status() = %d, want %d", c.code, got, c.status)
		}
		if got := c.code.String(); got != c.name {
			t.Errorf("String() = %q, want %q", got, c.name)
		}
	}
}

func TestError_Text(t *testing.T) {
	var e *Error
	if e.Error() != "<nil>" {
		t.Fatalf("nil *Error = %q", e.Error())
	}
	if got := Newf(ErrorCodeDecode, "bad body %d", 12).Error(); got != "bad body 12" {
		t.Fatalf("Newf = %q", got)
	}

	src := stderrs.New("root")
	wrapped := Wrapf(src, ErrorCodeCorrupt, "artifact %s", "m.yaml")
	if wrapped.Error() != "artifact m.yaml: root" {
		t.Fatalf("Wrapf = %q", wrapped.Error())
	}
	if !stderrs.Is(wrapped, src) {
		t.Fatalf("cause lost")
	}
	pe, ok := As(fmt.Errorf("outer: %w", wrapped))
	if !ok || pe.Message() != "artifact m.yaml" || pe.Code() != ErrorCodeCorrupt {
		t.Fatalf("As through fmt wrap = %+v %v", pe, ok)
	}
}

func TestWithFieldAndOp_CopyOnWrite(t *testing.T) {
	src := stderrs.New("root")
	if _, ok := As(src); ok {
		t.Fatalf("As() true for foreign error")
	}

	base := Wrap(src, ErrorCodeValidation, "missing")
	withField := WithField(base, "start_date")
	withOp := WithOp(withField, "forecast.validate")

	if fe, _ := As(withField); fe.Field() != "start_date" {
		t.Fatalf("field = %q", fe.Field())
	}
	if oe, _ := As(withOp); oe.Op() != "forecast.validate" || oe.Field() != "start_date" {
		t.Fatalf("op = %q field = %q", oe.Op(), oe.Field())
	}
	if orig, _ := As(base); orig.Field() != "" || orig.Op() != "" {
		t.Fatalf("original mutated")
	}
	if WithField(src, "x") != src || WithOp(src, "x") != src {
		t.Fatalf("foreign errors should pass through")
	}
}

func TestWireFrom(t *testing.T) {
	if w := WireFrom(nil); w != (Wire{}) {
		t.Fatalf("WireFrom(nil) = %+v", w)
	}
	if w := WireFrom(stderrs.New("boom")); w.Code != ErrorCodeUnknown || w.Message != "boom" {
		t.Fatalf("foreign = %+v", w)
	}
	err := WithField(Wrap(stderrs.New("hidden"), ErrorCodeValidation, "required"), "model")
	if w := WireFrom(err); w != (Wire{Code: ErrorCodeValidation, Message: "required", Field: "model"}) {
		t.Fatalf("ours = %+v", w)
	}
	if HTTPStatus(err) != http.StatusBadRequest || HTTPStatus(stderrs.New("x")) != http.StatusInternalServerError {
		t.Fatalf("HTTPStatus mapping")
	}
}

func TestConstructors(t *testing.T) {
	cases := map[ErrorCode]error{
		ErrorCodeNotFound:        NotFoundf("x"),
		ErrorCodeInvalidArgument: InvalidArgf("x"),
		ErrorCodeValidation:      Validationf("x"),
		ErrorCodeDecode:          Decodef("x"),
		ErrorCodeCorrupt:         Corruptf("x"),
		ErrorCodePanic:           PanicErrf("x"),
		ErrorCodeUnavailable:     Unavailablef("x"),
		ErrorCodeUnknown:         Internalf("x"),
		ErrorCodeModel:           New(ErrorCodeModel, "x"),
	}
	for want, err := range cases {
		if !IsCode(err, want) {
			t.Errorf("%v: got %v", want, CodeOf(err))
		}
	}
}
