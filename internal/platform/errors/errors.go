// Package errors carries the structured error used across crimecast: a stable code for
// machines, a message for people, and an optional wrapped cause
package errors

// Import as perr so the standard library keeps the errors name

import (
	stderrs "errors"
	"fmt"
	"net/http"
)

// ErrorCode classifies an error. Codes go out on the wire, so only append
type ErrorCode uint16

const (
	ErrorCodeUnknown ErrorCode = iota
	ErrorCodePanic
	// ErrorCodeUnavailable marks a dependency that cannot be reached (history file, models dir)
	ErrorCodeUnavailable
	// ErrorCodeInvalidArgument marks input that parsed but cannot be acted on
	ErrorCodeInvalidArgument
	// ErrorCodeValidation marks a missing or malformed field
	ErrorCodeValidation
	ErrorCodeDecode
	ErrorCodeNotFound
	// ErrorCodeCorrupt marks a stored artifact that exists but does not decode
	ErrorCodeCorrupt
	// ErrorCodeModel marks a failure raised while a model computes
	ErrorCodeModel
)

var codes = [...]struct {
	name   string
	status int
}{
	ErrorCodeUnknown:         {"unknown", http.StatusInternalServerError},
	ErrorCodePanic:           {"panic", http.StatusInternalServerError},
	ErrorCodeUnavailable:     {"unavailable", http.StatusServiceUnavailable},
	ErrorCodeInvalidArgument: {"invalid_argument", http.StatusUnprocessableEntity},
	ErrorCodeValidation:      {"validation", http.StatusBadRequest},
	ErrorCodeDecode:          {"decode", http.StatusBadRequest},
	ErrorCodeNotFound:        {"not_found", http.StatusNotFound},
	ErrorCodeCorrupt:         {"corrupt", http.StatusUnprocessableEntity},
	ErrorCodeModel:           {"model", http.StatusInternalServerError},
}

// String names the code for logs
func (c ErrorCode) String() string {
	if int(c) < len(codes) {
		return codes[c].name
	}
	return fmt.Sprintf("code(%d)", uint16(c))
}

// Status is the HTTP status a code answers with; unknown codes are 500
func (c ErrorCode) Status() int {
	if int(c) < len(codes) {
		return codes[c].status
	}
	return http.StatusInternalServerError
}

// Error is the structured error. msg is shown to callers, orig is the cause,
// field names the offending input and op tags the failing operation
type Error struct {
	orig  error
	msg   string
	code  ErrorCode
	field string
	op    string
}

// Wire is the JSON form inside an API envelope
type Wire struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
}

func (e *Error) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.orig == nil:
		return e.msg
	default:
		return e.msg + ": " + e.orig.Error()
	}
}

func (e *Error) Unwrap() error { return e.orig }

func (e *Error) Code() ErrorCode { return e.code }

// Message is the error text without the wrapped cause
func (e *Error) Message() string { return e.msg }

func (e *Error) Field() string { return e.field }

func (e *Error) Op() string { return e.op }

// ToWire drops the cause and op, which stay server side
func (e *Error) ToWire() Wire { return Wire{Code: e.code, Message: e.msg, Field: e.field} }

// WireFrom renders any error for the wire. Foreign errors become ErrorCodeUnknown
func WireFrom(err error) Wire {
	if err == nil {
		return Wire{}
	}
	if e, ok := As(err); ok {
		return e.ToWire()
	}
	return Wire{Code: ErrorCodeUnknown, Message: err.Error()}
}

// As finds the outermost *Error in the chain
func As(err error) (*Error, bool) {
	var e *Error
	if stderrs.As(err, &e) {
		return e, true
	}
	return nil, false
}

// CodeOf returns the code of the outermost *Error, or ErrorCodeUnknown
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// HTTPStatus maps any error to a status via its code
func HTTPStatus(err error) int { return CodeOf(err).Status() }

// WithField returns a copy of err naming the offending field. Foreign errors pass through
func WithField(err error, field string) error {
	return with(err, func(e *Error) { e.field = field })
}

// WithOp returns a copy of err tagged with op. Foreign errors pass through
func WithOp(err error, op string) error {
	return with(err, func(e *Error) { e.op = op })
}

func with(err error, set func(*Error)) error {
	e, ok := As(err)
	if !ok {
		return err
	}
	c := *e
	set(&c)
	return &c
}

func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

func Newf(code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...)}
}

// Wrap keeps orig as the cause
func Wrap(orig error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, orig: orig}
}

func Wrapf(orig error, code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...), orig: orig}
}

func NotFoundf(format string, a ...any) error { return Newf(ErrorCodeNotFound, format, a...) }

func InvalidArgf(format string, a ...any) error { return Newf(ErrorCodeInvalidArgument, format, a...) }

func Validationf(format string, a ...any) error { return Newf(ErrorCodeValidation, format, a...) }

func Decodef(format string, a ...any) error { return Newf(ErrorCodeDecode, format, a...) }

func Corruptf(format string, a ...any) error { return Newf(ErrorCodeCorrupt, format, a...) }

func PanicErrf(format string, a ...any) error { return Newf(ErrorCodePanic, format, a...) }

func Unavailablef(format string, a ...any) error { return Newf(ErrorCodeUnavailable, format, a...) }

func Internalf(format string, a ...any) error { return Newf(ErrorCodeUnknown, format, a...) }
