package apperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/tbourn/go-saas-core/internal/problem"
)

// ConversionNotSupported means no converter exists for a required type.
type ConversionNotSupported struct {
	Value any
	Type  string
	Cause error
}

func (e *ConversionNotSupported) Error() string {
	return fmt.Sprintf("failed to convert value of type %T to required type %s", e.Value, e.Type)
}
func (e *ConversionNotSupported) Unwrap() error   { return e.Cause }
func (e *ConversionNotSupported) HTTPStatus() int { return http.StatusInternalServerError }

// TypeMismatch means a request value could not be converted to the target type.
type TypeMismatch struct {
	Field string
	Value string
	Type  string
	Cause error
}

func (e *TypeMismatch) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("failed to convert %q to %s", e.Value, e.Type)
	}
	return fmt.Sprintf("failed to convert %s %q to %s", e.Field, e.Value, e.Type)
}
func (e *TypeMismatch) Unwrap() error   { return e.Cause }
func (e *TypeMismatch) HTTPStatus() int { return http.StatusBadRequest }

// MessageNotReadable means the request body could not be decoded.
type MessageNotReadable struct {
	Cause error
}

func (e *MessageNotReadable) Error() string {
	if e.Cause == nil {
		return "request body is not readable"
	}
	return "request body is not readable: " + e.Cause.Error()
}
func (e *MessageNotReadable) Unwrap() error   { return e.Cause }
func (e *MessageNotReadable) HTTPStatus() int { return http.StatusBadRequest }

// MessageNotWritable means the response value could not be encoded.
type MessageNotWritable struct {
	Cause error
}

func (e *MessageNotWritable) Error() string {
	if e.Cause == nil {
		return "response body is not writable"
	}
	return "response body is not writable: " + e.Cause.Error()
}
func (e *MessageNotWritable) Unwrap() error   { return e.Cause }
func (e *MessageNotWritable) HTTPStatus() int { return http.StatusInternalServerError }

// MethodArgumentNotValid means a bound request value failed validation.
type MethodArgumentNotValid struct {
	Fields *problem.FieldErrors
	Cause  error
}

func (e *MethodArgumentNotValid) Error() string {
	if e.Cause != nil {
		return "validation failed for argument: " + e.Cause.Error()
	}
	return "validation failed for argument"
}
func (e *MethodArgumentNotValid) Unwrap() error   { return e.Cause }
func (e *MethodArgumentNotValid) HTTPStatus() int { return http.StatusBadRequest }

// Bind is the catch-all for request binding failures.
type Bind struct {
	Cause error
}

func (e *Bind) Error() string {
	if e.Cause == nil {
		return "request binding failed"
	}
	return "request binding failed: " + e.Cause.Error()
}
func (e *Bind) Unwrap() error   { return e.Cause }
func (e *Bind) HTTPStatus() int { return http.StatusBadRequest }

// FromBinding converts an error returned by gin's ShouldBind* family into the
// matching typed error. Nil stays nil.
func FromBinding(err error) error {
	if err == nil {
		return nil
	}
	var (
		verrs  validator.ValidationErrors
		syntax *json.SyntaxError
		typed  *json.UnmarshalTypeError
		num    *strconv.NumError
	)
	switch {
	case errors.As(err, &verrs):
		return &MethodArgumentNotValid{Fields: FieldErrorsOf(verrs), Cause: err}
	case errors.As(err, &typed):
		return &TypeMismatch{Field: typed.Field, Value: typed.Value, Type: typed.Type.String(), Cause: err}
	case errors.As(err, &num):
		return &TypeMismatch{Value: num.Num, Type: "number", Cause: err}
	case errors.As(err, &syntax), errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return &MessageNotReadable{Cause: err}
	default:
		return &Bind{Cause: err}
	}
}

// FieldErrorsOf renders validator failures as keyed messages, one key per
// field in the order the validator reported them.
func FieldErrorsOf(verrs validator.ValidationErrors) *problem.FieldErrors {
	fe := problem.NewFieldErrors()
	for _, v := range verrs {
		fe.Add(lowerFirst(v.Field()), validationMessage(v))
	}
	return fe
}

func validationMessage(v validator.FieldError) string {
	switch v.Tag() {
	case "required":
		return "must not be blank"
	case "max":
		return fmt.Sprintf("is too long (maximum is %s characters)", v.Param())
	case "min":
		return fmt.Sprintf("is too short (minimum is %s characters)", v.Param())
	case "gt":
		return "must be greater than " + v.Param()
	case "gte":
		return "must be greater than or equal to " + v.Param()
	default:
		return "is invalid"
	}
}

func lowerFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[n:]
}
