// Package apperr defines the typed errors that request handling raises and the
// error translator turns into HTTP responses.
//
// Each type corresponds to one translator kind and is matched with errors.As,
// so callers may wrap them freely with fmt.Errorf("...: %w", err). Every type
// also reports a default HTTPStatus, which is what the plain envelope fallback
// uses when the translator is switched off.
//
// Producers:
//   - security middleware: Authentication, AccessDenied
//   - rate limiter and routing fallbacks: ResponseStatus
//   - repositories and services: NotFound, ConcurrencyFailure, BadRequestAlert,
//     FormValidation
//   - request binding (see FromBinding): TypeMismatch, MessageNotReadable,
//     MethodArgumentNotValid, Bind
package apperr

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/tbourn/go-saas-core/internal/problem"
)

// Authentication is raised when the request carries no usable identity.
type Authentication struct {
	Message string
	Cause   error
}

func (e *Authentication) Error() string {
	if e.Message == "" {
		return "full authentication is required to access this resource"
	}
	return e.Message
}
func (e *Authentication) Unwrap() error   { return e.Cause }
func (e *Authentication) HTTPStatus() int { return http.StatusUnauthorized }

// AccessDenied is raised when an authenticated identity lacks a permission.
type AccessDenied struct {
	Message string
	Cause   error
}

func (e *AccessDenied) Error() string {
	if e.Message == "" {
		return "access is denied"
	}
	return e.Message
}
func (e *AccessDenied) Unwrap() error   { return e.Cause }
func (e *AccessDenied) HTTPStatus() int { return http.StatusForbidden }

// ResponseStatus asks for a specific response status. Headers are forwarded
// as-is; a non-nil Body is written verbatim instead of a generated one.
type ResponseStatus struct {
	Status  int
	Reason  string
	Headers http.Header
	Body    any
	Cause   error
}

// NewResponseStatus returns a ResponseStatus without headers or body.
func NewResponseStatus(status int, reason string) *ResponseStatus {
	return &ResponseStatus{Status: status, Reason: reason}
}

// WithHeader returns a copy of e with key set to value.
func (e *ResponseStatus) WithHeader(key, value string) *ResponseStatus {
	cp := *e
	cp.Headers = e.Headers.Clone()
	if cp.Headers == nil {
		cp.Headers = http.Header{}
	}
	cp.Headers.Set(key, value)
	return &cp
}

// WithBody returns a copy of e carrying body.
func (e *ResponseStatus) WithBody(body any) *ResponseStatus {
	cp := *e
	cp.Body = body
	return &cp
}

func (e *ResponseStatus) Error() string {
	code := strings.ToUpper(strings.ReplaceAll(http.StatusText(e.Status), " ", "_"))
	if e.Reason == "" {
		return fmt.Sprintf("%d %s", e.Status, code)
	}
	return fmt.Sprintf("%d %s %q", e.Status, code, e.Reason)
}
func (e *ResponseStatus) Unwrap() error   { return e.Cause }
func (e *ResponseStatus) HTTPStatus() int { return e.Status }

// ConcurrencyFailure signals an optimistic-locking conflict.
type ConcurrencyFailure struct {
	Entity string
	ID     any
	Cause  error
}

func (e *ConcurrencyFailure) Error() string {
	return fmt.Sprintf("%s %v was modified concurrently", e.Entity, e.ID)
}
func (e *ConcurrencyFailure) Unwrap() error   { return e.Cause }
func (e *ConcurrencyFailure) HTTPStatus() int { return http.StatusConflict }

// NotFound is raised when a resource does not exist.
type NotFound struct {
	Resource string
	ID       any
	Cause    error
}

func (e *NotFound) Error() string {
	switch {
	case e.Resource == "":
		return "resource not found"
	case e.ID == nil:
		return e.Resource + " not found"
	default:
		return fmt.Sprintf("%s %v not found", e.Resource, e.ID)
	}
}
func (e *NotFound) Unwrap() error   { return e.Cause }
func (e *NotFound) HTTPStatus() int { return http.StatusNotFound }

// BadRequestAlert is a domain rejection identified by Key, e.g. ("note",
// "idexists").
type BadRequestAlert struct {
	Entity  string
	Key     string
	Message string
}

func (e *BadRequestAlert) Error() string   { return e.Message }
func (e *BadRequestAlert) HTTPStatus() int { return http.StatusUnprocessableEntity }

// FormValidation carries field-level messages produced by service validation.
type FormValidation struct {
	Fields *problem.FieldErrors
}

// NewFormValidation returns a FormValidation with one message for field.
func NewFormValidation(field, msg string) *FormValidation {
	return &FormValidation{Fields: problem.Single(field, msg)}
}

func (e *FormValidation) Error() string {
	if e.Fields.Len() == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, e.Fields.Len())
	for _, k := range e.Fields.Keys() {
		parts = append(parts, k+": "+strings.Join(e.Fields.Get(k), ", "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
func (e *FormValidation) HTTPStatus() int { return http.StatusUnprocessableEntity }
