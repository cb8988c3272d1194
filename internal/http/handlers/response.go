// Package handlers provides HTTP handler implementations for the public API.
//
// Handlers are transport-thin: they bind input, call application services and
// write success bodies. Failures are never rendered here; a handler records
// the error with abort and the error translator (or, when it is switched off,
// DefaultErrors) turns it into a response.
//
// Example plain envelope written by DefaultErrors:
//
//	HTTP/1.1 404 Not Found
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "not_found",
//	  "message": "note 7 not found"
//	}
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-saas-core/internal/apperr"
	"github.com/tbourn/go-saas-core/internal/http/middleware"
)

// ErrorResponse is the plain error envelope used when the translator is off.
//
// Fields:
//   - RequestID: Optional correlation ID, echoed from X-Request-ID header, used
//     to correlate server logs with client-side errors.
//   - Code: A stable, machine-readable string (see errors.go constants).
//   - Message: A human-readable error description, safe for display to users.
type ErrorResponse struct {
	// Correlates server logs and client errors
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Stable, machine-readable code (see errors.go constants)
	Code string `json:"code" example:"not_found"`
	// Human-readable message (safe to show to users)
	Message string `json:"message" example:"resource not found"`
}

// fail aborts the request with a structured error and logs server-side errors.
//
// Server errors (>=500) are logged using the request-scoped logger from middleware.
func fail(c *gin.Context, status int, code, msg string) {
	resp := ErrorResponse{
		RequestID: c.Writer.Header().Get("X-Request-ID"),
		Code:      code,
		Message:   msg,
	}

	if status >= http.StatusInternalServerError {
		lg := middleware.LoggerFrom(c)
		lg.Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, resp)
}

// Fail is the exported variant of fail().
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// DefaultErrors renders the last error recorded on the context as an
// ErrorResponse. It stands in for the translator when that is disabled and
// does nothing once a response was written. Errors reporting an HTTPStatus
// keep it; everything else is a 500 with a generic message.
func DefaultErrors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		last := c.Errors.Last()
		if last == nil || c.Writer.Written() {
			return
		}
		status, msg := http.StatusInternalServerError, "internal error"
		var hs interface{ HTTPStatus() int }
		if errors.As(last.Err, &hs) {
			status, msg = hs.HTTPStatus(), last.Err.Error()
		}
		var rs *apperr.ResponseStatus
		if errors.As(last.Err, &rs) {
			for k, vs := range rs.Headers {
				for _, v := range vs {
					c.Writer.Header().Add(k, v)
				}
			}
		}
		if status >= http.StatusInternalServerError {
			lg := middleware.LoggerFrom(c)
			lg.Error().Err(last.Err).Msg("unhandled error")
		}
		fail(c, status, codeFor(status), msg)
	}
}

// abort records err for the error layer and stops the handler chain.
func abort(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// ok writes a success JSON response.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// noContent writes an HTTP 204 No Content response.
func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
