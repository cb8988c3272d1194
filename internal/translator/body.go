package translator

import (
	"errors"
	"net/http"

	"github.com/tbourn/go-saas-core/internal/apperr"
	"github.com/tbourn/go-saas-core/internal/problem"
)

// UnprocessableFunc supplies the keyed messages of a 422 body for errors that
// are neither form validation nor domain bad requests. Returning nil or an
// empty set falls back to problem.Base().
type UnprocessableFunc func(err error) *problem.FieldErrors

// BodyBuilder produces the problem body for a classified error.
type BodyBuilder struct {
	Unprocessable UnprocessableFunc
}

// Build returns the body for err, or false when the response carries none:
// either the error supplies its own body or the status is not an error.
func (b BodyBuilder) Build(err error, cls Classification) (problem.Body, bool) {
	if cls.RetainOriginalBody {
		return problem.Body{}, false
	}
	switch s := cls.Status; {
	case s == http.StatusUnauthorized:
		return problem.Message(problem.MessageUnauthorized), true
	case s == http.StatusForbidden:
		return problem.Message(problem.MessageForbidden), true
	case s == http.StatusUnprocessableEntity:
		return problem.Fields(b.unprocessable(err, cls)), true
	case s >= 400 && s < 500:
		return problem.Message(http.StatusText(s)), true
	case s >= 500 && s < 600:
		return problem.Message(err.Error()), true
	default:
		return problem.Body{}, false
	}
}

func (b BodyBuilder) unprocessable(err error, cls Classification) *problem.FieldErrors {
	switch cls.Kind {
	case KindFormValidation:
		var form *apperr.FormValidation
		if errors.As(err, &form) && form.Fields.Len() > 0 {
			return form.Fields
		}
	case KindDomainBadRequest:
		var alert *apperr.BadRequestAlert
		if errors.As(err, &alert) {
			return problem.Single(alert.Key, alert.Message)
		}
	}
	if b.Unprocessable != nil {
		if fe := b.Unprocessable(err); fe.Len() > 0 {
			return fe
		}
	}
	return problem.Base()
}

// BindingFieldErrors is an UnprocessableFunc that exposes per-field messages
// of validation failures raised during request binding.
func BindingFieldErrors(err error) *problem.FieldErrors {
	var man *apperr.MethodArgumentNotValid
	if errors.As(err, &man) {
		return man.Fields
	}
	return nil
}
