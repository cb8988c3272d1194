package translator

import (
	"encoding/json"
	"errors"
	"maps"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/tbourn/go-saas-core/internal/apperr"
)

// Classification is the outcome of classifying one error.
type Classification struct {
	Kind   Kind
	Status int
	// RetainOriginalBody is set when the error supplies its own response body,
	// which must be written as-is.
	RetainOriginalBody bool
}

// Rule maps errors accepted by Match to a kind and status. Rules extend the
// request-parsing table and are consulted, in order, before it.
type Rule struct {
	Kind   Kind
	Status int
	Match  func(error) bool
}

// RuleFor returns a Rule matching any error in the chain of type T.
func RuleFor[T error](kind Kind, status int) Rule {
	return Rule{
		Kind:   kind,
		Status: status,
		Match:  is[T],
	}
}

// baseStatuses are the generic defaults for request-parsing failures.
var baseStatuses = map[Kind]int{
	KindTypeConversionFailure: http.StatusInternalServerError,
	KindTypeMismatch:          http.StatusBadRequest,
	KindMessageNotReadable:    http.StatusBadRequest,
	KindMessageNotWritable:    http.StatusInternalServerError,
	KindMethodArgumentInvalid: http.StatusBadRequest,
	KindBindFailure:           http.StatusBadRequest,
}

// domainStatusOverrides are layered over baseStatuses by NewClassifier so
// that every validation failure answers 422.
var domainStatusOverrides = map[Kind]int{
	KindMethodArgumentInvalid: http.StatusUnprocessableEntity,
	KindBindFailure:           http.StatusUnprocessableEntity,
}

// BaseStatuses returns a copy of the generic request-parsing statuses.
func BaseStatuses() map[Kind]int { return maps.Clone(baseStatuses) }

// DomainStatusOverrides returns a copy of the statuses NewClassifier layers
// over BaseStatuses.
func DomainStatusOverrides() map[Kind]int { return maps.Clone(domainStatusOverrides) }

// parsing lists the built-in request-parsing matchers in priority order.
var parsing = []struct {
	kind  Kind
	match func(error) bool
}{
	{KindTypeConversionFailure, is[*apperr.ConversionNotSupported]},
	{KindTypeMismatch, anyOf(is[*apperr.TypeMismatch], is[*json.UnmarshalTypeError], is[*strconv.NumError])},
	{KindMessageNotReadable, anyOf(is[*apperr.MessageNotReadable], is[*json.SyntaxError])},
	{KindMessageNotWritable, anyOf(is[*apperr.MessageNotWritable], is[*json.UnsupportedTypeError], is[*json.UnsupportedValueError])},
	{KindMethodArgumentInvalid, anyOf(is[*apperr.MethodArgumentNotValid], is[validator.ValidationErrors])},
	{KindBindFailure, is[*apperr.Bind]},
}

// Classifier assigns a Classification to errors. It is immutable once built
// and safe for concurrent use.
type Classifier struct {
	rules    []Rule
	statuses map[Kind]int
}

// NewBaseClassifier returns a classifier using only BaseStatuses for
// request-parsing failures.
func NewBaseClassifier(rules ...Rule) *Classifier {
	return newClassifier(rules, baseStatuses)
}

// NewClassifier returns the classifier used by the dispatcher: BaseStatuses
// with DomainStatusOverrides applied on top.
func NewClassifier(rules ...Rule) *Classifier {
	return newClassifier(rules, baseStatuses, domainStatusOverrides)
}

func newClassifier(rules []Rule, layers ...map[Kind]int) *Classifier {
	c := &Classifier{
		rules:    make([]Rule, 0, len(rules)),
		statuses: make(map[Kind]int),
	}
	for _, r := range rules {
		if r.Match != nil {
			c.rules = append(c.rules, r)
		}
	}
	for _, layer := range layers {
		for k, v := range layer {
			c.statuses[k] = v
		}
	}
	return c
}

// Status reports the request-parsing status this classifier uses for kind.
func (c *Classifier) Status(kind Kind) (int, bool) {
	s, ok := c.statuses[kind]
	return s, ok
}

// Classify returns the classification of err. Errors it does not own come
// back as KindUnknown with a zero status.
func (c *Classifier) Classify(err error) Classification {
	if err == nil {
		return Classification{Kind: KindUnknown}
	}

	var rs *apperr.ResponseStatus
	switch {
	case is[*apperr.Authentication](err):
		return Classification{Kind: KindAuthentication, Status: http.StatusUnauthorized}
	case is[*apperr.AccessDenied](err):
		return Classification{Kind: KindAccessDenied, Status: http.StatusForbidden}
	case errors.As(err, &rs):
		status := rs.Status
		if status < 100 || status > 599 {
			status = http.StatusInternalServerError
		}
		return Classification{Kind: KindExplicitStatus, Status: status, RetainOriginalBody: rs.Body != nil}
	case is[*apperr.ConcurrencyFailure](err):
		return Classification{Kind: KindConcurrencyConflict, Status: http.StatusConflict}
	case is[*apperr.NotFound](err):
		return Classification{Kind: KindNotFound, Status: http.StatusNotFound}
	case is[*apperr.BadRequestAlert](err):
		return Classification{Kind: KindDomainBadRequest, Status: http.StatusUnprocessableEntity}
	case is[*apperr.FormValidation](err):
		return Classification{Kind: KindFormValidation, Status: http.StatusUnprocessableEntity}
	}

	for _, r := range c.rules {
		if r.Match(err) {
			return Classification{Kind: r.Kind, Status: r.Status}
		}
	}
	for _, p := range parsing {
		if p.match(err) {
			return Classification{Kind: p.kind, Status: c.statuses[p.kind]}
		}
	}
	return Classification{Kind: KindUnknown}
}

func is[T error](err error) bool {
	var target T
	return errors.As(err, &target)
}

func anyOf(matchers ...func(error) bool) func(error) bool {
	return func(err error) bool {
		for _, m := range matchers {
			if m(err) {
				return true
			}
		}
		return false
	}
}
