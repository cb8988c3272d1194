// Package translator turns errors raised while handling a request into
// problem-details responses.
//
// Every error goes through the same steps:
//
//	Received → Classified → HeaderDecorated → BodyBuilt → Committed | ReRaised
//
// The Classifier assigns a Kind and status, the HeaderDecorator adds the
// authentication challenge for 401/403, the BodyBuilder renders the
// {"errors": ...} body, and the committer writes it unless the response was
// already committed. Errors of KindUnknown skip straight to ReRaised so more
// specific handling further out still sees them; Terminate is the last-resort
// boundary that answers 500 for those.
//
// A Dispatcher is configured once through Options and is read-only afterwards.
// Deployments customize it by registering Rules (extra kind/status mappings)
// and Handlers (per-kind replacements of the default pipeline).
package translator

import (
	"errors"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/go-saas-core/internal/apperr"
)

// HandlerFunc handles one classified error end to end. It returns nil once
// the response is written and a non-nil error to re-raise. Handlers are only
// called for uncommitted exchanges, and writes past a commit fail with
// ErrCommitted.
type HandlerFunc func(ex Exchange, err error, cls Classification) error

// Options configures a Dispatcher. All fields are optional.
type Options struct {
	// RealmName is embedded in the WWW-Authenticate challenge.
	RealmName string
	// UnprocessableErrors fills generic 422 bodies.
	UnprocessableErrors UnprocessableFunc
	// Rules are consulted before the built-in request-parsing table.
	Rules []Rule
	// Handlers replace the default pipeline for their kind. Translate is
	// available to handlers that only want to adjust the classification.
	Handlers map[Kind]HandlerFunc
	// OnTransition observes every state change.
	OnTransition func(State, Classification)
	// Logger is used when the request context carries no logger.
	Logger *zerolog.Logger
}

// Dispatcher runs the translation pipeline. It is safe for concurrent use.
type Dispatcher struct {
	classifier   *Classifier
	headers      HeaderDecorator
	bodies       BodyBuilder
	committer    committer
	handlers     map[Kind]HandlerFunc
	onTransition func(State, Classification)
	logger       zerolog.Logger
}

// New builds a Dispatcher from opts. opts is copied; later changes to the
// caller's slices and maps have no effect.
func New(opts Options) *Dispatcher {
	d := &Dispatcher{
		classifier:   NewClassifier(opts.Rules...),
		headers:      HeaderDecorator{RealmName: opts.RealmName},
		bodies:       BodyBuilder{Unprocessable: opts.UnprocessableErrors},
		handlers:     make(map[Kind]HandlerFunc, len(opts.Handlers)),
		onTransition: opts.OnTransition,
		logger:       log.Logger,
	}
	for k, h := range opts.Handlers {
		if h != nil {
			d.handlers[k] = h
		}
	}
	if opts.Logger != nil {
		d.logger = *opts.Logger
	}
	return d
}

// Classify exposes the dispatcher's classifier.
func (d *Dispatcher) Classify(err error) Classification {
	return d.classifier.Classify(err)
}

// Dispatch translates err into a response on ex. It returns nil when a
// response was written and err itself when the error is re-raised: either it
// is not owned by the translator or ex was already committed.
func (d *Dispatcher) Dispatch(ex Exchange, err error) error {
	return d.run(ex, err, false)
}

// Terminate is the catch-all boundary: errors no one else claimed become
// KindUnclassified with status 500 and are logged at error level. It only
// returns an error when ex was already committed or the write failed.
func (d *Dispatcher) Terminate(ex Exchange, err error) error {
	return d.run(ex, err, true)
}

func (d *Dispatcher) run(ex Exchange, err error, terminal bool) error {
	if err == nil {
		return nil
	}
	d.transition(StateReceived, Classification{})

	cls := d.classifier.Classify(err)
	if cls.Kind == KindUnknown && terminal {
		cls = Classification{Kind: KindUnclassified, Status: 500}
	}
	d.transition(StateClassified, cls)

	if cls.Kind == KindUnknown {
		d.reraise(ex, err, cls)
		return err
	}
	if h, ok := d.handlers[cls.Kind]; ok {
		if ex.Committed() {
			d.reraise(ex, err, cls)
			return err
		}
		return h(guardedExchange{ex}, err, cls)
	}
	return d.Translate(ex, err, cls)
}

// Translate runs the default pipeline for an already classified error.
func (d *Dispatcher) Translate(ex Exchange, err error, cls Classification) error {
	d.logError(ex, err, cls)

	headers := d.headers.Decorate(err, cls)
	var rs *apperr.ResponseStatus
	if cls.Kind == KindExplicitStatus && errors.As(err, &rs) {
		for k, vv := range rs.Headers {
			headers[k] = append([]string(nil), vv...)
		}
	}
	d.transition(StateHeaderDecorated, cls)

	var body any
	if b, ok := d.bodies.Build(err, cls); ok {
		body = b
	} else if cls.RetainOriginalBody && rs != nil {
		body = rs.Body
	}
	d.transition(StateBodyBuilt, cls)

	if rerr := d.committer.commit(ex, err, cls, headers, body); rerr != nil {
		d.reraise(ex, rerr, cls)
		return rerr
	}
	d.transition(StateCommitted, cls)
	problemResponses.WithLabelValues(cls.Kind.String(), strconv.Itoa(cls.Status)).Inc()
	d.annotateSpan(ex, err, cls)
	return nil
}

func (d *Dispatcher) reraise(ex Exchange, err error, cls Classification) {
	d.transition(StateReRaised, cls)
	problemReraised.WithLabelValues(cls.Kind.String()).Inc()
	if cls.Kind != KindUnknown {
		d.loggerFor(ex).Error().Err(err).
			Str("kind", cls.Kind.String()).
			Int("status", cls.Status).
			Msg("response already committed; error re-raised")
	}
}

func (d *Dispatcher) transition(s State, cls Classification) {
	if d.onTransition != nil {
		d.onTransition(s, cls)
	}
}

func (d *Dispatcher) logError(ex Exchange, err error, cls Classification) {
	lg := d.loggerFor(ex)
	switch cls.Kind {
	case KindUnclassified:
		lg.Error().Err(err).Int("status", cls.Status).Msg("Internal Server Error")
	case KindAuthentication, KindAccessDenied, KindConcurrencyConflict:
		lg.Warn().Str("kind", cls.Kind.String()).Int("status", cls.Status).Msg(err.Error())
	default:
		lg.Debug().Err(err).Str("kind", cls.Kind.String()).Int("status", cls.Status).Msg("error translated")
	}
}

// loggerFor prefers the request-scoped logger stored in the context.
func (d *Dispatcher) loggerFor(ex Exchange) *zerolog.Logger {
	if ctx := ex.Context(); ctx != nil {
		if lg := zerolog.Ctx(ctx); lg.GetLevel() != zerolog.Disabled {
			return lg
		}
	}
	return &d.logger
}

func (d *Dispatcher) annotateSpan(ex Exchange, err error, cls Classification) {
	ctx := ex.Context()
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.RecordError(err)
	span.SetAttributes(
		attribute.String("error.kind", cls.Kind.String()),
		attribute.Int("http.response.status_code", cls.Status),
	)
	if cls.Status >= 500 {
		span.SetStatus(codes.Error, err.Error())
	}
}
