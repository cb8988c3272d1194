package translator

import (
	"context"
	"errors"
	"net/http"
)

// Exchange is the in-flight response an error is translated into. One
// exchange belongs to one request and is never written concurrently.
type Exchange interface {
	// Context is the request context.
	Context() context.Context
	// Committed reports whether the response can no longer change, either
	// because it was written or because the request was canceled.
	Committed() bool
	// Header returns the mutable response headers.
	Header() http.Header
	// Write sends status and, when body is non-nil, body as JSON. It commits
	// the response.
	Write(status int, body any) error
}

// ErrCommitted is returned by writes to an exchange whose response can no
// longer change.
var ErrCommitted = errors.New("translator: response already committed")

// guardedExchange refuses writes once the wrapped exchange is committed.
type guardedExchange struct {
	Exchange
}

func (g guardedExchange) Write(status int, body any) error {
	if g.Committed() {
		return ErrCommitted
	}
	return g.Exchange.Write(status, body)
}

type committer struct{}

// commit writes the response, or returns err untouched when the exchange is
// already committed. Headers already present on the response win over
// headers. A failed write is joined with err so callers still see it.
func (committer) commit(ex Exchange, err error, cls Classification, headers http.Header, body any) error {
	if ex.Committed() {
		return err
	}
	dst := ex.Header()
	for k, vv := range headers {
		if _, exists := dst[k]; exists {
			continue
		}
		dst[k] = append([]string(nil), vv...)
	}
	if werr := ex.Write(cls.Status, body); werr != nil {
		return errors.Join(err, werr)
	}
	return nil
}
