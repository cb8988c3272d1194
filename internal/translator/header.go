package translator

import (
	"fmt"
	"net/http"
)

const (
	// HeaderChallenge carries the authentication challenge on 401/403.
	HeaderChallenge = "WWW-Authenticate"
	// DefaultRealmName is used when no realm is configured.
	DefaultRealmName = "API Authentication by nentangso.org"
)

// HeaderDecorator computes the extra headers a response needs.
type HeaderDecorator struct {
	RealmName string
}

// Decorate returns the challenge header for authentication and access-denied
// errors and an empty set for everything else.
func (h HeaderDecorator) Decorate(_ error, cls Classification) http.Header {
	out := http.Header{}
	switch cls.Kind {
	case KindAuthentication, KindAccessDenied:
		out.Set(HeaderChallenge, h.Challenge())
	}
	return out
}

// Challenge returns the WWW-Authenticate value for the configured realm.
func (h HeaderDecorator) Challenge() string {
	realm := h.RealmName
	if realm == "" {
		realm = DefaultRealmName
	}
	return fmt.Sprintf("Basic realm=%q", realm)
}
