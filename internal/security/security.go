// Package security holds the authenticated principal of a request and the
// authority checks handlers use to guard endpoints.
//
// The principal lives in the request context. Anonymous requests either
// carry no principal at all or one holding only the ROLE_ANONYMOUS authority;
// both count as unauthenticated.
package security

import (
	"context"
	"slices"
	"strings"
)

// Built-in authorities.
const (
	Admin     = "ROLE_ADMIN"
	User      = "ROLE_USER"
	Anonymous = "ROLE_ANONYMOUS"
)

// DefaultRolePrefix is prepended to bare role names by NormalizeAuthority.
const DefaultRolePrefix = "ROLE_"

// Principal is the identity attached to a request.
type Principal struct {
	Login       string
	Authorities []string
}

type principalKey struct{}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	p.Authorities = slices.Clone(p.Authorities)
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom returns the principal stored in ctx, if any.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	if ctx == nil {
		return Principal{}, false
	}
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

// CurrentUserLogin returns the login of the authenticated user.
func CurrentUserLogin(ctx context.Context) (string, bool) {
	p, ok := PrincipalFrom(ctx)
	if !ok || p.Login == "" || !authenticated(p) {
		return "", false
	}
	return p.Login, true
}

// IsAuthenticated reports whether ctx carries a non-anonymous principal.
func IsAuthenticated(ctx context.Context) bool {
	p, ok := PrincipalFrom(ctx)
	return ok && authenticated(p)
}

func authenticated(p Principal) bool {
	if len(p.Authorities) == 0 {
		return p.Login != ""
	}
	return !slices.Contains(p.Authorities, Anonymous)
}

// HasCurrentUserAnyOfAuthorities reports whether the current user holds at
// least one of authorities.
func HasCurrentUserAnyOfAuthorities(ctx context.Context, authorities ...string) bool {
	p, ok := PrincipalFrom(ctx)
	if !ok {
		return false
	}
	for _, a := range authorities {
		if slices.Contains(p.Authorities, a) {
			return true
		}
	}
	return false
}

// HasCurrentUserNoneOfAuthorities is the negation of
// HasCurrentUserAnyOfAuthorities.
func HasCurrentUserNoneOfAuthorities(ctx context.Context, authorities ...string) bool {
	return !HasCurrentUserAnyOfAuthorities(ctx, authorities...)
}

// HasCurrentUserThisAuthority reports whether the current user holds authority.
func HasCurrentUserThisAuthority(ctx context.Context, authority string) bool {
	return HasCurrentUserAnyOfAuthorities(ctx, authority)
}

// NormalizeAuthority upper-cases role and adds prefix unless already present.
// An empty prefix selects DefaultRolePrefix.
func NormalizeAuthority(prefix, role string) string {
	if prefix == "" {
		prefix = DefaultRolePrefix
	}
	role = strings.ToUpper(strings.TrimSpace(role))
	if role == "" || strings.HasPrefix(role, prefix) {
		return role
	}
	return prefix + role
}
