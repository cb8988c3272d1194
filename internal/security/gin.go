package security

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-saas-core/internal/apperr"
)

// Headers read by Authenticate. A trusted gateway in front of the service is
// expected to set them after verifying credentials.
const (
	HeaderLogin = "X-User-Login"
	HeaderRoles = "X-User-Roles"
)

// Authenticate stores a Principal built from the gateway headers in the
// request context. Requests without a login become anonymous principals.
// Role names are normalized with prefix; a login without roles gets the
// "user" role.
func Authenticate(prefix string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := Principal{Login: strings.TrimSpace(c.GetHeader(HeaderLogin))}
		if p.Login == "" {
			p.Authorities = []string{Anonymous}
		} else {
			for _, r := range strings.Split(c.GetHeader(HeaderRoles), ",") {
				if a := NormalizeAuthority(prefix, r); a != "" {
					p.Authorities = append(p.Authorities, a)
				}
			}
			if len(p.Authorities) == 0 {
				p.Authorities = []string{NormalizeAuthority(prefix, "user")}
			}
		}
		c.Request = c.Request.WithContext(WithPrincipal(c.Request.Context(), p))
		c.Next()
	}
}

// RequireAuthenticated aborts anonymous requests with an authentication error.
func RequireAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAuthenticated(c.Request.Context()) {
			_ = c.Error(&apperr.Authentication{})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAnyAuthority lets through users holding one of authorities.
// Anonymous requests get an authentication error, others access denied.
func RequireAnyAuthority(authorities ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		switch {
		case !IsAuthenticated(ctx):
			_ = c.Error(&apperr.Authentication{})
			c.Abort()
		case HasCurrentUserNoneOfAuthorities(ctx, authorities...):
			_ = c.Error(&apperr.AccessDenied{})
			c.Abort()
		default:
			c.Next()
		}
	}
}
