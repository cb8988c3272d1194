// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements an in-memory, per-identity token-bucket rate limiter
// built on golang.org/x/time/rate. Buckets idle for longer than the TTL are
// evicted opportunistically during lookups. The limiter is process-local; it
// protects a single instance, not a fleet.
package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/tbourn/go-saas-core/internal/apperr"
	"github.com/tbourn/go-saas-core/internal/security"
)

// keyFunc selects the identity used to key a rate-limit bucket.
type keyFunc func(*gin.Context) string

// KeyByLoginOrIP keys buckets by the authenticated login and falls back to
// the client IP. Keys are prefixed so the two namespaces never collide.
func KeyByLoginOrIP() keyFunc {
	return func(c *gin.Context) string {
		if login, ok := security.CurrentUserLogin(c.Request.Context()); ok {
			return "user:" + login
		}
		return "ip:" + c.ClientIP()
	}
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter is a per-key token-bucket limiter, safe for concurrent use.
type RateLimiter struct {
	rps      rate.Limit
	burst    int
	keyFn    keyFunc
	mu       sync.Mutex
	visitors map[string]*visitor

	ttl      time.Duration
	cleanupN uint64
}

// NewRateLimiter returns a limiter refilling rps tokens per second with the
// given burst (coerced to at least 1).
func NewRateLimiter(rps float64, burst int, keyFn keyFunc) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		rps:      rate.Limit(rps),
		burst:    burst,
		keyFn:    keyFn,
		visitors: make(map[string]*visitor),
		ttl:      10 * time.Minute,
	}
}

// getVisitor returns the limiter for key, creating it if absent. Every 5000
// lookups idle buckets are evicted first, so a stale bucket is dropped even
// when it is the one being fetched.
func (rl *RateLimiter) getVisitor(key string) *rate.Limiter {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.cleanupN++
	if rl.cleanupN >= 5000 {
		for k, vv := range rl.visitors {
			if now.Sub(vv.lastSeen) >= rl.ttl {
				delete(rl.visitors, k)
			}
		}
		rl.cleanupN = 0
	}

	if v, ok := rl.visitors[key]; ok {
		v.lastSeen = now
		return v.limiter
	}
	lim := rate.NewLimiter(rl.rps, rl.burst)
	rl.visitors[key] = &visitor{limiter: lim, lastSeen: now}
	return lim
}

// retryAfter is the Retry-After value in whole seconds, at least 1.
func (rl *RateLimiter) retryAfter() string {
	if rl.rps <= 0 {
		return "1"
	}
	secs := int(math.Ceil(1/float64(rl.rps) - 1e-9))
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}

// Handler rejects requests over the limit with a 429 explicit-status error
// carrying Retry-After. The error is left on the context for the translator.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.getVisitor(rl.keyFn(c)).Allow() {
			c.Next()
			return
		}
		_ = c.Error(apperr.NewResponseStatus(http.StatusTooManyRequests, "rate limit exceeded").
			WithHeader("Retry-After", rl.retryAfter()))
		c.Abort()
	}
}
