package translator

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-saas-core/internal/problem"
)

// ctxKeyUnhandled holds an error Middleware re-raised for Boundary.
const ctxKeyUnhandled = "translator.unhandled"

type ginExchange struct {
	c *gin.Context
}

// GinExchange adapts a gin context to an Exchange.
func GinExchange(c *gin.Context) Exchange { return ginExchange{c: c} }

func (g ginExchange) Context() context.Context {
	if g.c.Request == nil {
		return context.Background()
	}
	return g.c.Request.Context()
}

func (g ginExchange) Committed() bool {
	if g.c.Writer.Written() {
		return true
	}
	return g.c.Request != nil && g.c.Request.Context().Err() != nil
}

func (g ginExchange) Header() http.Header { return g.c.Writer.Header() }

func (g ginExchange) Write(status int, body any) error {
	if body == nil {
		g.c.AbortWithStatus(status)
		return nil
	}
	if _, ok := body.(problem.Body); ok {
		g.c.Header("Content-Type", problem.ContentType)
	}
	g.c.AbortWithStatusJSON(status, body)
	return nil
}

// Middleware dispatches the last error a downstream handler attached with
// c.Error. Errors the dispatcher does not own are left for Boundary.
func Middleware(d *Dispatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		last := c.Errors.Last()
		if last == nil || last.Err == nil {
			return
		}
		rerr := d.Dispatch(GinExchange(c), last.Err)
		if rerr != nil && d.Classify(rerr).Kind == KindUnknown {
			c.Set(ctxKeyUnhandled, rerr)
		}
	}
}

// Boundary is the outermost error handler: it answers 500 for errors nothing
// else translated. It must be registered before Middleware.
func Boundary(d *Dispatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		v, ok := c.Get(ctxKeyUnhandled)
		if !ok {
			return
		}
		err, _ := v.(error)
		if err == nil {
			return
		}
		ex := GinExchange(c)
		if ex.Committed() {
			d.loggerFor(ex).Error().Err(err).
				Str("path", c.FullPath()).
				Msg("unhandled error after response was committed")
			return
		}
		_ = d.Terminate(ex, err)
	}
}
