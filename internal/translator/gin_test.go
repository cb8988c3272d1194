package translator

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-saas-core/internal/apperr"
	"github.com/tbourn/go-saas-core/internal/problem"
)

func newRouter(d *Dispatcher) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Boundary(d), Middleware(d))

	r.GET("/missing", func(c *gin.Context) {
		_ = c.Error(&apperr.NotFound{Resource: "note", ID: int64(1)})
	})
	r.GET("/crash", func(c *gin.Context) {
		_ = c.Error(errors.New("disk full"))
	})
	r.GET("/late", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
		_ = c.Error(&apperr.AccessDenied{})
	})
	r.GET("/late-unknown", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
		_ = c.Error(errors.New("after write"))
	})
	r.GET("/teapot", func(c *gin.Context) {
		_ = c.Error(apperr.NewResponseStatus(http.StatusTeapot, "").WithBody(gin.H{"tea": "pot"}))
	})
	r.GET("/empty", func(c *gin.Context) {
		_ = c.Error(apperr.NewResponseStatus(http.StatusNoContent, ""))
	})
	r.GET("/ok", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func serve(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestGin_Translates(t *testing.T) {
	r := newRouter(New(Options{Logger: quietLogger()}))

	w := serve(r, "/missing")
	if w.Code != http.StatusNotFound {
		t.Fatalf("code = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != problem.ContentType {
		t.Fatalf("content-type = %q", ct)
	}
	if w.Body.String() != `{"errors":"Not Found"}` {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestGin_BoundaryAnswersUnknown(t *testing.T) {
	r := newRouter(New(Options{Logger: quietLogger()}))

	w := serve(r, "/crash")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("code = %d", w.Code)
	}
	if w.Body.String() != `{"errors":"disk full"}` {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestGin_CommittedResponseUntouched(t *testing.T) {
	r := newRouter(New(Options{Logger: quietLogger()}))

	for _, path := range []string{"/late", "/late-unknown"} {
		w := serve(r, path)
		if w.Code != http.StatusOK || w.Body.String() != "ok" {
			t.Fatalf("%s: got %d %q", path, w.Code, w.Body.String())
		}
		if w.Header().Get(HeaderChallenge) != "" {
			t.Fatalf("%s: headers changed after commit", path)
		}
	}
}

func TestGin_RetainedAndEmptyBodies(t *testing.T) {
	r := newRouter(New(Options{Logger: quietLogger()}))

	w := serve(r, "/teapot")
	if w.Code != http.StatusTeapot || w.Body.String() != `{"tea":"pot"}` {
		t.Fatalf("got %d %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct == problem.ContentType {
		t.Fatal("retained bodies keep the plain JSON content type")
	}

	w = serve(r, "/empty")
	if w.Code != http.StatusNoContent || w.Body.Len() != 0 {
		t.Fatalf("got %d %q", w.Code, w.Body.String())
	}
}

func TestGin_NoErrorPassesThrough(t *testing.T) {
	r := newRouter(New(Options{Logger: quietLogger()}))
	w := serve(r, "/ok")
	if w.Code != http.StatusOK || w.Body.String() != `{"ok":true}` {
		t.Fatalf("got %d %s", w.Code, w.Body.String())
	}
}
