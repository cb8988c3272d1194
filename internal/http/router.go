// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging, compression, metrics, error
// translation, panic recovery, CORS, security headers, authentication and
// rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus), outside error translation
//     so logs and metrics see the final status
//   - Every failure leaves the handler chain as an error on the context and is
//     rendered in one place
//   - Deterministic, minimal router setup; all dependencies injected
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/tbourn/go-saas-core/docs"
	"github.com/tbourn/go-saas-core/internal/apperr"
	"github.com/tbourn/go-saas-core/internal/config"
	"github.com/tbourn/go-saas-core/internal/domain"
	"github.com/tbourn/go-saas-core/internal/http/handlers"
	"github.com/tbourn/go-saas-core/internal/http/middleware"
	"github.com/tbourn/go-saas-core/internal/repo"
	"github.com/tbourn/go-saas-core/internal/security"
	"github.com/tbourn/go-saas-core/internal/services"
	"github.com/tbourn/go-saas-core/internal/translator"
)

// maxBodyBytes caps every request body.
const maxBodyBytes = 1 << 20

// KindPayloadTooLarge classifies bodies cut off by the body size limit.
const KindPayloadTooLarge = translator.KindCustom

// noteRepoShim adapts the repository free functions to services.NoteRepo.
type noteRepoShim struct{}

func (noteRepoShim) GetNote(ctx context.Context, db *gorm.DB, id int64) (*domain.Note, error) {
	return repo.GetNote(ctx, db, id)
}

func (noteRepoShim) ListNotesByIDs(ctx context.Context, db *gorm.DB, ids []int64) ([]domain.Note, error) {
	return repo.ListNotesByIDs(ctx, db, ids)
}

func (noteRepoShim) CreateNote(ctx context.Context, db *gorm.DB, text string) (*domain.Note, error) {
	return repo.CreateNote(ctx, db, text)
}

func (noteRepoShim) UpdateNote(ctx context.Context, db *gorm.DB, n *domain.Note, text string) error {
	return repo.UpdateNote(ctx, db, n, text)
}

func (noteRepoShim) DeleteNote(ctx context.Context, db *gorm.DB, id int64) error {
	return repo.DeleteNote(ctx, db, id)
}

// userRepoShim adapts the repository free functions to services.UserRepo.
type userRepoShim struct{}

func (userRepoShim) GetUserByLogin(ctx context.Context, db *gorm.DB, login string) (*domain.User, error) {
	return repo.GetUserByLogin(ctx, db, login)
}

func (userRepoShim) CreateUser(ctx context.Context, db *gorm.DB, login string) (*domain.User, error) {
	return repo.CreateUser(ctx, db, login)
}

// NewDispatcher builds the error translator from configuration.
func NewDispatcher(cfg config.TranslatorConfig) *translator.Dispatcher {
	return translator.New(translator.Options{
		RealmName:           cfg.RealmName,
		UnprocessableErrors: translator.BindingFieldErrors,
		Rules: []translator.Rule{
			translator.RuleFor[*http.MaxBytesError](KindPayloadTooLarge, http.StatusRequestEntityTooLarge),
		},
	})
}

// errorLayer returns the middleware rendering errors left on the context:
// the translator with its terminal boundary, or the plain envelope when the
// translator is disabled.
func errorLayer(cfg config.TranslatorConfig) []gin.HandlerFunc {
	if !cfg.Enabled {
		return []gin.HandlerFunc{handlers.DefaultErrors()}
	}
	d := NewDispatcher(cfg)
	return []gin.HandlerFunc{translator.Boundary(d), translator.Middleware(d)}
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine and mounts the versioned public API under cfg.APIBasePath.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Logger: request-scoped logger and access log
//  4. Gzip compression
//  5. Metrics
//  6. Error translation (boundary, then translator)
//  7. Recovery: panics become errors for the translator
//  8. Body size limiter
//  9. CORS and security headers
//  10. Authentication, then the rate limiter keyed by login or IP
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))
	r.Use(middleware.Metrics())
	r.Use(errorLayer(cfg.Translator)...)
	r.Use(middleware.Recovery())
	r.Use(limitBody(maxBodyBytes))
	r.Use(corsMiddleware(cfg.CORS)...)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))
	r.Use(security.Authenticate(cfg.Security.RolePrefix))
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByLoginOrIP())
	r.Use(rl.Handler())

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		_ = c.Error(&apperr.NotFound{Resource: "route", ID: c.Request.URL.Path})
		c.Abort()
	})
	r.NoMethod(func(c *gin.Context) {
		_ = c.Error(apperr.NewResponseStatus(http.StatusMethodNotAllowed, "method not allowed"))
		c.Abort()
	})

	// Liveness/health and metrics
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.SwaggerEnabled {
		docs.SwaggerInfo.BasePath = cfg.APIBasePath
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := groupWithPrefix(r, cfg.APIBasePath)

	ah := handlers.NewAccountHandlers(&services.AccountService{DB: db, Repo: userRepoShim{}})
	account := api.Group("/account", security.RequireAuthenticated())
	{
		account.GET("", ah.GetAccount)
		account.POST("", ah.RegisterAccount)
	}

	if cfg.Notes.Enabled {
		helper := services.NewNoteHelper(db, noteRepoShim{})
		helper.MaxRunes = cfg.Notes.MaxRunes
		nh := handlers.NewNoteHandlers(helper)

		prefix := cfg.Security.RolePrefix
		notes := api.Group("/notes", security.RequireAnyAuthority(
			security.NormalizeAuthority(prefix, "user"),
			security.NormalizeAuthority(prefix, "admin"),
		))
		{
			notes.GET("", nh.ListNotes)
			notes.GET("/:id", nh.GetNote)
			notes.POST("", nh.CreateNote)
			notes.PUT("/:id", nh.UpdateNote)
		}
	}
}

// corsMiddleware returns the CORS posture: allow all origins when none are
// configured, else echo allow-listed origins.
func corsMiddleware(cfg config.CORSConfig) []gin.HandlerFunc {
	base := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", security.HeaderLogin, security.HeaderRoles},
		ExposeHeaders:    []string{"X-Request-ID", "Content-Length", "Location", "WWW-Authenticate", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}

	if len(cfg.AllowedOrigins) == 0 {
		base.AllowAllOrigins = true
		// Force ACAO: * even for requests without an Origin header.
		return []gin.HandlerFunc{
			func(c *gin.Context) {
				c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
				c.Next()
			},
			cors.New(base),
		}
	}

	allowed := make(map[string]struct{}, len(cfg.AllowedOrigins))
	for _, o := range cfg.AllowedOrigins {
		allowed[o] = struct{}{}
	}
	base.AllowOrigins = cfg.AllowedOrigins
	return []gin.HandlerFunc{
		func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		},
		cors.New(base),
	}
}

// limitBody caps the request body size to maxBytes using http.MaxBytesReader.
// Reads past the cap fail with *http.MaxBytesError, which the translator
// answers with 413.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
