// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file contains database bootstrapping helpers for
// SQLite (pure Go driver) and schema migrations.
package repo

import (
	"os"
	"path/filepath"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/tbourn/go-saas-core/internal/domain"
)

// Option tunes OpenSQLite.
type Option func(*openConfig)

type openConfig struct {
	tracing bool
	logger  logger.Interface
}

// WithTracing records a span per query on the global tracer provider.
func WithTracing() Option {
	return func(c *openConfig) { c.tracing = true }
}

// WithLogger replaces GORM's default logger.
func WithLogger(l logger.Interface) Option {
	return func(c *openConfig) { c.logger = l }
}

// OpenSQLite opens (or creates) a SQLite database and applies PRAGMAs.
func OpenSQLite(path string, opts ...Option) (*gorm.DB, error) {
	var cfg openConfig
	for _, o := range opts {
		o(&cfg)
	}

	// Fail early if the parent directory is missing; the driver reports it as
	// "out of memory (14)" on some platforms.
	if dir := filepath.Dir(path); dir != "." {
		if _, err := os.Stat(dir); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: cfg.logger})
	if err != nil {
		return nil, err
	}
	if cfg.tracing {
		if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
			return nil, err
		}
	}

	db.Exec("PRAGMA journal_mode=WAL;")
	db.Exec("PRAGMA synchronous=NORMAL;")
	db.Exec("PRAGMA foreign_keys=ON;")
	db.Exec("PRAGMA busy_timeout=5000;")

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	return db, nil
}

// AutoMigrate creates or updates the notes and users tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Note{},
		&domain.User{},
	)
}
