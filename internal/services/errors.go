// Package services holds the business logic for notes and accounts.
// This file maps repository outcomes onto the typed errors the HTTP error
// translator understands, so handlers can pass service errors through as-is.
package services

import (
	"errors"

	"github.com/tbourn/go-saas-core/internal/apperr"
	"github.com/tbourn/go-saas-core/internal/repo"
)

const (
	entityNote = "note"
	entityUser = "user"
)

// noteError converts repository errors for the note with id.
func noteError(id int64, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repo.ErrNotFound):
		return &apperr.NotFound{Resource: entityNote, ID: id, Cause: err}
	case errors.Is(err, repo.ErrStaleVersion):
		return &apperr.ConcurrencyFailure{Entity: entityNote, ID: id, Cause: err}
	default:
		return err
	}
}
