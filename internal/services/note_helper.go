// Package services – NoteHelper
//
// NoteHelper stores the free-text notes other records reference by id. Empty
// text means "no note": saving it deletes the row. Unchanged text (compared
// after NFC normalization) is not written again, so versions only move on
// real edits. Updates are optimistic: a caller that read an older version
// gets a concurrency failure instead of overwriting a newer note.
package services

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"

	"github.com/tbourn/go-saas-core/internal/apperr"
	"github.com/tbourn/go-saas-core/internal/domain"
	"github.com/tbourn/go-saas-core/internal/observability"
	"github.com/tbourn/go-saas-core/internal/repo"
)

// DefaultNoteMaxRunes caps note length when NoteHelper.MaxRunes is unset.
const DefaultNoteMaxRunes = 2000

var tracer = observability.Tracer("services")

// NoteRepo is the persistence contract NoteHelper needs.
type NoteRepo interface {
	GetNote(ctx context.Context, db *gorm.DB, id int64) (*domain.Note, error)
	ListNotesByIDs(ctx context.Context, db *gorm.DB, ids []int64) ([]domain.Note, error)
	CreateNote(ctx context.Context, db *gorm.DB, text string) (*domain.Note, error)
	UpdateNote(ctx context.Context, db *gorm.DB, n *domain.Note, text string) error
	DeleteNote(ctx context.Context, db *gorm.DB, id int64) error
}

// NoteHelper reads and writes notes.
type NoteHelper struct {
	DB   *gorm.DB
	Repo NoteRepo
	// MaxRunes caps stored note length; <= 0 selects DefaultNoteMaxRunes.
	MaxRunes int
}

// NewNoteHelper returns a NoteHelper with the default length cap.
func NewNoteHelper(db *gorm.DB, r NoteRepo) *NoteHelper {
	return &NoteHelper{DB: db, Repo: r, MaxRunes: DefaultNoteMaxRunes}
}

// FindNoteByID returns the text of note id. Non-positive ids are reported as
// absent without touching the database.
func (h *NoteHelper) FindNoteByID(ctx context.Context, id int64) (string, bool, error) {
	if id <= 0 {
		return "", false, nil
	}
	n, err := h.Repo.GetNote(ctx, h.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return n.Note, true, nil
}

// FindAllNotesByID returns the texts of the notes in ids keyed by id. Unknown
// and non-positive ids are left out.
func (h *NoteHelper) FindAllNotesByID(ctx context.Context, ids []int64) (map[int64]string, error) {
	valid := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id > 0 {
			valid = append(valid, id)
		}
	}
	out := make(map[int64]string, len(valid))
	if len(valid) == 0 {
		return out, nil
	}
	notes, err := h.Repo.ListNotesByIDs(ctx, h.DB, valid)
	if err != nil {
		return nil, err
	}
	for _, n := range notes {
		out[n.ID] = n.Note
	}
	return out, nil
}

// Save stores note under id, or as a new note when id is nil.
//
// Empty text deletes note id and returns nil; whitespace is stored as is. A non-nil version must match
// the stored one. The returned note is the stored state.
func (h *NoteHelper) Save(ctx context.Context, note string, id *int64, version *int) (*domain.Note, error) {
	ctx, span := tracer.Start(ctx, "NoteHelper.Save")
	defer span.End()
	if id != nil {
		span.SetAttributes(attribute.Int64("note.id", *id))
	}

	if note == "" {
		if id != nil {
			return nil, h.Repo.DeleteNote(ctx, h.DB, *id)
		}
		return nil, nil
	}
	if err := h.validate(note); err != nil {
		return nil, err
	}
	if id == nil {
		return h.Repo.CreateNote(ctx, h.DB, note)
	}

	var out *domain.Note
	err := h.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := h.Repo.GetNote(ctx, tx, *id)
		if err != nil {
			return noteError(*id, err)
		}
		if version != nil && *version != n.Version {
			return &apperr.ConcurrencyFailure{Entity: entityNote, ID: n.ID}
		}
		if sameText(n.Note, note) {
			out = n
			return nil
		}
		if err := h.Repo.UpdateNote(ctx, tx, n, note); err != nil {
			return noteError(n.ID, err)
		}
		out = n
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SaveEntity is Save for a caller that already holds the note. A nil or
// unsaved n creates a new note; n is updated in place otherwise.
func (h *NoteHelper) SaveEntity(ctx context.Context, note string, n *domain.Note) (*domain.Note, error) {
	if note == "" {
		if n != nil && n.ID > 0 {
			return nil, h.Repo.DeleteNote(ctx, h.DB, n.ID)
		}
		return nil, nil
	}
	if err := h.validate(note); err != nil {
		return nil, err
	}
	if n == nil || n.ID <= 0 {
		return h.Repo.CreateNote(ctx, h.DB, note)
	}
	if sameText(n.Note, note) {
		return n, nil
	}
	if err := h.Repo.UpdateNote(ctx, h.DB, n, note); err != nil {
		return nil, noteError(n.ID, err)
	}
	return n, nil
}

func (h *NoteHelper) validate(note string) error {
	max := h.MaxRunes
	if max <= 0 {
		max = DefaultNoteMaxRunes
	}
	if utf8.RuneCountInString(note) > max {
		return apperr.NewFormValidation(entityNote, fmt.Sprintf("is too long (maximum is %d characters)", max))
	}
	return nil
}

// sameText compares under NFC so composed and decomposed forms match.
func sameText(a, b string) bool {
	return norm.NFC.String(a) == norm.NFC.String(b)
}
