// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Note model.
//
// Functions are thin: no business rules, only persistence. Missing rows are
// reported as ErrNotFound and lost optimistic-locking races as ErrStaleVersion.
package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-saas-core/internal/domain"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = gorm.ErrRecordNotFound
	// ErrStaleVersion is returned when an update lost an optimistic-locking
	// race: the row changed since the caller read it.
	ErrStaleVersion = errors.New("stale version")
)

// GetNote fetches a note by id.
func GetNote(ctx context.Context, db *gorm.DB, id int64) (*domain.Note, error) {
	var n domain.Note
	if err := db.WithContext(ctx).First(&n, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

// ListNotesByIDs returns the notes whose id is in ids, in ascending id order.
// Unknown ids are skipped.
func ListNotesByIDs(ctx context.Context, db *gorm.DB, ids []int64) ([]domain.Note, error) {
	var out []domain.Note
	if len(ids) == 0 {
		return out, nil
	}
	err := db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("id asc").
		Find(&out).Error
	return out, err
}

// CreateNote inserts a note with version 0.
func CreateNote(ctx context.Context, db *gorm.DB, text string) (*domain.Note, error) {
	now := time.Now().UTC()
	n := &domain.Note{Note: text, CreatedAt: now, UpdatedAt: now}
	if err := db.WithContext(ctx).Create(n).Error; err != nil {
		return nil, err
	}
	return n, nil
}

// UpdateNote sets the text of n when its stored version still equals
// n.Version, then bumps the version. On success n reflects the new row.
func UpdateNote(ctx context.Context, db *gorm.DB, n *domain.Note, text string) error {
	now := time.Now().UTC()
	res := db.WithContext(ctx).
		Model(&domain.Note{}).
		Where("id = ? AND version = ?", n.ID, n.Version).
		Updates(map[string]any{
			"note":       text,
			"version":    gorm.Expr("version + 1"),
			"updated_at": now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := db.WithContext(ctx).Model(&domain.Note{}).Where("id = ?", n.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		return ErrStaleVersion
	}
	n.Note = text
	n.Version++
	n.UpdatedAt = now
	return nil
}

// DeleteNote removes the note with id. Deleting a missing note is a no-op.
func DeleteNote(ctx context.Context, db *gorm.DB, id int64) error {
	return db.WithContext(ctx).Delete(&domain.Note{}, "id = ?", id).Error
}
