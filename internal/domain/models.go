// Package domain defines the persistence models for notes and user accounts.
// These types are mapped with GORM and shared by the repository and service
// layers.
package domain

import "time"

// Note is a free-text annotation other records point to by ID.
//
// Fields:
//   - ID: auto-increment primary key.
//   - Note: the text; empty notes are never stored.
//   - Version: optimistic-locking counter, bumped on every update.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
type Note struct {
	ID        int64     `json:"id"         gorm:"primaryKey;autoIncrement"`
	Note      string    `json:"note"       gorm:"type:text;not null"`
	Version   int       `json:"version"    gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for Note.
func (Note) TableName() string { return "notes" }

// User is an account known to the service. Credentials are verified upstream;
// only the identity is stored here.
type User struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	Login     string    `json:"login"      gorm:"type:varchar(64);not null;uniqueIndex:ux_users_login"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }
