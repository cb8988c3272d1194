package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-saas-core/internal/domain"
)

// CreateUser inserts an account for login with a random UUID.
func CreateUser(ctx context.Context, db *gorm.DB, login string) (*domain.User, error) {
	u := &domain.User{
		ID:        uuid.NewString(),
		Login:     login,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

// GetUserByLogin fetches the account for login, or ErrNotFound.
func GetUserByLogin(ctx context.Context, db *gorm.DB, login string) (*domain.User, error) {
	var u domain.User
	if err := db.WithContext(ctx).First(&u, "login = ?", login).Error; err != nil {
		return nil, err
	}
	return &u, nil
}
