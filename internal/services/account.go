package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/tbourn/go-saas-core/internal/apperr"
	"github.com/tbourn/go-saas-core/internal/domain"
	"github.com/tbourn/go-saas-core/internal/repo"
	"github.com/tbourn/go-saas-core/internal/security"
)

// UserRepo is the persistence contract AccountService needs.
type UserRepo interface {
	GetUserByLogin(ctx context.Context, db *gorm.DB, login string) (*domain.User, error)
	CreateUser(ctx context.Context, db *gorm.DB, login string) (*domain.User, error)
}

// AccountService resolves the account of the calling user.
type AccountService struct {
	DB   *gorm.DB
	Repo UserRepo
}

// Current returns the account of the authenticated user in ctx.
// Anonymous callers get an authentication error and logins without a stored
// account a not-found error.
func (s *AccountService) Current(ctx context.Context) (*domain.User, error) {
	login, ok := security.CurrentUserLogin(ctx)
	if !ok {
		return nil, &apperr.Authentication{}
	}
	u, err := s.Repo.GetUserByLogin(ctx, s.DB, login)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, &apperr.NotFound{Resource: entityUser, ID: login, Cause: err}
	}
	return u, err
}

// Register stores an account for the authenticated user in ctx. A login that
// already has an account is rejected with a "userexists" alert.
func (s *AccountService) Register(ctx context.Context) (*domain.User, error) {
	login, ok := security.CurrentUserLogin(ctx)
	if !ok {
		return nil, &apperr.Authentication{}
	}
	var out *domain.User
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := s.Repo.GetUserByLogin(ctx, tx, login)
		switch {
		case err == nil:
			return &apperr.BadRequestAlert{Entity: entityUser, Key: "userexists", Message: "Login name already used"}
		case !errors.Is(err, repo.ErrNotFound):
			return err
		}
		out, err = s.Repo.CreateUser(ctx, tx, login)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
