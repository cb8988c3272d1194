package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-saas-core/internal/domain"
)

// AccountService resolves and registers the caller's account.
type AccountService interface {
	Current(ctx context.Context) (*domain.User, error)
	Register(ctx context.Context) (*domain.User, error)
}

// UserDTO is the public view of an account.
type UserDTO struct {
	ID    string `json:"id"    example:"141add05-4415-4938-b5a1-17e0d3171aff"`
	Login string `json:"login" example:"alice"`
}

// NewUserDTO copies the public fields of u.
func NewUserDTO(u *domain.User) UserDTO {
	return UserDTO{ID: u.ID, Login: u.Login}
}

// AccountHandlers groups the account endpoints.
type AccountHandlers struct {
	svc AccountService
}

// NewAccountHandlers binds the account endpoints to svc.
func NewAccountHandlers(svc AccountService) *AccountHandlers {
	return &AccountHandlers{svc: svc}
}

// GetAccount godoc
// @ID          getAccount
// @Summary     Current account
// @Tags        Account
// @Produce     json
// @Param       X-User-Login  header  string  true  "Login set by the gateway"  example(alice)
// @Success     200  {object} handlers.UserDTO
// @Failure     401  {object} problem.Body "Not authenticated"
// @Failure     404  {object} problem.Body "No account for login"
// @Router      /account [get]
func (h *AccountHandlers) GetAccount(c *gin.Context) {
	u, err := h.svc.Current(c.Request.Context())
	if err != nil {
		abort(c, err)
		return
	}
	ok(c, http.StatusOK, NewUserDTO(u))
}

// RegisterAccount godoc
// @ID          registerAccount
// @Summary     Register the current login
// @Tags        Account
// @Produce     json
// @Param       X-User-Login  header  string  true  "Login set by the gateway"  example(alice)
// @Success     201  {object} handlers.UserDTO
// @Failure     401  {object} problem.Body "Not authenticated"
// @Failure     422  {object} problem.Body "Login already registered"
// @Router      /account [post]
func (h *AccountHandlers) RegisterAccount(c *gin.Context) {
	u, err := h.svc.Register(c.Request.Context())
	if err != nil {
		abort(c, err)
		return
	}
	ok(c, http.StatusCreated, NewUserDTO(u))
}
