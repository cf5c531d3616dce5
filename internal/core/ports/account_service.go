package ports

import (
	"context"

	"github.com/vendora/catalog-api/internal/core/domain"
)

// RegisterInput carries the registration form.
type RegisterInput struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=50"`
}

// LoginInput carries the login form.
type LoginInput struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=50"`
}

type AccountService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Authenticate(ctx context.Context, input LoginInput) (string, error)
	Logout(ctx context.Context, token string) error
	CurrentUser(ctx context.Context, identity *domain.Identity) (*domain.User, error)
}
