package ports

import (
	"context"

	"github.com/stefanramac/online-cv-verison2/internal/core/domain"
)

// UpdateProfileInput carries the settings form. An empty Password keeps the
// current one.
type UpdateProfileInput struct {
	UserID   string
	Name     string
	Lastname string
	Nickname string
	Password string
}

// UserService exposes the caller's own profile.
type UserService interface {
	GetProfile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, input UpdateProfileInput) error
}
