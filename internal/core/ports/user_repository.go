package ports

import (
	"context"
	"time"

	"github.com/identik/identity-service/internal/core/domain"
)

// UserRepository defines persistence operations for identity records.
// Uniqueness of username and email is enforced by the store; violations
// surface as domain.ErrUsernameTaken / domain.ErrEmailTaken.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// Update overwrites the user's profile fields and refreshes updated_at.
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	// UpdatePassword stores a new password hash and refreshes updated_at.
	UpdatePassword(ctx context.Context, id, passwordHash string, updatedAt time.Time) error
}
