package ports

import (
	"context"
	"time"

	"github.com/identik/identity-service/internal/core/domain"
)

// RegisterInput is the DTO passed from the transport layer when creating an
// account. Password is the raw secret; it is hashed before it ever reaches a
// repository.
type RegisterInput struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Password  string
}

// SessionService orchestrates the credential and session lifecycle:
// registration, login, per-request token validation, password change with
// session invalidation, and profile mutation.
type SessionService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	// Login verifies the password and mints a session token. A missing user
	// and a wrong password are indistinguishable to the caller.
	Login(ctx context.Context, username, password string) (domain.SessionToken, *domain.User, error)
	// Validate checks the token cryptographically and against the revocation
	// store. Revoked, expired, and malformed tokens all fail the same way.
	Validate(ctx context.Context, token string) (domain.Session, error)
	// ChangePassword commits the new hash first, then best-effort revokes the
	// presenting session. Revocation failure never fails the call.
	ChangePassword(ctx context.Context, userID, jti string, tokenExpiresAt time.Time, current, next string) error
	// Logout best-effort revokes the presenting session's token.
	Logout(ctx context.Context, userID, jti string, tokenExpiresAt time.Time)
	GetProfile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, changes domain.ProfileChanges) (*domain.User, error)
}
