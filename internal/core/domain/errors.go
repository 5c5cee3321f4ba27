package domain

import "errors"

// Sentinel errors shared across services, repositories, and the HTTP layer.
// Authentication failures are deliberately coarse: a caller cannot tell a
// missing user from a wrong password, or an expired token from a revoked one.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrWeakPassword       = errors.New("password does not meet policy")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already taken")
	ErrUserNotFound       = errors.New("user not found")
)
