// Package password wraps bcrypt hashing and verification behind a small,
// deterministic API. The salt is embedded in the hash, so Hash produces a
// different string on every call while Verify still matches.
package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrEmptyPassword is returned when Hash is called with no input.
var ErrEmptyPassword = errors.New("password must not be empty")

// Hasher hashes and verifies passwords with a fixed bcrypt cost.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher using the given bcrypt cost. Costs outside
// bcrypt's supported range fall back to the library default.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash returns the bcrypt hash of raw.
func (h *Hasher) Hash(raw string) (string, error) {
	if raw == "" {
		return "", ErrEmptyPassword
	}
	b, err := bcrypt.GenerateFromPassword([]byte(raw), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether raw matches hash. Mismatch is not an error;
// bcrypt's comparison is constant-time over the digest.
func (h *Hasher) Verify(raw, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw)) == nil
}
