package ports

import (
	"context"
	"time"
)

// RevocationStore is a best-effort denylist of token identifiers (jti).
// Both operations are fail-open: when the backing store is unavailable or
// not configured, Revoke reports false and IsRevoked reports false, and
// neither surfaces an error. Availability wins over strict enforcement in
// the degraded mode; the store logs the degradation instead.
type RevocationStore interface {
	// Revoke records jti as revoked for at least ttl. Reports whether the
	// entry was actually written.
	Revoke(ctx context.Context, jti string, ttl time.Duration) bool
	// IsRevoked reports whether jti has an unexpired revocation entry.
	IsRevoked(ctx context.Context, jti string) bool
}
