// Package redis implements the token revocation denylist on top of Redis.
//
// The store is deliberately fail-open: when Redis is unreachable, times out,
// or was never configured, Revoke reports false and IsRevoked reports false,
// and user-facing operations proceed. A short window of unrevoked-but-changed
// credentials is accepted in exchange for availability; the degradation is
// logged and counted rather than surfaced as an error.
package redis

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/identik/identity-service/internal/api/metrics"
)

const (
	keyPrefix      = "revoked:"
	defaultTimeout = 2 * time.Second
)

// RevocationConfig captures the settings for the revocation store. An empty
// Addr means no backend: the store is constructed in a permanently disabled
// variant and never dials.
type RevocationConfig struct {
	Addr    string
	DB      int
	Timeout time.Duration
}

// RevocationStore is a best-effort denylist of jti values with per-entry TTL.
// The backing client is created lazily on first use and shared for the
// process lifetime; first-use races are settled by sync.Once.
type RevocationStore struct {
	cfg RevocationConfig
	log zerolog.Logger

	once   sync.Once
	client *redis.Client // nil when disabled
}

// NewRevocationStore returns a store for cfg. No connection is attempted
// here; the first Revoke/IsRevoked call initialises the client.
func NewRevocationStore(cfg RevocationConfig, log zerolog.Logger) *RevocationStore {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &RevocationStore{cfg: cfg, log: log}
}

// Enabled reports whether a backend address was configured.
func (s *RevocationStore) Enabled() bool {
	return s.cfg.Addr != ""
}

// Revoke records jti as revoked for ttl. Re-revoking an unexpired jti simply
// refreshes the TTL. Reports false when the entry could not be written: no
// backend configured, ttl already elapsed, or Redis unavailable.
func (s *RevocationStore) Revoke(ctx context.Context, jti string, ttl time.Duration) bool {
	c := s.connect()
	if c == nil {
		return false
	}
	if ttl <= 0 {
		// The token has already expired naturally; nothing to retain.
		return false
	}

	opCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	if err := c.Set(opCtx, keyPrefix+jti, "1", ttl).Err(); err != nil {
		s.degraded("revoke", err)
		return false
	}
	return true
}

// IsRevoked reports whether jti has an unexpired revocation entry. Degraded
// mode answers false: an unreachable denylist must not lock everyone out.
func (s *RevocationStore) IsRevoked(ctx context.Context, jti string) bool {
	c := s.connect()
	if c == nil {
		return false
	}

	opCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	n, err := c.Exists(opCtx, keyPrefix+jti).Result()
	if err != nil {
		s.degraded("is_revoked", err)
		return false
	}
	return n > 0
}

// Ping verifies backend connectivity for readiness probes. Returns nil when
// the store is disabled — a configured-off denylist is not a failed one.
func (s *RevocationStore) Ping(ctx context.Context) error {
	c := s.connect()
	if c == nil {
		return nil
	}

	opCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	return c.Ping(opCtx).Err()
}

// connect initialises the shared client on first use. go-redis dials on the
// first command, so construction itself cannot fail; command errors are
// handled per-operation.
func (s *RevocationStore) connect() *redis.Client {
	s.once.Do(func() {
		if s.cfg.Addr == "" {
			s.log.Warn().Msg("revocation store disabled: no redis address configured")
			return
		}
		s.client = redis.NewClient(&redis.Options{
			Addr: s.cfg.Addr,
			DB:   s.cfg.DB,
		})
	})
	return s.client
}

func (s *RevocationStore) degraded(op string, err error) {
	metrics.RevocationDegradedTotal.WithLabelValues(op).Inc()
	s.log.Warn().Err(err).Str("op", op).Msg("revocation store unavailable, failing open")
}
