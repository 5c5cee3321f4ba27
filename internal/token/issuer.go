// Package token issues and validates HS256-signed session tokens. Each token
// carries a unique jti so individual sessions can be revoked mid-lifetime.
// Validation here is purely cryptographic plus expiry; the revocation check
// is layered on top by the session service.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/identik/identity-service/internal/core/domain"
)

// Issuer mints and validates session tokens with a shared HMAC secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer returns an Issuer signing with secret. Tokens expire after ttl;
// a non-positive ttl defaults to 24h.
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// TTL returns the configured token lifetime.
func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

// Issue mints a signed token for userID with a fresh random jti.
func (i *Issuer) Issue(userID string) (domain.SessionToken, error) {
	now := i.now().UTC()
	jti := uuid.NewString()
	expiresAt := now.Add(i.ttl)

	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ID:        jti,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return domain.SessionToken{}, err
	}

	return domain.SessionToken{Value: signed, JTI: jti, ExpiresAt: expiresAt}, nil
}

// Validate parses and verifies a token string. The signing method is pinned
// to HS256 so an attacker cannot downgrade to "none" or swap algorithms.
// Any failure — bad signature, malformed structure, expiry, missing claims —
// collapses to domain.ErrInvalidToken.
func (i *Issuer) Validate(tok string) (domain.Session, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return i.now() }))
	if err != nil || !parsed.Valid {
		return domain.Session{}, domain.ErrInvalidToken
	}
	if claims.Subject == "" || claims.ID == "" || claims.ExpiresAt == nil {
		return domain.Session{}, domain.ErrInvalidToken
	}

	return domain.Session{
		UserID:    claims.Subject,
		JTI:       claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
