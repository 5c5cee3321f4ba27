package domain

import "time"

// SessionToken is a freshly minted bearer credential as returned to a client.
// Value is the signed encoding; JTI identifies this token for revocation.
type SessionToken struct {
	Value     string    `json:"access_token"`
	JTI       string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Session is the authenticated context attached to a validated request:
// the claims the token proved, after the revocation check passed.
type Session struct {
	UserID    string
	JTI       string
	ExpiresAt time.Time
}

// Remaining reports how long the session's token is still good for. Used as
// the retention window for revocation entries — keeping a revocation past the
// token's own expiry buys nothing.
func (s Session) Remaining(now time.Time) time.Duration {
	return s.ExpiresAt.Sub(now)
}
