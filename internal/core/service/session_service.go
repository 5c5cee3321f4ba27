package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/identik/identity-service/internal/api/metrics"
	"github.com/identik/identity-service/internal/core/domain"
	"github.com/identik/identity-service/internal/core/ports"
	"github.com/identik/identity-service/internal/password"
	"github.com/identik/identity-service/internal/token"
)

// revocationSkew pads the retention of a revocation entry past the token's
// own expiry to cover clock drift between this process and the verifier.
const revocationSkew = time.Minute

const defaultMinPasswordLength = 8

type sessionService struct {
	users       ports.UserRepository
	hasher      *password.Hasher
	issuer      *token.Issuer
	revocation  ports.RevocationStore
	audit       ports.AuditSink
	minPassword int
	log         zerolog.Logger
	now         func() time.Time
}

// NewSessionService wires the credential store, password hasher, token issuer,
// revocation store, and audit sink into a SessionService. minPasswordLength
// below 1 falls back to the default policy.
func NewSessionService(
	users ports.UserRepository,
	hasher *password.Hasher,
	issuer *token.Issuer,
	revocation ports.RevocationStore,
	audit ports.AuditSink,
	minPasswordLength int,
	log zerolog.Logger,
) ports.SessionService {
	if minPasswordLength < 1 {
		minPasswordLength = defaultMinPasswordLength
	}
	return &sessionService{
		users:       users,
		hasher:      hasher,
		issuer:      issuer,
		revocation:  revocation,
		audit:       audit,
		minPassword: minPasswordLength,
		log:         log,
		now:         time.Now,
	}
}

func (s *sessionService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if err := s.checkPolicy(in.Password); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	now := s.now().UTC()
	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	metrics.RegistrationsTotal.Inc()
	s.recordAudit(ctx, created.ID, domain.ActionRegister)
	s.log.Info().Str("user_id", created.ID).Str("username", created.Username).Msg("account registered")

	return created, nil
}

// Login authenticates by username and password. A missing user and a wrong
// password both produce ErrInvalidCredentials so the endpoint cannot be used
// to enumerate usernames.
func (s *sessionService) Login(ctx context.Context, username, pass string) (domain.SessionToken, *domain.User, error) {
	if username == "" || pass == "" {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return domain.SessionToken{}, nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return domain.SessionToken{}, nil, domain.ErrInvalidCredentials
		}
		return domain.SessionToken{}, nil, fmt.Errorf("login: %w", err)
	}

	if !s.hasher.Verify(pass, user.PasswordHash) {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return domain.SessionToken{}, nil, domain.ErrInvalidCredentials
	}

	tok, err := s.issuer.Issue(user.ID)
	if err != nil {
		return domain.SessionToken{}, nil, fmt.Errorf("login: issue token: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.recordAudit(ctx, user.ID, domain.ActionLogin)
	s.log.Info().Str("user_id", user.ID).Str("jti", tok.JTI).Msg("login succeeded")

	return tok, user, nil
}

// Validate is the per-request enforcement point: cryptographic validity via
// the issuer, then the revocation check. A cryptographically valid but
// revoked token fails exactly like an invalid one.
func (s *sessionService) Validate(ctx context.Context, tok string) (domain.Session, error) {
	sess, err := s.issuer.Validate(tok)
	if err != nil {
		metrics.TokenValidationsTotal.WithLabelValues("invalid").Inc()
		return domain.Session{}, domain.ErrInvalidToken
	}

	if s.revocation.IsRevoked(ctx, sess.JTI) {
		metrics.TokenValidationsTotal.WithLabelValues("revoked").Inc()
		return domain.Session{}, domain.ErrInvalidToken
	}

	metrics.TokenValidationsTotal.WithLabelValues("ok").Inc()
	return sess, nil
}

// ChangePassword verifies the current password, applies policy to the new
// one, and commits the new hash before any revocation bookkeeping. Revoking
// the presenting session afterwards is best-effort: if the revocation store
// is down, the password change still stands.
func (s *sessionService) ChangePassword(ctx context.Context, userID, jti string, tokenExpiresAt time.Time, current, next string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrInvalidCredentials
		}
		return fmt.Errorf("change password: %w", err)
	}

	if !s.hasher.Verify(current, user.PasswordHash) {
		return domain.ErrInvalidCredentials
	}
	if err := s.checkPolicy(next); err != nil {
		return err
	}

	hash, err := s.hasher.Hash(next)
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}

	now := s.now().UTC()
	if err := s.users.UpdatePassword(ctx, userID, hash, now); err != nil {
		return fmt.Errorf("change password: %w", err)
	}

	metrics.PasswordChangesTotal.Inc()
	s.recordAudit(ctx, userID, domain.ActionPasswordChange)

	// Credential commit succeeded; now invalidate the session that presented
	// the old credentials. Retention is bounded by the token's own lifetime.
	if s.revocation.Revoke(ctx, jti, tokenExpiresAt.Sub(now)+revocationSkew) {
		metrics.TokensRevokedTotal.WithLabelValues("password_change").Inc()
	} else {
		s.log.Warn().Str("user_id", userID).Str("jti", jti).
			Msg("password changed but session revocation was not recorded")
	}

	s.log.Info().Str("user_id", userID).Msg("password changed")
	return nil
}

func (s *sessionService) Logout(ctx context.Context, userID, jti string, tokenExpiresAt time.Time) {
	if s.revocation.Revoke(ctx, jti, tokenExpiresAt.Sub(s.now())+revocationSkew) {
		metrics.TokensRevokedTotal.WithLabelValues("logout").Inc()
	}
	s.recordAudit(ctx, userID, domain.ActionLogout)
	s.log.Info().Str("user_id", userID).Str("jti", jti).Msg("logout")
}

func (s *sessionService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

// UpdateProfile applies field changes with uniqueness re-checked by the
// repository. Existing sessions stay valid: tokens bind the immutable user
// ID, not the username or email.
func (s *sessionService) UpdateProfile(ctx context.Context, userID string, changes domain.ProfileChanges) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Apply(changes, s.now().UTC())

	updated, err := s.users.Update(ctx, user)
	if err != nil {
		return nil, err
	}

	s.recordAudit(ctx, userID, domain.ActionProfileUpdate)
	s.log.Info().Str("user_id", userID).Msg("profile updated")

	return updated, nil
}

func (s *sessionService) checkPolicy(pass string) error {
	if len(pass) < s.minPassword {
		return domain.ErrWeakPassword
	}
	return nil
}

func (s *sessionService) recordAudit(ctx context.Context, userID string, action domain.AuditAction) {
	if s.audit == nil {
		return
	}
	s.audit.Enqueue(domain.AuditEntry{
		UserID: userID,
		Action: action,
		At:     s.now().UTC(),
	})
}
