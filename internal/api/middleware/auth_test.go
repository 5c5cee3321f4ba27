package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/identik/identity-service/internal/core/domain"
	"github.com/identik/identity-service/internal/core/ports"
)

// stubSessions validates exactly one token string.
type stubSessions struct {
	ports.SessionService

	accepted string
	session  domain.Session
}

func (s *stubSessions) Validate(_ context.Context, tok string) (domain.Session, error) {
	if tok == s.accepted {
		return s.session, nil
	}
	return domain.Session{}, domain.ErrInvalidToken
}

func TestSessionMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	expiry := time.Now().Add(time.Hour).Truncate(time.Second)
	sessions := &stubSessions{
		accepted: "good-token",
		session:  domain.Session{UserID: "user-1", JTI: "jti-1", ExpiresAt: expiry},
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Session(sessions)(func(c echo.Context) error {
		called = true
		if c.Get("user_id") != "user-1" {
			t.Fatalf("user_id not set")
		}
		if c.Get("jti") != "jti-1" {
			t.Fatalf("jti not set")
		}
		if got, _ := c.Get("token_expires_at").(time.Time); !got.Equal(expiry) {
			t.Fatalf("token_expires_at not set: %v", got)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestSessionMiddleware_MissingHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Session(&stubSessions{})(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestSessionMiddleware_InvalidHeaderFormat(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Session(&stubSessions{})(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestSessionMiddleware_RejectedToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Session(&stubSessions{accepted: "good-token"})(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
