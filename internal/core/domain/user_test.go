package domain

import (
	"testing"
	"time"
)

func TestUser_Apply(t *testing.T) {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	u := User{
		ID:        "user-1",
		Username:  "alice",
		Email:     "alice@example.com",
		FirstName: "Alice",
		LastName:  "Smith",
		CreatedAt: created,
		UpdatedAt: created,
	}

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	first := "Alicia"
	email := "alicia@example.com"
	u.Apply(ProfileChanges{FirstName: &first, Email: &email}, now)

	if u.FirstName != "Alicia" || u.Email != "alicia@example.com" {
		t.Fatalf("changes not applied: %+v", u)
	}
	if u.Username != "alice" || u.LastName != "Smith" {
		t.Fatalf("nil changes must leave fields untouched: %+v", u)
	}
	if u.ID != "user-1" || !u.CreatedAt.Equal(created) {
		t.Fatalf("immutable fields changed: %+v", u)
	}
	if !u.UpdatedAt.Equal(now) {
		t.Fatalf("updated_at not refreshed: %v", u.UpdatedAt)
	}
}

func TestSession_Remaining(t *testing.T) {
	now := time.Now()
	s := Session{ExpiresAt: now.Add(30 * time.Minute)}

	if got := s.Remaining(now); got != 30*time.Minute {
		t.Fatalf("expected 30m, got %v", got)
	}
	if got := s.Remaining(now.Add(time.Hour)); got >= 0 {
		t.Fatalf("expected negative remaining for expired session, got %v", got)
	}
}
