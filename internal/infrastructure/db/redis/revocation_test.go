package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
)

func newTestStore(t *testing.T) (*miniredis.Miniredis, *RevocationStore) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	store := NewRevocationStore(RevocationConfig{Addr: mr.Addr(), Timeout: time.Second}, zerolog.Nop())
	return mr, store
}

func TestRevocationStore_RevokeAndCheck(t *testing.T) {
	_, store := newTestStore(t)
	ctx := context.Background()

	if store.IsRevoked(ctx, "jti-1") {
		t.Fatalf("fresh jti reported revoked")
	}

	if !store.Revoke(ctx, "jti-1", time.Hour) {
		t.Fatalf("Revoke reported failure against a live backend")
	}
	if !store.IsRevoked(ctx, "jti-1") {
		t.Fatalf("revoked jti not reported revoked")
	}
	if store.IsRevoked(ctx, "jti-2") {
		t.Fatalf("unrelated jti reported revoked")
	}
}

func TestRevocationStore_EntryExpires(t *testing.T) {
	mr, store := newTestStore(t)
	ctx := context.Background()

	if !store.Revoke(ctx, "jti-1", time.Minute) {
		t.Fatalf("Revoke failed")
	}

	mr.FastForward(2 * time.Minute)

	if store.IsRevoked(ctx, "jti-1") {
		t.Fatalf("jti still revoked after TTL expiry")
	}
}

func TestRevocationStore_RevokeIdempotent(t *testing.T) {
	_, store := newTestStore(t)
	ctx := context.Background()

	if !store.Revoke(ctx, "jti-1", time.Hour) {
		t.Fatalf("first Revoke failed")
	}
	if !store.Revoke(ctx, "jti-1", time.Hour) {
		t.Fatalf("second Revoke failed")
	}
	if !store.IsRevoked(ctx, "jti-1") {
		t.Fatalf("jti not revoked after double revoke")
	}
}

func TestRevocationStore_NonPositiveTTL(t *testing.T) {
	_, store := newTestStore(t)
	ctx := context.Background()

	if store.Revoke(ctx, "jti-1", 0) {
		t.Fatalf("Revoke with zero ttl should report false")
	}
	if store.Revoke(ctx, "jti-1", -time.Minute) {
		t.Fatalf("Revoke with negative ttl should report false")
	}
	if store.IsRevoked(ctx, "jti-1") {
		t.Fatalf("expired-on-arrival revocation should not be retained")
	}
}

func TestRevocationStore_Disabled(t *testing.T) {
	store := NewRevocationStore(RevocationConfig{}, zerolog.Nop())
	ctx := context.Background()

	if store.Enabled() {
		t.Fatalf("store with no address reports enabled")
	}
	if store.Revoke(ctx, "jti-1", time.Hour) {
		t.Fatalf("disabled store accepted a revocation")
	}
	if store.IsRevoked(ctx, "jti-1") {
		t.Fatalf("disabled store reported a jti revoked")
	}
	if err := store.Ping(ctx); err != nil {
		t.Fatalf("disabled store Ping should be nil, got %v", err)
	}
}

func TestRevocationStore_FailsOpenWhenBackendDown(t *testing.T) {
	mr, store := newTestStore(t)
	ctx := context.Background()

	if !store.Revoke(ctx, "jti-1", time.Hour) {
		t.Fatalf("Revoke failed while backend was up")
	}

	mr.Close()

	// Unreachable backend: permissive answers, no panic, no error.
	if store.Revoke(ctx, "jti-2", time.Hour) {
		t.Fatalf("Revoke reported success against a dead backend")
	}
	if store.IsRevoked(ctx, "jti-1") {
		t.Fatalf("IsRevoked should fail open against a dead backend")
	}
	if err := store.Ping(ctx); err == nil {
		t.Fatalf("Ping should error against a dead backend")
	}

	// Once the backend is back, enforcement resumes for new revocations.
	if err := mr.Restart(); err != nil {
		t.Fatalf("miniredis restart failed: %v", err)
	}
	if !store.Revoke(ctx, "jti-3", time.Hour) {
		t.Fatalf("Revoke failed after backend recovery")
	}
	if !store.IsRevoked(ctx, "jti-3") {
		t.Fatalf("IsRevoked not enforcing after backend recovery")
	}
}
