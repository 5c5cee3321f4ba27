package password

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHasher_HashAndVerify(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash, err := h.Hash("S3cretPass!")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if hash == "S3cretPass!" {
		t.Fatalf("hash equals raw password")
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Fatalf("expected bcrypt hash, got %q", hash)
	}

	if !h.Verify("S3cretPass!", hash) {
		t.Fatalf("Verify rejected the correct password")
	}
	if h.Verify("wrongpass", hash) {
		t.Fatalf("Verify accepted a wrong password")
	}
}

func TestHasher_HashIsSalted(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	first, err := h.Hash("S3cretPass!")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	second, err := h.Hash("S3cretPass!")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if first == second {
		t.Fatalf("two hashes of the same password are identical; salt missing")
	}
}

func TestHasher_EmptyPassword(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	if _, err := h.Hash(""); err != ErrEmptyPassword {
		t.Fatalf("expected ErrEmptyPassword, got %v", err)
	}
}

func TestHasher_BadCostFallsBack(t *testing.T) {
	h := NewHasher(999)
	if h.cost != bcrypt.DefaultCost {
		t.Fatalf("expected default cost, got %d", h.cost)
	}
}

func TestHasher_VerifyGarbageHash(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	if h.Verify("anything", "not-a-bcrypt-hash") {
		t.Fatalf("Verify accepted a malformed hash")
	}
}
