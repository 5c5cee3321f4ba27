package config

import (
	"context"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "8080" {
		t.Fatalf("unexpected port: %s", cfg.Port)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Fatalf("unexpected token ttl: %v", cfg.TokenTTL)
	}
	if cfg.PasswordMinLength != 8 {
		t.Fatalf("unexpected password min length: %d", cfg.PasswordMinLength)
	}
	// No REDIS_ADDR means the revocation store stays disabled.
	if cfg.Redis.Addr != "" {
		t.Fatalf("expected empty redis addr, got %s", cfg.Redis.Addr)
	}
	if cfg.Mongo.Database != "identity_service" {
		t.Fatalf("unexpected mongo database: %s", cfg.Mongo.Database)
	}
}

func TestLoad_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(context.Background()); err == nil {
		t.Fatalf("expected error when JWT_SECRET is unset")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("TOKEN_TTL", "15m")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("PASSWORD_MIN_LENGTH", "12")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.TokenTTL != 15*time.Minute {
		t.Fatalf("unexpected token ttl: %v", cfg.TokenTTL)
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Fatalf("unexpected redis addr: %s", cfg.Redis.Addr)
	}
	if cfg.PasswordMinLength != 12 {
		t.Fatalf("unexpected password min length: %d", cfg.PasswordMinLength)
	}
}
