package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is the full configuration surface of the identity service, read
// from environment variables.
type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`

	// PasswordMinLength is the minimum accepted password length on
	// registration and password change.
	PasswordMinLength int `env:"PASSWORD_MIN_LENGTH, default=8"`

	// BcryptCost tunes the password hashing work factor. 0 means the
	// library default.
	BcryptCost int `env:"BCRYPT_COST, default=0"`

	AuditWorkers int `env:"AUDIT_WORKERS, default=4"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=identity_service"`
}

// RedisConfig configures the revocation store. An empty Addr leaves the
// store in its permanently degraded (disabled) variant.
type RedisConfig struct {
	Addr    string        `env:"REDIS_ADDR"`
	DB      int           `env:"REDIS_DB,      default=0"`
	Timeout time.Duration `env:"REDIS_TIMEOUT, default=2s"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET must be set")
	}
	return &cfg, nil
}
