package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/identik/identity-service/internal/api"
	"github.com/identik/identity-service/internal/core/service"
	"github.com/identik/identity-service/internal/infrastructure/config"
	"github.com/identik/identity-service/internal/infrastructure/db/mongo"
	"github.com/identik/identity-service/internal/infrastructure/db/redis"
	"github.com/identik/identity-service/internal/infrastructure/queue"
	"github.com/identik/identity-service/internal/password"
	"github.com/identik/identity-service/internal/token"
	"github.com/identik/identity-service/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{})
		l := logger.Get()
		l.Fatal().Err(err).Msg("configuration failed")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- Credential store (fatal when unavailable) ---
	client, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()

	userRepo := mongo.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index creation failed")
	}

	// --- Revocation store (lazy, fail-open; empty addr means disabled) ---
	revocation := redis.NewRevocationStore(redis.RevocationConfig{
		Addr:    cfg.Redis.Addr,
		DB:      cfg.Redis.DB,
		Timeout: cfg.Redis.Timeout,
	}, log)

	// --- Audit pipeline ---
	auditRepo := mongo.NewAuditRepository(db)
	auditRecorder := service.NewAuditService(auditRepo, log)
	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, auditRecorder, log)
	dispatcher.Start(ctx)

	// --- Core service ---
	hasher := password.NewHasher(cfg.BcryptCost)
	issuer := token.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
	sessions := service.NewSessionService(userRepo, hasher, issuer, revocation, dispatcher, cfg.PasswordMinLength, log)

	e := api.NewRouter(sessions, db, revocation, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("identity service listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		os.Exit(1)
	}
	log.Info().Msg("identity service stopped")
}
