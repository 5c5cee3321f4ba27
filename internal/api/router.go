package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/identik/identity-service/internal/api/handler"
	"github.com/identik/identity-service/internal/api/middleware"
	"github.com/identik/identity-service/internal/core/ports"
	"github.com/identik/identity-service/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(
	sessions ports.SessionService,
	db *mongo.Database,
	revocation *redis.RevocationStore,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("identity"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(sessions)
	profileHandler := handler.NewProfileHandler(sessions)
	sessionMW := middleware.Session(sessions)

	// --- Public auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Authenticated routes ---
	e.POST("/auth/logout", authHandler.Logout, sessionMW)
	e.GET("/auth/profile", profileHandler.Get, sessionMW)
	e.PUT("/auth/profile", profileHandler.Update, sessionMW)
	e.PUT("/auth/password", profileHandler.ChangePassword, sessionMW)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, revocation)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – is the credential store up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
