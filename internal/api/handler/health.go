package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/identik/identity-service/internal/infrastructure/db/redis"
)

// HealthHandler handles GET /health — liveness probe.
// Returns 200 immediately; confirms the process is alive.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// ReadinessHandler handles GET /health/ready — readiness probe.
// MongoDB must answer for the service to be ready; the revocation store is
// reported but never fails readiness, since the service runs fail-open
// without it.
type ReadinessHandler struct {
	mongo      *mongo.Database
	revocation *redis.RevocationStore
}

func NewReadinessHandler(db *mongo.Database, revocation *redis.RevocationStore) *ReadinessHandler {
	return &ReadinessHandler{
		mongo:      db,
		revocation: revocation,
	}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

func (h *ReadinessHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	deps := make(map[string]dependencyStatus)
	healthy := true

	if err := h.mongo.Client().Ping(ctx, nil); err != nil {
		deps["mongodb"] = dependencyStatus{Status: "down", Error: err.Error()}
		healthy = false
	} else {
		deps["mongodb"] = dependencyStatus{Status: "ok"}
	}

	switch {
	case !h.revocation.Enabled():
		deps["revocation_store"] = dependencyStatus{Status: "disabled"}
	default:
		if err := h.revocation.Ping(ctx); err != nil {
			// Degraded, not down: validation fails open without it.
			deps["revocation_store"] = dependencyStatus{Status: "degraded", Error: err.Error()}
		} else {
			deps["revocation_store"] = dependencyStatus{Status: "ok"}
		}
	}

	status := "ready"
	code := http.StatusOK
	if !healthy {
		status = "not_ready"
		code = http.StatusServiceUnavailable
	}

	return c.JSON(code, readinessResponse{Status: status, Dependencies: deps})
}
