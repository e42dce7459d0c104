package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthHandler serves the liveness probe.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Liveness handles GET /health — is the process alive?
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// ReadinessHandler checks the backing dependencies.
type ReadinessHandler struct {
	db  *mongo.Database
	rdb *redis.Client
}

func NewReadinessHandler(db *mongo.Database, rdb *redis.Client) *ReadinessHandler {
	return &ReadinessHandler{db: db, rdb: rdb}
}

// Readiness handles GET /health/ready — are Mongo and Redis reachable?
func (h *ReadinessHandler) Readiness(c echo.Context) error {
	deps := map[string]string{"mongo": "ok", "redis": "ok"}
	healthy := true

	pingCtx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Client().Ping(pingCtx, nil); err != nil {
		deps["mongo"] = err.Error()
		healthy = false
	}
	if err := h.rdb.Ping(pingCtx).Err(); err != nil {
		deps["redis"] = err.Error()
		healthy = false
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, deps)
}
