package handler

import (
	"context"
	"time"

	"nerd-math/internal/domain"
	"nerd-math/internal/dto"
	"nerd-math/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const healthCheckTimeout = 2 * time.Second

// DBPinger is satisfied by *sqlx.DB.
type DBPinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler reports whether the database and cache are reachable.
type HealthHandler struct {
	db    DBPinger
	cache domain.Cache
}

func NewHealthHandler(db DBPinger, cache domain.Cache) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthCheckTimeout)
	defer cancel()

	resp := dto.HealthResponse{Status: "ok", Database: "ok", Cache: "ok"}
	if h.db == nil {
		resp.Database = "unconfigured"
	} else if err := h.db.PingContext(ctx); err != nil {
		logger.Get().Error("Database health check failed", zap.Error(err))
		resp.Database = "unavailable"
		resp.Status = "degraded"
	}
	if h.cache == nil {
		resp.Cache = "unconfigured"
	} else if err := h.cache.Ping(ctx); err != nil {
		logger.Get().Error("Cache health check failed", zap.Error(err))
		resp.Cache = "unavailable"
		resp.Status = "degraded"
	}

	if resp.Status != "ok" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
	}
	return c.JSON(resp)
}
