package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/vendordocs-api/internal/domain/repository"
)

const healthTimeout = 2 * time.Second

// HealthHandler reporta el estado del servicio y del store.
type HealthHandler struct {
	service string
	store   repository.HealthChecker
}

// NewHealthHandler construye el handler. store puede ser nil.
func NewHealthHandler(service string, store repository.HealthChecker) *HealthHandler {
	return &HealthHandler{service: service, store: store}
}

// Check GET /health
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	body := fiber.Map{"status": "ok", "service": h.service, "store": "up"}
	if h.store == nil {
		body["store"] = "n/a"
		return c.JSON(body)
	}
	ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
	defer cancel()
	if err := h.store.Ping(ctx); err != nil {
		body["status"], body["store"] = "degraded", "down"
		return c.Status(fiber.StatusServiceUnavailable).JSON(body)
	}
	return c.JSON(body)
}
