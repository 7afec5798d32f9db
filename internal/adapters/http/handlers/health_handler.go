package handlers

import (
	"revendapro/internal/config"
	"revendapro/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler reports liveness and dependency health
type HealthHandler struct{}

// NewHealthHandler creates a new health handler
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Check godoc
// @Summary Health check
// @Description Reports API and database health
// @Tags health
// @Produce json
// @Success 200 {object} response.Response
// @Failure 503 {object} response.Response
// @Router /health [get]
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	if err := config.HealthCheck(); err != nil {
		return response.Error(c, fiber.StatusServiceUnavailable, "database unreachable")
	}
	return response.Success(c, "ok", fiber.Map{
		"status": "healthy",
	})
}
