package handlers

import (
	"revendapro/internal/core/services"
	"revendapro/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler serves the aggregated home-screen numbers
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Get godoc
// @Summary Dashboard
// @Description Financing summary, inventory counts, gateway balance and session count
// @Tags dashboard
// @Produce json
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /dashboard [get]
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	dashboard, err := h.dashboardService.Get(c.Context())
	if err != nil {
		return response.InternalServerError(c, "failed to build dashboard")
	}
	return response.Success(c, "dashboard", dashboard)
}
