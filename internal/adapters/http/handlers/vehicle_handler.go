package handlers

import (
	"errors"

	"revendapro/internal/adapters/persistence/models"
	"revendapro/internal/core/domain"
	"revendapro/internal/core/services"
	"revendapro/internal/pkg/pagination"
	"revendapro/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// VehicleHandler handles vehicle inventory and bank master endpoints
type VehicleHandler struct {
	masterService *services.MasterService
}

// NewVehicleHandler creates a new vehicle handler
func NewVehicleHandler(masterService *services.MasterService) *VehicleHandler {
	return &VehicleHandler{masterService: masterService}
}

// Create godoc
// @Summary Create a vehicle
// @Tags vehicles
// @Accept json
// @Produce json
// @Param request body models.Vehicle true "Vehicle data"
// @Success 201 {object} response.Response
// @Security BearerAuth
// @Router /vehicles [post]
func (h *VehicleHandler) Create(c *fiber.Ctx) error {
	var vehicle models.Vehicle
	if err := c.BodyParser(&vehicle); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	created, err := h.masterService.CreateVehicle(c.Context(), &vehicle)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "plate, brand and model are required")
		}
		return response.InternalServerError(c, "failed to create vehicle")
	}
	return response.Created(c, "vehicle created", created)
}

// List godoc
// @Summary List vehicles
// @Tags vehicles
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Param status query string false "Status filter (AVAILABLE, RESERVED, SOLD)"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /vehicles [get]
func (h *VehicleHandler) List(c *fiber.Ctx) error {
	page, err := h.masterService.ListVehicles(c.Context(), pagination.FromQuery(c), c.Query("status"))
	if err != nil {
		return response.InternalServerError(c, "failed to list vehicles")
	}
	return response.Success(c, "vehicles", page)
}

// Get godoc
// @Summary Get a vehicle
// @Tags vehicles
// @Produce json
// @Param id path int true "Vehicle ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /vehicles/{id} [get]
func (h *VehicleHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "invalid vehicle id")
	}

	vehicle, err := h.masterService.GetVehicle(c.Context(), id)
	if err != nil {
		return response.NotFound(c, "vehicle not found")
	}
	return response.Success(c, "vehicle", vehicle)
}

// Update godoc
// @Summary Update a vehicle
// @Tags vehicles
// @Accept json
// @Produce json
// @Param id path int true "Vehicle ID"
// @Param request body models.Vehicle true "Changes"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /vehicles/{id} [put]
func (h *VehicleHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "invalid vehicle id")
	}

	var changes models.Vehicle
	if err := c.BodyParser(&changes); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	vehicle, err := h.masterService.UpdateVehicle(c.Context(), id, &changes)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "vehicle not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "invalid vehicle status")
		default:
			return response.InternalServerError(c, "failed to update vehicle")
		}
	}
	return response.Success(c, "vehicle updated", vehicle)
}

// Delete godoc
// @Summary Delete a vehicle
// @Tags vehicles
// @Produce json
// @Param id path int true "Vehicle ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /vehicles/{id} [delete]
func (h *VehicleHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "invalid vehicle id")
	}

	if err := h.masterService.DeleteVehicle(c.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "vehicle not found")
		}
		return response.InternalServerError(c, "failed to delete vehicle")
	}
	return response.Success(c, "vehicle deleted", nil)
}

// ListBanks godoc
// @Summary List financing banks
// @Tags banks
// @Produce json
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /banks [get]
func (h *VehicleHandler) ListBanks(c *fiber.Ctx) error {
	banks, err := h.masterService.ListBanks(c.Context())
	if err != nil {
		return response.InternalServerError(c, "failed to list banks")
	}
	return response.Success(c, "banks", banks)
}

// CreateBank godoc
// @Summary Create a financing bank
// @Tags banks
// @Accept json
// @Produce json
// @Param request body models.Bank true "Bank data"
// @Success 201 {object} response.Response
// @Security BearerAuth
// @Router /banks [post]
func (h *VehicleHandler) CreateBank(c *fiber.Ctx) error {
	var bank models.Bank
	if err := c.BodyParser(&bank); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	created, err := h.masterService.CreateBank(c.Context(), &bank)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "code and name are required")
		}
		return response.InternalServerError(c, "failed to create bank")
	}
	return response.Created(c, "bank created", created)
}
