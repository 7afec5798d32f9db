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

// PersonnelHandler handles personnel master endpoints
type PersonnelHandler struct {
	masterService *services.MasterService
}

// NewPersonnelHandler creates a new personnel handler
func NewPersonnelHandler(masterService *services.MasterService) *PersonnelHandler {
	return &PersonnelHandler{masterService: masterService}
}

// Create godoc
// @Summary Create a personnel record
// @Tags personnel
// @Accept json
// @Produce json
// @Param request body models.Personnel true "Personnel data"
// @Success 201 {object} response.Response
// @Security BearerAuth
// @Router /personnel [post]
func (h *PersonnelHandler) Create(c *fiber.Ctx) error {
	var p models.Personnel
	if err := c.BodyParser(&p); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	p.IsActive = true

	created, err := h.masterService.CreatePersonnel(c.Context(), &p)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "name, valid type and non-negative commission rate are required")
		}
		return response.InternalServerError(c, "failed to create personnel")
	}
	return response.Created(c, "personnel created", created)
}

// List godoc
// @Summary List personnel
// @Tags personnel
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /personnel [get]
func (h *PersonnelHandler) List(c *fiber.Ctx) error {
	page, err := h.masterService.ListPersonnel(c.Context(), pagination.FromQuery(c))
	if err != nil {
		return response.InternalServerError(c, "failed to list personnel")
	}
	return response.Success(c, "personnel", page)
}

// Get godoc
// @Summary Get a personnel record
// @Tags personnel
// @Produce json
// @Param id path int true "Personnel ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /personnel/{id} [get]
func (h *PersonnelHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "invalid personnel id")
	}

	p, err := h.masterService.GetPersonnel(c.Context(), id)
	if err != nil {
		return response.NotFound(c, "personnel not found")
	}
	return response.Success(c, "personnel", p)
}

// Update godoc
// @Summary Update a personnel record
// @Tags personnel
// @Accept json
// @Produce json
// @Param id path int true "Personnel ID"
// @Param request body models.Personnel true "Changes"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /personnel/{id} [put]
func (h *PersonnelHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "invalid personnel id")
	}

	var changes models.Personnel
	if err := c.BodyParser(&changes); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	p, err := h.masterService.UpdatePersonnel(c.Context(), id, &changes)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "personnel not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "invalid personnel type")
		default:
			return response.InternalServerError(c, "failed to update personnel")
		}
	}
	return response.Success(c, "personnel updated", p)
}

// Delete godoc
// @Summary Delete a personnel record
// @Tags personnel
// @Produce json
// @Param id path int true "Personnel ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /personnel/{id} [delete]
func (h *PersonnelHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "invalid personnel id")
	}

	if err := h.masterService.DeletePersonnel(c.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "personnel not found")
		}
		return response.InternalServerError(c, "failed to delete personnel")
	}
	return response.Success(c, "personnel deleted", nil)
}
