package handlers

import (
	"errors"

	"revendapro/internal/adapters/http/middleware"
	"revendapro/internal/core/domain"
	"revendapro/internal/core/services"
	"revendapro/internal/pkg/pagination"
	"revendapro/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// FinancingHandler handles financing proposal endpoints
type FinancingHandler struct {
	financingService *services.FinancingService
}

// NewFinancingHandler creates a new financing handler
func NewFinancingHandler(financingService *services.FinancingService) *FinancingHandler {
	return &FinancingHandler{financingService: financingService}
}

type changeStatusRequest struct {
	Status string `json:"status"`
}

// Create godoc
// @Summary Create a financing proposal
// @Description Validates references, derives the valuation and stores the proposal
// @Tags financing
// @Accept json
// @Produce json
// @Param request body services.CreateFinancingRequest true "Proposal data (money in centavos, rates in basis points)"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /financings [post]
func (h *FinancingHandler) Create(c *fiber.Ctx) error {
	var req services.CreateFinancingRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	proposal, err := h.financingService.Create(c.Context(), &req, middleware.UserID(c), c.IP())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "asset value must be positive")
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, err.Error())
		default:
			return response.InternalServerError(c, "failed to create proposal")
		}
	}
	return response.Created(c, "proposal created", proposal.ToResponse())
}

// List godoc
// @Summary List financing proposals
// @Tags financing
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Param status query string false "Status filter (ANALYSIS, APPROVED, PAID, REJECTED)"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /financings [get]
func (h *FinancingHandler) List(c *fiber.Ctx) error {
	page, err := h.financingService.List(c.Context(), pagination.FromQuery(c), c.Query("status"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidFinancingStatus) {
			return response.BadRequest(c, "invalid status filter")
		}
		return response.InternalServerError(c, "failed to list proposals")
	}
	return response.Success(c, "proposals", page)
}

// Summary godoc
// @Summary Financing summary
// @Description Counts per status plus realized net profit of paid proposals
// @Tags financing
// @Produce json
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /financings/summary [get]
func (h *FinancingHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.financingService.GetSummary(c.Context())
	if err != nil {
		return response.InternalServerError(c, "failed to build summary")
	}
	return response.Success(c, "financing summary", summary)
}

// Get godoc
// @Summary Get a financing proposal
// @Tags financing
// @Produce json
// @Param id path int true "Proposal ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /financings/{id} [get]
func (h *FinancingHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "invalid proposal id")
	}

	proposal, err := h.financingService.GetByID(c.Context(), id)
	if err != nil {
		return response.NotFound(c, "proposal not found")
	}
	return response.Success(c, "proposal", proposal.ToResponse())
}

// Update godoc
// @Summary Update a financing proposal
// @Description Applies changes and recomputes the derived valuation
// @Tags financing
// @Accept json
// @Produce json
// @Param id path int true "Proposal ID"
// @Param request body services.UpdateFinancingRequest true "Changes"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /financings/{id} [put]
func (h *FinancingHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "invalid proposal id")
	}

	var req services.UpdateFinancingRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	proposal, err := h.financingService.Update(c.Context(), id, &req, middleware.UserID(c), c.IP())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrFinancingNotFound):
			return response.NotFound(c, "proposal not found")
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, err.Error())
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "asset value must be positive")
		default:
			return response.InternalServerError(c, "failed to update proposal")
		}
	}
	return response.Success(c, "proposal updated", proposal.ToResponse())
}

// ChangeStatus godoc
// @Summary Change proposal status
// @Description Moves the proposal to a new status and records the transition
// @Tags financing
// @Accept json
// @Produce json
// @Param id path int true "Proposal ID"
// @Param request body changeStatusRequest true "New status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /financings/{id}/status [put]
func (h *FinancingHandler) ChangeStatus(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "invalid proposal id")
	}

	var req changeStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	proposal, err := h.financingService.ChangeStatus(c.Context(), id, req.Status, middleware.UserID(c), c.IP())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidFinancingStatus):
			return response.BadRequest(c, "invalid status")
		case errors.Is(err, domain.ErrFinancingNotFound):
			return response.NotFound(c, "proposal not found")
		default:
			return response.InternalServerError(c, "failed to change status")
		}
	}
	return response.Success(c, "status changed", proposal.ToResponse())
}

// Events godoc
// @Summary Proposal event history
// @Tags financing
// @Produce json
// @Param id path int true "Proposal ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /financings/{id}/events [get]
func (h *FinancingHandler) Events(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "invalid proposal id")
	}

	events, err := h.financingService.GetEvents(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrFinancingNotFound) {
			return response.NotFound(c, "proposal not found")
		}
		return response.InternalServerError(c, "failed to load events")
	}
	return response.Success(c, "proposal events", events)
}
