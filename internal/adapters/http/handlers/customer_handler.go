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

// CustomerHandler handles customer master endpoints
type CustomerHandler struct {
	masterService    *services.MasterService
	financingService *services.FinancingService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(masterService *services.MasterService, financingService *services.FinancingService) *CustomerHandler {
	return &CustomerHandler{masterService: masterService, financingService: financingService}
}

// Create godoc
// @Summary Create a customer
// @Tags customers
// @Accept json
// @Produce json
// @Param request body models.Customer true "Customer data"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Security BearerAuth
// @Router /customers [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var customer models.Customer
	if err := c.BodyParser(&customer); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	created, err := h.masterService.CreateCustomer(c.Context(), &customer)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateEntry):
			return response.Conflict(c, "a customer with this CPF/CNPJ already exists")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "name and CPF/CNPJ are required")
		default:
			return response.InternalServerError(c, "failed to create customer")
		}
	}
	return response.Created(c, "customer created", created)
}

// List godoc
// @Summary List customers
// @Tags customers
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Param name query string false "Name filter"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	page, err := h.masterService.ListCustomers(c.Context(), pagination.FromQuery(c), c.Query("name"))
	if err != nil {
		return response.InternalServerError(c, "failed to list customers")
	}
	return response.Success(c, "customers", page)
}

// Get godoc
// @Summary Get a customer
// @Tags customers
// @Produce json
// @Param id path int true "Customer ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /customers/{id} [get]
func (h *CustomerHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "invalid customer id")
	}

	customer, err := h.masterService.GetCustomer(c.Context(), id)
	if err != nil {
		return response.NotFound(c, "customer not found")
	}
	return response.Success(c, "customer", customer)
}

// Update godoc
// @Summary Update a customer
// @Tags customers
// @Accept json
// @Produce json
// @Param id path int true "Customer ID"
// @Param request body models.Customer true "Changes"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /customers/{id} [put]
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "invalid customer id")
	}

	var changes models.Customer
	if err := c.BodyParser(&changes); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	customer, err := h.masterService.UpdateCustomer(c.Context(), id, &changes)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "customer not found")
		}
		return response.InternalServerError(c, "failed to update customer")
	}
	return response.Success(c, "customer updated", customer)
}

// Delete godoc
// @Summary Delete a customer
// @Tags customers
// @Produce json
// @Param id path int true "Customer ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /customers/{id} [delete]
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "invalid customer id")
	}

	if err := h.masterService.DeleteCustomer(c.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "customer not found")
		}
		return response.InternalServerError(c, "failed to delete customer")
	}
	return response.Success(c, "customer deleted", nil)
}

// Financings godoc
// @Summary List a customer's financing proposals
// @Tags customers
// @Produce json
// @Param id path int true "Customer ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /customers/{id}/financings [get]
func (h *CustomerHandler) Financings(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "invalid customer id")
	}

	if _, err := h.masterService.GetCustomer(c.Context(), id); err != nil {
		return response.NotFound(c, "customer not found")
	}

	proposals, err := h.financingService.ListByCustomer(c.Context(), id)
	if err != nil {
		return response.InternalServerError(c, "failed to list financings")
	}
	return response.Success(c, "customer financings", proposals)
}
