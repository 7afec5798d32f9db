package handlers

import (
	"errors"
	"strconv"

	"revendapro/internal/core/domain"
	"revendapro/internal/core/services"
	"revendapro/internal/pkg/pagination"
	"revendapro/internal/pkg/password"
	"revendapro/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles user administration endpoints
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List godoc
// @Summary List users
// @Tags users
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	page, err := h.userService.List(c.Context(), pagination.FromQuery(c))
	if err != nil {
		return response.InternalServerError(c, "failed to list users")
	}
	return response.Success(c, "users", page)
}

// Get godoc
// @Summary Get a user
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /users/{id} [get]
func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "invalid user id")
	}

	user, err := h.userService.GetByID(c.Context(), id)
	if err != nil {
		return response.NotFound(c, "user not found")
	}
	return response.Success(c, "user", user)
}

// Update godoc
// @Summary Update a user
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body services.UpdateUserRequest true "Changes"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /users/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "invalid user id")
	}

	var req services.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	user, err := h.userService.Update(c.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "user not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "invalid role")
		case errors.Is(err, password.ErrTooShort):
			return response.BadRequest(c, err.Error())
		default:
			return response.InternalServerError(c, "failed to update user")
		}
	}
	return response.Success(c, "user updated", user)
}

// Delete godoc
// @Summary Delete a user
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "invalid user id")
	}

	if err := h.userService.Delete(c.Context(), id); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "user not found")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "cannot remove the last admin")
		default:
			return response.InternalServerError(c, "failed to delete user")
		}
	}
	return response.Success(c, "user deleted", nil)
}

// parseID reads the :id route parameter
func parseID(c *fiber.Ctx) (uint, error) {
	raw, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || raw == 0 {
		return 0, domain.ErrInvalidInput
	}
	return uint(raw), nil
}
