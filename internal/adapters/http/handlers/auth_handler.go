package handlers

import (
	"errors"
	"time"

	"revendapro/internal/adapters/http/middleware"
	"revendapro/internal/config"
	"revendapro/internal/core/domain"
	"revendapro/internal/core/services"
	"revendapro/internal/pkg/password"
	"revendapro/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, cfg: cfg}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register godoc
// @Summary Register a new user
// @Description Creates a user account (admin only)
// @Tags auth
// @Accept json
// @Produce json
// @Param request body services.RegisterRequest true "Registration data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Security BearerAuth
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req services.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	user, err := h.authService.Register(c.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateEntry):
			return response.Conflict(c, "username or email already in use")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "username and email are required")
		case errors.Is(err, password.ErrTooShort):
			return response.BadRequest(c, err.Error())
		default:
			return response.InternalServerError(c, "failed to register user")
		}
	}

	return response.Created(c, "user registered", user)
}

// Login godoc
// @Summary Login
// @Description Verifies credentials and sets the token cookies
// @Tags auth
// @Accept json
// @Produce json
// @Param request body loginRequest true "Credentials"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if req.Username == "" || req.Password == "" {
		return response.BadRequest(c, "username and password are required")
	}

	pair, err := h.authService.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			return response.Unauthorized(c, "invalid username or password")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "account is disabled")
		default:
			return response.InternalServerError(c, "login failed")
		}
	}

	h.setAuthCookies(c, pair)
	return response.Success(c, "login successful", pair)
}

// Refresh godoc
// @Summary Refresh tokens
// @Description Rotates the refresh token and issues a new pair
// @Tags auth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	refreshToken := c.Cookies(middleware.RefreshCookieName)
	if refreshToken == "" {
		return response.Unauthorized(c, "missing refresh token")
	}

	pair, err := h.authService.Refresh(c.Context(), refreshToken)
	if err != nil {
		h.clearAuthCookies(c)
		return response.Unauthorized(c, "invalid or expired refresh token")
	}

	h.setAuthCookies(c, pair)
	return response.Success(c, "tokens refreshed", pair)
}

// Logout godoc
// @Summary Logout
// @Description Revokes the refresh token and clears cookies
// @Tags auth
// @Produce json
// @Success 200 {object} response.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	refreshToken := c.Cookies(middleware.RefreshCookieName)
	_ = h.authService.Logout(c.Context(), refreshToken)
	h.clearAuthCookies(c)
	return response.Success(c, "logged out", nil)
}

// Profile godoc
// @Summary Current user profile
// @Tags auth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Security BearerAuth
// @Router /auth/me [get]
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	user, err := h.authService.GetProfile(c.Context(), middleware.UserID(c))
	if err != nil {
		return response.NotFound(c, "user not found")
	}
	return response.Success(c, "profile", user)
}

func (h *AuthHandler) setAuthCookies(c *fiber.Ctx, pair *services.TokenPair) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.AccessCookieName,
		Value:    pair.AccessToken,
		Expires:  time.Now().Add(time.Duration(h.cfg.JWT.AccessTokenMins) * time.Minute),
		HTTPOnly: true,
		Secure:   h.cfg.Cookie.Secure,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
		Path:     "/",
	})
	c.Cookie(&fiber.Cookie{
		Name:     middleware.RefreshCookieName,
		Value:    pair.RefreshToken,
		Expires:  time.Now().Add(time.Duration(h.cfg.JWT.RefreshTokenDays) * 24 * time.Hour),
		HTTPOnly: true,
		Secure:   h.cfg.Cookie.Secure,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
		Path:     "/api/v1/auth",
	})
}

func (h *AuthHandler) clearAuthCookies(c *fiber.Ctx) {
	expired := time.Now().Add(-time.Hour)
	c.Cookie(&fiber.Cookie{Name: middleware.AccessCookieName, Value: "", Expires: expired, HTTPOnly: true, Path: "/"})
	c.Cookie(&fiber.Cookie{Name: middleware.RefreshCookieName, Value: "", Expires: expired, HTTPOnly: true, Path: "/api/v1/auth"})
}
