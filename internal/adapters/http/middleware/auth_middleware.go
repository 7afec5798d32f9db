package middleware

import (
	"errors"
	"strings"

	"revendapro/internal/config"
	"revendapro/internal/core/domain"
	"revendapro/internal/pkg/jwt"
	"revendapro/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AccessCookieName is the cookie carrying the access token
const AccessCookieName = "access_token"

// RefreshCookieName is the cookie carrying the refresh token
const RefreshCookieName = "refresh_token"

// AuthMiddleware validates the access token from the cookie or the
// Authorization header and stores the claims in locals.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(AccessCookieName)
		if token == "" {
			header := c.Get("Authorization")
			if strings.HasPrefix(header, "Bearer ") {
				token = strings.TrimPrefix(header, "Bearer ")
			}
		}
		if token == "" {
			return response.Unauthorized(c, "missing access token")
		}

		claims, err := jwt.ValidateAccessToken(token, cfg.JWT.Secret)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return response.Unauthorized(c, "access token expired")
			}
			return response.Unauthorized(c, "invalid access token")
		}

		c.Locals("userID", claims.UserID)
		c.Locals("username", claims.Username)
		c.Locals("role", claims.Role)

		return c.Next()
	}
}

// RoleMiddleware restricts a route to the given roles
func RoleMiddleware(roles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(domain.Role)
		if !ok {
			return response.Unauthorized(c, "missing role")
		}
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		return response.Forbidden(c, "insufficient permissions")
	}
}

// AdminOnly restricts a route to admins
func AdminOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleAdmin)
}

// ManagerOrAdmin restricts a route to managers and admins
func ManagerOrAdmin() fiber.Handler {
	return RoleMiddleware(domain.RoleManager, domain.RoleAdmin)
}

// UserID extracts the authenticated user id from locals
func UserID(c *fiber.Ctx) uint {
	id, _ := c.Locals("userID").(uint)
	return id
}
