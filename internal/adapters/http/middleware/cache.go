package middleware

import "github.com/gofiber/fiber/v2"

// NoCacheHeaders marks gateway-backed responses as uncacheable. The
// payment listing cache lives server-side with explicit invalidation;
// a browser cache on top of it would serve stale charge state.
func NoCacheHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("Cache-Control", "no-store, no-cache, must-revalidate")
		c.Set("Pragma", "no-cache")
		c.Set("Expires", "0")
		return c.Next()
	}
}
