package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-gateway/internal/config"
)

// preflightMaxAgeSeconds is how long browsers may cache the preflight result.
const preflightMaxAgeSeconds = "86400"

// CORSResponder decorates every response with Access-Control headers and
// short-circuits OPTIONS preflights with 204 regardless of path.
//
// When the Origin header is not in the allow-list the first configured origin
// is echoed instead of rejecting the request. That permissive fallback is the
// compatibility contract this gateway inherited; do not tighten it without
// coordinating with the deployed frontends.
func CORSResponder(cfg config.CORSConfig) fiber.Handler {
	allowed := make(map[string]struct{}, len(cfg.AllowedOrigins))
	for _, origin := range cfg.AllowedOrigins {
		allowed[origin] = struct{}{}
	}
	fallback := cfg.FallbackOrigin()

	return func(c *fiber.Ctx) error {
		allowOrigin := fallback
		if origin := c.Get(fiber.HeaderOrigin); origin != "" {
			if _, ok := allowed[origin]; ok {
				allowOrigin = origin
			}
		}
		c.Set(fiber.HeaderAccessControlAllowOrigin, allowOrigin)
		c.Set(fiber.HeaderAccessControlAllowMethods, "GET, POST, OPTIONS")
		c.Set(fiber.HeaderAccessControlAllowHeaders, "Content-Type, Authorization")

		if c.Method() == fiber.MethodOptions {
			c.Set(fiber.HeaderAccessControlMaxAge, preflightMaxAgeSeconds)
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.Next()
	}
}
