package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-gateway/internal/api/http/handlers"
	apperrors "github.com/spec-kit/ticket-gateway/pkg/util"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Tickets *handlers.TicketsHandler
}

// RegisterRoutes wires HTTP routes. The tickets handler owns its own method
// guard so non-POST requests get 405 rather than the 404 fallback.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.All("/tickets", cfg.Tickets.Submit)

	app.Use(func(c *fiber.Ctx) error {
		return apperrors.NewNotFound()
	})
}
