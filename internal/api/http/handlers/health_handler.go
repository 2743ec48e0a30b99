package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// HealthHandler responds to liveness probes. There is no readiness probe: the
// gateway's only dependencies are metered upstream APIs.
type HealthHandler struct {
	serviceName string
	version     string
}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(serviceName, version string) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}
