package handlers

import (
	"github.com/gofiber/fiber/v2"

	"shopfront/internal/services"
)

type DashboardHandler struct {
	Dash *services.DashboardService
}

// Stats serves the admin dashboard aggregates. GET /api/v1/admin/dashboard
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	st, err := h.Dash.Stats(c.Context())
	if err != nil {
		return fail(c, "admin.dashboard", err)
	}
	return c.JSON(st)
}
