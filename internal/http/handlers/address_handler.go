package handlers

import (
	"github.com/gofiber/fiber/v2"

	"shopfront/internal/apperr"
	"shopfront/internal/services"
	"shopfront/internal/validate"
)

type AddressHandler struct {
	Addrs *services.AddressService
}

// List shows the caller's addresses. GET /api/v1/addresses
func (h *AddressHandler) List(c *fiber.Ctx) error {
	out, err := h.Addrs.List(currentUser(c).ID)
	if err != nil {
		return fail(c, "addresses.list", err)
	}
	return c.JSON(out)
}

func (h *AddressHandler) Create(c *fiber.Ctx) error {
	var in services.AddressInput
	if err := c.BodyParser(&in); err != nil {
		return fail(c, "addresses.create", apperr.Validation("invalid request body"))
	}
	a, err := h.Addrs.Create(currentUser(c).ID, in)
	if err != nil {
		return fail(c, "addresses.create", err)
	}
	return c.Status(fiber.StatusCreated).JSON(a)
}

func (h *AddressHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, "addresses.update", apperr.NotFound("address"))
	}
	var in services.AddressInput
	if err := c.BodyParser(&in); err != nil {
		return fail(c, "addresses.update", apperr.Validation("invalid request body"))
	}
	a, err := h.Addrs.Update(id, currentUser(c).ID, in)
	if err != nil {
		return fail(c, "addresses.update", err)
	}
	return c.JSON(a)
}

func (h *AddressHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, "addresses.delete", apperr.NotFound("address"))
	}
	if err := h.Addrs.Delete(id, currentUser(c).ID); err != nil {
		return fail(c, "addresses.delete", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
