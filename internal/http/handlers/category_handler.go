package handlers

import (
	"github.com/gofiber/fiber/v2"

	"shopfront/internal/apperr"
	applog "shopfront/internal/log"
	"shopfront/internal/services"
	"shopfront/internal/validate"
)

type CategoryHandler struct {
	Catalog *services.CatalogService
}

// List shows active categories; admins may pass ?all=true.
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	includeInactive := c.QueryBool("all") && currentUser(c) != nil && currentUser(c).Role == "ADMIN"
	cats, err := h.Catalog.ListCategories(includeInactive)
	if err != nil {
		return fail(c, "categories.list", err)
	}
	return c.JSON(cats)
}

func (h *CategoryHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, "categories.get", apperr.NotFound("category"))
	}
	cat, err := h.Catalog.GetCategory(id)
	if err != nil {
		return fail(c, "categories.get", err)
	}
	return c.JSON(cat)
}

type categoryReq struct {
	Name string `json:"name"`
}

func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var req categoryReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, "categories.create", apperr.Validation("invalid request body"))
	}
	name, ok := validate.Name(req.Name)
	if !ok {
		return fail(c, "categories.create", apperr.Validation("name must be 1-100 characters"))
	}
	cat, err := h.Catalog.CreateCategory(name)
	if err != nil {
		return fail(c, "categories.create", err)
	}
	applog.Audit(c, "categories.create", map[string]any{"id": cat.ID, "slug": cat.Slug})
	return c.Status(fiber.StatusCreated).JSON(cat)
}

func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, "categories.update", apperr.NotFound("category"))
	}
	var req categoryReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, "categories.update", apperr.Validation("invalid request body"))
	}
	name, ok := validate.Name(req.Name)
	if !ok {
		return fail(c, "categories.update", apperr.Validation("name must be 1-100 characters"))
	}
	cat, err := h.Catalog.UpdateCategory(id, name)
	if err != nil {
		return fail(c, "categories.update", err)
	}
	applog.Audit(c, "categories.update", map[string]any{"id": cat.ID})
	return c.JSON(cat)
}

func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, "categories.delete", apperr.NotFound("category"))
	}
	if err := h.Catalog.DeleteCategory(id); err != nil {
		return fail(c, "categories.delete", err)
	}
	applog.Audit(c, "categories.delete", map[string]any{"id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
