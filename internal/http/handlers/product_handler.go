package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"shopfront/internal/apperr"
	applog "shopfront/internal/log"
	"shopfront/internal/services"
	"shopfront/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
	Stock   *services.StockService
}

// List searches active products. GET /api/v1/products?q=&category=&page=
func (h *ProductHandler) List(c *fiber.Ctx) error {
	q := strings.ToLower(strings.TrimSpace(c.Query("q")))
	category := strings.TrimSpace(c.Query("category"))
	prods, err := h.Catalog.Search(q, category, c.QueryInt("page", 1), c.QueryInt("page_size", 12))
	if err != nil {
		return fail(c, "products.list", err)
	}
	return c.JSON(prods)
}

func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, "products.get", apperr.NotFound("product"))
	}
	p, err := h.Catalog.GetProduct(id)
	if err != nil {
		return fail(c, "products.get", err)
	}
	if !p.Active {
		u := currentUser(c)
		if u == nil || u.Role != "ADMIN" {
			return fail(c, "products.get", apperr.NotFound("product"))
		}
	}
	return c.JSON(p)
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in services.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return fail(c, "products.create", apperr.Validation("invalid request body"))
	}
	if _, ok := validate.Name(in.Name); !ok {
		return fail(c, "products.create", apperr.Validation("name must be 1-100 characters"))
	}
	p, err := h.Catalog.CreateProduct(in)
	if err != nil {
		return fail(c, "products.create", err)
	}
	applog.Audit(c, "products.create", map[string]any{"id": p.ID, "slug": p.Slug})
	return c.Status(fiber.StatusCreated).JSON(p)
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, "products.update", apperr.NotFound("product"))
	}
	var in services.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return fail(c, "products.update", apperr.Validation("invalid request body"))
	}
	if _, ok := validate.Name(in.Name); !ok {
		return fail(c, "products.update", apperr.Validation("name must be 1-100 characters"))
	}
	p, err := h.Catalog.UpdateProduct(id, in)
	if err != nil {
		return fail(c, "products.update", err)
	}
	applog.Audit(c, "products.update", map[string]any{"id": p.ID})
	return c.JSON(p)
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, "products.delete", apperr.NotFound("product"))
	}
	if err := h.Catalog.DeleteProduct(id); err != nil {
		return fail(c, "products.delete", err)
	}
	applog.Audit(c, "products.delete", map[string]any{"id": id})
	return c.SendStatus(fiber.StatusNoContent)
}

type stockReq struct {
	Qty       int    `json:"qty"`
	Direction string `json:"direction"` // increase | decrease
}

// AdjustStock moves the stock ledger. PATCH /api/v1/products/:id/stock
func (h *ProductHandler) AdjustStock(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, "products.stock", apperr.NotFound("product"))
	}
	var req stockReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, "products.stock", apperr.Validation("invalid request body"))
	}
	stock, err := h.Stock.Adjust(id, req.Qty, strings.ToLower(strings.TrimSpace(req.Direction)))
	if err != nil {
		return fail(c, "products.stock", err)
	}
	applog.Audit(c, "products.stock", map[string]any{"id": id, "qty": req.Qty, "direction": req.Direction, "stock": stock})
	return c.JSON(fiber.Map{"product_id": id, "stock": stock})
}
