package handlers

import (
	"github.com/gofiber/fiber/v2"

	"shopfront/internal/apperr"
	applog "shopfront/internal/log"
	"shopfront/internal/services"
	"shopfront/internal/validate"
)

type ReviewHandler struct {
	Reviews *services.ReviewService
}

// List shows a product's reviews with the average rating.
// GET /api/v1/products/:id/reviews
func (h *ReviewHandler) List(c *fiber.Ctx) error {
	pid, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, "reviews.list", apperr.NotFound("product"))
	}
	out, err := h.Reviews.ListForProduct(pid)
	if err != nil {
		return fail(c, "reviews.list", err)
	}
	return c.JSON(out)
}

type reviewReq struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// Create posts the caller's review. POST /api/v1/products/:id/reviews
func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	pid, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, "reviews.create", apperr.NotFound("product"))
	}
	var req reviewReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, "reviews.create", apperr.Validation("invalid request body"))
	}
	u := currentUser(c)
	rv, err := h.Reviews.Create(pid, u.ID, req.Rating, req.Comment)
	if err != nil {
		return fail(c, "reviews.create", err)
	}
	applog.Audit(c, "reviews.create", map[string]any{"review_id": rv.ID, "product_id": pid})
	return c.Status(fiber.StatusCreated).JSON(rv)
}

// Update edits a review. PUT /api/v1/reviews/:id
func (h *ReviewHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, "reviews.update", apperr.NotFound("review"))
	}
	var req reviewReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, "reviews.update", apperr.Validation("invalid request body"))
	}
	u := currentUser(c)
	rv, err := h.Reviews.Update(id, u.ID, u.Role, req.Rating, req.Comment)
	if err != nil {
		return fail(c, "reviews.update", err)
	}
	return c.JSON(rv)
}

// Delete removes a review. DELETE /api/v1/reviews/:id
func (h *ReviewHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, "reviews.delete", apperr.NotFound("review"))
	}
	u := currentUser(c)
	if err := h.Reviews.Delete(id, u.ID, u.Role); err != nil {
		return fail(c, "reviews.delete", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
