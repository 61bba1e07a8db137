package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"shopfront/internal/apperr"
	applog "shopfront/internal/log"
	"shopfront/internal/services"
	"shopfront/internal/validate"
)

type CouponHandler struct {
	Coupons *services.CouponService
}

type validateCouponReq struct {
	Code  string          `json:"code"`
	Total decimal.Decimal `json:"total"`
}

// Validate previews a coupon against a purchase total without charging
// usage. POST /api/v1/coupons/validate
func (h *CouponHandler) Validate(c *fiber.Ctx) error {
	var req validateCouponReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, "coupons.validate", apperr.Validation("invalid request body"))
	}
	if req.Total.IsNegative() {
		return fail(c, "coupons.validate", apperr.Validation("total must not be negative"))
	}
	discount, cp, err := h.Coupons.Validate(req.Code, req.Total)
	if err != nil {
		return fail(c, "coupons.validate", err)
	}
	return c.JSON(fiber.Map{
		"valid":    true,
		"code":     cp.Code,
		"discount": discount,
		"total":    req.Total.Sub(discount),
	})
}

// ---------- Admin CRUD ----------

func (h *CouponHandler) List(c *fiber.Ctx) error {
	out, err := h.Coupons.List()
	if err != nil {
		return fail(c, "coupons.list", err)
	}
	return c.JSON(out)
}

func (h *CouponHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, "coupons.get", apperr.NotFound("coupon"))
	}
	cp, err := h.Coupons.Get(id)
	if err != nil {
		return fail(c, "coupons.get", err)
	}
	return c.JSON(cp)
}

func (h *CouponHandler) Create(c *fiber.Ctx) error {
	var in services.CouponInput
	if err := c.BodyParser(&in); err != nil {
		return fail(c, "coupons.create", apperr.Validation("invalid request body"))
	}
	cp, err := h.Coupons.Create(in)
	if err != nil {
		return fail(c, "coupons.create", err)
	}
	applog.Audit(c, "coupons.create", map[string]any{"id": cp.ID, "code": cp.Code})
	return c.Status(fiber.StatusCreated).JSON(cp)
}

func (h *CouponHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, "coupons.update", apperr.NotFound("coupon"))
	}
	var in services.CouponInput
	if err := c.BodyParser(&in); err != nil {
		return fail(c, "coupons.update", apperr.Validation("invalid request body"))
	}
	cp, err := h.Coupons.Update(id, in)
	if err != nil {
		return fail(c, "coupons.update", err)
	}
	applog.Audit(c, "coupons.update", map[string]any{"id": cp.ID})
	return c.JSON(cp)
}

func (h *CouponHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, "coupons.delete", apperr.NotFound("coupon"))
	}
	if err := h.Coupons.Delete(id); err != nil {
		return fail(c, "coupons.delete", err)
	}
	applog.Audit(c, "coupons.delete", map[string]any{"id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
