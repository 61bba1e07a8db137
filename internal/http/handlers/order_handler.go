package handlers

import (
	"github.com/gofiber/fiber/v2"

	"shopfront/internal/apperr"
	applog "shopfront/internal/log"
	"shopfront/internal/services"
	"shopfront/internal/validate"
)

type OrderHandler struct {
	Orders *services.OrderService
}

type createOrderReq struct {
	Items           []services.OrderLine `json:"items"`
	ShippingAddress string               `json:"shipping_address"`
	CouponCode      string               `json:"coupon_code"`
}

// Create places an order for the authenticated caller. POST /api/v1/orders
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	u := currentUser(c)
	var req createOrderReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, "orders.create", apperr.Validation("invalid request body"))
	}
	o, err := h.Orders.Create(u.ID, req.Items, req.ShippingAddress, req.CouponCode)
	if err != nil {
		applog.Security(c, "orders.create.fail", map[string]any{"user_id": u.ID, "code": apperr.Code(err)})
		return fail(c, "orders.create", err)
	}
	applog.Audit(c, "orders.create", map[string]any{
		"order_id": o.ID,
		"total":    o.Total.String(),
		"items":    len(o.Items),
	})
	return c.Status(fiber.StatusCreated).JSON(o)
}

// Get returns one order; ownership enforced in the service. GET /api/v1/orders/:id
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, "orders.get", apperr.NotFound("order"))
	}
	u := currentUser(c)
	o, err := h.Orders.Get(id, u.ID, u.Role)
	if err != nil {
		return fail(c, "orders.get", err)
	}
	return c.JSON(o)
}

// History lists the caller's orders, newest first. GET /api/v1/orders
func (h *OrderHandler) History(c *fiber.Ctx) error {
	u := currentUser(c)
	orders, err := h.Orders.History(u.ID)
	if err != nil {
		return fail(c, "orders.history", err)
	}
	return c.JSON(orders)
}

// ListLatest is the admin order feed. GET /api/v1/admin/orders
func (h *OrderHandler) ListLatest(c *fiber.Ctx) error {
	orders, err := h.Orders.ListLatest(c.QueryInt("limit", 100))
	if err != nil {
		return fail(c, "admin.orders.list", err)
	}
	return c.JSON(orders)
}

type statusReq struct {
	Status string `json:"status"`
}

// UpdateStatus applies a fulfillment transition. PATCH /api/v1/admin/orders/:id/status
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, "admin.orders.status", apperr.NotFound("order"))
	}
	var req statusReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, "admin.orders.status", apperr.Validation("invalid request body"))
	}
	o, err := h.Orders.UpdateStatus(id, req.Status)
	if err != nil {
		return fail(c, "admin.orders.status", err)
	}
	applog.Audit(c, "admin.orders.status", map[string]any{"order_id": id, "status": o.Status})
	return c.JSON(o)
}
