package services

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"shopfront/internal/apperr"
	"shopfront/internal/domain"
	"shopfront/internal/metrics"
	"shopfront/internal/repos"
	"shopfront/internal/validate"
)

type OrderService struct {
	Prods   *repos.ProductRepo
	Orders  *repos.OrderRepo
	Coupons *CouponService
}

func NewOrderService(prods *repos.ProductRepo, orders *repos.OrderRepo, coupons *CouponService) *OrderService {
	return &OrderService{Prods: prods, Orders: orders, Coupons: coupons}
}

type OrderLine struct {
	ProductID string `json:"product_id"`
	Qty       int    `json:"qty"`
}

// Create assembles and persists an order. Validation (product lookup,
// stock pre-check, price snapshot, coupon arithmetic) happens before any
// write; the header, line items, stock decrements and coupon charge then
// commit as one transaction. There is no idempotency key: each call
// creates a distinct order.
func (s *OrderService) Create(userID string, lines []OrderLine, shippingAddress, couponCode string) (domain.Order, error) {
	o, err := s.create(userID, lines, shippingAddress, couponCode)
	if err != nil {
		metrics.OrdersFailedTotal.WithLabelValues(apperr.Code(err)).Inc()
		return domain.Order{}, err
	}
	metrics.OrdersCreatedTotal.Inc()
	if o.CouponID != nil {
		metrics.CouponsRedeemedTotal.Inc()
	}
	return o, nil
}

func (s *OrderService) create(userID string, lines []OrderLine, shippingAddress, couponCode string) (domain.Order, error) {
	if len(lines) == 0 {
		return domain.Order{}, apperr.Validation("order must contain at least one item")
	}
	if shippingAddress == "" {
		return domain.Order{}, apperr.Validation("shipping address is required")
	}

	seen := map[string]bool{}
	items := make([]domain.OrderItem, 0, len(lines))
	subtotal := decimal.Zero
	for _, ln := range lines {
		if !validate.Qty(ln.Qty) {
			return domain.Order{}, apperr.Validation("quantity for %s must be between 1 and 100", ln.ProductID)
		}
		if seen[ln.ProductID] {
			return domain.Order{}, apperr.Validation("duplicate line for product %s", ln.ProductID)
		}
		seen[ln.ProductID] = true

		p, err := s.Prods.Get(ln.ProductID)
		if err != nil {
			return domain.Order{}, err
		}
		if !p.Active {
			return domain.Order{}, apperr.NotFound("product")
		}
		// Pre-check only; the transaction re-checks at write time.
		if p.Stock < ln.Qty {
			return domain.Order{}, apperr.New(apperr.ErrInsufficientStock.Code,
				"insufficient stock for "+ln.ProductID, apperr.ErrInsufficientStock.Status)
		}

		lineSub := p.Price.Mul(decimal.NewFromInt(int64(ln.Qty)))
		items = append(items, domain.OrderItem{
			ProductID: p.ID,
			Name:      p.Name,
			Qty:       ln.Qty,
			UnitPrice: p.Price, // price snapshot, never re-read
			Subtotal:  lineSub,
		})
		subtotal = subtotal.Add(lineSub)
	}

	discount := decimal.Zero
	var couponID *string
	if couponCode != "" {
		d, c, err := s.Coupons.Validate(couponCode, subtotal)
		if err != nil {
			return domain.Order{}, err
		}
		discount = d
		couponID = &c.ID
	}

	o := domain.Order{
		ID:              uuid.NewString(),
		UserID:          userID,
		Subtotal:        subtotal,
		Discount:        discount,
		Total:           subtotal.Sub(discount),
		Status:          domain.OrderPending,
		CouponID:        couponID,
		ShippingAddress: shippingAddress,
	}
	if err := s.Orders.CreateWithItems(&o, items); err != nil {
		return domain.Order{}, err
	}
	o.Items = items
	return s.Orders.Get(o.ID)
}

// Get enforces ownership: non-admin callers only see their own orders,
// and foreign orders surface as NotFound rather than Forbidden.
func (s *OrderService) Get(orderID, userID, role string) (domain.Order, error) {
	o, err := s.Orders.Get(orderID)
	if err != nil {
		return domain.Order{}, err
	}
	if o.UserID != userID && role != "ADMIN" {
		return domain.Order{}, apperr.NotFound("order")
	}
	return o, nil
}

func (s *OrderService) History(userID string) ([]domain.Order, error) {
	return s.Orders.ListByUser(userID)
}

func (s *OrderService) ListLatest(limit int) ([]domain.Order, error) {
	return s.Orders.ListLatest(limit)
}

// UpdateStatus applies an admin fulfillment transition. Terminal states
// stay terminal.
func (s *OrderService) UpdateStatus(orderID, status string) (domain.Order, error) {
	status, ok := validate.OrderStatus(status)
	if !ok {
		return domain.Order{}, apperr.Validation("unknown order status")
	}
	o, err := s.Orders.Get(orderID)
	if err != nil {
		return domain.Order{}, err
	}
	if o.Status == domain.OrderDelivered || o.Status == domain.OrderCancelled {
		return domain.Order{}, apperr.Conflict("order is already %s", o.Status)
	}
	if err := s.Orders.UpdateStatus(orderID, status); err != nil {
		return domain.Order{}, err
	}
	return s.Orders.Get(orderID)
}
