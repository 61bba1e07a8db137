package repos

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"shopfront/internal/apperr"
	"shopfront/internal/domain"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

// CreateWithItems persists the order header, every line item, the stock
// decrements and (when a coupon is attached) the usage-count charge as a
// single transaction. Either the whole order commits or nothing does;
// the conditional stock update re-checks quantities at write time, so a
// concurrent order that drained stock rolls this one back.
func (r *OrderRepo) CreateWithItems(o *domain.Order, items []domain.OrderItem) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
	  INSERT INTO orders(id, user_id, subtotal, discount, total, status, coupon_id, shipping_address, created_at)
	  VALUES(?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`,
		o.ID, o.UserID, o.Subtotal, o.Discount, o.Total, o.Status, o.CouponID, o.ShippingAddress); err != nil {
		return err
	}

	for _, it := range items {
		if _, err := tx.Exec(`
		  INSERT INTO order_items(order_id, product_id, name, qty, unit_price, subtotal)
		  VALUES(?, ?, ?, ?, ?, ?)`,
			o.ID, it.ProductID, it.Name, it.Qty, it.UnitPrice, it.Subtotal); err != nil {
			return err
		}
		if err := decrementStock(tx, it.ProductID, it.Qty); err != nil {
			return err
		}
	}

	if o.CouponID != nil {
		if err := incrementUsage(tx, *o.CouponID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *OrderRepo) Get(orderID string) (domain.Order, error) {
	var o domain.Order
	err := r.db.Get(&o, `
	  SELECT id, user_id, subtotal, discount, total, status, coupon_id, shipping_address, created_at
	  FROM orders WHERE id = ?`, orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, apperr.NotFound("order")
	}
	if err != nil {
		return domain.Order{}, err
	}

	items := []domain.OrderItem{}
	if err := r.db.Select(&items, `
	  SELECT order_id, product_id, name, qty, unit_price, subtotal
	  FROM order_items WHERE order_id = ? ORDER BY name`, orderID); err != nil {
		return domain.Order{}, err
	}
	o.Items = items
	return o, nil
}

func (r *OrderRepo) ListByUser(userID string) ([]domain.Order, error) {
	out := []domain.Order{}
	err := r.db.Select(&out, `
	  SELECT id, user_id, subtotal, discount, total, status, coupon_id, shipping_address, created_at
	  FROM orders WHERE user_id = ?
	  ORDER BY datetime(created_at) DESC`, userID)
	return out, err
}

func (r *OrderRepo) ListLatest(limit int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = 100
	}
	out := []domain.Order{}
	err := r.db.Select(&out, `
	  SELECT id, user_id, subtotal, discount, total, status, coupon_id, shipping_address, created_at
	  FROM orders
	  ORDER BY datetime(created_at) DESC
	  LIMIT ?`, limit)
	return out, err
}

func (r *OrderRepo) UpdateStatus(id, status string) error {
	res, err := r.db.Exec(`UPDATE orders SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("order")
	}
	return nil
}
