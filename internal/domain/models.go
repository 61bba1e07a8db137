package domain

import "github.com/shopspring/decimal"

type Category struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Slug      string `db:"slug" json:"slug"`
	Active    bool   `db:"active" json:"active"`
	CreatedAt string `db:"created_at" json:"created_at"`
	UpdatedAt string `db:"updated_at" json:"updated_at,omitempty"`
}

type Product struct {
	ID          string          `db:"id" json:"id"`
	CategoryID  string          `db:"category_id" json:"category_id"`
	Name        string          `db:"name" json:"name"`
	Slug        string          `db:"slug" json:"slug"`
	Description string          `db:"description" json:"description,omitempty"`
	Price       decimal.Decimal `db:"price" json:"price"`
	Stock       int             `db:"stock" json:"stock"`
	Active      bool            `db:"active" json:"active"`
	CreatedAt   string          `db:"created_at" json:"created_at"`
	UpdatedAt   string          `db:"updated_at" json:"updated_at,omitempty"`
}

// Coupon discount types.
const (
	CouponPercent = "PERCENT"
	CouponFixed   = "FIXED"
)

type Coupon struct {
	ID          string              `db:"id" json:"id"`
	Code        string              `db:"code" json:"code"`
	Type        string              `db:"type" json:"type"` // PERCENT | FIXED
	Value       decimal.Decimal     `db:"value" json:"value"`
	MinPurchase decimal.NullDecimal `db:"min_purchase" json:"min_purchase,omitempty"`
	MaxDiscount decimal.NullDecimal `db:"max_discount" json:"max_discount,omitempty"`
	StartsAt    string              `db:"starts_at" json:"starts_at"`
	EndsAt      string              `db:"ends_at" json:"ends_at"`
	UsageLimit  *int                `db:"usage_limit" json:"usage_limit,omitempty"`
	UsedCount   int                 `db:"used_count" json:"used_count"`
	Active      bool                `db:"active" json:"active"`
	CreatedAt   string              `db:"created_at" json:"created_at"`
}

// Order statuses. Transitions after creation come from the admin
// fulfillment endpoint; everything else about an order is immutable.
const (
	OrderPending   = "PENDING"
	OrderPaid      = "PAID"
	OrderShipped   = "SHIPPED"
	OrderDelivered = "DELIVERED"
	OrderCancelled = "CANCELLED"
)

type Order struct {
	ID              string          `db:"id" json:"id"`
	UserID          string          `db:"user_id" json:"user_id"`
	Subtotal        decimal.Decimal `db:"subtotal" json:"subtotal"`
	Discount        decimal.Decimal `db:"discount" json:"discount"`
	Total           decimal.Decimal `db:"total" json:"total"`
	Status          string          `db:"status" json:"status"`
	CouponID        *string         `db:"coupon_id" json:"coupon_id,omitempty"`
	ShippingAddress string          `db:"shipping_address" json:"shipping_address"`
	CreatedAt       string          `db:"created_at" json:"created_at"`
	Items           []OrderItem     `json:"items,omitempty"`
}

type OrderItem struct {
	OrderID   string          `db:"order_id" json:"-"`
	ProductID string          `db:"product_id" json:"product_id"`
	Name      string          `db:"name" json:"name"`
	Qty       int             `db:"qty" json:"qty"`
	UnitPrice decimal.Decimal `db:"unit_price" json:"unit_price"`
	Subtotal  decimal.Decimal `db:"subtotal" json:"subtotal"`
}

type Review struct {
	ID        string `db:"id" json:"id"`
	ProductID string `db:"product_id" json:"product_id"`
	UserID    string `db:"user_id" json:"user_id"`
	Rating    int    `db:"rating" json:"rating"`
	Comment   string `db:"comment" json:"comment,omitempty"`
	CreatedAt string `db:"created_at" json:"created_at"`
	UpdatedAt string `db:"updated_at" json:"updated_at,omitempty"`
}

type Address struct {
	ID         string `db:"id" json:"id"`
	UserID     string `db:"user_id" json:"-"`
	Label      string `db:"label" json:"label"`
	Recipient  string `db:"recipient" json:"recipient"`
	Line1      string `db:"line1" json:"line1"`
	Line2      string `db:"line2" json:"line2,omitempty"`
	City       string `db:"city" json:"city"`
	PostalCode string `db:"postal_code" json:"postal_code"`
	Phone      string `db:"phone" json:"phone,omitempty"`
	IsDefault  bool   `db:"is_default" json:"is_default"`
	CreatedAt  string `db:"created_at" json:"created_at"`
	UpdatedAt  string `db:"updated_at" json:"updated_at,omitempty"`
}
