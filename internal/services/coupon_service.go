package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"shopfront/internal/apperr"
	"shopfront/internal/domain"
	"shopfront/internal/repos"
	"shopfront/internal/validate"
)

type CouponService struct {
	Coupons *repos.CouponRepo

	// now is swappable for window tests.
	now func() time.Time
}

func NewCouponService(coupons *repos.CouponRepo) *CouponService {
	return &CouponService{Coupons: coupons, now: time.Now}
}

var hundred = decimal.NewFromInt(100)

// couponTime accepts the formats the API and SQLite produce.
func couponTime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, apperr.Validation("invalid time %q", s)
}

// Validate resolves the code and computes the bounded discount for the
// given purchase total. It never mutates the coupon: the usage count is
// charged at order commit, inside the order transaction.
func (s *CouponService) Validate(code string, total decimal.Decimal) (decimal.Decimal, domain.Coupon, error) {
	code, ok := validate.CouponCode(code)
	if !ok {
		return decimal.Zero, domain.Coupon{}, apperr.Validation("invalid coupon code")
	}
	c, err := s.Coupons.ByCode(code)
	if err != nil {
		return decimal.Zero, domain.Coupon{}, err
	}

	starts, err := couponTime(c.StartsAt)
	if err != nil {
		return decimal.Zero, domain.Coupon{}, err
	}
	ends, err := couponTime(c.EndsAt)
	if err != nil {
		return decimal.Zero, domain.Coupon{}, err
	}
	now := s.now().UTC()
	if now.Before(starts) || now.After(ends) {
		return decimal.Zero, domain.Coupon{}, apperr.ErrCouponExpired
	}
	if c.UsageLimit != nil && c.UsedCount >= *c.UsageLimit {
		return decimal.Zero, domain.Coupon{}, apperr.ErrCouponUsageLimit
	}
	if c.MinPurchase.Valid && total.LessThan(c.MinPurchase.Decimal) {
		return decimal.Zero, domain.Coupon{}, apperr.ErrCouponMinPurchase
	}

	var discount decimal.Decimal
	switch c.Type {
	case domain.CouponPercent:
		discount = total.Mul(c.Value).Div(hundred)
		if c.MaxDiscount.Valid && discount.GreaterThan(c.MaxDiscount.Decimal) {
			discount = c.MaxDiscount.Decimal
		}
	case domain.CouponFixed:
		discount = c.Value
		if discount.GreaterThan(total) {
			discount = total
		}
	default:
		return decimal.Zero, domain.Coupon{}, apperr.Validation("unknown coupon type %q", c.Type)
	}
	return discount, c, nil
}

// ---------- Admin CRUD ----------

type CouponInput struct {
	Code        string              `json:"code"`
	Type        string              `json:"type"`
	Value       decimal.Decimal     `json:"value"`
	MinPurchase decimal.NullDecimal `json:"min_purchase"`
	MaxDiscount decimal.NullDecimal `json:"max_discount"`
	StartsAt    string              `json:"starts_at"`
	EndsAt      string              `json:"ends_at"`
	UsageLimit  *int                `json:"usage_limit"`
}

func (s *CouponService) checkInput(in *CouponInput) error {
	code, ok := validate.CouponCode(in.Code)
	if !ok {
		return apperr.Validation("coupon code must be 2-32 chars of A-Z, 0-9, - or _")
	}
	in.Code = code
	if in.Type != domain.CouponPercent && in.Type != domain.CouponFixed {
		return apperr.Validation("type must be PERCENT or FIXED")
	}
	if !in.Value.IsPositive() {
		return apperr.Validation("value must be positive")
	}
	if in.Type == domain.CouponPercent && in.Value.GreaterThan(hundred) {
		return apperr.Validation("percentage value must not exceed 100")
	}
	if in.UsageLimit != nil && *in.UsageLimit < 1 {
		return apperr.Validation("usage limit must be positive")
	}
	starts, err := couponTime(in.StartsAt)
	if err != nil {
		return err
	}
	ends, err := couponTime(in.EndsAt)
	if err != nil {
		return err
	}
	if !ends.After(starts) {
		return apperr.Validation("ends_at must be after starts_at")
	}
	return nil
}

func (s *CouponService) List() ([]domain.Coupon, error) { return s.Coupons.List() }

func (s *CouponService) Get(id string) (domain.Coupon, error) { return s.Coupons.Get(id) }

func (s *CouponService) Create(in CouponInput) (domain.Coupon, error) {
	if err := s.checkInput(&in); err != nil {
		return domain.Coupon{}, err
	}
	taken, err := s.Coupons.CodeExists(in.Code, "")
	if err != nil {
		return domain.Coupon{}, err
	}
	if taken {
		return domain.Coupon{}, apperr.Conflict("coupon code %s already exists", in.Code)
	}
	c := domain.Coupon{
		ID:          uuid.NewString(),
		Code:        in.Code,
		Type:        in.Type,
		Value:       in.Value,
		MinPurchase: in.MinPurchase,
		MaxDiscount: in.MaxDiscount,
		StartsAt:    in.StartsAt,
		EndsAt:      in.EndsAt,
		UsageLimit:  in.UsageLimit,
		Active:      true,
	}
	if err := s.Coupons.Create(&c); err != nil {
		return domain.Coupon{}, err
	}
	return c, nil
}

func (s *CouponService) Update(id string, in CouponInput) (domain.Coupon, error) {
	c, err := s.Coupons.Get(id)
	if err != nil {
		return domain.Coupon{}, err
	}
	if err := s.checkInput(&in); err != nil {
		return domain.Coupon{}, err
	}
	taken, err := s.Coupons.CodeExists(in.Code, id)
	if err != nil {
		return domain.Coupon{}, err
	}
	if taken {
		return domain.Coupon{}, apperr.Conflict("coupon code %s already exists", in.Code)
	}
	c.Code, c.Type, c.Value = in.Code, in.Type, in.Value
	c.MinPurchase, c.MaxDiscount = in.MinPurchase, in.MaxDiscount
	c.StartsAt, c.EndsAt, c.UsageLimit = in.StartsAt, in.EndsAt, in.UsageLimit
	if err := s.Coupons.Update(&c); err != nil {
		return domain.Coupon{}, err
	}
	return c, nil
}

func (s *CouponService) Delete(id string) error { return s.Coupons.Deactivate(id) }
