package repos

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"shopfront/internal/apperr"
	"shopfront/internal/domain"
)

type CouponRepo struct{ db *sqlx.DB }

func NewCouponRepo(db *sqlx.DB) *CouponRepo { return &CouponRepo{db: db} }

const couponCols = `
  id, code, type, value, min_purchase, max_discount, starts_at, ends_at,
  usage_limit, used_count, active, created_at`

func (r *CouponRepo) ByCode(code string) (domain.Coupon, error) {
	var c domain.Coupon
	err := r.db.Get(&c, `SELECT `+couponCols+` FROM coupons WHERE code = ? AND active = 1`, code)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Coupon{}, apperr.NotFound("coupon")
	}
	return c, err
}

func (r *CouponRepo) Get(id string) (domain.Coupon, error) {
	var c domain.Coupon
	err := r.db.Get(&c, `SELECT `+couponCols+` FROM coupons WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Coupon{}, apperr.NotFound("coupon")
	}
	return c, err
}

func (r *CouponRepo) List() ([]domain.Coupon, error) {
	out := []domain.Coupon{}
	err := r.db.Select(&out, `SELECT `+couponCols+` FROM coupons ORDER BY created_at DESC`)
	return out, err
}

func (r *CouponRepo) CodeExists(code, excludeID string) (bool, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM coupons WHERE code = ? AND id != ?`, code, excludeID)
	return n > 0, err
}

func (r *CouponRepo) Create(c *domain.Coupon) error {
	_, err := r.db.Exec(`
	  INSERT INTO coupons(id,code,type,value,min_purchase,max_discount,starts_at,ends_at,usage_limit,active)
	  VALUES(?,?,?,?,?,?,?,?,?,1)`,
		c.ID, c.Code, c.Type, c.Value, c.MinPurchase, c.MaxDiscount, c.StartsAt, c.EndsAt, c.UsageLimit)
	return err
}

func (r *CouponRepo) Update(c *domain.Coupon) error {
	res, err := r.db.Exec(`
	  UPDATE coupons
	  SET code=?, type=?, value=?, min_purchase=?, max_discount=?, starts_at=?, ends_at=?, usage_limit=?
	  WHERE id=?`,
		c.Code, c.Type, c.Value, c.MinPurchase, c.MaxDiscount, c.StartsAt, c.EndsAt, c.UsageLimit, c.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("coupon")
	}
	return nil
}

func (r *CouponRepo) Deactivate(id string) error {
	res, err := r.db.Exec(`UPDATE coupons SET active=0 WHERE id=? AND active=1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("coupon")
	}
	return nil
}

// incrementUsage charges one redemption inside the order transaction.
// The guard re-checks the limit so two concurrent orders cannot both
// take the last slot.
func incrementUsage(e sqlx.Execer, couponID string) error {
	res, err := e.Exec(`
		UPDATE coupons SET used_count = used_count + 1
		WHERE id = ? AND active = 1
		  AND (usage_limit IS NULL OR used_count < usage_limit)
	`, couponID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrCouponUsageLimit
	}
	return nil
}
