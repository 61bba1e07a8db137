package services_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopfront/internal/apperr"
	"shopfront/internal/repos"
	"shopfront/internal/services"
)

func seedCoupons(t *testing.T, svc *services.CouponService) {
	t.Helper()
	limit := 1
	cases := []services.CouponInput{
		{Code: "DISKON10", Type: "PERCENT", Value: decimal.NewFromInt(10),
			MinPurchase: decimal.NewNullDecimal(decimal.NewFromInt(100000)),
			StartsAt:    "2020-01-01T00:00:00Z", EndsAt: "2099-01-01T00:00:00Z"},
		{Code: "CAPPED20", Type: "PERCENT", Value: decimal.NewFromInt(20),
			MaxDiscount: decimal.NewNullDecimal(decimal.NewFromInt(50000)),
			StartsAt:    "2020-01-01T00:00:00Z", EndsAt: "2099-01-01T00:00:00Z"},
		{Code: "FLAT25", Type: "FIXED", Value: decimal.NewFromInt(25),
			StartsAt: "2020-01-01T00:00:00Z", EndsAt: "2099-01-01T00:00:00Z"},
		{Code: "BYGONE", Type: "PERCENT", Value: decimal.NewFromInt(50),
			StartsAt: "2020-01-01T00:00:00Z", EndsAt: "2020-02-01T00:00:00Z"},
		{Code: "ONESHOT", Type: "FIXED", Value: decimal.NewFromInt(5),
			StartsAt: "2020-01-01T00:00:00Z", EndsAt: "2099-01-01T00:00:00Z", UsageLimit: &limit},
	}
	for _, in := range cases {
		if _, err := svc.Create(in); err != nil {
			t.Fatalf("seed coupon %s: %v", in.Code, err)
		}
	}
}

func TestCouponValidate_Percentage(t *testing.T) {
	db := memdb(t)
	svc := services.NewCouponService(repos.NewCouponRepo(db))
	seedCoupons(t, svc)

	discount, c, err := svc.Validate("DISKON10", decimal.NewFromInt(500000))
	require.NoError(t, err)
	assert.Equal(t, "DISKON10", c.Code)
	assert.True(t, discount.Equal(decimal.NewFromInt(50000)), "got %s", discount)
}

func TestCouponValidate_MaxDiscountCap(t *testing.T) {
	db := memdb(t)
	svc := services.NewCouponService(repos.NewCouponRepo(db))
	seedCoupons(t, svc)

	// 20% of 1000000 is 200000, capped to 50000
	discount, _, err := svc.Validate("CAPPED20", decimal.NewFromInt(1000000))
	require.NoError(t, err)
	assert.True(t, discount.Equal(decimal.NewFromInt(50000)), "got %s", discount)
}

func TestCouponValidate_FixedNeverExceedsTotal(t *testing.T) {
	db := memdb(t)
	svc := services.NewCouponService(repos.NewCouponRepo(db))
	seedCoupons(t, svc)

	discount, _, err := svc.Validate("FLAT25", decimal.NewFromInt(10))
	require.NoError(t, err)
	assert.True(t, discount.Equal(decimal.NewFromInt(10)), "got %s", discount)
}

func TestCouponValidate_Failures(t *testing.T) {
	db := memdb(t)
	couponRepo := repos.NewCouponRepo(db)
	svc := services.NewCouponService(couponRepo)
	seedCoupons(t, svc)

	_, _, err := svc.Validate("NOSUCH", decimal.NewFromInt(1000))
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, _, err = svc.Validate("BYGONE", decimal.NewFromInt(1000))
	assert.ErrorIs(t, err, apperr.ErrCouponExpired)

	_, _, err = svc.Validate("DISKON10", decimal.NewFromInt(99999))
	assert.ErrorIs(t, err, apperr.ErrCouponMinPurchase)

	// exhaust ONESHOT's single slot, then validation refuses it
	if _, err := db.Exec(`UPDATE coupons SET used_count = 1 WHERE code = 'ONESHOT'`); err != nil {
		t.Fatal(err)
	}
	_, _, err = svc.Validate("ONESHOT", decimal.NewFromInt(1000))
	assert.ErrorIs(t, err, apperr.ErrCouponUsageLimit)
}

func TestCouponCreate_RejectsDuplicateCode(t *testing.T) {
	db := memdb(t)
	svc := services.NewCouponService(repos.NewCouponRepo(db))
	seedCoupons(t, svc)

	_, err := svc.Create(services.CouponInput{
		Code: "diskon10", Type: "PERCENT", Value: decimal.NewFromInt(5),
		StartsAt: "2020-01-01T00:00:00Z", EndsAt: "2099-01-01T00:00:00Z",
	})
	assert.ErrorIs(t, err, apperr.ErrConflict)
}
