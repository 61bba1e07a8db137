package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Total number of orders created",
	})

	OrdersFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_failed_total",
		Help: "Total number of rejected order attempts",
	}, []string{"reason"})

	CouponsRedeemedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "coupons_redeemed_total",
		Help: "Total number of coupons redeemed at order commit",
	})

	StockAdjustmentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_adjustments_total",
		Help: "Total number of stock ledger adjustments",
	}, []string{"direction"})

	LoginFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "login_failures_total",
		Help: "Total number of failed login attempts",
	})
)
