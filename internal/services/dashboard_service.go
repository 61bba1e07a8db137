package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"shopfront/internal/cache"
	"shopfront/internal/domain"
	"shopfront/internal/repos"
)

const (
	lowStockThreshold = 5
	statsTTL          = 60 * time.Second
)

type DashboardService struct {
	Users     *repos.UserRepo
	Prods     *repos.ProductRepo
	StatsRepo *repos.StatsRepo
	Cache     *cache.Cache
	Months    int
}

func NewDashboardService(users *repos.UserRepo, prods *repos.ProductRepo, stats *repos.StatsRepo, c *cache.Cache) *DashboardService {
	return &DashboardService{Users: users, Prods: prods, StatsRepo: stats, Cache: c, Months: 12}
}

type DashboardStats struct {
	Users         int                  `json:"users"`
	Products      int                  `json:"products"`
	Orders        int                  `json:"orders"`
	PendingOrders int                  `json:"pending_orders"`
	Revenue       decimal.Decimal      `json:"revenue"`
	LowStock      []domain.Product     `json:"low_stock"`
	MonthlySales  []repos.MonthlySales `json:"monthly_sales"`
}

// Stats assembles the admin dashboard aggregates, served from the redis
// cache (when configured) with a short TTL since the numbers tolerate
// brief staleness.
func (s *DashboardService) Stats(ctx context.Context) (DashboardStats, error) {
	key := s.Cache.Key("dashboard", "stats")
	if raw, err := s.Cache.Get(ctx, key); err == nil && raw != "" {
		var st DashboardStats
		if json.Unmarshal([]byte(raw), &st) == nil {
			return st, nil
		}
	}

	var st DashboardStats
	var err error
	if st.Users, err = s.Users.Count(); err != nil {
		return DashboardStats{}, err
	}
	if st.Products, err = s.Prods.Count(); err != nil {
		return DashboardStats{}, err
	}
	if st.Orders, err = s.StatsRepo.OrderCount(); err != nil {
		return DashboardStats{}, err
	}
	if st.PendingOrders, err = s.StatsRepo.PendingOrderCount(); err != nil {
		return DashboardStats{}, err
	}
	if st.Revenue, err = s.StatsRepo.Revenue(); err != nil {
		return DashboardStats{}, err
	}
	if st.LowStock, err = s.Prods.LowStock(lowStockThreshold); err != nil {
		return DashboardStats{}, err
	}
	if st.MonthlySales, err = s.StatsRepo.MonthlySales(s.Months); err != nil {
		return DashboardStats{}, err
	}

	if b, err := json.Marshal(st); err == nil {
		_ = s.Cache.Set(ctx, key, b, statsTTL)
	}
	return st, nil
}
