package services

import (
	"shopfront/internal/apperr"
	"shopfront/internal/metrics"
	"shopfront/internal/repos"
)

// Stock adjustment directions.
const (
	StockIncrease = "increase"
	StockDecrease = "decrease"
)

type StockService struct {
	Prods *repos.ProductRepo
}

func NewStockService(prods *repos.ProductRepo) *StockService {
	return &StockService{Prods: prods}
}

// Adjust applies a signed stock delta. Decreases go through a single
// conditional update, so a quantity above current stock fails with
// InsufficientStock and leaves the row untouched; increases always
// commit for an existing active product. Returns the resulting stock.
func (s *StockService) Adjust(productID string, qty int, direction string) (int, error) {
	if qty <= 0 {
		return 0, apperr.Validation("quantity must be positive")
	}
	if direction != StockIncrease && direction != StockDecrease {
		return 0, apperr.Validation("direction must be %q or %q", StockIncrease, StockDecrease)
	}

	p, err := s.Prods.Get(productID)
	if err != nil {
		return 0, err
	}
	if !p.Active {
		return 0, apperr.NotFound("product")
	}

	if direction == StockDecrease {
		err = s.Prods.Decrement(productID, qty)
	} else {
		err = s.Prods.Increment(productID, qty)
	}
	if err != nil {
		return 0, err
	}
	metrics.StockAdjustmentsTotal.WithLabelValues(direction).Inc()

	p, err = s.Prods.Get(productID)
	if err != nil {
		return 0, err
	}
	return p.Stock, nil
}
