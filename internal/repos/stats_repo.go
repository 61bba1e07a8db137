package repos

import (
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type StatsRepo struct{ db *sqlx.DB }

func NewStatsRepo(db *sqlx.DB) *StatsRepo { return &StatsRepo{db: db} }

type MonthlySales struct {
	Month   string          `db:"month" json:"month"` // YYYY-MM
	Orders  int             `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

func (r *StatsRepo) OrderCount() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM orders`)
	return n, err
}

func (r *StatsRepo) PendingOrderCount() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM orders WHERE status = 'PENDING'`)
	return n, err
}

// Revenue sums non-cancelled order totals. Totals are decimal text, so
// the fold happens in Go rather than trusting SQLite float coercion.
func (r *StatsRepo) Revenue() (decimal.Decimal, error) {
	var totals []decimal.Decimal
	if err := r.db.Select(&totals, `SELECT total FROM orders WHERE status != 'CANCELLED'`); err != nil {
		return decimal.Zero, err
	}
	sum := decimal.Zero
	for _, t := range totals {
		sum = sum.Add(t)
	}
	return sum, nil
}

// MonthlySales returns up to "months" most recent months with order
// counts and exact revenue, newest first.
func (r *StatsRepo) MonthlySales(months int) ([]MonthlySales, error) {
	if months <= 0 {
		months = 12
	}
	type row struct {
		Month string          `db:"month"`
		Total decimal.Decimal `db:"total"`
	}
	var rows []row
	if err := r.db.Select(&rows, `
	  SELECT strftime('%Y-%m', created_at) AS month, total
	  FROM orders
	  WHERE status != 'CANCELLED'
	  ORDER BY month DESC`); err != nil {
		return nil, err
	}

	out := []MonthlySales{}
	for _, x := range rows {
		if len(out) > 0 && out[len(out)-1].Month == x.Month {
			last := &out[len(out)-1]
			last.Orders++
			last.Revenue = last.Revenue.Add(x.Total)
			continue
		}
		if len(out) == months {
			break
		}
		out = append(out, MonthlySales{Month: x.Month, Orders: 1, Revenue: x.Total})
	}
	return out, nil
}
