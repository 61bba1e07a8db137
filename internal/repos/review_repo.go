package repos

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"shopfront/internal/apperr"
	"shopfront/internal/domain"
)

type ReviewRepo struct{ db *sqlx.DB }

func NewReviewRepo(db *sqlx.DB) *ReviewRepo { return &ReviewRepo{db: db} }

func (r *ReviewRepo) ListByProduct(productID string) ([]domain.Review, error) {
	out := []domain.Review{}
	err := r.db.Select(&out, `
	  SELECT id, product_id, user_id, rating, COALESCE(comment,'') AS comment,
	         created_at, COALESCE(updated_at,'') AS updated_at
	  FROM reviews WHERE product_id = ?
	  ORDER BY datetime(created_at) DESC`, productID)
	return out, err
}

// AverageRating returns 0 with no error when the product has no reviews.
func (r *ReviewRepo) AverageRating(productID string) (float64, error) {
	var avg sql.NullFloat64
	err := r.db.Get(&avg, `SELECT AVG(rating) FROM reviews WHERE product_id = ?`, productID)
	if err != nil {
		return 0, err
	}
	return avg.Float64, nil
}

func (r *ReviewRepo) Get(id string) (domain.Review, error) {
	var rv domain.Review
	err := r.db.Get(&rv, `
	  SELECT id, product_id, user_id, rating, COALESCE(comment,'') AS comment,
	         created_at, COALESCE(updated_at,'') AS updated_at
	  FROM reviews WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Review{}, apperr.NotFound("review")
	}
	return rv, err
}

func (r *ReviewRepo) Exists(productID, userID string) (bool, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM reviews WHERE product_id = ? AND user_id = ?`, productID, userID)
	return n > 0, err
}

func (r *ReviewRepo) Create(rv *domain.Review) error {
	_, err := r.db.Exec(`
	  INSERT INTO reviews(id, product_id, user_id, rating, comment)
	  VALUES(?, ?, ?, ?, ?)`,
		rv.ID, rv.ProductID, rv.UserID, rv.Rating, rv.Comment)
	return err
}

func (r *ReviewRepo) Update(rv *domain.Review) error {
	res, err := r.db.Exec(`
	  UPDATE reviews SET rating=?, comment=?, updated_at=CURRENT_TIMESTAMP
	  WHERE id=?`, rv.Rating, rv.Comment, rv.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("review")
	}
	return nil
}

func (r *ReviewRepo) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM reviews WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("review")
	}
	return nil
}
