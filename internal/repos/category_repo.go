package repos

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"shopfront/internal/apperr"
	"shopfront/internal/domain"
)

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

func (r *CategoryRepo) List(includeInactive bool) ([]domain.Category, error) {
	q := `
	  SELECT id, name, slug, active, created_at, COALESCE(updated_at,'') AS updated_at
	  FROM categories`
	if !includeInactive {
		q += ` WHERE active = 1`
	}
	q += ` ORDER BY name`
	out := []domain.Category{}
	err := r.db.Select(&out, q)
	return out, err
}

func (r *CategoryRepo) Get(id string) (domain.Category, error) {
	var c domain.Category
	err := r.db.Get(&c, `
	  SELECT id, name, slug, active, created_at, COALESCE(updated_at,'') AS updated_at
	  FROM categories WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Category{}, apperr.NotFound("category")
	}
	return c, err
}

// SlugExists checks slug uniqueness across active and inactive rows.
func (r *CategoryRepo) SlugExists(slug, excludeID string) (bool, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM categories WHERE slug = ? AND id != ?`, slug, excludeID)
	return n > 0, err
}

func (r *CategoryRepo) Create(c *domain.Category) error {
	_, err := r.db.Exec(`INSERT INTO categories(id,name,slug,active) VALUES(?,?,?,1)`,
		c.ID, c.Name, c.Slug)
	return err
}

func (r *CategoryRepo) Update(c *domain.Category) error {
	res, err := r.db.Exec(`
	  UPDATE categories SET name=?, slug=?, updated_at=CURRENT_TIMESTAMP WHERE id=?`,
		c.Name, c.Slug, c.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("category")
	}
	return nil
}

// ProductCount counts products still attached to the category; soft
// delete is only allowed at zero.
func (r *CategoryRepo) ProductCount(id string) (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM products WHERE category_id = ?`, id)
	return n, err
}

func (r *CategoryRepo) SoftDelete(id string) error {
	res, err := r.db.Exec(`
	  UPDATE categories SET active=0, updated_at=CURRENT_TIMESTAMP WHERE id=? AND active=1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("category")
	}
	return nil
}
