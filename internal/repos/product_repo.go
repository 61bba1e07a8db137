package repos

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"shopfront/internal/apperr"
	"shopfront/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
  id, category_id, name, slug, description, price, stock, active,
  created_at, COALESCE(updated_at,'') AS updated_at`

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT `+productCols+` FROM products WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, apperr.NotFound("product")
	}
	return p, err
}

// Search lists active products filtered by free-text query and category.
func (r *ProductRepo) Search(q, catID string, limit, offset int) ([]domain.Product, error) {
	where := `active = 1`
	args := []any{}
	if q != "" {
		where += ` AND (LOWER(name) LIKE ? OR LOWER(description) LIKE ?)`
		args = append(args, "%"+q+"%", "%"+q+"%")
	}
	if catID != "" {
		where += ` AND category_id = ?`
		args = append(args, catID)
	}
	args = append(args, limit, offset)

	out := []domain.Product{}
	err := r.db.Select(&out, `
	  SELECT `+productCols+`
	  FROM products
	  WHERE `+where+`
	  ORDER BY created_at DESC
	  LIMIT ? OFFSET ?`, args...)
	return out, err
}

// SlugExists checks slug uniqueness across active and inactive rows.
func (r *ProductRepo) SlugExists(slug, excludeID string) (bool, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM products WHERE slug = ? AND id != ?`, slug, excludeID)
	return n > 0, err
}

func (r *ProductRepo) Create(p *domain.Product) error {
	_, err := r.db.Exec(`
	  INSERT INTO products(id,category_id,name,slug,description,price,stock,active)
	  VALUES(?,?,?,?,?,?,?,1)`,
		p.ID, p.CategoryID, p.Name, p.Slug, p.Description, p.Price, p.Stock)
	return err
}

func (r *ProductRepo) Update(p *domain.Product) error {
	res, err := r.db.Exec(`
	  UPDATE products
	  SET category_id=?, name=?, slug=?, description=?, price=?, updated_at=CURRENT_TIMESTAMP
	  WHERE id=?`,
		p.CategoryID, p.Name, p.Slug, p.Description, p.Price, p.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("product")
	}
	return nil
}

func (r *ProductRepo) SoftDelete(id string) error {
	res, err := r.db.Exec(`
	  UPDATE products SET active=0, updated_at=CURRENT_TIMESTAMP WHERE id=? AND active=1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("product")
	}
	return nil
}

// Decrement subtracts "by" units in a single conditional statement so a
// concurrent decrement can never drive stock negative. Returns
// InsufficientStock when the guard rejects the update.
func (r *ProductRepo) Decrement(productID string, by int) error {
	return decrementStock(r.db, productID, by)
}

// Increment adds stock; always commits for an existing active product.
func (r *ProductRepo) Increment(productID string, by int) error {
	res, err := r.db.Exec(`
		UPDATE products SET stock = stock + ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND active = 1
	`, by, productID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("product")
	}
	return nil
}

// decrementStock is shared with the order transaction, which runs it
// against a *sqlx.Tx instead of the root handle.
func decrementStock(e sqlx.Execer, productID string, by int) error {
	res, err := e.Exec(`
		UPDATE products SET stock = stock - ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND active = 1 AND stock >= ?
	`, by, productID, by)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.New(apperr.ErrInsufficientStock.Code,
			"insufficient stock for "+productID, apperr.ErrInsufficientStock.Status)
	}
	return nil
}

// LowStock lists active products at or below the threshold (dashboard).
func (r *ProductRepo) LowStock(threshold int) ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.db.Select(&out, `
	  SELECT `+productCols+`
	  FROM products
	  WHERE active = 1 AND stock <= ?
	  ORDER BY stock ASC, name`, threshold)
	return out, err
}

func (r *ProductRepo) Count() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM products WHERE active = 1`)
	return n, err
}
