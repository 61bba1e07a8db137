package repos

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"shopfront/internal/apperr"
	"shopfront/internal/domain"
)

type AddressRepo struct{ db *sqlx.DB }

func NewAddressRepo(db *sqlx.DB) *AddressRepo { return &AddressRepo{db: db} }

const addressCols = `
  id, user_id, label, recipient, line1, COALESCE(line2,'') AS line2, city,
  postal_code, COALESCE(phone,'') AS phone, is_default,
  created_at, COALESCE(updated_at,'') AS updated_at`

func (r *AddressRepo) ListByUser(userID string) ([]domain.Address, error) {
	out := []domain.Address{}
	err := r.db.Select(&out, `
	  SELECT `+addressCols+` FROM addresses
	  WHERE user_id = ?
	  ORDER BY is_default DESC, datetime(created_at) DESC`, userID)
	return out, err
}

func (r *AddressRepo) Get(id string) (domain.Address, error) {
	var a domain.Address
	err := r.db.Get(&a, `SELECT `+addressCols+` FROM addresses WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Address{}, apperr.NotFound("address")
	}
	return a, err
}

// Create inserts the address; marking it default clears the previous
// default in the same transaction.
func (r *AddressRepo) Create(a *domain.Address) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if a.IsDefault {
		if _, err := tx.Exec(`UPDATE addresses SET is_default=0 WHERE user_id=?`, a.UserID); err != nil {
			return err
		}
	}
	if _, err := tx.Exec(`
	  INSERT INTO addresses(id,user_id,label,recipient,line1,line2,city,postal_code,phone,is_default)
	  VALUES(?,?,?,?,?,?,?,?,?,?)`,
		a.ID, a.UserID, a.Label, a.Recipient, a.Line1, a.Line2, a.City, a.PostalCode, a.Phone, a.IsDefault); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *AddressRepo) Update(a *domain.Address) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if a.IsDefault {
		if _, err := tx.Exec(`UPDATE addresses SET is_default=0 WHERE user_id=? AND id!=?`, a.UserID, a.ID); err != nil {
			return err
		}
	}
	res, err := tx.Exec(`
	  UPDATE addresses
	  SET label=?, recipient=?, line1=?, line2=?, city=?, postal_code=?, phone=?, is_default=?,
	      updated_at=CURRENT_TIMESTAMP
	  WHERE id=? AND user_id=?`,
		a.Label, a.Recipient, a.Line1, a.Line2, a.City, a.PostalCode, a.Phone, a.IsDefault, a.ID, a.UserID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("address")
	}
	return tx.Commit()
}

func (r *AddressRepo) Delete(id, userID string) error {
	res, err := r.db.Exec(`DELETE FROM addresses WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("address")
	}
	return nil
}
