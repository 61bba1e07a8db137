package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string, seedDemo bool) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Admin account must always exist (idempotent; safe to run every start)
	if err := seedAdmin(db); err != nil {
		return nil, err
	}
	if seedDemo {
		if err := seedIfEmpty(db); err != nil {
			return nil, err
		}
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Users & Sessions
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('USER','ADMIN')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,
  user_id TEXT NULL REFERENCES users(id) ON DELETE CASCADE,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);

-- Categories (soft-deleted via active flag, never removed)
CREATE TABLE IF NOT EXISTS categories(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  slug TEXT NOT NULL UNIQUE,
  active INTEGER NOT NULL DEFAULT 1,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);

-- Products; price is decimal text, stock guarded at the ledger
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  category_id TEXT NOT NULL REFERENCES categories(id) ON DELETE RESTRICT,
  name TEXT NOT NULL,
  slug TEXT NOT NULL UNIQUE,
  description TEXT,
  price TEXT NOT NULL,
  stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
  active INTEGER NOT NULL DEFAULT 1,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_products_category   ON products(category_id);
CREATE INDEX IF NOT EXISTS idx_products_name       ON products(LOWER(name));
CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at);

-- Coupons
CREATE TABLE IF NOT EXISTS coupons(
  id TEXT PRIMARY KEY,
  code TEXT NOT NULL UNIQUE,
  type TEXT NOT NULL CHECK (type IN ('PERCENT','FIXED')),
  value TEXT NOT NULL,
  min_purchase TEXT,
  max_discount TEXT,
  starts_at TEXT NOT NULL,
  ends_at TEXT NOT NULL,
  usage_limit INTEGER,
  used_count INTEGER NOT NULL DEFAULT 0,
  active INTEGER NOT NULL DEFAULT 1,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);

-- Orders; monetary columns are decimal text, computed once at creation
CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL REFERENCES users(id),
  subtotal TEXT NOT NULL,
  discount TEXT NOT NULL DEFAULT '0',
  total TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'PENDING',
  coupon_id TEXT NULL REFERENCES coupons(id),
  shipping_address TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_orders_user       ON orders(user_id);
CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at);

CREATE TABLE IF NOT EXISTS order_items(
  order_id  TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL REFERENCES products(id),
  name TEXT NOT NULL,
  qty INTEGER NOT NULL CHECK (qty >= 1),
  unit_price TEXT NOT NULL,
  subtotal TEXT NOT NULL,
  PRIMARY KEY (order_id, product_id)
);

-- Reviews: one per (product, user)
CREATE TABLE IF NOT EXISTS reviews(
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
  comment TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT,
  UNIQUE(product_id, user_id)
);
CREATE INDEX IF NOT EXISTS idx_reviews_product ON reviews(product_id);

-- Shipping addresses
CREATE TABLE IF NOT EXISTS addresses(
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  label TEXT NOT NULL,
  recipient TEXT NOT NULL,
  line1 TEXT NOT NULL,
  line2 TEXT,
  city TEXT NOT NULL,
  postal_code TEXT NOT NULL,
  phone TEXT,
  is_default INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_addresses_user ON addresses(user_id);
`
	_, err := db.Exec(schema)
	return err
}

// seedAdmin ensures one ADMIN account exists (idempotent).
func seedAdmin(db *sqlx.DB) error {
	h, err := bcrypt.GenerateFromPassword([]byte("Admin1234!"), 12)
	if err != nil {
		return err
	}
	_, err = db.Exec(`
		INSERT INTO users(id,email,name,password_hash,role)
		VALUES('u-admin','admin@shopfront.test','Admin',?,'ADMIN')
		ON CONFLICT(email) DO NOTHING
	`, string(h))
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM categories`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo categories/products/coupons/users")

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	tx.MustExec(`INSERT INTO categories(id,name,slug) VALUES
	  ('cat-consoles','Retro Gaming Consoles','retro-gaming-consoles'),
	  ('cat-radios','Vintage Radios','vintage-radios'),
	  ('cat-audio','Retro Audio','retro-audio')`)

	tx.MustExec(`INSERT INTO products(id,category_id,name,slug,description,price,stock) VALUES
	  ('gbc-001','cat-consoles','Game Boy Color','game-boy-color','Handheld console','129.99',8),
	  ('nes-001','cat-consoles','NES Console','nes-console','Classic 8-bit console','199.00',5),
	  ('radio-001','cat-radios','Philco 1939','philco-1939','Vintage vacuum tube radio','349.50',2),
	  ('walkman-001','cat-audio','Sony Walkman TPS-L2','sony-walkman-tps-l2','Original 1979 cassette player','450.00',3)`)

	tx.MustExec(`INSERT INTO coupons(id,code,type,value,min_purchase,max_discount,starts_at,ends_at,usage_limit) VALUES
	  ('cp-welcome','WELCOME10','PERCENT','10','100',NULL,'2020-01-01T00:00:00Z','2099-01-01T00:00:00Z',NULL),
	  ('cp-flat','FLAT25','FIXED','25',NULL,NULL,'2020-01-01T00:00:00Z','2099-01-01T00:00:00Z',100)`)

	h, _ := bcrypt.GenerateFromPassword([]byte("Passw0rd!"), 12)
	tx.MustExec(`INSERT INTO users(id,email,name,password_hash,role) VALUES
	  ('u-alice','alice@shopfront.test','Alice',?,'USER'),
	  ('u-bob','bob@shopfront.test','Bob',?,'USER')`, string(h), string(h))

	return tx.Commit()
}
