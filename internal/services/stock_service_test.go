package services_test

import (
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"shopfront/internal/apperr"
	"shopfront/internal/repos"
	"shopfront/internal/services"
)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(":memory:", false)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func seedCatalog(t *testing.T, db *sqlx.DB) {
	t.Helper()
	fixtures := `
	INSERT INTO categories(id,name,slug) VALUES ('cat-1','Consoles','consoles');
	INSERT INTO products(id,category_id,name,slug,description,price,stock,active) VALUES
	  ('gbc-001','cat-1','Game Boy Color','game-boy-color','Handheld','100.00',6,1),
	  ('nes-001','cat-1','NES Console','nes-console','8-bit','199.00',0,1),
	  ('old-001','cat-1','Retired Thing','retired-thing','gone','10.00',4,0);
	`
	if _, err := db.Exec(fixtures); err != nil {
		t.Fatal(err)
	}
}

func TestStockService_Adjust(t *testing.T) {
	db := memdb(t)
	seedCatalog(t, db)
	prodRepo := repos.NewProductRepo(db)
	svc := services.NewStockService(prodRepo)

	// decrease within stock
	stock, err := svc.Adjust("gbc-001", 2, services.StockDecrease)
	if err != nil {
		t.Fatal(err)
	}
	if stock != 4 {
		t.Fatalf("want stock=4, got %d", stock)
	}

	// decrease past zero fails and leaves stock unchanged
	_, err = svc.Adjust("gbc-001", 5, services.StockDecrease)
	if !errors.Is(err, apperr.ErrInsufficientStock) {
		t.Fatalf("want InsufficientStock, got %v", err)
	}
	p, err := prodRepo.Get("gbc-001")
	if err != nil {
		t.Fatal(err)
	}
	if p.Stock != 4 {
		t.Fatalf("failed decrement mutated stock: %d", p.Stock)
	}

	// increase always commits
	stock, err = svc.Adjust("nes-001", 3, services.StockIncrease)
	if err != nil {
		t.Fatal(err)
	}
	if stock != 3 {
		t.Fatalf("want stock=3, got %d", stock)
	}
}

func TestStockService_AdjustRejectsBadInput(t *testing.T) {
	db := memdb(t)
	seedCatalog(t, db)
	svc := services.NewStockService(repos.NewProductRepo(db))

	if _, err := svc.Adjust("gbc-001", 0, services.StockDecrease); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("want ValidationError for zero qty, got %v", err)
	}
	if _, err := svc.Adjust("gbc-001", 1, "sideways"); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("want ValidationError for bad direction, got %v", err)
	}
	if _, err := svc.Adjust("missing", 1, services.StockDecrease); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("want NotFound for missing product, got %v", err)
	}
	// inactive products are invisible to the ledger
	if _, err := svc.Adjust("old-001", 1, services.StockIncrease); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("want NotFound for inactive product, got %v", err)
	}
}
