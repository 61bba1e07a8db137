package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"shopfront/internal/http/handlers"
	applog "shopfront/internal/log"
	"shopfront/internal/repos"
)

// newApp builds the API the way main does, minus the network listener.
func newApp(t *testing.T) (*fiber.App, *sqlx.DB) {
	t.Helper()
	db, err := repos.OpenDB(":memory:", false)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "something went wrong, please try again",
				"code":  "INTERNAL",
			})
		},
	})
	app.Use(requestid.New())

	deps := handlers.NewDeps(db, nil)
	deps.Register(app)
	return app, db
}

func seedAPIFixtures(t *testing.T, db *sqlx.DB) {
	t.Helper()
	fixtures := `
	INSERT INTO users(id,email,name,password_hash,role) VALUES
	  ('u-user','user@shopfront.test','User','x','USER');
	INSERT INTO sessions(id,user_id) VALUES
	  ('sid-user','u-user'),
	  ('sid-admin','u-admin');
	INSERT INTO categories(id,name,slug) VALUES ('cat-1','Consoles','consoles');
	INSERT INTO products(id,category_id,name,slug,description,price,stock,active) VALUES
	  ('gbc-001','cat-1','Game Boy Color','game-boy-color','Handheld','100.00',6,1);
	INSERT INTO coupons(id,code,type,value,min_purchase,starts_at,ends_at)
	  VALUES ('cp-1','SAVE10','PERCENT','10','100','2020-01-01T00:00:00Z','2099-01-01T00:00:00Z');
	`
	if _, err := db.Exec(fixtures); err != nil {
		t.Fatal(err)
	}
}

func jsonReq(t *testing.T, method, path, sid string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if sid != "" {
		req.Header.Set("Authorization", "Bearer "+sid)
	}
	return req
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode body: %v", err)
	}
}
