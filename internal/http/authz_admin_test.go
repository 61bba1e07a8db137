package handlers_test

import (
	"net/http"
	"testing"
)

// Admin surfaces must reject anonymous and plain-user callers.
func TestAdminGuard(t *testing.T) {
	app, db := newApp(t)
	seedAPIFixtures(t, db)

	adminPaths := []struct{ method, path string }{
		{"GET", "/api/v1/admin/dashboard"},
		{"GET", "/api/v1/admin/orders"},
		{"GET", "/api/v1/coupons"},
		{"POST", "/api/v1/categories"},
	}

	for _, p := range adminPaths {
		// anonymous -> 401
		resp, err := app.Test(jsonReq(t, p.method, p.path, "", map[string]any{"name": "X"}), -1)
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("%s %s anonymous: want 401, got %d", p.method, p.path, resp.StatusCode)
		}

		// plain user -> 403
		resp, err = app.Test(jsonReq(t, p.method, p.path, "sid-user", map[string]any{"name": "X"}), -1)
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusForbidden {
			t.Fatalf("%s %s user: want 403, got %d", p.method, p.path, resp.StatusCode)
		}
	}

	// admin -> 200 on the dashboard
	resp, err := app.Test(jsonReq(t, "GET", "/api/v1/admin/dashboard", "sid-admin", nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin dashboard: want 200, got %d", resp.StatusCode)
	}
	var stats struct {
		Users    int `json:"users"`
		Products int `json:"products"`
	}
	decodeBody(t, resp, &stats)
	if stats.Users < 2 || stats.Products != 1 {
		t.Fatalf("unexpected dashboard stats: %+v", stats)
	}
}

func TestAdminCreatesAdminAccount(t *testing.T) {
	app, db := newApp(t)
	seedAPIFixtures(t, db)

	resp, err := app.Test(jsonReq(t, "POST", "/api/v1/admin/users", "sid-admin", map[string]any{
		"email": "ops@shopfront.test", "name": "Ops", "password": "Passw0rd!", "role": "ADMIN",
	}), -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("want 201, got %d", resp.StatusCode)
	}
	var u struct {
		Role string `json:"role"`
	}
	decodeBody(t, resp, &u)
	if u.Role != "ADMIN" {
		t.Fatalf("want ADMIN role, got %q", u.Role)
	}

	// the public register endpoint never honors a role escalation
	resp, err = app.Test(jsonReq(t, "POST", "/api/v1/auth/register", "", map[string]any{
		"email": "sneaky@shopfront.test", "name": "Sneaky", "password": "Passw0rd!", "role": "ADMIN",
	}), -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("want 201, got %d", resp.StatusCode)
	}
	var pub struct {
		Role string `json:"role"`
	}
	decodeBody(t, resp, &pub)
	if pub.Role != "USER" {
		t.Fatalf("public register escalated role to %q", pub.Role)
	}
}
