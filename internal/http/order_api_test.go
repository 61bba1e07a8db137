package handlers_test

import (
	"net/http"
	"testing"
)

func TestOrderAPI_CreateWithCoupon(t *testing.T) {
	app, db := newApp(t)
	seedAPIFixtures(t, db)

	resp, err := app.Test(jsonReq(t, "POST", "/api/v1/orders", "sid-user", map[string]any{
		"items":            []map[string]any{{"product_id": "gbc-001", "qty": 2}},
		"shipping_address": "12 Elm St",
		"coupon_code":      "SAVE10",
	}), -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("want 201, got %d", resp.StatusCode)
	}
	var o struct {
		ID       string `json:"id"`
		Subtotal string `json:"subtotal"`
		Discount string `json:"discount"`
		Total    string `json:"total"`
		Status   string `json:"status"`
		Items    []struct {
			ProductID string `json:"product_id"`
			Qty       int    `json:"qty"`
		} `json:"items"`
	}
	decodeBody(t, resp, &o)
	if o.Subtotal != "200" || o.Discount != "20" || o.Total != "180" {
		t.Fatalf("unexpected totals: %+v", o)
	}
	if o.Status != "PENDING" || len(o.Items) != 1 {
		t.Fatalf("unexpected order: %+v", o)
	}

	// fetching it back requires the owner (or an admin)
	resp, err = app.Test(jsonReq(t, "GET", "/api/v1/orders/"+o.ID, "sid-user", nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("owner get: want 200, got %d", resp.StatusCode)
	}

	var stock int
	if err := db.Get(&stock, `SELECT stock FROM products WHERE id = 'gbc-001'`); err != nil {
		t.Fatal(err)
	}
	if stock != 4 {
		t.Fatalf("want stock 4 after order, got %d", stock)
	}
}

func TestOrderAPI_InsufficientStock(t *testing.T) {
	app, db := newApp(t)
	seedAPIFixtures(t, db)

	resp, err := app.Test(jsonReq(t, "POST", "/api/v1/orders", "sid-user", map[string]any{
		"items":            []map[string]any{{"product_id": "gbc-001", "qty": 50}},
		"shipping_address": "12 Elm St",
	}), -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", resp.StatusCode)
	}
	var body struct {
		Code string `json:"code"`
	}
	decodeBody(t, resp, &body)
	if body.Code != "INSUFFICIENT_STOCK" {
		t.Fatalf("want INSUFFICIENT_STOCK, got %q", body.Code)
	}

	var stock int
	if err := db.Get(&stock, `SELECT stock FROM products WHERE id = 'gbc-001'`); err != nil {
		t.Fatal(err)
	}
	if stock != 6 {
		t.Fatalf("failed order must not touch stock, got %d", stock)
	}
}

func TestCouponAPI_ValidatePreview(t *testing.T) {
	app, db := newApp(t)
	seedAPIFixtures(t, db)

	resp, err := app.Test(jsonReq(t, "POST", "/api/v1/coupons/validate", "sid-user", map[string]any{
		"code": "SAVE10", "total": "500000",
	}), -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	var body struct {
		Valid    bool   `json:"valid"`
		Discount string `json:"discount"`
		Total    string `json:"total"`
	}
	decodeBody(t, resp, &body)
	if !body.Valid || body.Discount != "50000" || body.Total != "450000" {
		t.Fatalf("unexpected preview: %+v", body)
	}

	// a preview never charges usage
	var used int
	if err := db.Get(&used, `SELECT used_count FROM coupons WHERE code = 'SAVE10'`); err != nil {
		t.Fatal(err)
	}
	if used != 0 {
		t.Fatalf("preview charged usage: %d", used)
	}
}

func TestStockAPI_AdminAdjust(t *testing.T) {
	app, db := newApp(t)
	seedAPIFixtures(t, db)

	resp, err := app.Test(jsonReq(t, "PATCH", "/api/v1/products/gbc-001/stock", "sid-admin", map[string]any{
		"qty": 4, "direction": "increase",
	}), -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	var body struct {
		Stock int `json:"stock"`
	}
	decodeBody(t, resp, &body)
	if body.Stock != 10 {
		t.Fatalf("want stock 10, got %d", body.Stock)
	}

	// draining below zero is refused in one statement
	resp, err = app.Test(jsonReq(t, "PATCH", "/api/v1/products/gbc-001/stock", "sid-admin", map[string]any{
		"qty": 99, "direction": "decrease",
	}), -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", resp.StatusCode)
	}
	var stock int
	if err := db.Get(&stock, `SELECT stock FROM products WHERE id = 'gbc-001'`); err != nil {
		t.Fatal(err)
	}
	if stock != 10 {
		t.Fatalf("refused adjustment must leave stock intact, got %d", stock)
	}
}
