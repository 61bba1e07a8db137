package handlers_test

import (
	"net/http"
	"testing"
)

func TestRegisterLoginMe(t *testing.T) {
	app, _ := newApp(t)

	// register
	resp, err := app.Test(jsonReq(t, "POST", "/api/v1/auth/register", "", map[string]any{
		"email": "carol@shopfront.test", "name": "Carol", "password": "Passw0rd!",
	}), -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: want 201, got %d", resp.StatusCode)
	}

	// duplicate email -> conflict
	resp, err = app.Test(jsonReq(t, "POST", "/api/v1/auth/register", "", map[string]any{
		"email": "carol@shopfront.test", "name": "Carol", "password": "Passw0rd!",
	}), -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate register: want 409, got %d", resp.StatusCode)
	}

	// login
	resp, err = app.Test(jsonReq(t, "POST", "/api/v1/auth/login", "", map[string]any{
		"email": "carol@shopfront.test", "password": "Passw0rd!",
	}), -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: want 200, got %d", resp.StatusCode)
	}
	var loginBody struct {
		Session string `json:"session"`
	}
	decodeBody(t, resp, &loginBody)
	if loginBody.Session == "" {
		t.Fatal("login returned no session token")
	}

	// me with the bearer token
	resp, err = app.Test(jsonReq(t, "GET", "/api/v1/auth/me", loginBody.Session, nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("me: want 200, got %d", resp.StatusCode)
	}
	var me struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	decodeBody(t, resp, &me)
	if me.Email != "carol@shopfront.test" || me.Role != "USER" {
		t.Fatalf("unexpected me payload: %+v", me)
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	app, db := newApp(t)
	seedAPIFixtures(t, db)

	resp, err := app.Test(jsonReq(t, "POST", "/api/v1/auth/login", "", map[string]any{
		"email": "user@shopfront.test", "password": "WrongPass1",
	}), -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("want 401, got %d", resp.StatusCode)
	}
}

func TestMeRequiresSession(t *testing.T) {
	app, _ := newApp(t)

	resp, err := app.Test(jsonReq(t, "GET", "/api/v1/auth/me", "", nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("want 401, got %d", resp.StatusCode)
	}
	var body struct {
		Code string `json:"code"`
	}
	decodeBody(t, resp, &body)
	if body.Code != "UNAUTHORIZED" {
		t.Fatalf("want UNAUTHORIZED code, got %q", body.Code)
	}
}
