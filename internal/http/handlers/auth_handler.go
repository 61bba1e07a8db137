package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"shopfront/internal/apperr"
	applog "shopfront/internal/log"
	"shopfront/internal/metrics"
	"shopfront/internal/services"
	"shopfront/internal/validate"
)

type AuthHandler struct {
	Auth *services.AuthService
}

func ensureSID(c *fiber.Ctx) string {
	sid := SessionID(c)
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false, // enable true behind TLS
		})
	}
	return sid
}

type registerReq struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"` // honored only on the admin endpoint
}

// Register creates a USER account. POST /api/v1/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, "auth.register", apperr.Validation("invalid request body"))
	}
	email, ok := validate.Email(req.Email)
	if !ok {
		return fail(c, "auth.register", apperr.Validation("invalid email"))
	}
	name, ok := validate.Name(req.Name)
	if !ok {
		return fail(c, "auth.register", apperr.Validation("name must be 1-100 characters"))
	}
	if !validate.Password(req.Password) {
		return fail(c, "auth.register", apperr.Validation("password must be 8-64 chars with upper, lower and digit"))
	}
	u, err := h.Auth.Register(email, name, req.Password)
	if err != nil {
		return fail(c, "auth.register", err)
	}
	applog.Audit(c, "auth.register", map[string]any{"user_id": u.ID})
	return c.Status(fiber.StatusCreated).JSON(u)
}

// RegisterAdmin creates an account with an explicit role; mounted
// behind the admin guard. POST /api/v1/admin/users
func (h *AuthHandler) RegisterAdmin(c *fiber.Ctx) error {
	var req registerReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, "admin.users.create", apperr.Validation("invalid request body"))
	}
	email, ok := validate.Email(req.Email)
	if !ok {
		return fail(c, "admin.users.create", apperr.Validation("invalid email"))
	}
	name, ok := validate.Name(req.Name)
	if !ok {
		return fail(c, "admin.users.create", apperr.Validation("name must be 1-100 characters"))
	}
	if !validate.Password(req.Password) {
		return fail(c, "admin.users.create", apperr.Validation("password must be 8-64 chars with upper, lower and digit"))
	}
	if req.Role == "" {
		req.Role = "USER"
	}
	u, err := h.Auth.RegisterWithRole(email, name, req.Password, req.Role)
	if err != nil {
		return fail(c, "admin.users.create", err)
	}
	applog.Audit(c, "admin.users.create", map[string]any{"user_id": u.ID, "role": u.Role})
	return c.Status(fiber.StatusCreated).JSON(u)
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and binds a session. POST /api/v1/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, "auth.login", apperr.Validation("invalid request body"))
	}
	email, ok := validate.Email(req.Email)
	if !ok {
		metrics.LoginFailuresTotal.Inc()
		applog.Security(c, "auth.login.fail", map[string]any{"reason": "bad_format"})
		return fail(c, "auth.login", services.ErrBadCreds)
	}
	sid := ensureSID(c)
	u, err := h.Auth.Login(sid, email, req.Password)
	if err != nil {
		metrics.LoginFailuresTotal.Inc()
		applog.Security(c, "auth.login.fail", map[string]any{"email": email})
		return fail(c, "auth.login", err)
	}
	applog.Audit(c, "auth.login.success", map[string]any{"user_id": u.ID})
	return c.JSON(fiber.Map{"user": u, "session": sid})
}

// Logout drops the session. POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := SessionID(c)
	if sid != "" {
		_ = h.Auth.Logout(sid)
	}
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	applog.Audit(c, "auth.logout", nil)
	return c.JSON(fiber.Map{"ok": true})
}

// Me returns the authenticated caller. GET /api/v1/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return c.JSON(currentUser(c))
}

// ListUsers shows all accounts. GET /api/v1/admin/users
func (h *AuthHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.Auth.AllUsers()
	if err != nil {
		return fail(c, "admin.users.list", err)
	}
	return c.JSON(users)
}
