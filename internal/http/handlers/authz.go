package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"shopfront/internal/apperr"
	"shopfront/internal/domain"
	applog "shopfront/internal/log"
	"shopfront/internal/services"
)

// SessionID extracts the caller's session token from the sid cookie or
// an Authorization: Bearer header.
func SessionID(c *fiber.Ctx) string {
	if sid := c.Cookies("sid"); sid != "" {
		return sid
	}
	auth := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return ""
}

func RequireUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := SessionID(c)
		if sid == "" {
			return fail(c, "auth.missing", apperr.ErrUnauthorized)
		}
		u, err := auth.CurrentUser(sid)
		if err != nil || u == nil {
			return fail(c, "auth.invalid", apperr.ErrUnauthorized)
		}
		c.Locals("user", u)
		return c.Next()
	}
}

func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := SessionID(c)
		if sid == "" {
			return fail(c, "auth.missing", apperr.ErrUnauthorized)
		}
		u, err := auth.CurrentUser(sid)
		if err != nil || u == nil {
			return fail(c, "auth.invalid", apperr.ErrUnauthorized)
		}
		if u.Role != "ADMIN" {
			applog.Security(c, "access.denied.admin", map[string]any{"user_id": u.ID})
			return fail(c, "auth.forbidden", apperr.ErrForbidden)
		}
		c.Locals("user", u)
		return c.Next()
	}
}

// currentUser returns the user placed by the auth guards.
func currentUser(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals("user").(*domain.User)
	return u
}
