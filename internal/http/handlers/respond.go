package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"shopfront/internal/apperr"
	applog "shopfront/internal/log"
)

// fail maps a business error to its JSON envelope. Unclassified errors
// become a 500 with the detail kept out of the response body.
func fail(c *fiber.Ctx, action string, err error) error {
	status := apperr.Status(err)
	code := apperr.Code(err)
	if status >= fiber.StatusInternalServerError {
		applog.Error(c, action, err, nil)
		return c.Status(status).JSON(fiber.Map{"error": "something went wrong, please try again", "code": code})
	}
	var e *apperr.Error
	msg := "request failed"
	if errors.As(err, &e) {
		msg = e.Message
	}
	return c.Status(status).JSON(fiber.Map{"error": msg, "code": code})
}
