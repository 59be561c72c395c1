package middleware

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/komunitas-muda/backoffice/database/repositories"
	"github.com/komunitas-muda/backoffice/models"
)

// CustomErrorHandler handles application errors
func CustomErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := models.MsgGeneralError

	var fiberErr *fiber.Error
	var nfe *repositories.NotFoundError
	switch {
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
		if code != fiber.StatusInternalServerError {
			message = fiberErr.Message
		}
	case errors.As(err, &nfe):
		code = fiber.StatusNotFound
		message = models.MsgDataNotFound
	}

	return c.Status(code).JSON(models.NewErrorResponse(message, fmt.Sprintf("%v", err)))
}

// SecurityHeaders adds security headers to responses
func SecurityHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Set("Permissions-Policy", "geolocation=(), microphone=(), camera=()")
		return c.Next()
	}
}
