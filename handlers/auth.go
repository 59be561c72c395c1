package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/komunitas-muda/backoffice/middleware"
	"github.com/komunitas-muda/backoffice/models"
	"github.com/komunitas-muda/backoffice/services"
	"github.com/komunitas-muda/backoffice/utils"
)

// Login authenticates an admin user and returns a bearer token.
func Login(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.LoginRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, "invalid request body")
		}
		if details := utils.ValidateStruct(&req); details != nil {
			return utils.SendValidationErrors(c, details)
		}

		token, admin, err := app.Auth.Login(c.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, services.ErrInvalidCredentials) {
				return utils.SendError(c, fiber.StatusUnauthorized, models.MsgInvalidLogin, "invalid email or password")
			}
			return utils.SendInternalServerError(c, err.Error())
		}

		return utils.SendSuccess(c, models.MsgLoginSuccess, fiber.Map{
			"token": token,
			"user":  admin,
		})
	}
}

// Logout acknowledges a sign-out. Tokens are stateless, so the client
// discards the token; the endpoint exists for audit logging.
func Logout(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return utils.SendSuccess(c, models.MsgLogoutSuccess, nil)
	}
}

// Me returns the authenticated admin's account.
func Me(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := middleware.ClaimsFromContext(c)
		if claims == nil {
			return utils.SendUnauthorized(c, "not authenticated")
		}

		admin, err := app.AdminUsers.GetByID(c.Context(), claims.UserID)
		if err != nil {
			return sendRepoError(c, err, models.MsgDataNotFound)
		}
		return utils.SendSuccess(c, models.MsgGetDataSuccess, admin)
	}
}
