package handlers

import (
	"github.com/gofiber/fiber/v2"

	dbmodels "github.com/komunitas-muda/backoffice/database/models"
	"github.com/komunitas-muda/backoffice/models"
	"github.com/komunitas-muda/backoffice/utils"
)

func AdminUsersList(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		admins, err := app.AdminUsers.List(c.Context())
		if err != nil {
			return utils.SendInternalServerError(c, err.Error())
		}
		return utils.SendSuccess(c, models.MsgGetDataSuccess, admins)
	}
}

func AdminUsersCreate(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateAdminUserRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, "invalid request body")
		}
		if details := utils.ValidateStruct(&req); details != nil {
			return utils.SendValidationErrors(c, details)
		}

		admin := &dbmodels.AdminUser{
			Email: req.Email,
			Name:  req.Name,
			Role:  req.Role,
		}
		if admin.Role == "" {
			admin.Role = "admin"
		}

		if err := app.Auth.Register(c.Context(), admin, req.Password); err != nil {
			return sendRepoError(c, err, models.MsgDataNotFound)
		}
		return utils.SendCreated(c, models.MsgCreateDataSuccess, admin)
	}
}

func AdminUsersUpdatePassword(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, err.Error())
		}

		var req models.UpdateAdminPasswordRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, "invalid request body")
		}
		if details := utils.ValidateStruct(&req); details != nil {
			return utils.SendValidationErrors(c, details)
		}

		if err := app.Auth.ChangePassword(c.Context(), id, req.Password); err != nil {
			return sendRepoError(c, err, models.MsgDataNotFound)
		}
		return utils.SendSuccess(c, models.MsgUpdateDataSuccess, nil)
	}
}

func AdminUsersDelete(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, err.Error())
		}

		affected, err := app.AdminUsers.Delete(c.Context(), id)
		if err != nil {
			return utils.SendInternalServerError(c, err.Error())
		}
		if affected == 0 {
			return utils.SendNotFound(c, models.MsgDataNotFound, "admin user not found")
		}
		return utils.SendAffectedRows(c, models.MsgDeleteDataSuccess, affected)
	}
}
