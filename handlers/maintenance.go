package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/komunitas-muda/backoffice/models"
	"github.com/komunitas-muda/backoffice/utils"
)

// MaintenanceSweep runs the club housekeeping pass on demand.
func MaintenanceSweep(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		result, err := app.Maintenance.Sweep(c.Context())
		if err != nil {
			return utils.SendInternalServerError(c, err.Error())
		}
		return utils.SendSuccess(c, models.MsgUpdateDataSuccess, result)
	}
}
