package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/komunitas-muda/backoffice/models"
	"github.com/komunitas-muda/backoffice/utils"
)

const defaultLeaderboardSize = 50

// LeaderboardsMonthly lists the top scorers of one month. The month
// query parameter takes YYYY-MM and defaults to the current month.
func LeaderboardsMonthly(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		month := time.Now().UTC()
		if raw := c.Query("month"); raw != "" {
			parsed, err := time.Parse("2006-01", raw)
			if err != nil {
				return utils.SendBadRequest(c, models.MsgGeneralError, "month must be formatted YYYY-MM")
			}
			month = parsed
		}
		bucket := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)

		limit := c.QueryInt("limit", defaultLeaderboardSize)
		if limit < 1 || limit > 200 {
			limit = defaultLeaderboardSize
		}

		rows, err := app.Leaderboards.TopMonthly(c.Context(), bucket, limit)
		if err != nil {
			return utils.SendInternalServerError(c, err.Error())
		}
		return utils.SendSuccess(c, models.MsgGetDataSuccess, fiber.Map{
			"month": bucket.Format("2006-01"),
			"rows":  rows,
		})
	}
}

func LeaderboardsLifetime(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", defaultLeaderboardSize)
		if limit < 1 || limit > 200 {
			limit = defaultLeaderboardSize
		}

		rows, err := app.Leaderboards.TopLifetime(c.Context(), limit)
		if err != nil {
			return utils.SendInternalServerError(c, err.Error())
		}
		return utils.SendSuccess(c, models.MsgGetDataSuccess, rows)
	}
}
