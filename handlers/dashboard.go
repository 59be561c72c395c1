package handlers

import (
	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"

	dbmodels "github.com/komunitas-muda/backoffice/database/models"
	"github.com/komunitas-muda/backoffice/models"
	"github.com/komunitas-muda/backoffice/utils"
)

// DashboardStats returns the admin landing-page counters. The counts are
// independent queries, so they run concurrently.
func DashboardStats(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var (
			memberCount    int
			activityCount  int
			clubCount      int
			pendingReviews int
			approvedCount  int
			counselingOpen int
		)

		g, ctx := errgroup.WithContext(c.Context())
		g.Go(func() error {
			var err error
			memberCount, err = app.Members.Count(ctx)
			return err
		})
		g.Go(func() error {
			var err error
			activityCount, err = app.Activities.Count(ctx)
			return err
		})
		g.Go(func() error {
			var err error
			clubCount, err = app.Clubs.Count(ctx)
			return err
		})
		g.Go(func() error {
			var err error
			pendingReviews, err = app.Achievements.CountByStatus(ctx, dbmodels.AchievementStatusPending)
			return err
		})
		g.Go(func() error {
			var err error
			approvedCount, err = app.Achievements.CountByStatus(ctx, dbmodels.AchievementStatusApproved)
			return err
		})
		g.Go(func() error {
			var err error
			counselingOpen, err = app.RuangCurhats.Count(ctx)
			return err
		})
		if err := g.Wait(); err != nil {
			return utils.SendInternalServerError(c, err.Error())
		}

		return utils.SendSuccess(c, models.MsgGetDataSuccess, fiber.Map{
			"members":               memberCount,
			"activities":            activityCount,
			"clubs":                 clubCount,
			"pending_achievements":  pendingReviews,
			"approved_achievements": approvedCount,
			"counseling_requests":   counselingOpen,
		})
	}
}
