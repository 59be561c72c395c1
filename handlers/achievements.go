package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	dbmodels "github.com/komunitas-muda/backoffice/database/models"
	"github.com/komunitas-muda/backoffice/database/repositories"
	"github.com/komunitas-muda/backoffice/middleware"
	"github.com/komunitas-muda/backoffice/models"
	"github.com/komunitas-muda/backoffice/services"
	"github.com/komunitas-muda/backoffice/utils"
)

// achievementFilter builds the listing filter from query parameters.
func achievementFilter(c *fiber.Ctx) repositories.AchievementFilter {
	var filter repositories.AchievementFilter
	if raw := c.Query("status"); raw != "" {
		if status, err := strconv.Atoi(raw); err == nil {
			filter.Status = &status
		}
	}
	if raw := c.Query("type"); raw != "" {
		if achievementType, err := strconv.Atoi(raw); err == nil {
			filter.Type = &achievementType
		}
	}
	if raw := c.Query("user_id"); raw != "" {
		if userID, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filter.UserID = &userID
		}
	}
	return filter
}

func AchievementsList(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, limit, offset := parsePagination(c)

		filter := achievementFilter(c)
		filter.Limit = limit
		filter.Offset = offset

		achievements, total, err := app.Achievements.List(c.Context(), filter)
		if err != nil {
			return utils.SendInternalServerError(c, err.Error())
		}
		return utils.SendSuccess(c, models.MsgGetDataSuccess,
			models.NewPaginatedData(achievements, page, limit, total))
	}
}

func AchievementsDetail(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, err.Error())
		}

		achievement, err := app.Achievements.GetByID(c.Context(), id)
		if err != nil {
			return sendRepoError(c, err, models.MsgDataNotFound)
		}
		return utils.SendSuccess(c, models.MsgGetDataSuccess, achievement)
	}
}

func AchievementsCreate(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateAchievementRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, "invalid request body")
		}
		if details := utils.ValidateStruct(&req); details != nil {
			return utils.SendValidationErrors(c, details)
		}

		achievement := &dbmodels.Achievement{
			UserID:          req.UserID,
			Name:            req.Name,
			Description:     req.Description,
			AchievementDate: req.AchievementDate,
			Type:            req.Type,
			Score:           req.Score,
			Proof:           req.Proof,
		}
		if err := app.Achievements.Create(c.Context(), achievement); err != nil {
			return sendRepoError(c, err, models.MsgDataNotFound)
		}
		return utils.SendCreated(c, models.MsgCreateDataSuccess, achievement)
	}
}

// AchievementsUpdate edits submission fields. A status change to
// approved records the acting admin as approver; leaderboard aggregation
// stays with the review endpoint.
func AchievementsUpdate(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, err.Error())
		}

		var req models.UpdateAchievementRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, "invalid request body")
		}
		if details := utils.ValidateStruct(&req); details != nil {
			return utils.SendValidationErrors(c, details)
		}

		achievement, err := app.Achievements.GetByID(c.Context(), id)
		if err != nil {
			return sendRepoError(c, err, models.MsgDataNotFound)
		}

		achievement.Name = req.Name
		achievement.Description = req.Description
		achievement.AchievementDate = req.AchievementDate
		achievement.Type = req.Type
		achievement.Score = req.Score
		achievement.Proof = req.Proof

		if req.Status != nil {
			if *req.Status == dbmodels.AchievementStatusApproved &&
				achievement.Status != dbmodels.AchievementStatusApproved {
				claims := middleware.ClaimsFromContext(c)
				if claims == nil {
					return utils.SendUnauthorized(c, "not authenticated")
				}
				achievement.ApproverID = claims.UserID
				achievement.ApprovedAt = time.Now()
			}
			achievement.Status = *req.Status
		}

		if err := app.Achievements.Update(c.Context(), achievement); err != nil {
			return sendRepoError(c, err, models.MsgDataNotFound)
		}
		return utils.SendSuccess(c, models.MsgUpdateDataSuccess, achievement)
	}
}

// AchievementsReview approves or rejects a submission. Approval folds
// the score into the monthly and lifetime leaderboards in the same
// transaction; the acting admin from the token is recorded as approver.
func AchievementsReview(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, err.Error())
		}

		claims := middleware.ClaimsFromContext(c)
		if claims == nil {
			return utils.SendUnauthorized(c, "not authenticated")
		}

		var req models.ReviewAchievementRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, "invalid request body")
		}
		if details := utils.ValidateStruct(&req); details != nil {
			return utils.SendValidationErrors(c, details)
		}

		achievement, err := app.Scoring.Review(c.Context(), id, claims.UserID, services.ReviewInput{
			Status: req.Status,
			Score:  req.Score,
			Remark: req.Remark,
		})
		if err != nil {
			if errors.Is(err, services.ErrInvalidReviewStatus) {
				return utils.SendError(c, fiber.StatusUnprocessableEntity, models.MsgValidationError, err.Error())
			}
			return sendRepoError(c, err, models.MsgDataNotFound)
		}

		message := models.MsgAchievementApproved
		if achievement.Status == dbmodels.AchievementStatusRejected {
			message = models.MsgAchievementRejected
		}
		return utils.SendSuccess(c, message, achievement)
	}
}

func AchievementsDelete(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, err.Error())
		}

		affected, err := app.Achievements.Delete(c.Context(), id)
		if err != nil {
			return utils.SendInternalServerError(c, err.Error())
		}
		if affected == 0 {
			return utils.SendNotFound(c, models.MsgDataNotFound, "achievement not found")
		}
		return utils.SendAffectedRows(c, models.MsgDeleteDataSuccess, affected)
	}
}

// AchievementsExport streams the achievement sheet as CSV.
func AchievementsExport(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var status *int
		if raw := c.Query("status"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				return utils.SendBadRequest(c, models.MsgGeneralError, "invalid status filter")
			}
			status = &parsed
		}

		data, err := app.Exports.AchievementsCSV(c.Context(), status)
		if err != nil {
			return utils.SendInternalServerError(c, err.Error())
		}

		filename := fmt.Sprintf("achievements-%s.csv", time.Now().Format("20060102"))
		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
		return c.Send(data)
	}
}
