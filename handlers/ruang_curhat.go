package handlers

import (
	"github.com/gofiber/fiber/v2"

	dbmodels "github.com/komunitas-muda/backoffice/database/models"
	"github.com/komunitas-muda/backoffice/database/repositories"
	"github.com/komunitas-muda/backoffice/models"
	"github.com/komunitas-muda/backoffice/utils"
)

func RuangCurhatList(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, limit, offset := parsePagination(c)

		filter := repositories.RuangCurhatFilter{
			Status:    c.Query("status"),
			Name:      c.Query("name"),
			Gender:    c.Query("gender"),
			AdminName: c.Query("admin_name"),
			Limit:     limit,
			Offset:    offset,
		}

		requests, total, err := app.RuangCurhats.List(c.Context(), filter)
		if err != nil {
			return utils.SendInternalServerError(c, err.Error())
		}
		return utils.SendSuccess(c, models.MsgGetDataSuccess,
			models.NewPaginatedData(requests, page, limit, total))
	}
}

func RuangCurhatDetail(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, err.Error())
		}

		request, err := app.RuangCurhats.GetByID(c.Context(), id)
		if err != nil {
			return sendRepoError(c, err, models.MsgDataNotFound)
		}
		return utils.SendSuccess(c, models.MsgGetDataSuccess, request)
	}
}

// RuangCurhatUpdate merges the provided lifecycle fields onto the
// request; absent fields keep their stored values.
func RuangCurhatUpdate(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, err.Error())
		}

		var req models.UpdateRuangCurhatRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, "invalid request body")
		}
		if details := utils.ValidateStruct(&req); details != nil {
			return utils.SendValidationErrors(c, details)
		}

		request, err := app.RuangCurhats.GetByID(c.Context(), id)
		if err != nil {
			return sendRepoError(c, err, models.MsgDataNotFound)
		}

		applyRuangCurhatUpdate(request, &req)

		if err := app.RuangCurhats.Update(c.Context(), request); err != nil {
			return sendRepoError(c, err, models.MsgDataNotFound)
		}
		return utils.SendSuccess(c, models.MsgUpdateDataSuccess, request)
	}
}

func applyRuangCurhatUpdate(request *dbmodels.RuangCurhat, req *models.UpdateRuangCurhatRequest) {
	if req.Status != "" {
		request.Status = req.Status
	}
	if req.AdminUserID != nil {
		request.AdminUserID = *req.AdminUserID
	}
	if req.HandlingTechnic != "" {
		request.HandlingTechnic = req.HandlingTechnic
	}
}
