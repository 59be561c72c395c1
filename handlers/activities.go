package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	dbmodels "github.com/komunitas-muda/backoffice/database/models"
	"github.com/komunitas-muda/backoffice/models"
	"github.com/komunitas-muda/backoffice/services"
	"github.com/komunitas-muda/backoffice/utils"
)

func ActivitiesList(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, limit, offset := parsePagination(c)
		publishedOnly := c.QueryBool("published", false)

		activities, total, err := app.Activities.List(c.Context(), publishedOnly, limit, offset)
		if err != nil {
			return utils.SendInternalServerError(c, err.Error())
		}
		return utils.SendSuccess(c, models.MsgGetDataSuccess,
			models.NewPaginatedData(activities, page, limit, total))
	}
}

func ActivitiesDetail(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, err.Error())
		}

		activity, err := app.Activities.GetByID(c.Context(), id)
		if err != nil {
			return sendRepoError(c, err, models.MsgActivityNotFound)
		}
		return utils.SendSuccess(c, models.MsgGetDataSuccess, activity)
	}
}

func ActivitiesCreate(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.ActivityRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, "invalid request body")
		}
		if details := utils.ValidateStruct(&req); details != nil {
			return utils.SendValidationErrors(c, details)
		}

		activity := activityFromRequest(&req)
		if err := app.Activities.Create(c.Context(), activity); err != nil {
			return sendRepoError(c, err, models.MsgActivityNotFound)
		}
		return utils.SendCreated(c, models.MsgCreateDataSuccess, activity)
	}
}

func ActivitiesUpdate(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, err.Error())
		}

		var req models.ActivityRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, "invalid request body")
		}
		if details := utils.ValidateStruct(&req); details != nil {
			return utils.SendValidationErrors(c, details)
		}

		existing, err := app.Activities.GetByID(c.Context(), id)
		if err != nil {
			return sendRepoError(c, err, models.MsgActivityNotFound)
		}

		activity := activityFromRequest(&req)
		activity.ID = existing.ID
		activity.CreatedAt = existing.CreatedAt

		if err := app.Activities.Update(c.Context(), activity); err != nil {
			return sendRepoError(c, err, models.MsgActivityNotFound)
		}
		return utils.SendSuccess(c, models.MsgUpdateDataSuccess, activity)
	}
}

func ActivitiesDelete(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, err.Error())
		}

		affected, err := app.Activities.Delete(c.Context(), id)
		if err != nil {
			return utils.SendInternalServerError(c, err.Error())
		}
		if affected == 0 {
			return utils.SendNotFound(c, models.MsgActivityNotFound, "activity not found")
		}
		return utils.SendAffectedRows(c, models.MsgDeleteDataSuccess, affected)
	}
}

// ActivitiesUploadImage stores an activity image and appends its URL.
func ActivitiesUploadImage(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, err.Error())
		}

		activity, err := app.Activities.GetByID(c.Context(), id)
		if err != nil {
			return sendRepoError(c, err, models.MsgActivityNotFound)
		}

		file, err := c.FormFile("image")
		if err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, "image file is required")
		}
		if err := utils.ValidateImageUpload(file); err != nil {
			return utils.SendBadRequest(c, models.MsgValidationError, err.Error())
		}

		data, err := readMultipartFile(file)
		if err != nil {
			return utils.SendInternalServerError(c, err.Error())
		}

		url, err := app.Storage.Upload(c.Context(), services.StorageFolderActivityImages,
			file.Filename, file.Header.Get("Content-Type"), data)
		if err != nil {
			return utils.SendInternalServerError(c, err.Error())
		}

		activity.Images = append(activity.Images, url)
		if err := app.Activities.Update(c.Context(), activity); err != nil {
			return sendRepoError(c, err, models.MsgActivityNotFound)
		}
		return utils.SendSuccess(c, models.MsgUpdateDataSuccess, fiber.Map{"url": url})
	}
}

// ActivitiesExportRegistrations streams the registration sheet as CSV.
func ActivitiesExportRegistrations(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, err.Error())
		}

		if _, err := app.Activities.GetByID(c.Context(), id); err != nil {
			return sendRepoError(c, err, models.MsgActivityNotFound)
		}

		data, err := app.Exports.RegistrationsCSV(c.Context(), id)
		if err != nil {
			return utils.SendInternalServerError(c, err.Error())
		}

		filename := fmt.Sprintf("registrations-%d-%s.csv", id, time.Now().Format("20060102"))
		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
		return c.Send(data)
	}
}

func activityFromRequest(req *models.ActivityRequest) *dbmodels.Activity {
	activity := &dbmodels.Activity{
		Name:             req.Name,
		Slug:             req.Slug,
		Description:      req.Description,
		ActivityType:     req.ActivityType,
		Category:         req.Category,
		MinimumLevel:     req.MinimumLevel,
		Badge:            req.Badge,
		IsPublished:      req.IsPublished,
		Images:           req.Images,
		AdditionalConfig: req.AdditionalConfig,
	}
	if req.ActivityStart != nil {
		activity.ActivityStart = *req.ActivityStart
	}
	if req.ActivityEnd != nil {
		activity.ActivityEnd = *req.ActivityEnd
	}
	if req.RegistrationStart != nil {
		activity.RegistrationStart = *req.RegistrationStart
	}
	if req.RegistrationEnd != nil {
		activity.RegistrationEnd = *req.RegistrationEnd
	}
	if req.SelectionStart != nil {
		activity.SelectionStart = *req.SelectionStart
	}
	if req.SelectionEnd != nil {
		activity.SelectionEnd = *req.SelectionEnd
	}
	return activity
}
