package handlers

import (
	"github.com/gofiber/fiber/v2"

	dbmodels "github.com/komunitas-muda/backoffice/database/models"
	"github.com/komunitas-muda/backoffice/models"
	"github.com/komunitas-muda/backoffice/utils"
)

func ClubRegistrationsList(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		clubID, err := parseIDParam(c, "id")
		if err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, err.Error())
		}

		page, limit, offset := parsePagination(c)
		status := c.Query("status")

		registrations, total, err := app.ClubRegistrations.ListByClub(c.Context(), clubID, status, limit, offset)
		if err != nil {
			return utils.SendInternalServerError(c, err.Error())
		}
		return utils.SendSuccess(c, models.MsgGetDataSuccess,
			models.NewPaginatedData(registrations, page, limit, total))
	}
}

func ClubRegistrationsCreate(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		clubID, err := parseIDParam(c, "id")
		if err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, err.Error())
		}

		var req models.CreateClubRegistrationRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, "invalid request body")
		}
		if details := utils.ValidateStruct(&req); details != nil {
			return utils.SendValidationErrors(c, details)
		}

		if _, err := app.Clubs.GetByID(c.Context(), clubID); err != nil {
			return sendRepoError(c, err, models.MsgClubNotFound)
		}

		registration := &dbmodels.ClubRegistration{
			ClubID:         clubID,
			MemberID:       req.MemberID,
			AdditionalData: req.AdditionalData,
		}
		if err := app.ClubRegistrations.Create(c.Context(), registration); err != nil {
			return sendRepoError(c, err, models.MsgClubNotFound)
		}
		return utils.SendCreated(c, models.MsgCreateDataSuccess, registration)
	}
}

func ClubRegistrationsDetail(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		registrationID, err := parseIDParam(c, "registrationId")
		if err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, err.Error())
		}

		registration, err := app.ClubRegistrations.GetByID(c.Context(), registrationID)
		if err != nil {
			return sendRepoError(c, err, models.MsgNoRegistrationsFound)
		}
		return utils.SendSuccess(c, models.MsgGetDataSuccess, registration)
	}
}

func ClubRegistrationsUpdateStatus(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		registrationID, err := parseIDParam(c, "registrationId")
		if err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, err.Error())
		}

		var req models.UpdateClubRegistrationStatusRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, "invalid request body")
		}
		if details := utils.ValidateStruct(&req); details != nil {
			return utils.SendValidationErrors(c, details)
		}

		affected, err := app.ClubRegistrations.UpdateStatus(c.Context(), registrationID, req.Status)
		if err != nil {
			return utils.SendInternalServerError(c, err.Error())
		}
		if affected == 0 {
			return utils.SendNotFound(c, models.MsgNoRegistrationsFound, "club registration not found")
		}
		return utils.SendAffectedRows(c, models.MsgUpdateDataSuccess, affected)
	}
}

// ClubRegistrationsBulkUpdateStatus updates the status of many club
// registrations at once.
func ClubRegistrationsBulkUpdateStatus(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.BulkUpdateClubRegistrationStatusRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, "invalid request body")
		}
		if details := utils.ValidateStruct(&req); details != nil {
			return utils.SendValidationErrors(c, details)
		}

		affected, err := app.ClubRegistrations.UpdateStatusByIDs(c.Context(), req.RegistrationIDs, req.Status)
		if err != nil {
			return utils.SendInternalServerError(c, err.Error())
		}
		if affected == 0 {
			return utils.SendNotFound(c, models.MsgNoRegistrationsFound, "no club registrations matched")
		}
		return utils.SendAffectedRows(c, models.MsgUpdateDataSuccess, affected)
	}
}

func ClubRegistrationsDelete(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		registrationID, err := parseIDParam(c, "registrationId")
		if err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, err.Error())
		}

		affected, err := app.ClubRegistrations.Delete(c.Context(), registrationID)
		if err != nil {
			return utils.SendInternalServerError(c, err.Error())
		}
		if affected == 0 {
			return utils.SendNotFound(c, models.MsgNoRegistrationsFound, "club registration not found")
		}
		return utils.SendAffectedRows(c, models.MsgDeleteDataSuccess, affected)
	}
}
