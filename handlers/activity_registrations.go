package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	dbmodels "github.com/komunitas-muda/backoffice/database/models"
	"github.com/komunitas-muda/backoffice/models"
	"github.com/komunitas-muda/backoffice/services"
	"github.com/komunitas-muda/backoffice/utils"
)

func RegistrationsList(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		activityID, err := parseIDParam(c, "id")
		if err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, err.Error())
		}

		page, limit, offset := parsePagination(c)
		status := c.Query("status")

		registrations, total, err := app.Registrations.ListByActivity(c.Context(), activityID, status, limit, offset)
		if err != nil {
			return utils.SendInternalServerError(c, err.Error())
		}
		return utils.SendSuccess(c, models.MsgGetDataSuccess,
			models.NewPaginatedData(registrations, page, limit, total))
	}
}

func RegistrationsCreate(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		activityID, err := parseIDParam(c, "id")
		if err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, err.Error())
		}

		var req models.CreateRegistrationRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, "invalid request body")
		}
		if details := utils.ValidateStruct(&req); details != nil {
			return utils.SendValidationErrors(c, details)
		}

		activity, err := app.Activities.GetByID(c.Context(), activityID)
		if err != nil {
			return sendRepoError(c, err, models.MsgActivityNotFound)
		}

		member, err := app.Members.GetByID(c.Context(), req.UserID)
		if err != nil {
			return sendRepoError(c, err, models.MsgNoUsersFound)
		}
		if member.Profile != nil && member.Profile.Level < activity.MinimumLevel {
			return utils.SendError(c, fiber.StatusForbidden, models.MsgUnmatchedLevel,
				"member level below activity minimum")
		}

		registration := &dbmodels.ActivityRegistration{
			UserID:              req.UserID,
			ActivityID:          activityID,
			QuestionnaireAnswer: req.QuestionnaireAnswer,
		}
		if err := app.Registrations.Create(c.Context(), registration); err != nil {
			return sendRepoError(c, err, models.MsgActivityNotFound)
		}
		return utils.SendCreated(c, models.MsgCreateDataSuccess, registration)
	}
}

// RegistrationsUpdateStatus bulk-updates registration statuses by ID
// list; the activity is resolved from the first registration. A
// graduation from a level-conferring activity type also upgrades member
// levels and grants the activity badge, atomically.
func RegistrationsUpdateStatus(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.UpdateRegistrationStatusRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, "invalid request body")
		}
		if details := utils.ValidateStruct(&req); details != nil {
			return utils.SendValidationErrors(c, details)
		}

		affected, err := app.Progression.UpdateStatusByIDs(c.Context(), req.RegistrationIDs, req.Status)
		if err != nil {
			return sendProgressionError(c, err)
		}
		return utils.SendAffectedRows(c, models.MsgUpdateDataSuccess, affected)
	}
}

// RegistrationsUpdateStatusFiltered rewrites the status of every
// registration under the activity matching the optional registrant-name
// and current-status filters. A plain scoped update: no level or badge
// side effects, unlike the by-ID and by-email variants.
func RegistrationsUpdateStatusFiltered(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		activityID, err := parseIDParam(c, "id")
		if err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, err.Error())
		}

		var req models.FilterUpdateRegistrationStatusRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, "invalid request body")
		}
		if details := utils.ValidateStruct(&req); details != nil {
			return utils.SendValidationErrors(c, details)
		}

		affected, err := app.Registrations.UpdateStatusByFilter(c.Context(), activityID, req.Name, req.CurrentStatus, req.NewStatus)
		if err != nil {
			return utils.SendInternalServerError(c, err.Error())
		}
		return utils.SendAffectedRows(c, models.MsgUpdateDataSuccess, affected)
	}
}

// RegistrationsUpdateStatusByEmails bulk-updates statuses for the
// members matching the given emails.
func RegistrationsUpdateStatusByEmails(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		activityID, err := parseIDParam(c, "id")
		if err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, err.Error())
		}

		var req models.UpdateRegistrationStatusByEmailRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, "invalid request body")
		}
		if details := utils.ValidateStruct(&req); details != nil {
			return utils.SendValidationErrors(c, details)
		}

		affected, err := app.Progression.UpdateStatusByEmails(c.Context(), activityID, req.Emails, req.Status)
		if err != nil {
			return sendProgressionError(c, err)
		}
		return utils.SendAffectedRows(c, models.MsgUpdateDataSuccess, affected)
	}
}

func RegistrationsDelete(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		registrationID, err := parseIDParam(c, "registrationId")
		if err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, err.Error())
		}

		affected, err := app.Registrations.Delete(c.Context(), registrationID)
		if err != nil {
			return utils.SendInternalServerError(c, err.Error())
		}
		if affected == 0 {
			return utils.SendNotFound(c, models.MsgNoRegistrationsFound, "registration not found")
		}
		return utils.SendAffectedRows(c, models.MsgDeleteDataSuccess, affected)
	}
}

// RegistrationsCertificate resolves the certificate payload of a
// graduated registration.
func RegistrationsCertificate(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		registrationID, err := parseIDParam(c, "registrationId")
		if err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, err.Error())
		}

		data, err := app.Certificates.ForRegistration(c.Context(), registrationID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrCertificateNotAvailable),
				errors.Is(err, services.ErrNoCertificateTemplate):
				return utils.SendError(c, fiber.StatusConflict, models.MsgCertificateNotAvailable, err.Error())
			default:
				return sendRepoError(c, err, models.MsgNoRegistrationsFound)
			}
		}
		return utils.SendSuccess(c, models.MsgGetDataSuccess, data)
	}
}

func sendProgressionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrNoRegistrationsFound):
		return utils.SendNotFound(c, models.MsgNoRegistrationsFound, err.Error())
	case errors.Is(err, services.ErrNoUsersFound):
		return utils.SendNotFound(c, models.MsgNoUsersFound, err.Error())
	case errors.Is(err, services.ErrUnmatchedLevel):
		return utils.SendError(c, fiber.StatusUnprocessableEntity, models.MsgUnmatchedLevel, err.Error())
	default:
		return sendRepoError(c, err, models.MsgActivityNotFound)
	}
}
