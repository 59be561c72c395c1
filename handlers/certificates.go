package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/komunitas-muda/backoffice/models"
	"github.com/komunitas-muda/backoffice/services"
	"github.com/komunitas-muda/backoffice/utils"
)

// CertificatesGenerate assembles certificate payloads for every
// participant of an activity holding the requested status.
func CertificatesGenerate(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.GenerateCertificatesRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, "invalid request body")
		}
		if details := utils.ValidateStruct(&req); details != nil {
			return utils.SendValidationErrors(c, details)
		}

		certificates, err := app.Certificates.ForActivity(c.Context(), req.ActivityID, req.Status)
		if err != nil {
			if errors.Is(err, services.ErrNoCertificateTemplate) {
				return utils.SendError(c, fiber.StatusConflict, models.MsgCertificateNotAvailable, err.Error())
			}
			return sendRepoError(c, err, models.MsgActivityNotFound)
		}
		return utils.SendSuccess(c, models.MsgGetDataSuccess, certificates)
	}
}
