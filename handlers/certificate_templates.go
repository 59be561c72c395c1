package handlers

import (
	"github.com/gofiber/fiber/v2"

	dbmodels "github.com/komunitas-muda/backoffice/database/models"
	"github.com/komunitas-muda/backoffice/models"
	"github.com/komunitas-muda/backoffice/services"
	"github.com/komunitas-muda/backoffice/utils"
)

func CertificateTemplatesList(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		activeOnly := c.QueryBool("active", false)
		templates, err := app.CertificateTemplates.List(c.Context(), activeOnly)
		if err != nil {
			return utils.SendInternalServerError(c, err.Error())
		}
		return utils.SendSuccess(c, models.MsgGetDataSuccess, templates)
	}
}

func CertificateTemplatesDetail(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, err.Error())
		}

		template, err := app.CertificateTemplates.GetByID(c.Context(), id)
		if err != nil {
			return sendRepoError(c, err, models.MsgDataNotFound)
		}
		return utils.SendSuccess(c, models.MsgGetDataSuccess, template)
	}
}

func CertificateTemplatesCreate(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CertificateTemplateRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, "invalid request body")
		}
		if details := utils.ValidateStruct(&req); details != nil {
			return utils.SendValidationErrors(c, details)
		}

		template := &dbmodels.CertificateTemplate{
			Name:            req.Name,
			BackgroundImage: req.BackgroundImage,
			TemplateData:    req.TemplateData,
			IsActive:        true,
		}
		if req.IsActive != nil {
			template.IsActive = *req.IsActive
		}

		if err := app.CertificateTemplates.Create(c.Context(), template); err != nil {
			return sendRepoError(c, err, models.MsgDataNotFound)
		}
		return utils.SendCreated(c, models.MsgCreateDataSuccess, template)
	}
}

func CertificateTemplatesUpdate(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, err.Error())
		}

		var req models.CertificateTemplateRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, "invalid request body")
		}
		if details := utils.ValidateStruct(&req); details != nil {
			return utils.SendValidationErrors(c, details)
		}

		template, err := app.CertificateTemplates.GetByID(c.Context(), id)
		if err != nil {
			return sendRepoError(c, err, models.MsgDataNotFound)
		}

		template.Name = req.Name
		if req.BackgroundImage != "" {
			template.BackgroundImage = req.BackgroundImage
		}
		if req.TemplateData != nil {
			template.TemplateData = req.TemplateData
		}
		if req.IsActive != nil {
			template.IsActive = *req.IsActive
		}

		if err := app.CertificateTemplates.Update(c.Context(), template); err != nil {
			return sendRepoError(c, err, models.MsgDataNotFound)
		}
		return utils.SendSuccess(c, models.MsgUpdateDataSuccess, template)
	}
}

func CertificateTemplatesDelete(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, err.Error())
		}

		affected, err := app.CertificateTemplates.Delete(c.Context(), id)
		if err != nil {
			return utils.SendInternalServerError(c, err.Error())
		}
		if affected == 0 {
			return utils.SendNotFound(c, models.MsgDataNotFound, "certificate template not found")
		}
		return utils.SendAffectedRows(c, models.MsgDeleteDataSuccess, affected)
	}
}

// CertificateTemplatesUploadBackground stores the template background
// image.
func CertificateTemplatesUploadBackground(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, err.Error())
		}

		template, err := app.CertificateTemplates.GetByID(c.Context(), id)
		if err != nil {
			return sendRepoError(c, err, models.MsgDataNotFound)
		}

		file, err := c.FormFile("background")
		if err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, "background file is required")
		}
		if err := utils.ValidateImageUpload(file); err != nil {
			return utils.SendBadRequest(c, models.MsgValidationError, err.Error())
		}

		data, err := readMultipartFile(file)
		if err != nil {
			return utils.SendInternalServerError(c, err.Error())
		}

		url, err := app.Storage.Upload(c.Context(), services.StorageFolderCertificates,
			file.Filename, file.Header.Get("Content-Type"), data)
		if err != nil {
			return utils.SendInternalServerError(c, err.Error())
		}

		if template.BackgroundImage != "" {
			_ = app.Storage.Delete(c.Context(), template.BackgroundImage)
		}

		template.BackgroundImage = url
		if err := app.CertificateTemplates.Update(c.Context(), template); err != nil {
			return sendRepoError(c, err, models.MsgDataNotFound)
		}
		return utils.SendSuccess(c, models.MsgUpdateDataSuccess, fiber.Map{"url": url})
	}
}
