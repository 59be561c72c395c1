package handlers

import (
	"github.com/gofiber/fiber/v2"

	dbmodels "github.com/komunitas-muda/backoffice/database/models"
	"github.com/komunitas-muda/backoffice/models"
	"github.com/komunitas-muda/backoffice/utils"
)

func CustomFormsList(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		forms, err := app.Forms.List(c.Context())
		if err != nil {
			return utils.SendInternalServerError(c, err.Error())
		}
		return utils.SendSuccess(c, models.MsgGetDataSuccess, forms)
	}
}

func CustomFormsDetail(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, err.Error())
		}

		form, err := app.Forms.ByID(c.Context(), id)
		if err != nil {
			return sendRepoError(c, err, models.MsgCustomFormNotFound)
		}
		return utils.SendSuccess(c, models.MsgGetDataSuccess, form)
	}
}

// CustomFormsByFeature resolves the active form attached to one feature,
// e.g. /custom-forms/feature/activity_registration/42.
func CustomFormsByFeature(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		featureType := c.Params("featureType")
		if featureType != dbmodels.FeatureActivityRegistration && featureType != dbmodels.FeatureClubRegistration {
			return utils.SendBadRequest(c, models.MsgGeneralError, "unknown feature type")
		}

		featureID, err := parseIDParam(c, "featureId")
		if err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, err.Error())
		}

		form, err := app.Forms.ByFeature(c.Context(), featureType, featureID)
		if err != nil {
			return sendRepoError(c, err, models.MsgCustomFormNotFound)
		}
		return utils.SendSuccess(c, models.MsgGetDataSuccess, form)
	}
}

// CustomFormsUnattached lists forms not yet bound to any feature.
func CustomFormsUnattached(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		forms, err := app.Forms.ListUnattached(c.Context())
		if err != nil {
			return utils.SendInternalServerError(c, err.Error())
		}
		return utils.SendSuccess(c, models.MsgGetDataSuccess, forms)
	}
}

// CustomFormsAvailableFeatures lists the activities or clubs that have
// no form attached yet, for the attach picker.
func CustomFormsAvailableFeatures(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		featureType := c.Params("featureType")
		if featureType != dbmodels.FeatureActivityRegistration && featureType != dbmodels.FeatureClubRegistration {
			return utils.SendBadRequest(c, models.MsgGeneralError, "unknown feature type")
		}

		forms, err := app.Forms.List(c.Context())
		if err != nil {
			return utils.SendInternalServerError(c, err.Error())
		}
		attached := make(map[int64]bool, len(forms))
		for _, form := range forms {
			if form.FeatureType == featureType && form.FeatureID != nil {
				attached[*form.FeatureID] = true
			}
		}

		if featureType == dbmodels.FeatureActivityRegistration {
			activities, _, err := app.Activities.List(c.Context(), false, 0, 0)
			if err != nil {
				return utils.SendInternalServerError(c, err.Error())
			}
			available := activities[:0]
			for _, activity := range activities {
				if !attached[activity.ID] {
					available = append(available, activity)
				}
			}
			return utils.SendSuccess(c, models.MsgGetDataSuccess, available)
		}

		clubs, err := app.Clubs.List(c.Context(), false)
		if err != nil {
			return utils.SendInternalServerError(c, err.Error())
		}
		available := clubs[:0]
		for _, club := range clubs {
			if !attached[club.ID] {
				available = append(available, club)
			}
		}
		return utils.SendSuccess(c, models.MsgGetDataSuccess, available)
	}
}

func CustomFormsCreate(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CustomFormRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, "invalid request body")
		}
		if details := utils.ValidateStruct(&req); details != nil {
			return utils.SendValidationErrors(c, details)
		}

		form := customFormFromRequest(&req)
		if err := app.Forms.Save(c.Context(), form); err != nil {
			return sendRepoError(c, err, models.MsgCustomFormNotFound)
		}
		return utils.SendCreated(c, models.MsgCreateDataSuccess, form)
	}
}

func CustomFormsUpdate(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, err.Error())
		}

		var req models.CustomFormRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, "invalid request body")
		}
		if details := utils.ValidateStruct(&req); details != nil {
			return utils.SendValidationErrors(c, details)
		}

		existing, err := app.Forms.ByID(c.Context(), id)
		if err != nil {
			return sendRepoError(c, err, models.MsgCustomFormNotFound)
		}

		form := customFormFromRequest(&req)
		form.ID = existing.ID
		form.CreatedAt = existing.CreatedAt

		if err := app.Forms.Save(c.Context(), form); err != nil {
			return sendRepoError(c, err, models.MsgCustomFormNotFound)
		}
		return utils.SendSuccess(c, models.MsgUpdateDataSuccess, form)
	}
}

// CustomFormsToggle flips a form's active flag.
func CustomFormsToggle(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, err.Error())
		}

		form, err := app.Forms.ToggleActive(c.Context(), id)
		if err != nil {
			return sendRepoError(c, err, models.MsgCustomFormNotFound)
		}
		return utils.SendSuccess(c, models.MsgUpdateDataSuccess, form)
	}
}

func CustomFormsAttach(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, err.Error())
		}

		var req models.AttachCustomFormRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, "invalid request body")
		}
		if details := utils.ValidateStruct(&req); details != nil {
			return utils.SendValidationErrors(c, details)
		}

		form, err := app.Forms.Attach(c.Context(), id, req.FeatureType, req.FeatureID)
		if err != nil {
			return sendRepoError(c, err, models.MsgCustomFormNotFound)
		}
		return utils.SendSuccess(c, models.MsgUpdateDataSuccess, form)
	}
}

func CustomFormsDetach(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, err.Error())
		}

		form, err := app.Forms.Detach(c.Context(), id)
		if err != nil {
			return sendRepoError(c, err, models.MsgCustomFormNotFound)
		}
		return utils.SendSuccess(c, models.MsgUpdateDataSuccess, form)
	}
}

func CustomFormsDelete(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, err.Error())
		}

		affected, err := app.Forms.Delete(c.Context(), id)
		if err != nil {
			return utils.SendInternalServerError(c, err.Error())
		}
		if affected == 0 {
			return utils.SendNotFound(c, models.MsgCustomFormNotFound, "custom form not found")
		}
		return utils.SendAffectedRows(c, models.MsgDeleteDataSuccess, affected)
	}
}

func customFormFromRequest(req *models.CustomFormRequest) *dbmodels.CustomForm {
	form := &dbmodels.CustomForm{
		FormName:           req.FormName,
		Description:        req.Description,
		FeatureType:        req.FeatureType,
		FeatureID:          req.FeatureID,
		FormSchema:         req.FormSchema,
		IsActive:           true,
		PostSubmissionInfo: req.PostSubmissionInfo,
	}
	if req.IsActive != nil {
		form.IsActive = *req.IsActive
	}
	return form
}
