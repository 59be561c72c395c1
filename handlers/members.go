package handlers

import (
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	dbmodels "github.com/komunitas-muda/backoffice/database/models"
	"github.com/komunitas-muda/backoffice/models"
	"github.com/komunitas-muda/backoffice/utils"
)

func MembersList(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, limit, offset := parsePagination(c)
		search := c.Query("search")
		badge := c.Query("badge")

		members, total, err := app.Members.List(c.Context(), search, badge, limit, offset)
		if err != nil {
			return utils.SendInternalServerError(c, err.Error())
		}
		return utils.SendSuccess(c, models.MsgGetDataSuccess,
			models.NewPaginatedData(members, page, limit, total))
	}
}

func MembersDetail(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, err.Error())
		}

		member, err := app.Members.GetByID(c.Context(), id)
		if err != nil {
			return sendRepoError(c, err, models.MsgDataNotFound)
		}
		return utils.SendSuccess(c, models.MsgGetDataSuccess, member)
	}
}

func MembersCreate(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateMemberRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, "invalid request body")
		}
		if details := utils.ValidateStruct(&req); details != nil {
			return utils.SendValidationErrors(c, details)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return utils.SendInternalServerError(c, err.Error())
		}

		member := &dbmodels.Member{
			Email:        req.Email,
			PasswordHash: string(hash),
		}
		profile := &dbmodels.Profile{
			Name:       req.Name,
			Gender:     req.Gender,
			Whatsapp:   req.Whatsapp,
			University: req.University,
			Major:      req.Major,
			IntakeYear: req.IntakeYear,
		}

		if err := app.Members.Create(c.Context(), member, profile); err != nil {
			return sendRepoError(c, err, models.MsgDataNotFound)
		}

		member.Profile = profile
		return utils.SendCreated(c, models.MsgCreateDataSuccess, member)
	}
}

func MembersUpdateProfile(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, err.Error())
		}

		var req models.UpdateProfileRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, "invalid request body")
		}
		if details := utils.ValidateStruct(&req); details != nil {
			return utils.SendValidationErrors(c, details)
		}

		profile, err := app.Members.GetProfile(c.Context(), id)
		if err != nil {
			return sendRepoError(c, err, models.MsgDataNotFound)
		}

		if req.Name != "" {
			profile.Name = req.Name
		}
		if req.Gender != "" {
			profile.Gender = req.Gender
		}
		if req.Whatsapp != "" {
			profile.Whatsapp = req.Whatsapp
		}
		if req.PersonalID != "" {
			profile.PersonalID = req.PersonalID
		}
		if req.University != "" {
			profile.University = req.University
		}
		if req.Major != "" {
			profile.Major = req.Major
		}
		if req.IntakeYear != 0 {
			profile.IntakeYear = req.IntakeYear
		}
		if req.BirthDate != nil {
			profile.BirthDate = *req.BirthDate
		}

		if err := app.Members.UpdateProfile(c.Context(), profile); err != nil {
			return sendRepoError(c, err, models.MsgDataNotFound)
		}

		if req.Password != nil {
			member, err := app.Members.GetByID(c.Context(), id)
			if err != nil {
				return sendRepoError(c, err, models.MsgDataNotFound)
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
			if err != nil {
				return utils.SendInternalServerError(c, err.Error())
			}
			member.PasswordHash = string(hash)
			member.Profile = nil
			if err := app.Members.Update(c.Context(), member); err != nil {
				return sendRepoError(c, err, models.MsgDataNotFound)
			}
		}
		return utils.SendSuccess(c, models.MsgUpdateDataSuccess, profile)
	}
}

func MembersDelete(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, err.Error())
		}

		affected, err := app.Members.Delete(c.Context(), id)
		if err != nil {
			return utils.SendInternalServerError(c, err.Error())
		}
		if affected == 0 {
			return utils.SendNotFound(c, models.MsgDataNotFound, "member not found")
		}
		return utils.SendAffectedRows(c, models.MsgDeleteDataSuccess, affected)
	}
}

// MembersRegistrations lists one member's activity registrations.
func MembersRegistrations(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, err.Error())
		}

		registrations, err := app.Registrations.ListByUser(c.Context(), id)
		if err != nil {
			return utils.SendInternalServerError(c, err.Error())
		}
		return utils.SendSuccess(c, models.MsgGetDataSuccess, registrations)
	}
}
