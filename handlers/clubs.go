package handlers

import (
	"fmt"
	"regexp"
	"time"

	"github.com/gofiber/fiber/v2"

	dbmodels "github.com/komunitas-muda/backoffice/database/models"
	"github.com/komunitas-muda/backoffice/models"
	"github.com/komunitas-muda/backoffice/services"
	"github.com/komunitas-muda/backoffice/utils"
)

var youtubeIDPattern = regexp.MustCompile(`(?:youtube\.com/watch\?(?:.*&)?v=|youtu\.be/|youtube\.com/embed/|youtube\.com/shorts/)([A-Za-z0-9_-]{6,})`)

func ClubsList(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		visibleOnly := c.QueryBool("visible", false)
		clubs, err := app.Clubs.List(c.Context(), visibleOnly)
		if err != nil {
			return utils.SendInternalServerError(c, err.Error())
		}
		return utils.SendSuccess(c, models.MsgGetDataSuccess, clubs)
	}
}

func ClubsDetail(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, err.Error())
		}

		club, err := app.Clubs.GetByID(c.Context(), id)
		if err != nil {
			return sendRepoError(c, err, models.MsgClubNotFound)
		}
		return utils.SendSuccess(c, models.MsgGetDataSuccess, club)
	}
}

func ClubsCreate(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.ClubRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, "invalid request body")
		}
		if details := utils.ValidateStruct(&req); details != nil {
			return utils.SendValidationErrors(c, details)
		}

		club := clubFromRequest(&req)
		if err := app.Clubs.Create(c.Context(), club); err != nil {
			return sendRepoError(c, err, models.MsgClubNotFound)
		}
		return utils.SendCreated(c, models.MsgCreateDataSuccess, club)
	}
}

func ClubsUpdate(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, err.Error())
		}

		var req models.ClubRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, "invalid request body")
		}
		if details := utils.ValidateStruct(&req); details != nil {
			return utils.SendValidationErrors(c, details)
		}

		existing, err := app.Clubs.GetByID(c.Context(), id)
		if err != nil {
			return sendRepoError(c, err, models.MsgClubNotFound)
		}

		club := clubFromRequest(&req)
		club.ID = existing.ID
		club.CreatedAt = existing.CreatedAt
		if club.Logo == "" {
			club.Logo = existing.Logo
		}

		if err := app.Clubs.Update(c.Context(), club); err != nil {
			return sendRepoError(c, err, models.MsgClubNotFound)
		}
		return utils.SendSuccess(c, models.MsgUpdateDataSuccess, club)
	}
}

func ClubsDelete(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, err.Error())
		}

		affected, err := app.Clubs.Delete(c.Context(), id)
		if err != nil {
			return utils.SendInternalServerError(c, err.Error())
		}
		if affected == 0 {
			return utils.SendNotFound(c, models.MsgClubNotFound, "club not found")
		}
		return utils.SendAffectedRows(c, models.MsgDeleteDataSuccess, affected)
	}
}

// ClubsUploadLogo stores a club logo and replaces the old one.
func ClubsUploadLogo(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, err.Error())
		}

		club, err := app.Clubs.GetByID(c.Context(), id)
		if err != nil {
			return sendRepoError(c, err, models.MsgClubNotFound)
		}

		file, err := c.FormFile("logo")
		if err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, "logo file is required")
		}
		if err := utils.ValidateImageUpload(file); err != nil {
			return utils.SendBadRequest(c, models.MsgValidationError, err.Error())
		}

		data, err := readMultipartFile(file)
		if err != nil {
			return utils.SendInternalServerError(c, err.Error())
		}

		url, err := app.Storage.Upload(c.Context(), services.StorageFolderClubLogos,
			file.Filename, file.Header.Get("Content-Type"), data)
		if err != nil {
			return utils.SendInternalServerError(c, err.Error())
		}

		// Old logo is best-effort deleted; a stale object is preferable
		// to failing the upload.
		if club.Logo != "" {
			_ = app.Storage.Delete(c.Context(), club.Logo)
		}

		club.Logo = url
		if err := app.Clubs.Update(c.Context(), club); err != nil {
			return sendRepoError(c, err, models.MsgClubNotFound)
		}
		return utils.SendSuccess(c, models.MsgUpdateDataSuccess, fiber.Map{"url": url})
	}
}

// ClubsUploadMedia appends an uploaded image to the club media gallery.
func ClubsUploadMedia(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, err.Error())
		}

		club, err := app.Clubs.GetByID(c.Context(), id)
		if err != nil {
			return sendRepoError(c, err, models.MsgClubNotFound)
		}

		file, err := c.FormFile("media")
		if err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, "media file is required")
		}
		if err := utils.ValidateImageUpload(file); err != nil {
			return utils.SendBadRequest(c, models.MsgValidationError, err.Error())
		}

		data, err := readMultipartFile(file)
		if err != nil {
			return utils.SendInternalServerError(c, err.Error())
		}

		url, err := app.Storage.Upload(c.Context(), services.StorageFolderClubMedia,
			file.Filename, file.Header.Get("Content-Type"), data)
		if err != nil {
			return utils.SendInternalServerError(c, err.Error())
		}

		club.Media.Items = append(club.Media.Items, dbmodels.MediaItem{
			MediaURL:  url,
			MediaType: "image",
		})
		if err := app.Clubs.Update(c.Context(), club); err != nil {
			return sendRepoError(c, err, models.MsgClubNotFound)
		}
		return utils.SendSuccess(c, models.MsgUpdateDataSuccess, club.Media)
	}
}

// ClubsAddYouTubeMedia converts a YouTube link to its embed URL and
// appends it to the gallery.
func ClubsAddYouTubeMedia(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, err.Error())
		}

		var req models.AddYouTubeMediaRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, "invalid request body")
		}
		if details := utils.ValidateStruct(&req); details != nil {
			return utils.SendValidationErrors(c, details)
		}

		match := youtubeIDPattern.FindStringSubmatch(req.MediaURL)
		if match == nil {
			return utils.SendBadRequest(c, models.MsgInvalidYouTubeURL, "could not extract video id")
		}
		embedURL := "https://www.youtube.com/embed/" + match[1]

		club, err := app.Clubs.GetByID(c.Context(), id)
		if err != nil {
			return sendRepoError(c, err, models.MsgClubNotFound)
		}

		club.Media.Items = append(club.Media.Items, dbmodels.MediaItem{
			MediaURL:    embedURL,
			MediaType:   "video",
			VideoSource: "youtube",
		})
		if err := app.Clubs.Update(c.Context(), club); err != nil {
			return sendRepoError(c, err, models.MsgClubNotFound)
		}
		return utils.SendSuccess(c, models.MsgAddYouTubeMediaSuccess, club.Media)
	}
}

// ClubsDeleteMedia removes one gallery item by its index.
func ClubsDeleteMedia(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, err.Error())
		}

		index, err := c.ParamsInt("index")
		if err != nil || index < 0 {
			return utils.SendBadRequest(c, models.MsgGeneralError, "invalid media index")
		}

		club, err := app.Clubs.GetByID(c.Context(), id)
		if err != nil {
			return sendRepoError(c, err, models.MsgClubNotFound)
		}
		if index >= len(club.Media.Items) {
			return utils.SendNotFound(c, models.MsgDataNotFound, "media index out of range")
		}

		item := club.Media.Items[index]
		if item.MediaType == "image" {
			_ = app.Storage.Delete(c.Context(), item.MediaURL)
		}

		club.Media.Items = append(club.Media.Items[:index], club.Media.Items[index+1:]...)
		if err := app.Clubs.Update(c.Context(), club); err != nil {
			return sendRepoError(c, err, models.MsgClubNotFound)
		}
		return utils.SendSuccess(c, models.MsgDeleteDataSuccess, club.Media)
	}
}

// ClubsUpdateRegistrationInfo edits the registration window and info
// texts without touching the rest of the club.
func ClubsUpdateRegistrationInfo(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, err.Error())
		}

		var req models.UpdateClubRegistrationInfoRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, "invalid request body")
		}

		club, err := app.Clubs.GetByID(c.Context(), id)
		if err != nil {
			return sendRepoError(c, err, models.MsgClubNotFound)
		}

		club.IsRegistrationOpen = req.IsRegistrationOpen
		club.RegistrationInfo = req.RegistrationInfo
		if req.RegistrationEndDate != nil {
			club.RegistrationEndDate = *req.RegistrationEndDate
		}

		if err := app.Clubs.Update(c.Context(), club); err != nil {
			return sendRepoError(c, err, models.MsgClubNotFound)
		}
		return utils.SendSuccess(c, models.MsgUpdateDataSuccess, club)
	}
}

// ClubsExportRegistrations streams the member list of a club as CSV.
func ClubsExportRegistrations(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return utils.SendBadRequest(c, models.MsgGeneralError, err.Error())
		}

		if _, err := app.Clubs.GetByID(c.Context(), id); err != nil {
			return sendRepoError(c, err, models.MsgClubNotFound)
		}

		data, err := app.Exports.ClubRegistrationsCSV(c.Context(), id)
		if err != nil {
			return utils.SendInternalServerError(c, err.Error())
		}

		filename := fmt.Sprintf("club-%d-registrations-%s.csv", id, time.Now().Format("20060102"))
		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
		return c.Send(data)
	}
}

func clubFromRequest(req *models.ClubRequest) *dbmodels.Club {
	club := &dbmodels.Club{
		Name:               req.Name,
		Description:        req.Description,
		ShortDescription:   req.ShortDescription,
		Logo:               req.Logo,
		Media:              req.Media,
		IsShow:             req.IsShow,
		IsRegistrationOpen: req.IsRegistrationOpen,
		RegistrationInfo:   req.RegistrationInfo,
	}
	if req.StartPeriod != nil {
		club.StartPeriod = *req.StartPeriod
	}
	if req.EndPeriod != nil {
		club.EndPeriod = *req.EndPeriod
	}
	if req.RegistrationEndDate != nil {
		club.RegistrationEndDate = *req.RegistrationEndDate
	}
	return club
}
