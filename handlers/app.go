package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/komunitas-muda/backoffice/database"
	"github.com/komunitas-muda/backoffice/database/repositories"
	"github.com/komunitas-muda/backoffice/models"
	"github.com/komunitas-muda/backoffice/services"
	"github.com/komunitas-muda/backoffice/utils"
)

// App bundles everything handlers need. One instance is built in main
// and shared across all routes.
type App struct {
	DB *database.DB

	AdminUsers           repositories.AdminUserRepository
	Members              repositories.MemberRepository
	Activities           repositories.ActivityRepository
	Registrations        repositories.ActivityRegistrationRepository
	Clubs                repositories.ClubRepository
	ClubRegistrations    repositories.ClubRegistrationRepository
	Achievements         repositories.AchievementRepository
	RuangCurhats         repositories.RuangCurhatRepository
	Leaderboards         repositories.LeaderboardRepository
	CertificateTemplates repositories.CertificateTemplateRepository

	Auth         *services.AuthService
	Progression  *services.ProgressionService
	Scoring      *services.ScoringService
	Storage      *services.StorageService
	Certificates *services.CertificateService
	Exports      *services.ExportService
	Forms        *services.FormService
	Maintenance  *services.MaintenanceService

	Version string
}

// HealthCheck reports service and database health.
func HealthCheck(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbStatus := "up"
		if err := app.DB.Ping(c.Context()); err != nil {
			dbStatus = "down"
		}

		status := fiber.StatusOK
		if dbStatus != "up" {
			status = fiber.StatusServiceUnavailable
		}

		return c.Status(status).JSON(fiber.Map{
			"status":   dbStatus,
			"version":  app.Version,
			"database": dbStatus,
		})
	}
}

// parseIDParam reads a positive integer route parameter.
func parseIDParam(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id parameter")
	}
	return id, nil
}

// parsePagination reads page/limit query parameters with sane bounds.
func parsePagination(c *fiber.Ctx) (page, limit, offset int) {
	page = c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit = c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit, (page - 1) * limit
}

// readMultipartFile reads an uploaded file fully into memory. Upload
// size limits are enforced by validation before this is called.
func readMultipartFile(file *multipart.FileHeader) ([]byte, error) {
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return io.ReadAll(src)
}

// sendRepoError maps repository errors onto the envelope.
func sendRepoError(c *fiber.Ctx, err error, notFoundMessage string) error {
	var nfe *repositories.NotFoundError
	var conflict *repositories.ConflictError
	switch {
	case errors.As(err, &nfe):
		return utils.SendNotFound(c, notFoundMessage, err.Error())
	case errors.As(err, &conflict):
		return utils.SendConflict(c, models.MsgAlreadyRegistered, err.Error())
	default:
		return utils.SendInternalServerError(c, err.Error())
	}
}
