package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/komunitas-muda/backoffice/config"
	"github.com/komunitas-muda/backoffice/database"
	"github.com/komunitas-muda/backoffice/database/repositories"
	"github.com/komunitas-muda/backoffice/handlers"
	"github.com/komunitas-muda/backoffice/logger"
	"github.com/komunitas-muda/backoffice/middleware"
	"github.com/komunitas-muda/backoffice/services"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	configPath := "config.toml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	customHandler := logger.NewHandler("Backoffice")
	slog.SetDefault(slog.New(customHandler))

	slog.Info("Starting backoffice API",
		slog.String("version", version),
		slog.String("commit", commit),
		slog.String("type", "sys"))

	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	slog.Info("Connecting to database...")
	db, err := database.New(ctx, cfg.DB)
	if err != nil {
		slog.Error("Failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := db.InitializeSchema(ctx); err != nil {
		slog.Error("Failed to initialize schema", slog.String("error", err.Error()))
		os.Exit(1)
	}
	slog.Info("Database connected successfully")

	bunDB := db.BunDB()

	adminUsers := repositories.NewAdminUserRepository(bunDB)
	members := repositories.NewMemberRepository(bunDB)
	activities := repositories.NewActivityRepository(bunDB)
	registrations := repositories.NewActivityRegistrationRepository(bunDB)
	clubs := repositories.NewClubRepository(bunDB)
	clubRegistrations := repositories.NewClubRegistrationRepository(bunDB)
	achievements := repositories.NewAchievementRepository(bunDB)
	ruangCurhats := repositories.NewRuangCurhatRepository(bunDB)
	leaderboards := repositories.NewLeaderboardRepository(bunDB)
	certificateTemplates := repositories.NewCertificateTemplateRepository(bunDB)
	customForms := repositories.NewCustomFormRepository(bunDB)

	authService := services.NewAuthService(adminUsers, cfg.Auth)
	progressionService := services.NewProgressionService(repositories.NewProgressionStore(bunDB), cfg.Progression)
	scoringService := services.NewScoringService(repositories.NewScoringStore(bunDB))
	storageService, err := services.NewStorageService(cfg.Spaces)
	if err != nil {
		slog.Error("Failed to initialize storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	certificateService := services.NewCertificateService(registrations, activities, certificateTemplates)
	exportService := services.NewExportService(registrations, clubRegistrations, achievements)
	formService, err := services.NewFormService(customForms)
	if err != nil {
		slog.Error("Failed to initialize form cache", slog.String("error", err.Error()))
		os.Exit(1)
	}
	maintenanceService := services.NewMaintenanceService(clubs)

	app := &handlers.App{
		DB:                   db,
		AdminUsers:           adminUsers,
		Members:              members,
		Activities:           activities,
		Registrations:        registrations,
		Clubs:                clubs,
		ClubRegistrations:    clubRegistrations,
		Achievements:         achievements,
		RuangCurhats:         ruangCurhats,
		Leaderboards:         leaderboards,
		CertificateTemplates: certificateTemplates,
		Auth:                 authService,
		Progression:          progressionService,
		Scoring:              scoringService,
		Storage:              storageService,
		Certificates:         certificateService,
		Exports:              exportService,
		Forms:                formService,
		Maintenance:          maintenanceService,
		Version:              version,
	}

	server := fiber.New(fiber.Config{
		AppName:      "Backoffice API",
		ServerHeader: "Backoffice",
		ErrorHandler: middleware.CustomErrorHandler,
		BodyLimit:    25 * 1024 * 1024,
	})

	allowOrigins := cfg.Web.AllowOrigins
	if allowOrigins == "" {
		allowOrigins = "http://localhost:3000"
	}

	server.Use(recover.New())
	server.Use(middleware.SecurityHeaders())
	server.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	server.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization,X-Requested-With",
		AllowCredentials: true,
	}))
	server.Use(middleware.LoggingMiddleware())

	setupRoutes(server, app)

	address := fmt.Sprintf("%s:%d", cfg.Web.Host, cfg.Web.Port)
	slog.Info("Starting server", slog.String("address", address))

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := server.Listen(address); err != nil {
			slog.Error("Failed to start server", slog.String("error", err.Error()))
		}
	}()

	<-c
	slog.Info("Shutting down server...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()

	if err := server.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", slog.String("error", err.Error()))
	}

	db.Close()
	slog.Info("Server shutdown complete")
}

// setupRoutes configures all application routes
func setupRoutes(server *fiber.App, app *handlers.App) {
	server.Get("/health", handlers.HealthCheck(app))

	loginLimiter := middleware.NewRateLimiter(10, time.Minute)

	v2 := server.Group("/v2")

	auth := v2.Group("/auth")
	auth.Post("/login", middleware.RateLimit(loginLimiter), handlers.Login(app))

	admin := v2.Group("", middleware.AuthRequired(app.Auth))
	admin.Get("/auth/me", handlers.Me(app))
	admin.Put("/auth/logout", middleware.AuditLogMiddleware("logout"), handlers.Logout(app))

	admin.Get("/dashboard/stats", handlers.DashboardStats(app))
	admin.Post("/maintenance/sweep", middleware.AuditLogMiddleware("maintenance_sweep"), handlers.MaintenanceSweep(app))

	adminUsers := admin.Group("/admin-users")
	adminUsers.Get("/", handlers.AdminUsersList(app))
	adminUsers.Post("/", middleware.AuditLogMiddleware("admin_user_create"), handlers.AdminUsersCreate(app))
	adminUsers.Put("/:id/password", middleware.AuditLogMiddleware("admin_user_password_change"), handlers.AdminUsersUpdatePassword(app))
	adminUsers.Delete("/:id", middleware.AuditLogMiddleware("admin_user_delete"), handlers.AdminUsersDelete(app))

	members := admin.Group("/members")
	members.Get("/", handlers.MembersList(app))
	members.Get("/:id", handlers.MembersDetail(app))
	members.Post("/", handlers.MembersCreate(app))
	members.Put("/:id/profile", handlers.MembersUpdateProfile(app))
	members.Delete("/:id", middleware.AuditLogMiddleware("member_delete"), handlers.MembersDelete(app))
	members.Get("/:id/registrations", handlers.MembersRegistrations(app))

	activities := admin.Group("/activities")
	activities.Get("/", handlers.ActivitiesList(app))
	activities.Get("/:id", handlers.ActivitiesDetail(app))
	activities.Post("/", handlers.ActivitiesCreate(app))
	activities.Put("/:id", handlers.ActivitiesUpdate(app))
	activities.Delete("/:id", middleware.AuditLogMiddleware("activity_delete"), handlers.ActivitiesDelete(app))
	activities.Post("/:id/images", handlers.ActivitiesUploadImage(app))
	activities.Get("/:id/registrations/export", handlers.ActivitiesExportRegistrations(app))

	activities.Get("/:id/registrations", handlers.RegistrationsList(app))
	activities.Post("/:id/registrations", handlers.RegistrationsCreate(app))
	activities.Put("/:id/registrations", middleware.AuditLogMiddleware("registration_bulk_status_update"), handlers.RegistrationsUpdateStatusFiltered(app))
	activities.Put("/:id/registrations/emails", middleware.AuditLogMiddleware("registration_status_update_by_email"), handlers.RegistrationsUpdateStatusByEmails(app))

	registrations := admin.Group("/registrations")
	registrations.Put("/", middleware.AuditLogMiddleware("registration_status_update"), handlers.RegistrationsUpdateStatus(app))
	registrations.Delete("/:registrationId", handlers.RegistrationsDelete(app))
	registrations.Get("/:registrationId/certificate", handlers.RegistrationsCertificate(app))

	clubs := admin.Group("/clubs")
	clubs.Get("/", handlers.ClubsList(app))
	clubs.Get("/:id", handlers.ClubsDetail(app))
	clubs.Post("/", handlers.ClubsCreate(app))
	clubs.Put("/:id", handlers.ClubsUpdate(app))
	clubs.Delete("/:id", middleware.AuditLogMiddleware("club_delete"), handlers.ClubsDelete(app))
	clubs.Post("/:id/logo", handlers.ClubsUploadLogo(app))
	clubs.Post("/:id/media", handlers.ClubsUploadMedia(app))
	clubs.Post("/:id/media/youtube", handlers.ClubsAddYouTubeMedia(app))
	clubs.Delete("/:id/media/:index", handlers.ClubsDeleteMedia(app))
	clubs.Put("/:id/registration-info", handlers.ClubsUpdateRegistrationInfo(app))
	clubs.Get("/:id/registrations", handlers.ClubRegistrationsList(app))
	clubs.Post("/:id/registrations", handlers.ClubRegistrationsCreate(app))
	clubs.Get("/:id/registrations/export", handlers.ClubsExportRegistrations(app))

	clubRegistrations := admin.Group("/club-registrations")
	clubRegistrations.Put("/", middleware.AuditLogMiddleware("club_registration_bulk_status_update"), handlers.ClubRegistrationsBulkUpdateStatus(app))
	clubRegistrations.Get("/:registrationId", handlers.ClubRegistrationsDetail(app))
	clubRegistrations.Put("/:registrationId", handlers.ClubRegistrationsUpdateStatus(app))
	clubRegistrations.Delete("/:registrationId", handlers.ClubRegistrationsDelete(app))

	achievements := admin.Group("/achievements")
	achievements.Get("/", handlers.AchievementsList(app))
	achievements.Get("/export", handlers.AchievementsExport(app))
	achievements.Get("/:id", handlers.AchievementsDetail(app))
	achievements.Post("/", handlers.AchievementsCreate(app))
	achievements.Put("/:id", handlers.AchievementsUpdate(app))
	achievements.Put("/:id/review", middleware.AuditLogMiddleware("achievement_review"), handlers.AchievementsReview(app))
	achievements.Delete("/:id", middleware.AuditLogMiddleware("achievement_delete"), handlers.AchievementsDelete(app))

	ruangCurhat := admin.Group("/ruang-curhat")
	ruangCurhat.Get("/", handlers.RuangCurhatList(app))
	ruangCurhat.Get("/:id", handlers.RuangCurhatDetail(app))
	ruangCurhat.Put("/:id", middleware.AuditLogMiddleware("ruang_curhat_update"), handlers.RuangCurhatUpdate(app))

	leaderboards := admin.Group("/leaderboards")
	leaderboards.Get("/monthly", handlers.LeaderboardsMonthly(app))
	leaderboards.Get("/lifetime", handlers.LeaderboardsLifetime(app))

	templates := admin.Group("/certificate-templates")
	templates.Get("/", handlers.CertificateTemplatesList(app))
	templates.Get("/:id", handlers.CertificateTemplatesDetail(app))
	templates.Post("/", handlers.CertificateTemplatesCreate(app))
	templates.Put("/:id", handlers.CertificateTemplatesUpdate(app))
	templates.Delete("/:id", handlers.CertificateTemplatesDelete(app))
	templates.Post("/:id/background", handlers.CertificateTemplatesUploadBackground(app))

	admin.Post("/certificates/generate", handlers.CertificatesGenerate(app))

	forms := admin.Group("/custom-forms")
	forms.Get("/", handlers.CustomFormsList(app))
	forms.Get("/unattached", handlers.CustomFormsUnattached(app))
	forms.Get("/feature/:featureType/:featureId", handlers.CustomFormsByFeature(app))
	forms.Get("/available/:featureType", handlers.CustomFormsAvailableFeatures(app))
	forms.Get("/:id", handlers.CustomFormsDetail(app))
	forms.Post("/", handlers.CustomFormsCreate(app))
	forms.Put("/:id/toggle", handlers.CustomFormsToggle(app))
	forms.Put("/:id/attach", handlers.CustomFormsAttach(app))
	forms.Put("/:id/detach", handlers.CustomFormsDetach(app))
	forms.Put("/:id", handlers.CustomFormsUpdate(app))
	forms.Delete("/:id", handlers.CustomFormsDelete(app))
}
