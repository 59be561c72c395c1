package handlers

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dbmodels "github.com/komunitas-muda/backoffice/database/models"
	"github.com/komunitas-muda/backoffice/database/repositories"
	"github.com/komunitas-muda/backoffice/middleware"
	"github.com/komunitas-muda/backoffice/services"
)

// stubAchievementUpdateRepo serves one achievement and records the save.
type stubAchievementUpdateRepo struct {
	repositories.AchievementRepository

	achievement *dbmodels.Achievement
	saved       *dbmodels.Achievement
}

func (s *stubAchievementUpdateRepo) GetByID(_ context.Context, _ int64) (*dbmodels.Achievement, error) {
	return s.achievement, nil
}

func (s *stubAchievementUpdateRepo) Update(_ context.Context, achievement *dbmodels.Achievement) error {
	s.saved = achievement
	return nil
}

func newAchievementUpdateServer(repo *stubAchievementUpdateRepo, adminID int64) *fiber.App {
	server := fiber.New()
	server.Use(func(c *fiber.Ctx) error {
		c.Locals(middleware.ClaimsKey, &services.AdminClaims{UserID: adminID})
		return c.Next()
	})
	server.Put("/achievements/:id", AchievementsUpdate(&App{Achievements: repo}))
	return server
}

func updateAchievement(t *testing.T, server *fiber.App, body string) int {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPut, "/achievements/7", bytes.NewBufferString(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := server.Test(req)
	require.NoError(t, err)
	resp.Body.Close()
	return resp.StatusCode
}

func TestAchievementsUpdate_ApprovalStampsApprover(t *testing.T) {
	repo := &stubAchievementUpdateRepo{achievement: &dbmodels.Achievement{
		ID:     7,
		UserID: 1,
		Status: dbmodels.AchievementStatusPending,
	}}
	server := newAchievementUpdateServer(repo, 9)

	status := updateAchievement(t, server,
		`{"name":"Juara 1 Lomba Esai","achievement_date":"2025-03-18T00:00:00Z","type":1,"score":50,"status":1}`)
	require.Equal(t, fiber.StatusOK, status)

	require.NotNil(t, repo.saved)
	assert.Equal(t, dbmodels.AchievementStatusApproved, repo.saved.Status)
	assert.Equal(t, int64(9), repo.saved.ApproverID)
	assert.False(t, repo.saved.ApprovedAt.IsZero())
	assert.Equal(t, "Juara 1 Lomba Esai", repo.saved.Name)
	assert.Equal(t, 50, repo.saved.Score)
}

func TestAchievementsUpdate_ReapprovalKeepsOriginalApprover(t *testing.T) {
	approvedAt := time.Date(2025, time.February, 2, 10, 0, 0, 0, time.UTC)
	repo := &stubAchievementUpdateRepo{achievement: &dbmodels.Achievement{
		ID:         7,
		UserID:     1,
		Status:     dbmodels.AchievementStatusApproved,
		ApproverID: 5,
		ApprovedAt: approvedAt,
	}}
	server := newAchievementUpdateServer(repo, 9)

	status := updateAchievement(t, server,
		`{"name":"Juara 1 Lomba Esai","achievement_date":"2025-03-18T00:00:00Z","type":1,"score":60,"status":1}`)
	require.Equal(t, fiber.StatusOK, status)

	require.NotNil(t, repo.saved)
	assert.Equal(t, int64(5), repo.saved.ApproverID, "already-approved rows keep their approver")
	assert.Equal(t, approvedAt, repo.saved.ApprovedAt)
}

func TestAchievementsUpdate_WithoutStatusLeavesReviewAlone(t *testing.T) {
	repo := &stubAchievementUpdateRepo{achievement: &dbmodels.Achievement{
		ID:     7,
		UserID: 1,
		Status: dbmodels.AchievementStatusPending,
	}}
	server := newAchievementUpdateServer(repo, 9)

	status := updateAchievement(t, server,
		`{"name":"Juara 1 Lomba Esai","achievement_date":"2025-03-18T00:00:00Z","type":2,"score":25}`)
	require.Equal(t, fiber.StatusOK, status)

	require.NotNil(t, repo.saved)
	assert.Equal(t, dbmodels.AchievementStatusPending, repo.saved.Status)
	assert.Zero(t, repo.saved.ApproverID)
	assert.True(t, repo.saved.ApprovedAt.IsZero())
}
