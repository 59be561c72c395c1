package handlers

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dbmodels "github.com/komunitas-muda/backoffice/database/models"
	"github.com/komunitas-muda/backoffice/database/repositories"
)

type stubRuangCurhatRepo struct {
	repositories.RuangCurhatRepository

	request *dbmodels.RuangCurhat
	saved   *dbmodels.RuangCurhat
	filter  repositories.RuangCurhatFilter
}

func (s *stubRuangCurhatRepo) List(_ context.Context, filter repositories.RuangCurhatFilter) ([]*dbmodels.RuangCurhat, int, error) {
	s.filter = filter
	return []*dbmodels.RuangCurhat{s.request}, 1, nil
}

func (s *stubRuangCurhatRepo) GetByID(_ context.Context, _ int64) (*dbmodels.RuangCurhat, error) {
	return s.request, nil
}

func (s *stubRuangCurhatRepo) Update(_ context.Context, request *dbmodels.RuangCurhat) error {
	s.saved = request
	return nil
}

func newRuangCurhatServer(repo *stubRuangCurhatRepo) *fiber.App {
	state := &App{RuangCurhats: repo}
	server := fiber.New()
	server.Get("/ruang-curhat", RuangCurhatList(state))
	server.Put("/ruang-curhat/:id", RuangCurhatUpdate(state))
	return server
}

func TestRuangCurhatList_PassesFilters(t *testing.T) {
	repo := &stubRuangCurhatRepo{request: &dbmodels.RuangCurhat{ID: 5}}
	server := newRuangCurhatServer(repo)

	req := httptest.NewRequest(fiber.MethodGet,
		"/ruang-curhat?status=PENDING&name=budi&gender=L&admin_name=sari&page=2&limit=10", nil)
	resp, err := server.Test(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Equal(t, "PENDING", repo.filter.Status)
	assert.Equal(t, "budi", repo.filter.Name)
	assert.Equal(t, "L", repo.filter.Gender)
	assert.Equal(t, "sari", repo.filter.AdminName)
	assert.Equal(t, 10, repo.filter.Limit)
	assert.Equal(t, 10, repo.filter.Offset)
}

func TestRuangCurhatUpdate_AssignsAdminAndStatus(t *testing.T) {
	repo := &stubRuangCurhatRepo{request: &dbmodels.RuangCurhat{
		ID:                 5,
		UserID:             1,
		Status:             dbmodels.RuangCurhatStatusPending,
		ProblemDescription: "sulit membagi waktu",
	}}
	server := newRuangCurhatServer(repo)

	req := httptest.NewRequest(fiber.MethodPut, "/ruang-curhat/5",
		bytes.NewBufferString(`{"status":"ON_PROGRESS","admin_user_id":3,"handling_technic":"konseling individu"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := server.Test(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.NotNil(t, repo.saved)
	assert.Equal(t, dbmodels.RuangCurhatStatusInProgress, repo.saved.Status)
	assert.Equal(t, int64(3), repo.saved.AdminUserID)
	assert.Equal(t, "konseling individu", repo.saved.HandlingTechnic)
	assert.Equal(t, "sulit membagi waktu", repo.saved.ProblemDescription, "untouched fields keep their values")
}

func TestRuangCurhatUpdate_PartialBodyMerges(t *testing.T) {
	repo := &stubRuangCurhatRepo{request: &dbmodels.RuangCurhat{
		ID:          5,
		UserID:      1,
		AdminUserID: 3,
		Status:      dbmodels.RuangCurhatStatusInProgress,
	}}
	server := newRuangCurhatServer(repo)

	req := httptest.NewRequest(fiber.MethodPut, "/ruang-curhat/5",
		bytes.NewBufferString(`{"status":"DONE"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := server.Test(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.NotNil(t, repo.saved)
	assert.Equal(t, dbmodels.RuangCurhatStatusDone, repo.saved.Status)
	assert.Equal(t, int64(3), repo.saved.AdminUserID, "assignment survives a status-only update")
}

func TestRuangCurhatUpdate_RejectsUnknownStatus(t *testing.T) {
	repo := &stubRuangCurhatRepo{request: &dbmodels.RuangCurhat{ID: 5}}
	server := newRuangCurhatServer(repo)

	req := httptest.NewRequest(fiber.MethodPut, "/ruang-curhat/5",
		bytes.NewBufferString(`{"status":"SELESAI_BANGET"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := server.Test(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Nil(t, repo.saved)
}
