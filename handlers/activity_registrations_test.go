package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/komunitas-muda/backoffice/database/repositories"
	"github.com/komunitas-muda/backoffice/models"
)

// stubRegistrationFilterRepo records the filtered bulk update call.
type stubRegistrationFilterRepo struct {
	repositories.ActivityRegistrationRepository

	activityID    int64
	name          string
	currentStatus string
	newStatus     string
	affected      int64
	calls         int
}

func (s *stubRegistrationFilterRepo) UpdateStatusByFilter(_ context.Context, activityID int64, name, currentStatus, newStatus string) (int64, error) {
	s.calls++
	s.activityID = activityID
	s.name = name
	s.currentStatus = currentStatus
	s.newStatus = newStatus
	return s.affected, nil
}

func newFilteredUpdateServer(repo *stubRegistrationFilterRepo) *fiber.App {
	server := fiber.New()
	server.Put("/activities/:id/registrations", RegistrationsUpdateStatusFiltered(&App{Registrations: repo}))
	return server
}

func putJSON(t *testing.T, server *fiber.App, path, body string) *models.APIResponse {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPut, path, bytes.NewBufferString(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := server.Test(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	envelope := new(models.APIResponse)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(envelope))
	require.Equal(t, fiber.StatusOK, resp.StatusCode, "unexpected status: %s", envelope.Message)
	return envelope
}

func TestRegistrationsUpdateStatusFiltered_ScopedToActivityAndFilter(t *testing.T) {
	repo := &stubRegistrationFilterRepo{affected: 4}
	server := newFilteredUpdateServer(repo)

	envelope := putJSON(t, server, "/activities/10/registrations",
		`{"name":"Andi Wijaya","current_status":"TERDAFTAR","new_status":"DITERIMA"}`)

	assert.Equal(t, int64(10), repo.activityID)
	assert.Equal(t, "Andi Wijaya", repo.name)
	assert.Equal(t, "TERDAFTAR", repo.currentStatus)
	assert.Equal(t, "DITERIMA", repo.newStatus)

	assert.Equal(t, models.MsgUpdateDataSuccess, envelope.Message)
	require.NotNil(t, envelope.AffectedRows)
	assert.Equal(t, int64(4), *envelope.AffectedRows)
}

func TestRegistrationsUpdateStatusFiltered_FiltersAreOptional(t *testing.T) {
	repo := &stubRegistrationFilterRepo{affected: 12}
	server := newFilteredUpdateServer(repo)

	putJSON(t, server, "/activities/7/registrations", `{"new_status":"TIDAK_LULUS"}`)

	assert.Equal(t, 1, repo.calls)
	assert.Equal(t, int64(7), repo.activityID)
	assert.Empty(t, repo.name)
	assert.Empty(t, repo.currentStatus)
	assert.Equal(t, "TIDAK_LULUS", repo.newStatus)
}

func TestRegistrationsUpdateStatusFiltered_RequiresNewStatus(t *testing.T) {
	repo := &stubRegistrationFilterRepo{}
	server := newFilteredUpdateServer(repo)

	req := httptest.NewRequest(fiber.MethodPut, "/activities/7/registrations",
		bytes.NewBufferString(`{"current_status":"TERDAFTAR"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := server.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Zero(t, repo.calls)
}
