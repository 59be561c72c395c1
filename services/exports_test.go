package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/komunitas-muda/backoffice/database/models"
	"github.com/komunitas-muda/backoffice/database/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRegistrationRepo struct {
	repositories.ActivityRegistrationRepository
	rows []*models.ActivityRegistration
}

func (s *stubRegistrationRepo) ListByActivity(context.Context, int64, string, int, int) ([]*models.ActivityRegistration, int, error) {
	return s.rows, len(s.rows), nil
}

type stubClubRegistrationRepo struct {
	repositories.ClubRegistrationRepository
	rows []*models.ClubRegistration
}

func (s *stubClubRegistrationRepo) ListByClub(context.Context, int64, string, int, int) ([]*models.ClubRegistration, int, error) {
	return s.rows, len(s.rows), nil
}

type stubAchievementRepo struct {
	repositories.AchievementRepository
	rows []*models.Achievement
}

func (s *stubAchievementRepo) List(context.Context, repositories.AchievementFilter) ([]*models.Achievement, int, error) {
	return s.rows, len(s.rows), nil
}

func TestRegistrationsCSV(t *testing.T) {
	regs := &stubRegistrationRepo{rows: []*models.ActivityRegistration{
		{
			ID:     1,
			Status: models.RegistrationStatusGraduated,
			Member: &models.Member{
				MemberID: "00000042",
				Email:    "andi@example.com",
				Profile:  &models.Profile{Name: `Andi "Si Juara" Putra`, University: "UI, Depok", Level: 2},
			},
			CreatedAt: time.Date(2025, time.May, 2, 9, 0, 0, 0, time.UTC),
		},
	}}
	svc := NewExportService(regs, &stubClubRegistrationRepo{}, &stubAchievementRepo{})

	data, err := svc.RegistrationsCSV(context.Background(), 10)
	require.NoError(t, err)

	// BOM prefix, then header row.
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, data[:3])
	body := string(data[3:])
	lines := strings.Split(body, "\r\n")
	require.GreaterOrEqual(t, len(lines), 2, "CRLF line endings expected")
	assert.Equal(t, "member_id,name,email,university,level,status,registered_at", lines[0])

	// Quotes and embedded commas must survive the round trip.
	assert.Contains(t, lines[1], `"Andi ""Si Juara"" Putra"`)
	assert.Contains(t, lines[1], `"UI, Depok"`)
	assert.Contains(t, lines[1], "LULUS_KEGIATAN")
}

func TestRegistrationsCSVMissingRelations(t *testing.T) {
	regs := &stubRegistrationRepo{rows: []*models.ActivityRegistration{
		{ID: 2, Status: models.RegistrationStatusRegistered},
	}}
	svc := NewExportService(regs, &stubClubRegistrationRepo{}, &stubAchievementRepo{})

	data, err := svc.RegistrationsCSV(context.Background(), 10)
	require.NoError(t, err)
	assert.Contains(t, string(data), "TERDAFTAR")
}

func TestAchievementsCSV(t *testing.T) {
	achievements := &stubAchievementRepo{rows: []*models.Achievement{
		{
			Name:            "Juara 2 Hackathon",
			Type:            models.AchievementTypeCompetency,
			AchievementDate: time.Date(2025, time.June, 14, 0, 0, 0, 0, time.UTC),
			Score:           35,
			Status:          models.AchievementStatusApproved,
			Member:          &models.Member{MemberID: "00000007", Profile: &models.Profile{Name: "Budi"}},
		},
	}}
	svc := NewExportService(&stubRegistrationRepo{}, &stubClubRegistrationRepo{}, achievements)

	data, err := svc.AchievementsCSV(context.Background(), nil)
	require.NoError(t, err)

	body := string(data)
	assert.Contains(t, body, "kompetensi")
	assert.Contains(t, body, "disetujui")
	assert.Contains(t, body, "2025-06-14")
	assert.Contains(t, body, "35")
}
