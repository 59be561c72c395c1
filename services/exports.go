package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/komunitas-muda/backoffice/database/models"
	"github.com/komunitas-muda/backoffice/database/repositories"
)

// utf8BOM makes Excel detect UTF-8; exports are consumed by admins who
// open them straight in spreadsheets.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ExportService renders admin CSV exports. Output is UTF-8 with BOM and
// CRLF line endings.
type ExportService struct {
	registrations     repositories.ActivityRegistrationRepository
	clubRegistrations repositories.ClubRegistrationRepository
	achievements      repositories.AchievementRepository
}

func NewExportService(
	registrations repositories.ActivityRegistrationRepository,
	clubRegistrations repositories.ClubRegistrationRepository,
	achievements repositories.AchievementRepository,
) *ExportService {
	return &ExportService{
		registrations:     registrations,
		clubRegistrations: clubRegistrations,
		achievements:      achievements,
	}
}

// RegistrationsCSV exports every registration of one activity.
func (s *ExportService) RegistrationsCSV(ctx context.Context, activityID int64) ([]byte, error) {
	rows, _, err := s.registrations.ListByActivity(ctx, activityID, "", 0, 0)
	if err != nil {
		return nil, err
	}

	records := [][]string{
		{"member_id", "name", "email", "university", "level", "status", "registered_at"},
	}
	for _, reg := range rows {
		var memberID, name, email, university, level string
		if reg.Member != nil {
			memberID = reg.Member.MemberID
			email = reg.Member.Email
			if reg.Member.Profile != nil {
				name = reg.Member.Profile.Name
				university = reg.Member.Profile.University
				level = strconv.Itoa(reg.Member.Profile.Level)
			}
		}
		records = append(records, []string{
			memberID, name, email, university, level,
			reg.Status,
			reg.CreatedAt.Format(time.RFC3339),
		})
	}

	return writeCSV(records)
}

// ClubRegistrationsCSV exports every registration of one club.
func (s *ExportService) ClubRegistrationsCSV(ctx context.Context, clubID int64) ([]byte, error) {
	rows, _, err := s.clubRegistrations.ListByClub(ctx, clubID, "", 0, 0)
	if err != nil {
		return nil, err
	}

	records := [][]string{
		{"member_id", "name", "email", "status", "registered_at"},
	}
	for _, reg := range rows {
		var memberID, name, email string
		if reg.Member != nil {
			memberID = reg.Member.MemberID
			email = reg.Member.Email
			if reg.Member.Profile != nil {
				name = reg.Member.Profile.Name
			}
		}
		records = append(records, []string{
			memberID, name, email,
			reg.Status,
			reg.CreatedAt.Format(time.RFC3339),
		})
	}

	return writeCSV(records)
}

// AchievementsCSV exports achievements, optionally narrowed by status.
func (s *ExportService) AchievementsCSV(ctx context.Context, status *int) ([]byte, error) {
	rows, _, err := s.achievements.List(ctx, repositories.AchievementFilter{Status: status})
	if err != nil {
		return nil, err
	}

	records := [][]string{
		{"member_id", "name", "achievement", "type", "date", "score", "status", "remark"},
	}
	for _, a := range rows {
		var memberID, name string
		if a.Member != nil {
			memberID = a.Member.MemberID
			if a.Member.Profile != nil {
				name = a.Member.Profile.Name
			}
		}
		records = append(records, []string{
			memberID, name, a.Name,
			achievementTypeLabel(a.Type),
			a.AchievementDate.Format("2006-01-02"),
			strconv.Itoa(a.Score),
			achievementStatusLabel(a.Status),
			a.Remark,
		})
	}

	return writeCSV(records)
}

func writeCSV(records [][]string) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	w.UseCRLF = true
	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("failed to write csv: %w", err)
	}
	return buf.Bytes(), nil
}

func achievementTypeLabel(t int) string {
	switch t {
	case models.AchievementTypeAcademic:
		return "akademik"
	case models.AchievementTypeCompetency:
		return "kompetensi"
	case models.AchievementTypeOrganizational:
		return "organisasi"
	default:
		return strconv.Itoa(t)
	}
}

func achievementStatusLabel(s int) string {
	switch s {
	case models.AchievementStatusPending:
		return "menunggu"
	case models.AchievementStatusApproved:
		return "disetujui"
	case models.AchievementStatusRejected:
		return "ditolak"
	default:
		return strconv.Itoa(s)
	}
}
