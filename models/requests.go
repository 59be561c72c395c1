package models

import (
	"encoding/json"
	"time"

	dbmodels "github.com/komunitas-muda/backoffice/database/models"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CreateAdminUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"omitempty,oneof=admin superadmin"`
}

type UpdateAdminPasswordRequest struct {
	Password string `json:"password" validate:"required,min=8"`
}

type CreateMemberRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
	Name       string `json:"name" validate:"required,min=2,max=100"`
	Gender     string `json:"gender" validate:"omitempty,oneof=L P"`
	Whatsapp   string `json:"whatsapp" validate:"omitempty,min=8,max=20"`
	University string `json:"university" validate:"omitempty,max=150"`
	Major      string `json:"major" validate:"omitempty,max=100"`
	IntakeYear int    `json:"intake_year" validate:"omitempty,gte=2000,lte=2100"`
}

type UpdateProfileRequest struct {
	Name       string     `json:"name" validate:"omitempty,min=2,max=100"`
	Gender     string     `json:"gender" validate:"omitempty,oneof=L P"`
	Whatsapp   string     `json:"whatsapp" validate:"omitempty,min=8,max=20"`
	PersonalID string     `json:"personal_id" validate:"omitempty,max=30"`
	University string     `json:"university" validate:"omitempty,max=150"`
	Major      string     `json:"major" validate:"omitempty,max=100"`
	IntakeYear int        `json:"intake_year" validate:"omitempty,gte=2000,lte=2100"`
	BirthDate  *time.Time `json:"birth_date"`
	Password   *string    `json:"password" validate:"omitempty,min=8"`
}

type ActivityRequest struct {
	Name              string                  `json:"name" validate:"required,min=3,max=200"`
	Slug              string                  `json:"slug" validate:"required,min=3,max=200"`
	Description       string                  `json:"description"`
	ActivityType      int                     `json:"activity_type" validate:"gte=0"`
	Category          int                     `json:"activity_category" validate:"gte=0"`
	MinimumLevel      int                     `json:"minimum_level" validate:"gte=1"`
	Badge             string                  `json:"badge" validate:"omitempty,max=100"`
	IsPublished       bool                    `json:"is_published"`
	Images            []string                `json:"images"`
	ActivityStart     *time.Time              `json:"activity_start"`
	ActivityEnd       *time.Time              `json:"activity_end"`
	RegistrationStart *time.Time              `json:"registration_start"`
	RegistrationEnd   *time.Time              `json:"registration_end"`
	SelectionStart    *time.Time              `json:"selection_start"`
	SelectionEnd      *time.Time              `json:"selection_end"`
	AdditionalConfig  dbmodels.ActivityConfig `json:"additional_config"`
}

// UpdateRegistrationStatusRequest is the bulk update keyed by
// registration IDs. Status is deliberately an open string: activities may
// define custom selection statuses in their additional_config.
type UpdateRegistrationStatusRequest struct {
	Status          string  `json:"status" validate:"required,min=1,max=50"`
	RegistrationIDs []int64 `json:"registrations_id" validate:"required,min=1,dive,gt=0"`
}

// FilterUpdateRegistrationStatusRequest is the bulk update keyed by a
// filter instead of an ID list: every registration under the activity
// matching the registrant name and current status gets the new status.
type FilterUpdateRegistrationStatusRequest struct {
	Name          string `json:"name" validate:"omitempty,max=100"`
	CurrentStatus string `json:"current_status" validate:"omitempty,max=50"`
	NewStatus     string `json:"new_status" validate:"required,min=1,max=50"`
}

// UpdateRegistrationStatusByEmailRequest is the bulk update keyed by
// member emails.
type UpdateRegistrationStatusByEmailRequest struct {
	Status string   `json:"status" validate:"required,min=1,max=50"`
	Emails []string `json:"emails" validate:"required,min=1,dive,email"`
}

type CreateRegistrationRequest struct {
	UserID              int64           `json:"user_id" validate:"required,gt=0"`
	QuestionnaireAnswer json.RawMessage `json:"questionnaire_answer"`
}

type ClubRequest struct {
	Name                string                        `json:"name" validate:"required,min=2,max=150"`
	Description         string                        `json:"description"`
	ShortDescription    string                        `json:"short_description" validate:"omitempty,max=300"`
	Logo                string                        `json:"logo"`
	Media               dbmodels.ClubMedia            `json:"media"`
	StartPeriod         *time.Time                    `json:"start_period"`
	EndPeriod           *time.Time                    `json:"end_period"`
	IsShow              bool                          `json:"is_show"`
	IsRegistrationOpen  bool                          `json:"is_registration_open"`
	RegistrationEndDate *time.Time                    `json:"registration_end_date"`
	RegistrationInfo    dbmodels.ClubRegistrationInfo `json:"registration_info"`
}

type UpdateClubRegistrationStatusRequest struct {
	Status string `json:"status" validate:"required,min=1,max=50"`
}

// BulkUpdateClubRegistrationStatusRequest mirrors the activity bulk
// update shape, keyed by club registration IDs.
type BulkUpdateClubRegistrationStatusRequest struct {
	Status          string  `json:"status" validate:"required,min=1,max=50"`
	RegistrationIDs []int64 `json:"registrations_id" validate:"required,min=1,dive,gt=0"`
}

type CreateClubRegistrationRequest struct {
	MemberID       int64           `json:"member_id" validate:"required,gt=0"`
	AdditionalData json.RawMessage `json:"additional_data"`
}

type AddYouTubeMediaRequest struct {
	MediaURL string `json:"media_url" validate:"required,url"`
}

type UpdateClubRegistrationInfoRequest struct {
	IsRegistrationOpen  bool                          `json:"is_registration_open"`
	RegistrationEndDate *time.Time                    `json:"registration_end_date"`
	RegistrationInfo    dbmodels.ClubRegistrationInfo `json:"registration_info"`
}

type CreateAchievementRequest struct {
	UserID          int64     `json:"user_id" validate:"required,gt=0"`
	Name            string    `json:"name" validate:"required,min=3,max=200"`
	Description     string    `json:"description"`
	AchievementDate time.Time `json:"achievement_date" validate:"required"`
	Type            int       `json:"type" validate:"required,oneof=1 2 3"`
	Score           int       `json:"score" validate:"gte=0"`
	Proof           string    `json:"proof"`
}

// ReviewAchievementRequest carries the reviewer verdict: 1 approves,
// 2 rejects. Score and remark, when present, replace the submitted
// values before aggregation.
type ReviewAchievementRequest struct {
	Status int     `json:"status" validate:"required,oneof=1 2"`
	Score  *int    `json:"score" validate:"omitempty,gte=0"`
	Remark *string `json:"remark" validate:"omitempty,max=500"`
}

// UpdateAchievementRequest edits submission fields. Status may be set
// directly; moving a pending submission to approved stamps the acting
// admin as approver but, unlike the review endpoint, never touches the
// leaderboard aggregates.
type UpdateAchievementRequest struct {
	Name            string    `json:"name" validate:"required,min=3,max=200"`
	Description     string    `json:"description"`
	AchievementDate time.Time `json:"achievement_date" validate:"required"`
	Type            int       `json:"type" validate:"required,oneof=1 2 3"`
	Score           int       `json:"score" validate:"gte=0"`
	Proof           string    `json:"proof"`
	Status          *int      `json:"status" validate:"omitempty,oneof=0 1 2"`
}

// UpdateRuangCurhatRequest moves a counseling request through its
// lifecycle: assign a handling admin, record the technique used, close
// it out.
type UpdateRuangCurhatRequest struct {
	Status          string `json:"status" validate:"omitempty,oneof=PENDING ON_PROGRESS DONE"`
	AdminUserID     *int64 `json:"admin_user_id" validate:"omitempty,gt=0"`
	HandlingTechnic string `json:"handling_technic" validate:"omitempty,max=150"`
}

type GenerateCertificatesRequest struct {
	ActivityID int64  `json:"activity_id" validate:"required,gt=0"`
	Status     string `json:"status" validate:"omitempty,max=50"`
}

type CertificateTemplateRequest struct {
	Name            string          `json:"name" validate:"required,min=2,max=150"`
	BackgroundImage string          `json:"background_image"`
	TemplateData    json.RawMessage `json:"template_data"`
	IsActive        *bool           `json:"is_active"`
}

type AttachCustomFormRequest struct {
	FeatureType string `json:"feature_type" validate:"required,oneof=activity_registration club_registration"`
	FeatureID   int64  `json:"feature_id" validate:"required,gt=0"`
}

type CustomFormRequest struct {
	FormName           string          `json:"form_name" validate:"required,min=2,max=150"`
	Description        string          `json:"description"`
	FeatureType        string          `json:"feature_type" validate:"omitempty,oneof=activity_registration club_registration"`
	FeatureID          *int64          `json:"feature_id" validate:"omitempty,gt=0"`
	FormSchema         json.RawMessage `json:"form_schema"`
	IsActive           *bool           `json:"is_active"`
	PostSubmissionInfo string          `json:"post_submission_info"`
}
