package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Activity additional_config mirrors the shape the registration UI reads:
// which profile fields are mandatory, any extra questionnaire entries, and
// the certificate template bound to this activity.
type ActivityConfig struct {
	CustomSelectionStatus   []string             `json:"custom_selection_status"`
	MandatoryProfileData    []MandatoryField     `json:"mandatory_profile_data"`
	AdditionalQuestionnaire []QuestionnaireField `json:"additional_questionnaire"`
	CertificateTemplateID   int64                `json:"certificate_template_id,omitempty"`
}

type MandatoryField struct {
	Name     string `json:"name"`
	Required bool   `json:"required"`
}

type QuestionnaireField struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Type  string `json:"type,omitempty"`
}

type Activity struct {
	bun.BaseModel `bun:"table:activities,alias:a"`

	ID           int64  `bun:"id,pk,autoincrement" json:"id"`
	Name         string `bun:"name,notnull" json:"name"`
	Slug         string `bun:"slug,notnull,unique" json:"slug"`
	Description  string `bun:"description" json:"description"`
	ActivityType int    `bun:"activity_type" json:"activity_type"`
	Category     int    `bun:"activity_category" json:"activity_category"`
	MinimumLevel int    `bun:"minimum_level,notnull,default:1" json:"minimum_level"`
	Badge        string `bun:"badge" json:"badge"`
	IsPublished  bool   `bun:"is_published,notnull,default:false" json:"is_published"`

	Images []string `bun:"images,type:jsonb" json:"images"`

	ActivityStart     time.Time `bun:"activity_start,nullzero" json:"activity_start,omitempty"`
	ActivityEnd       time.Time `bun:"activity_end,nullzero" json:"activity_end,omitempty"`
	RegistrationStart time.Time `bun:"registration_start,nullzero" json:"registration_start,omitempty"`
	RegistrationEnd   time.Time `bun:"registration_end,nullzero" json:"registration_end,omitempty"`
	SelectionStart    time.Time `bun:"selection_start,nullzero" json:"selection_start,omitempty"`
	SelectionEnd      time.Time `bun:"selection_end,nullzero" json:"selection_end,omitempty"`

	AdditionalConfig ActivityConfig `bun:"additional_config,type:jsonb" json:"additional_config"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull" json:"updated_at"`
}
