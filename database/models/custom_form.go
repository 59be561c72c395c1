package models

import (
	"encoding/json"
	"time"

	"github.com/uptrace/bun"
)

// Feature types a custom form can attach to.
const (
	FeatureActivityRegistration = "activity_registration"
	FeatureClubRegistration     = "club_registration"
)

// CustomForm is a dynamically configurable registration form. FeatureID is
// nullable: a form with no feature is "unattached" and can later be bound
// to one club or one activity.
type CustomForm struct {
	bun.BaseModel `bun:"table:custom_forms,alias:cf"`

	ID          int64  `bun:"id,pk,autoincrement" json:"id"`
	FormName    string `bun:"form_name,notnull" json:"form_name"`
	Description string `bun:"description" json:"description"`
	FeatureType string `bun:"feature_type" json:"feature_type"`
	FeatureID   *int64 `bun:"feature_id,nullzero" json:"feature_id"`

	FormSchema json.RawMessage `bun:"form_schema,type:jsonb" json:"form_schema,omitempty"`
	IsActive   bool            `bun:"is_active,notnull,default:true" json:"is_active"`

	PostSubmissionInfo string `bun:"post_submission_info" json:"post_submission_info"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull" json:"updated_at"`
}
