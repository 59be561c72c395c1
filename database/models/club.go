package models

import (
	"encoding/json"
	"time"

	"github.com/uptrace/bun"
)

const ClubRegistrationStatusPending = "PENDING"

type MediaItem struct {
	MediaURL    string `json:"media_url"`
	MediaType   string `json:"media_type"`
	VideoSource string `json:"video_source,omitempty"`
}

type ClubMedia struct {
	Items []MediaItem `json:"items"`
}

type ClubRegistrationInfo struct {
	RegistrationInfo      string `json:"registration_info"`
	AfterRegistrationInfo string `json:"after_registration_info"`
}

type Club struct {
	bun.BaseModel `bun:"table:clubs,alias:c"`

	ID               int64     `bun:"id,pk,autoincrement" json:"id"`
	Name             string    `bun:"name,notnull" json:"name"`
	Description      string    `bun:"description" json:"description"`
	ShortDescription string    `bun:"short_description" json:"short_description"`
	Logo             string    `bun:"logo" json:"logo"`
	Media            ClubMedia `bun:"media,type:jsonb" json:"media"`

	StartPeriod time.Time `bun:"start_period,nullzero" json:"start_period,omitempty"`
	EndPeriod   time.Time `bun:"end_period,nullzero" json:"end_period,omitempty"`
	IsShow      bool      `bun:"is_show,notnull,default:true" json:"is_show"`

	IsRegistrationOpen  bool                 `bun:"is_registration_open,notnull,default:false" json:"is_registration_open"`
	RegistrationEndDate time.Time            `bun:"registration_end_date,nullzero" json:"registration_end_date,omitempty"`
	RegistrationInfo    ClubRegistrationInfo `bun:"registration_info,type:jsonb" json:"registration_info"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull" json:"updated_at"`
}

type ClubRegistration struct {
	bun.BaseModel `bun:"table:club_registrations,alias:cr"`

	ID       int64  `bun:"id,pk,autoincrement" json:"id"`
	ClubID   int64  `bun:"club_id,notnull" json:"club_id"`
	MemberID int64  `bun:"member_id,notnull" json:"member_id"`
	Status   string `bun:"status,notnull" json:"status"`

	AdditionalData json.RawMessage `bun:"additional_data,type:jsonb" json:"additional_data,omitempty"`

	Member *Member `bun:"rel:belongs-to,join:member_id=id" json:"member,omitempty"`
	Club   *Club   `bun:"rel:belongs-to,join:club_id=id" json:"club,omitempty"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull" json:"updated_at"`
}
