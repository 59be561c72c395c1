package models

import (
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// Member is a public user of the platform. Profile data lives in a
// separate row keyed by user_id.
type Member struct {
	bun.BaseModel `bun:"table:public_users,alias:pu"`

	ID           int64  `bun:"id,pk,autoincrement" json:"id"`
	Email        string `bun:"email,notnull,unique" json:"email"`
	PasswordHash string `bun:"password_hash,notnull" json:"-"`
	MemberID     string `bun:"member_id" json:"member_id"`

	Profile *Profile `bun:"rel:has-one,join:id=user_id" json:"profile,omitempty"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull" json:"updated_at"`
}

// FormatMemberID renders the human-readable member number from the
// internal integer ID: an 8-digit zero-padded sequential number, good for
// up to 99,999,999 members.
func FormatMemberID(id int64) string {
	return fmt.Sprintf("%08d", id)
}

type Profile struct {
	bun.BaseModel `bun:"table:profiles,alias:p"`

	ID         int64    `bun:"id,pk,autoincrement" json:"id"`
	UserID     int64    `bun:"user_id,notnull,unique" json:"user_id"`
	Name       string   `bun:"name,notnull" json:"name"`
	Gender     string   `bun:"gender" json:"gender"`
	Whatsapp   string   `bun:"whatsapp" json:"whatsapp"`
	PersonalID string   `bun:"personal_id" json:"personal_id"`
	University string   `bun:"university" json:"university"`
	Major      string   `bun:"major" json:"major"`
	IntakeYear int      `bun:"intake_year" json:"intake_year"`
	Level      int      `bun:"level,notnull,default:1" json:"level"`
	Badges     BadgeSet `bun:"badges,type:jsonb" json:"badges"`

	BirthDate time.Time `bun:"birth_date,nullzero" json:"birth_date,omitempty"`

	Member *Member `bun:"rel:belongs-to,join:user_id=id" json:"member,omitempty"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull" json:"updated_at"`
}
