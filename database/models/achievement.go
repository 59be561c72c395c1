package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Achievement type codes.
const (
	AchievementTypeAcademic       = 1
	AchievementTypeCompetency     = 2
	AchievementTypeOrganizational = 3
)

// Achievement status codes.
const (
	AchievementStatusPending  = 0
	AchievementStatusApproved = 1
	AchievementStatusRejected = 2
)

type Achievement struct {
	bun.BaseModel `bun:"table:achievements,alias:ach"`

	ID              int64     `bun:"id,pk,autoincrement" json:"id"`
	UserID          int64     `bun:"user_id,notnull" json:"user_id"`
	Name            string    `bun:"name,notnull" json:"name"`
	Description     string    `bun:"description" json:"description"`
	AchievementDate time.Time `bun:"achievement_date,notnull" json:"achievement_date"`
	Type            int       `bun:"type,notnull" json:"type"`
	Score           int       `bun:"score,notnull,default:0" json:"score"`
	Proof           string    `bun:"proof" json:"proof"`
	Status          int       `bun:"status,notnull,default:0" json:"status"`
	Remark          string    `bun:"remark" json:"remark"`

	ApproverID int64     `bun:"approver_id,nullzero" json:"approver_id,omitempty"`
	ApprovedAt time.Time `bun:"approved_at,nullzero" json:"approved_at,omitempty"`

	Member   *Member    `bun:"rel:belongs-to,join:user_id=id" json:"member,omitempty"`
	Approver *AdminUser `bun:"rel:belongs-to,join:approver_id=id" json:"approver,omitempty"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull" json:"updated_at"`
}

// MonthBucket returns the first calendar day of the achievement's month,
// which keys the monthly leaderboard row. Buckets are resolved in UTC;
// the repository normalizes dates to UTC on write so a date near a month
// boundary lands in the same bucket regardless of the client's zone.
func (a *Achievement) MonthBucket() time.Time {
	d := a.AchievementDate.UTC()
	return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
}
