package models

import (
	"time"

	"github.com/uptrace/bun"
)

// MonthlyLeaderboard is a denormalized per-month running total of approved
// achievement scores, one row per (user, month). Rows are created lazily on
// first approval; the (user_id, month) pair must carry a unique constraint
// so concurrent first approvals cannot both insert.
type MonthlyLeaderboard struct {
	bun.BaseModel `bun:"table:monthly_leaderboards,alias:ml"`

	ID     int64     `bun:"id,pk,autoincrement" json:"id"`
	UserID int64     `bun:"user_id,notnull" json:"user_id"`
	Month  time.Time `bun:"month,notnull" json:"month"`

	ScoreAcademic       int `bun:"score_academic,notnull,default:0" json:"score_academic"`
	ScoreCompetency     int `bun:"score_competency,notnull,default:0" json:"score_competency"`
	ScoreOrganizational int `bun:"score_organizational,notnull,default:0" json:"score_organizational"`
	Score               int `bun:"score,notnull,default:0" json:"score"`

	Member *Member `bun:"rel:belongs-to,join:user_id=id" json:"member,omitempty"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull" json:"updated_at"`
}

// LifetimeLeaderboard is the all-time counterpart, one row per user.
type LifetimeLeaderboard struct {
	bun.BaseModel `bun:"table:lifetime_leaderboards,alias:ll"`

	ID     int64 `bun:"id,pk,autoincrement" json:"id"`
	UserID int64 `bun:"user_id,notnull,unique" json:"user_id"`

	ScoreAcademic       int `bun:"score_academic,notnull,default:0" json:"score_academic"`
	ScoreCompetency     int `bun:"score_competency,notnull,default:0" json:"score_competency"`
	ScoreOrganizational int `bun:"score_organizational,notnull,default:0" json:"score_organizational"`
	Score               int `bun:"score,notnull,default:0" json:"score"`

	Member *Member `bun:"rel:belongs-to,join:user_id=id" json:"member,omitempty"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull" json:"updated_at"`
}

// AddScore folds an achievement score into the category subtotal matching
// the achievement type, and into the row total.
func (m *MonthlyLeaderboard) AddScore(achievementType, score int) {
	switch achievementType {
	case AchievementTypeAcademic:
		m.ScoreAcademic += score
	case AchievementTypeCompetency:
		m.ScoreCompetency += score
	case AchievementTypeOrganizational:
		m.ScoreOrganizational += score
	}
	m.Score += score
}

func (l *LifetimeLeaderboard) AddScore(achievementType, score int) {
	switch achievementType {
	case AchievementTypeAcademic:
		l.ScoreAcademic += score
	case AchievementTypeCompetency:
		l.ScoreCompetency += score
	case AchievementTypeOrganizational:
		l.ScoreOrganizational += score
	}
	l.Score += score
}
