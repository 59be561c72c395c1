package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Counseling request statuses.
const (
	RuangCurhatStatusPending    = "PENDING"
	RuangCurhatStatusInProgress = "ON_PROGRESS"
	RuangCurhatStatusDone       = "DONE"
)

// RuangCurhat is a counseling request a member files for a private
// session. An admin picks it up, works it and closes it; the assigned
// admin is recorded on the row.
type RuangCurhat struct {
	bun.BaseModel `bun:"table:ruang_curhats,alias:rc"`

	ID          int64 `bun:"id,pk,autoincrement" json:"id"`
	UserID      int64 `bun:"user_id,notnull" json:"user_id"`
	AdminUserID int64 `bun:"admin_user_id,nullzero" json:"admin_user_id,omitempty"`

	ProblemOwnership   string `bun:"problem_ownership" json:"problem_ownership"`
	ProblemCategory    string `bun:"problem_category" json:"problem_category"`
	ProblemDescription string `bun:"problem_description" json:"problem_description"`
	HandlingTechnic    string `bun:"handling_technic" json:"handling_technic"`
	Status             string `bun:"status,notnull,default:'PENDING'" json:"status"`

	Member    *Member    `bun:"rel:belongs-to,join:user_id=id" json:"member,omitempty"`
	AdminUser *AdminUser `bun:"rel:belongs-to,join:admin_user_id=id" json:"admin_user,omitempty"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull" json:"updated_at"`
}
