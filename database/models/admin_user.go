package models

import (
	"time"

	"github.com/uptrace/bun"
)

type AdminUser struct {
	bun.BaseModel `bun:"table:admin_users,alias:au"`

	ID           int64  `bun:"id,pk,autoincrement" json:"id"`
	Email        string `bun:"email,notnull,unique" json:"email"`
	Name         string `bun:"name,notnull" json:"name"`
	PasswordHash string `bun:"password_hash,notnull" json:"-"`
	Role         string `bun:"role,notnull,default:'admin'" json:"role"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull" json:"updated_at"`
}
