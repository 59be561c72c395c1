package models

import (
	"encoding/json"
	"time"

	"github.com/uptrace/bun"
)

type CertificateTemplate struct {
	bun.BaseModel `bun:"table:certificate_templates,alias:ct"`

	ID              int64           `bun:"id,pk,autoincrement" json:"id"`
	Name            string          `bun:"name,notnull" json:"name"`
	BackgroundImage string          `bun:"background_image" json:"background_image"`
	TemplateData    json.RawMessage `bun:"template_data,type:jsonb" json:"template_data,omitempty"`
	IsActive        bool            `bun:"is_active,notnull,default:true" json:"is_active"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull" json:"updated_at"`
}
