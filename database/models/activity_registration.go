package models

import (
	"encoding/json"
	"time"

	"github.com/uptrace/bun"
)

// Well-known registration statuses. The bulk-update paths deliberately
// accept any string so activities can define custom selection statuses in
// their additional_config; these are only the baseline values.
const (
	RegistrationStatusRegistered = "TERDAFTAR"
	RegistrationStatusGraduated  = "LULUS_KEGIATAN"
	RegistrationStatusFailed     = "TIDAK_LULUS"
)

type ActivityRegistration struct {
	bun.BaseModel `bun:"table:activity_registrations,alias:ar"`

	ID         int64  `bun:"id,pk,autoincrement" json:"id"`
	UserID     int64  `bun:"user_id,notnull" json:"user_id"`
	ActivityID int64  `bun:"activity_id,notnull" json:"activity_id"`
	Status     string `bun:"status,notnull" json:"status"`

	QuestionnaireAnswer json.RawMessage `bun:"questionnaire_answer,type:jsonb" json:"questionnaire_answer,omitempty"`

	Member   *Member   `bun:"rel:belongs-to,join:user_id=id" json:"member,omitempty"`
	Activity *Activity `bun:"rel:belongs-to,join:activity_id=id" json:"activity,omitempty"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull" json:"updated_at"`
}
