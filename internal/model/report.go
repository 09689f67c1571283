package model

import (
	"time"

	"github.com/google/uuid"
)

// Report is the persisted output of one assessment run. Evidence is stored
// verbatim so the score can be audited later.
type Report struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ProfileID  uuid.UUID `gorm:"type:uuid;index" json:"profile_id"`
	Profile    *Profile  `gorm:"foreignKey:ProfileID" json:"-"`
	Score      int       `gorm:"type:int" json:"score"`
	Preview    string    `gorm:"type:text" json:"preview"`
	FullReport string    `gorm:"type:text" json:"full_report"`
	Evidence   string    `gorm:"type:jsonb" json:"evidence"`
	CreatedAt  time.Time `json:"created_at"`
}
