package model

import (
	"time"

	"github.com/google/uuid"
)

// Profile statuses visible to the polling client.
const (
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Profile is one submitted assessment run. UserID is nil for anonymous
// submissions. The row is created once at intake and only touched again to
// record the outcome of the background analysis.
type Profile struct {
	ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID        *string   `gorm:"type:varchar(255);index" json:"user_id"`
	Role          string    `gorm:"type:varchar(255)" json:"role"`
	Resume        string    `gorm:"type:text" json:"resume"`
	TaskHours     string    `gorm:"type:jsonb" json:"task_hours"`
	ProfileData   string    `gorm:"type:jsonb" json:"profile_data"`
	LinkedInData  string    `gorm:"type:jsonb" json:"linkedin_data"`
	Status        string    `gorm:"type:varchar(50)" json:"status"` // processing, completed, failed
	AnalysisError string    `gorm:"type:text" json:"analysis_error"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
