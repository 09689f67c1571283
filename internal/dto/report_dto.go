package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type ReportDTO struct {
	ID         uuid.UUID       `json:"id"`
	ProfileID  uuid.UUID       `json:"profile_id"`
	Score      int             `json:"score"`
	Preview    string          `json:"preview"`
	FullReport string          `json:"full_report"`
	Evidence   json.RawMessage `json:"evidence"`
	CreatedAt  time.Time       `json:"created_at"`
}
