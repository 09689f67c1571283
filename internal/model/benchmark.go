package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// OccupationBenchmark is a curated automation-risk summary for one
// occupation. Nearest benchmarks are retrieved by embedding similarity and
// injected into the research prompt as grounding context.
type OccupationBenchmark struct {
	ID         uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Occupation string          `gorm:"type:varchar(255);uniqueIndex" json:"occupation"`
	Summary    string          `gorm:"type:text" json:"summary"`
	Embedding  pgvector.Vector `gorm:"type:vector(3072)" json:"-"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func (b *OccupationBenchmark) TableName() string {
	return "occupation_benchmarks"
}
