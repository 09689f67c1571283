package repository

import (
	"github.com/adityarahmanda/careerisk/internal/model"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BenchmarkRepository struct {
	db *gorm.DB
}

func NewBenchmarkRepository(db *gorm.DB) *BenchmarkRepository {
	return &BenchmarkRepository{db}
}

func (r *BenchmarkRepository) Upsert(benchmark *model.OccupationBenchmark) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "occupation"}},
		DoUpdates: clause.AssignmentColumns([]string{"summary", "embedding", "updated_at"}),
	}).Create(benchmark).Error
}

// Search returns the topK benchmarks nearest to the given embedding.
func (r *BenchmarkRepository) Search(embedding []float32, topK int) ([]model.OccupationBenchmark, error) {
	var benchmarks []model.OccupationBenchmark
	vec := pgvector.NewVector(embedding)
	err := r.db.Raw(`
        SELECT *, embedding <-> ? AS distance
        FROM occupation_benchmarks
        ORDER BY embedding <-> ?
        LIMIT ?
    `, vec, vec, topK).Scan(&benchmarks).Error
	return benchmarks, err
}
