package usecase

import "github.com/adityarahmanda/careerisk/internal/model"

// Store interfaces are declared on the consumer side so usecases can be
// tested against fakes; the gorm repositories satisfy them.

type ProfileStore interface {
	Create(profile *model.Profile) error
	Update(profile *model.Profile) error
	FindByID(id string) (*model.Profile, error)
}

type ReportStore interface {
	Create(report *model.Report) error
	FindByProfileID(profileID string) (*model.Report, error)
	FindByIDWithProfile(id string) (*model.Report, error)
	DeleteWithProfile(report *model.Report) error
}

type BenchmarkStore interface {
	Upsert(benchmark *model.OccupationBenchmark) error
	Search(embedding []float32, topK int) ([]model.OccupationBenchmark, error)
}

type UserStore interface {
	Upsert(user *model.User) error
	Delete(id string) error
}
