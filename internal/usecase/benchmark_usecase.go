package usecase

import (
	"context"

	"github.com/adityarahmanda/careerisk/internal/apperrors"
	"github.com/adityarahmanda/careerisk/internal/model"
	"github.com/adityarahmanda/careerisk/internal/service"
	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"
)

// BenchmarkSeed is one occupation summary to embed and store.
type BenchmarkSeed struct {
	Occupation string `json:"occupation"`
	Summary    string `json:"summary"`
}

// defaultBenchmarks bootstraps an empty table so benchmark retrieval has
// something to return before an operator loads a curated set.
var defaultBenchmarks = []BenchmarkSeed{
	{
		Occupation: "Marketing Manager",
		Summary:    "Campaign planning and performance reporting are increasingly drafted by generative tools; creative direction and stakeholder management remain human-led. Moderate exposure over a 3-5 year horizon.",
	},
	{
		Occupation: "Customer Support Representative",
		Summary:    "Tier-1 ticket resolution is heavily automated by LLM chatbots already deployed at scale; escalation handling and retention conversations persist. High exposure over a 1-3 year horizon.",
	},
	{
		Occupation: "Software Engineer",
		Summary:    "Code generation assistants automate boilerplate and routine fixes; system design, code review and incident response remain human-led. Moderate exposure over a 3-7 year horizon.",
	},
	{
		Occupation: "Registered Nurse",
		Summary:    "Documentation and scheduling are automatable; hands-on patient care is not. Low exposure over a 10+ year horizon.",
	},
}

// BenchmarkUsecase maintains the occupation-benchmark table used as
// retrieval context for the research prompt.
type BenchmarkUsecase struct {
	benchmarks BenchmarkStore
	provider   service.TextProvider
	log        *zap.Logger
}

func NewBenchmarkUsecase(benchmarks BenchmarkStore, provider service.TextProvider, log *zap.Logger) *BenchmarkUsecase {
	return &BenchmarkUsecase{benchmarks: benchmarks, provider: provider, log: log}
}

// Seed embeds and upserts the given benchmarks, falling back to the built-in
// defaults when none are supplied. Returns the number stored.
func (uc *BenchmarkUsecase) Seed(ctx context.Context, seeds []BenchmarkSeed) (int, error) {
	if len(seeds) == 0 {
		seeds = defaultBenchmarks
	}

	stored := 0
	for _, seed := range seeds {
		if seed.Occupation == "" || seed.Summary == "" {
			continue
		}
		embedding, err := uc.provider.GenerateEmbedding(ctx, seed.Occupation+"\n"+seed.Summary)
		if err != nil {
			return stored, apperrors.ProviderFailed("embedding failed for "+seed.Occupation, err)
		}
		benchmark := &model.OccupationBenchmark{
			Occupation: seed.Occupation,
			Summary:    seed.Summary,
			Embedding:  pgvector.NewVector(embedding),
		}
		if err := uc.benchmarks.Upsert(benchmark); err != nil {
			return stored, apperrors.Persistence("failed to store benchmark "+seed.Occupation, err)
		}
		stored++
	}
	uc.log.Info("benchmarks seeded", zap.Int("count", stored))
	return stored, nil
}
