package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/adityarahmanda/careerisk/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// parseID mimics postgres: a malformed uuid is a query error, not an empty
// result.
func parseID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid input syntax for type uuid: %q", id)
	}
	return parsed, nil
}

// fakeProvider scripts text and embedding responses. The research prompt and
// the analysis prompt have distinct openings, so textFn can branch on content.
type fakeProvider struct {
	mu      sync.Mutex
	prompts []string
	textFn  func(prompt string) (string, error)
	embedFn func(text string) ([]float32, error)
}

func (f *fakeProvider) GenerateText(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if f.textFn == nil {
		return "", errors.New("no scripted text response")
	}
	return f.textFn(prompt)
}

func (f *fakeProvider) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if f.embedFn == nil {
		return nil, errors.New("no scripted embedding")
	}
	return f.embedFn(text)
}

func (f *fakeProvider) promptsSeen() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.prompts...)
}

func isResearchPrompt(p string) bool { return strings.Contains(p, "labor-market researcher") }
func isAnalysisPrompt(p string) bool { return strings.Contains(p, "career strategist") }

type fakeProfileStore struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]*model.Profile
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{profiles: make(map[uuid.UUID]*model.Profile)}
}

func (s *fakeProfileStore) Create(profile *model.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	clone := *profile
	s.profiles[profile.ID] = &clone
	return nil
}

func (s *fakeProfileStore) Update(profile *model.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[profile.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	clone := *profile
	s.profiles[profile.ID] = &clone
	return nil
}

func (s *fakeProfileStore) FindByID(id string) (*model.Profile, error) {
	parsed, err := parseID(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	profile, ok := s.profiles[parsed]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *profile
	return &clone, nil
}

func (s *fakeProfileStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.profiles)
}

type fakeReportStore struct {
	mu      sync.Mutex
	reports map[uuid.UUID]*model.Report

	// profileFor lets FindByIDWithProfile preload like the gorm repo does.
	profileFor func(profileID uuid.UUID) *model.Profile
}

func newFakeReportStore() *fakeReportStore {
	return &fakeReportStore{reports: make(map[uuid.UUID]*model.Report)}
}

func (s *fakeReportStore) Create(report *model.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	clone := *report
	s.reports[report.ID] = &clone
	return nil
}

func (s *fakeReportStore) FindByProfileID(profileID string) (*model.Report, error) {
	parsed, err := parseID(profileID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, report := range s.reports {
		if report.ProfileID == parsed {
			clone := *report
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeReportStore) FindByIDWithProfile(id string) (*model.Report, error) {
	parsed, err := parseID(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	report, ok := s.reports[parsed]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *report
	if s.profileFor != nil {
		clone.Profile = s.profileFor(report.ProfileID)
	}
	return &clone, nil
}

func (s *fakeReportStore) DeleteWithProfile(report *model.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reports[report.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.reports, report.ID)
	return nil
}

func (s *fakeReportStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reports)
}

type fakeBenchmarkStore struct {
	mu         sync.Mutex
	benchmarks []model.OccupationBenchmark
}

func (s *fakeBenchmarkStore) Upsert(benchmark *model.OccupationBenchmark) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.benchmarks {
		if s.benchmarks[i].Occupation == benchmark.Occupation {
			s.benchmarks[i] = *benchmark
			return nil
		}
	}
	s.benchmarks = append(s.benchmarks, *benchmark)
	return nil
}

func (s *fakeBenchmarkStore) Search(embedding []float32, topK int) ([]model.OccupationBenchmark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.benchmarks) > topK {
		return append([]model.OccupationBenchmark(nil), s.benchmarks[:topK]...), nil
	}
	return append([]model.OccupationBenchmark(nil), s.benchmarks...), nil
}

type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*model.User)}
}

func (s *fakeUserStore) Upsert(user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *user
	s.users[user.ID] = &clone
	return nil
}

func (s *fakeUserStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
	return nil
}
