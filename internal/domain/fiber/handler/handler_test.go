package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/adityarahmanda/careerisk/internal/middleware"
	"github.com/adityarahmanda/careerisk/internal/model"
	"github.com/adityarahmanda/careerisk/internal/usecase"
	"github.com/adityarahmanda/careerisk/internal/worker"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// fakeTextProvider scripts provider responses for handler tests.
type fakeTextProvider struct {
	textFn  func(prompt string) (string, error)
	embedFn func(text string) ([]float32, error)
}

func (f *fakeTextProvider) GenerateText(ctx context.Context, prompt string) (string, error) {
	if f.textFn == nil {
		return "", errors.New("no scripted text response")
	}
	return f.textFn(prompt)
}

func (f *fakeTextProvider) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if f.embedFn == nil {
		return nil, errors.New("no scripted embedding")
	}
	return f.embedFn(text)
}

type memProfiles struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]*model.Profile
}

func newMemProfiles() *memProfiles {
	return &memProfiles{profiles: make(map[uuid.UUID]*model.Profile)}
}

func (s *memProfiles) Create(profile *model.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	clone := *profile
	s.profiles[profile.ID] = &clone
	return nil
}

func (s *memProfiles) Update(profile *model.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[profile.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	clone := *profile
	s.profiles[profile.ID] = &clone
	return nil
}

// parseStoreID mimics postgres: a malformed uuid fails the query instead of
// returning an empty result.
func parseStoreID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid input syntax for type uuid: %q", id)
	}
	return parsed, nil
}

func (s *memProfiles) FindByID(id string) (*model.Profile, error) {
	parsed, err := parseStoreID(id)
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

func (s *memProfiles) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.profiles)
}

type memReports struct {
	mu       sync.Mutex
	reports  map[uuid.UUID]*model.Report
	profiles *memProfiles
}

func newMemReports(profiles *memProfiles) *memReports {
	return &memReports{reports: make(map[uuid.UUID]*model.Report), profiles: profiles}
}

func (s *memReports) Create(report *model.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	clone := *report
	s.reports[report.ID] = &clone
	return nil
}

func (s *memReports) FindByProfileID(profileID string) (*model.Report, error) {
	parsed, err := parseStoreID(profileID)
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

func (s *memReports) FindByIDWithProfile(id string) (*model.Report, error) {
	parsed, err := parseStoreID(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	report, ok := s.reports[parsed]
	s.mu.Unlock()
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *report
	clone.Profile, _ = s.profiles.FindByID(report.ProfileID.String())
	return &clone, nil
}

func (s *memReports) DeleteWithProfile(report *model.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reports[report.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.reports, report.ID)
	return nil
}

func (s *memReports) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reports)
}

type memBenchmarks struct {
	mu         sync.Mutex
	benchmarks []model.OccupationBenchmark
}

func (s *memBenchmarks) Upsert(benchmark *model.OccupationBenchmark) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.benchmarks = append(s.benchmarks, *benchmark)
	return nil
}

func (s *memBenchmarks) Search(embedding []float32, topK int) ([]model.OccupationBenchmark, error) {
	return nil, nil
}

type memUsers struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newMemUsers() *memUsers {
	return &memUsers{users: make(map[string]*model.User)}
}

func (s *memUsers) Upsert(user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *user
	s.users[user.ID] = &clone
	return nil
}

func (s *memUsers) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
	return nil
}

// authAs stubs the session middleware: every request carries this identity.
func authAs(userID string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if userID != "" {
			c.Locals(middleware.UserIDKey, userID)
		}
		return c.Next()
	}
}

type testApp struct {
	app      *fiber.App
	profiles *memProfiles
	reports  *memReports
}

// newTestApp wires the full handler stack over in-memory stores and a
// scripted provider, with the session middleware stubbed to authUser.
func newTestApp(t *testing.T, provider *fakeTextProvider, authUser string) *testApp {
	t.Helper()
	log := zap.NewNop()
	profiles := newMemProfiles()
	reports := newMemReports(profiles)

	pool := worker.NewPool(2, 8, log)
	ctx, cancel := context.WithCancel(context.Background())
	pool.Start(ctx)
	t.Cleanup(func() {
		shutdownCtx, done := context.WithTimeout(context.Background(), time.Second)
		defer done()
		_ = pool.Shutdown(shutdownCtx)
		cancel()
	})

	analysis := usecase.NewAnalysisUsecase(profiles, reports, provider, log)
	research := usecase.NewResearchUsecase(profiles, &memBenchmarks{}, provider, analysis, pool, log)
	reportUC := usecase.NewReportUsecase(reports, log)

	app := fiber.New()
	NewAssessmentHandler(research, analysis, reportUC).RegisterRoutes(app, authAs(authUser), authAs(authUser))
	return &testApp{app: app, profiles: profiles, reports: reports}
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return req
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

// pollReport retries GET /reports/:profileId until the background pipeline
// finishes, the way a real client does.
func pollReport(t *testing.T, app *fiber.App, profileID string) string {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/reports/"+profileID, nil))
		require.NoError(t, err)
		body := readBody(t, resp)
		if resp.StatusCode == http.StatusOK {
			return body
		}
		require.Equal(t, http.StatusNotFound, resp.StatusCode, "unexpected poll response: %s", body)
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("report never became available")
	return ""
}
