package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/adityarahmanda/careerisk/internal/apperrors"
	"github.com/adityarahmanda/careerisk/internal/dto"
	"github.com/adityarahmanda/careerisk/internal/model"
	"github.com/adityarahmanda/careerisk/internal/risk"
	"github.com/adityarahmanda/careerisk/internal/service"
	"github.com/adityarahmanda/careerisk/internal/util"
	"github.com/adityarahmanda/careerisk/internal/worker"
	"go.uber.org/zap"
)

const benchmarkTopK = 3

// ResearchUsecase owns the intake half of the pipeline: validate and enrich
// the submission, persist the profile, respond, and hand the slow research
// work to the background pool.
type ResearchUsecase struct {
	profiles   ProfileStore
	benchmarks BenchmarkStore
	provider   service.TextProvider
	analysis   *AnalysisUsecase
	pool       *worker.Pool
	log        *zap.Logger

	// EnrichTimeout bounds the optional LinkedIn and document calls;
	// ResearchTimeout bounds the mandatory research call.
	EnrichTimeout   time.Duration
	ResearchTimeout time.Duration
}

func NewResearchUsecase(profiles ProfileStore, benchmarks BenchmarkStore, provider service.TextProvider, analysis *AnalysisUsecase, pool *worker.Pool, log *zap.Logger) *ResearchUsecase {
	return &ResearchUsecase{
		profiles:        profiles,
		benchmarks:      benchmarks,
		provider:        provider,
		analysis:        analysis,
		pool:            pool,
		log:             log,
		EnrichTimeout:   60 * time.Second,
		ResearchTimeout: 5 * time.Minute,
	}
}

// Submit validates and enriches the intake, persists the profile and
// enqueues the research job. It returns as soon as the profile row exists;
// everything after that is background work the caller observes by polling.
func (uc *ResearchUsecase) Submit(ctx context.Context, req dto.ResearchRequest, userID *string) (string, error) {
	role := strings.TrimSpace(req.Role)
	if role == "" {
		return "", apperrors.Validation("role is required")
	}

	resume := util.Sanitize(req.Resume)

	if req.UploadedFile != nil {
		extracted := uc.resolveDocument(ctx, req.UploadedFile)
		if len(extracted) > len(resume) {
			resume = extracted
		}
	}

	var linkedIn *risk.LinkedInData
	if req.LinkedInURL != "" {
		linkedIn = uc.inferLinkedIn(ctx, req.LinkedInURL)
		if linkedIn != nil {
			resume = appendLinkedInMaterial(resume, linkedIn)
		}
	}

	taskHours, err := json.Marshal(req.Tasks)
	if err != nil {
		return "", apperrors.Validation("tasks must be a map of task name to weekly hours")
	}

	linkedInJSON := ""
	if linkedIn != nil {
		if raw, err := json.Marshal(linkedIn); err == nil {
			linkedInJSON = string(raw)
		}
	}

	profile := &model.Profile{
		UserID:       userID,
		Role:         util.Sanitize(role),
		Resume:       util.Sanitize(resume),
		TaskHours:    string(taskHours),
		ProfileData:  util.Sanitize(string(req.ProfileData)),
		LinkedInData: linkedInJSON,
		Status:       model.StatusProcessing,
	}
	if err := uc.profiles.Create(profile); err != nil {
		return "", apperrors.Persistence("failed to create profile", err)
	}

	profileID := profile.ID.String()
	if !uc.pool.Enqueue(func(jobCtx context.Context) {
		uc.runResearch(jobCtx, profileID)
	}) {
		// Queue saturated: the caller already has its id, so record the
		// failure where the poller's timeout will surface it.
		uc.markFailed(profile, "analysis queue is full")
	}

	return profileID, nil
}

// runResearch is the detached half of Submit. It must never panic or
// propagate: any failure is recorded on the profile row and the poller
// eventually times out.
func (uc *ResearchUsecase) runResearch(ctx context.Context, profileID string) {
	log := uc.log.With(zap.String("profile_id", profileID))

	profile, err := uc.profiles.FindByID(profileID)
	if err != nil {
		log.Error("profile vanished before research started", zap.Error(err))
		return
	}

	hours := parseTaskHours(profile.TaskHours)

	in := risk.ResearchInput{
		Role:             profile.Role,
		TaskHours:        hours,
		Resume:           profile.Resume,
		ProfileData:      profile.ProfileData,
		BenchmarkContext: uc.benchmarkContext(ctx, profile),
	}
	linkedIn := decodeLinkedIn(profile.LinkedInData)
	in.LinkedIn = linkedIn

	researchCtx, cancel := context.WithTimeout(ctx, uc.ResearchTimeout)
	defer cancel()

	text, err := uc.provider.GenerateText(researchCtx, risk.BuildResearchPrompt(in))
	if err != nil {
		log.Error("research call failed", zap.Error(err))
		uc.markFailed(profile, fmt.Sprintf("research call failed: %v", err))
		return
	}

	evidence, err := risk.ParseEvidence(text)
	if err != nil {
		log.Error("could not extract evidence from research response", zap.Error(err))
		uc.markFailed(profile, "research response could not be parsed")
		return
	}

	joinTaskHours(evidence, hours)
	evidence.LinkedIn = linkedIn

	if _, err := uc.analysis.Analyze(ctx, profileID, evidence); err != nil {
		log.Error("analysis failed", zap.Error(err))
		uc.markFailed(profile, fmt.Sprintf("analysis failed: %v", err))
	}
}

// resolveDocument turns an uploaded file into resume material. Plain text is
// used verbatim; anything else goes through a bounded-timeout inference call
// and degrades to a placeholder naming the file.
func (uc *ResearchUsecase) resolveDocument(ctx context.Context, file *dto.UploadedFile) string {
	if strings.HasPrefix(file.Type, "text/plain") {
		return util.Sanitize(file.Content)
	}

	docCtx, cancel := context.WithTimeout(ctx, uc.EnrichTimeout)
	defer cancel()

	text, err := uc.provider.GenerateText(docCtx, risk.BuildDocumentPrompt(file.Name, file.Type, util.Sanitize(file.Content)))
	if err != nil || strings.TrimSpace(text) == "" {
		uc.log.Warn("document inference failed, using placeholder",
			zap.String("file", file.Name), zap.Error(err))
		return fmt.Sprintf("Uploaded document: %s (content could not be read)", file.Name)
	}
	return util.Sanitize(text)
}

// inferLinkedIn asks the provider to summarize a public profile. Failures
// and timeouts never fail the submission.
func (uc *ResearchUsecase) inferLinkedIn(ctx context.Context, url string) *risk.LinkedInData {
	liCtx, cancel := context.WithTimeout(ctx, uc.EnrichTimeout)
	defer cancel()

	text, err := uc.provider.GenerateText(liCtx, risk.BuildLinkedInPrompt(url))
	if err != nil {
		uc.log.Warn("linkedin inference failed", zap.String("url", url), zap.Error(err))
		return nil
	}
	data, err := risk.ParseLinkedInData(text)
	if err != nil || data.CurrentTitle == "" {
		uc.log.Warn("linkedin response unusable", zap.String("url", url), zap.Error(err))
		return nil
	}
	return data
}

// benchmarkContext retrieves the nearest occupation benchmarks for the
// research prompt. Purely additive: any failure returns an empty context.
func (uc *ResearchUsecase) benchmarkContext(ctx context.Context, profile *model.Profile) string {
	embCtx, cancel := context.WithTimeout(ctx, uc.EnrichTimeout)
	defer cancel()

	embedding, err := uc.provider.GenerateEmbedding(embCtx, profile.Role+"\n"+profile.Resume)
	if err != nil {
		uc.log.Warn("benchmark embedding skipped", zap.Error(err))
		return ""
	}
	benchmarks, err := uc.benchmarks.Search(embedding, benchmarkTopK)
	if err != nil {
		uc.log.Warn("benchmark search failed", zap.Error(err))
		return ""
	}

	var sb strings.Builder
	for _, b := range benchmarks {
		sb.WriteString(fmt.Sprintf("- %s: %s\n", b.Occupation, b.Summary))
	}
	return sb.String()
}

func (uc *ResearchUsecase) markFailed(profile *model.Profile, reason string) {
	profile.Status = model.StatusFailed
	profile.AnalysisError = util.Sanitize(reason)
	if err := uc.profiles.Update(profile); err != nil {
		uc.log.Error("could not record analysis failure",
			zap.String("profile_id", profile.ID.String()), zap.Error(err))
	}
}

// appendLinkedInMaterial adds the inferred daily tasks, skills and career
// narrative to the resume text. Additive enrichment, never a replacement.
func appendLinkedInMaterial(resume string, data *risk.LinkedInData) string {
	var sb strings.Builder
	sb.WriteString(resume)
	if len(data.DailyTasks) > 0 {
		sb.WriteString("\n\nDaily tasks (from LinkedIn): ")
		sb.WriteString(strings.Join(data.DailyTasks, "; "))
	}
	if len(data.Skills) > 0 {
		sb.WriteString("\nSkills (from LinkedIn): ")
		sb.WriteString(strings.Join(data.Skills, ", "))
	}
	if data.CareerProgression != "" {
		sb.WriteString("\nCareer progression: ")
		sb.WriteString(data.CareerProgression)
	}
	return sb.String()
}

// joinTaskHours attaches the user's weekly hours to extracted task facts by
// case-insensitive name match. Facts the user never named keep the default
// weight of one hour.
func joinTaskHours(evidence *risk.Evidence, hours map[string]float64) {
	if len(hours) == 0 {
		return
	}
	lookup := make(map[string]float64, len(hours))
	for task, h := range hours {
		lookup[strings.ToLower(strings.TrimSpace(task))] = h
	}
	for i := range evidence.TaskFacts {
		if h, ok := lookup[strings.ToLower(strings.TrimSpace(evidence.TaskFacts[i].Task))]; ok && h > 0 {
			evidence.TaskFacts[i].Hours = h
		}
	}
}

func parseTaskHours(raw string) map[string]float64 {
	if raw == "" {
		return nil
	}
	var hours map[string]float64
	if err := json.Unmarshal([]byte(raw), &hours); err != nil {
		return nil
	}
	return hours
}

func decodeLinkedIn(raw string) *risk.LinkedInData {
	if raw == "" {
		return nil
	}
	var data risk.LinkedInData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil
	}
	return &data
}
