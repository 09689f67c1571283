package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/adityarahmanda/careerisk/internal/apperrors"
	"github.com/adityarahmanda/careerisk/internal/model"
	"github.com/adityarahmanda/careerisk/internal/risk"
	"github.com/adityarahmanda/careerisk/internal/service"
	"github.com/adityarahmanda/careerisk/internal/util"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AnalysisUsecase turns evidence into a persisted report: build the analysis
// prompt, call the provider, split and sanitize the response, score, store.
type AnalysisUsecase struct {
	profiles ProfileStore
	reports  ReportStore
	provider service.TextProvider
	log      *zap.Logger

	// AnalysisTimeout bounds the report-writing call, which may involve
	// live web search and routinely takes minutes.
	AnalysisTimeout time.Duration
}

func NewAnalysisUsecase(profiles ProfileStore, reports ReportStore, provider service.TextProvider, log *zap.Logger) *AnalysisUsecase {
	return &AnalysisUsecase{
		profiles:        profiles,
		reports:         reports,
		provider:        provider,
		log:             log,
		AnalysisTimeout: 6 * time.Minute,
	}
}

func (uc *AnalysisUsecase) Analyze(ctx context.Context, profileID string, evidence *risk.Evidence) (string, error) {
	if _, err := uuid.Parse(profileID); err != nil {
		return "", apperrors.NotFound("profile not found")
	}

	profile, err := uc.profiles.FindByID(profileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.NotFound("profile not found")
		}
		return "", apperrors.Persistence("failed to load profile", err)
	}

	evidenceJSON, err := json.Marshal(evidence)
	if err != nil {
		return "", apperrors.Extraction("evidence is not serializable", err)
	}

	prompt := risk.BuildAnalysisPrompt(string(evidenceJSON), enhanceProfile(profile, evidence))

	analysisCtx, cancel := context.WithTimeout(ctx, uc.AnalysisTimeout)
	defer cancel()

	text, err := uc.provider.GenerateText(analysisCtx, prompt)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", apperrors.ProviderTimeout("analysis call timed out", err)
		}
		return "", apperrors.ProviderFailed("analysis call failed", err)
	}
	if strings.TrimSpace(text) == "" {
		return "", apperrors.EmptyResponse("provider returned an empty analysis")
	}

	preview, fullReport := risk.SplitReport(text)

	report := &model.Report{
		ProfileID:  profile.ID,
		Score:      risk.Score(evidence),
		Preview:    util.Sanitize(preview),
		FullReport: util.Sanitize(fullReport),
		Evidence:   string(evidenceJSON),
	}
	if err := uc.reports.Create(report); err != nil {
		return "", apperrors.Persistence("failed to create report", err)
	}

	profile.Status = model.StatusCompleted
	if err := uc.profiles.Update(profile); err != nil {
		// Report exists, so the run succeeded; the stale status only
		// costs an extra poll.
		uc.log.Warn("could not mark profile completed",
			zap.String("profile_id", profileID), zap.Error(err))
	}

	return report.ID.String(), nil
}

// enhanceProfile merges the profile's top-level fields with its profile_data
// and linkedin_data sidecars into the view the analysis prompt receives.
// Sidecars are free-form JSON, so fields are read leniently.
func enhanceProfile(profile *model.Profile, evidence *risk.Evidence) risk.EnhancedProfile {
	enhanced := risk.EnhancedProfile{
		Role:      profile.Role,
		Resume:    profile.Resume,
		TaskHours: parseTaskHours(profile.TaskHours),
	}

	if profile.ProfileData != "" {
		enhanced.YearsExperience = gjson.Get(profile.ProfileData, "yearsExperience").Float()
		enhanced.CompanySize = gjson.Get(profile.ProfileData, "companySize").String()
		enhanced.CareerCategory = gjson.Get(profile.ProfileData, "careerCategory").String()
		for _, skill := range gjson.Get(profile.ProfileData, "keySkills").Array() {
			enhanced.KeySkills = append(enhanced.KeySkills, skill.String())
		}
	}

	linkedIn := evidence.LinkedIn
	if linkedIn == nil {
		linkedIn = decodeLinkedIn(profile.LinkedInData)
	}
	if linkedIn != nil {
		if enhanced.YearsExperience == 0 {
			enhanced.YearsExperience = linkedIn.YearsExperience
		}
		enhanced.Industry = linkedIn.Industry
		enhanced.Education = linkedIn.Education
		enhanced.CareerProgression = linkedIn.CareerProgression
		if len(enhanced.KeySkills) == 0 {
			enhanced.KeySkills = linkedIn.Skills
		}
	}

	return enhanced
}
