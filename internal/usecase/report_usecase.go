package usecase

import (
	"errors"

	"github.com/adityarahmanda/careerisk/internal/apperrors"
	"github.com/adityarahmanda/careerisk/internal/dto"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ReportUsecase serves the read and delete side of the report store.
type ReportUsecase struct {
	reports ReportStore
	log     *zap.Logger
}

func NewReportUsecase(reports ReportStore, log *zap.Logger) *ReportUsecase {
	return &ReportUsecase{reports: reports, log: log}
}

// GetByProfileID returns the report for a profile, or NotFound while the
// background pipeline has not produced one yet. The polling client treats
// NotFound as "not ready".
func (uc *ReportUsecase) GetByProfileID(profileID string) (*dto.ReportDTO, error) {
	// Path params reach the uuid column; postgres fails the cast on
	// malformed input, so reject it here as a plain not-found.
	if _, err := uuid.Parse(profileID); err != nil {
		return nil, apperrors.NotFound("report not found")
	}

	report, err := uc.reports.FindByProfileID(profileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("report not found")
		}
		return nil, apperrors.Persistence("failed to load report", err)
	}
	return &dto.ReportDTO{
		ID:         report.ID,
		ProfileID:  report.ProfileID,
		Score:      report.Score,
		Preview:    report.Preview,
		FullReport: report.FullReport,
		Evidence:   []byte(report.Evidence),
		CreatedAt:  report.CreatedAt,
	}, nil
}

// Delete removes a report and its owning profile after verifying the
// requester owns that profile. Anonymous profiles have no owner and cannot
// be deleted through the API.
func (uc *ReportUsecase) Delete(reportID, requesterID string) error {
	if requesterID == "" {
		return apperrors.Unauthorized("authentication required")
	}
	if _, err := uuid.Parse(reportID); err != nil {
		return apperrors.NotFound("report not found")
	}

	report, err := uc.reports.FindByIDWithProfile(reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("report not found")
		}
		return apperrors.Persistence("failed to load report", err)
	}

	if report.Profile == nil || report.Profile.UserID == nil || *report.Profile.UserID != requesterID {
		return apperrors.Forbidden("you do not own this report")
	}

	if err := uc.reports.DeleteWithProfile(report); err != nil {
		return apperrors.Persistence("failed to delete report", err)
	}
	uc.log.Info("report deleted",
		zap.String("report_id", reportID),
		zap.String("user_id", requesterID))
	return nil
}
