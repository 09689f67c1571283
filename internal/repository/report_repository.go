package repository

import (
	"github.com/adityarahmanda/careerisk/internal/model"
	"gorm.io/gorm"
)

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db}
}

func (r *ReportRepository) Create(report *model.Report) error {
	return r.db.Create(report).Error
}

func (r *ReportRepository) FindByProfileID(profileID string) (*model.Report, error) {
	var report model.Report
	err := r.db.First(&report, "profile_id = ?", profileID).Error
	return &report, err
}

func (r *ReportRepository) FindByIDWithProfile(id string) (*model.Report, error) {
	var report model.Report
	err := r.db.Preload("Profile").First(&report, "id = ?", id).Error
	return &report, err
}

// DeleteWithProfile removes a report and its owning profile in one
// transaction. The ownership check happens in the usecase before this.
func (r *ReportRepository) DeleteWithProfile(report *model.Report) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.Report{}, "id = ?", report.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Profile{}, "id = ?", report.ProfileID).Error
	})
}
