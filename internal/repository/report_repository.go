package repository

import (
	"context"

	"github.com/nichenav/nichenav-api/internal/models"
	"gorm.io/gorm"
)

// ReportRepository defines data access for validation reports
type ReportRepository interface {
	Create(ctx context.Context, report *models.ValidationReport) error
	FindByID(ctx context.Context, id string) (*models.ValidationReport, error)
	ListByUser(ctx context.Context, userID uint) ([]models.ValidationReport, error)
	Count(ctx context.Context) (int64, error)
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *models.ValidationReport) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *reportRepository) FindByID(ctx context.Context, id string) (*models.ValidationReport, error) {
	var report models.ValidationReport
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&report).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) ListByUser(ctx context.Context, userID uint) ([]models.ValidationReport, error) {
	var reports []models.ValidationReport
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("generated_at DESC").
		Find(&reports).Error
	return reports, err
}

func (r *reportRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ValidationReport{}).Count(&count).Error
	return count, err
}
