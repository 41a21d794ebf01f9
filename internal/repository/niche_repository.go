package repository

import (
	"context"

	"github.com/nichenav/nichenav-api/internal/models"
	"gorm.io/gorm"
)

// NicheRepository defines data access for niche analyses. Each save is an
// independent write; there are no cross-record transactions.
type NicheRepository interface {
	Create(ctx context.Context, analysis *models.NicheAnalysis) error
	FindByID(ctx context.Context, id string) (*models.NicheAnalysis, error)
	ListByUser(ctx context.Context, userID uint) ([]models.NicheAnalysis, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
}

type nicheRepository struct {
	db *gorm.DB
}

// NewNicheRepository creates a new niche repository
func NewNicheRepository(db *gorm.DB) NicheRepository {
	return &nicheRepository{db: db}
}

func (r *nicheRepository) Create(ctx context.Context, analysis *models.NicheAnalysis) error {
	return r.db.WithContext(ctx).Create(analysis).Error
}

func (r *nicheRepository) FindByID(ctx context.Context, id string) (*models.NicheAnalysis, error) {
	var analysis models.NicheAnalysis
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&analysis).Error
	if err != nil {
		return nil, err
	}
	return &analysis, nil
}

func (r *nicheRepository) ListByUser(ctx context.Context, userID uint) ([]models.NicheAnalysis, error) {
	var analyses []models.NicheAnalysis
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&analyses).Error
	return analyses, err
}

func (r *nicheRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.NicheAnalysis{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
