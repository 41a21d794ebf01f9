package repository

import (
	"context"
	"errors"

	"github.com/nichenav/nichenav-api/internal/models"
	"gorm.io/gorm"
)

// SettingRepository stores the single-row generative model configuration
type SettingRepository interface {
	Get(ctx context.Context) (*models.AISetting, error)
	Save(ctx context.Context, setting *models.AISetting) error
}

type settingRepository struct {
	db *gorm.DB
}

// NewSettingRepository creates a new setting repository
func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

// Get returns the stored configuration, falling back to defaults when the
// row does not exist yet. Callers receive a usable setting either way.
func (r *settingRepository) Get(ctx context.Context) (*models.AISetting, error) {
	var setting models.AISetting
	err := r.db.WithContext(ctx).First(&setting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.DefaultAISetting(), nil
		}
		return nil, err
	}
	return &setting, nil
}

func (r *settingRepository) Save(ctx context.Context, setting *models.AISetting) error {
	return r.db.WithContext(ctx).Save(setting).Error
}
