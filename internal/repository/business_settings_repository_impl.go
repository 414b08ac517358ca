package repository

import (
	"context"
	"errors"

	"github.com/guilhermelvc/karvagenda/internal/domain/entity"
	domainRepo "github.com/guilhermelvc/karvagenda/internal/domain/repository"

	"gorm.io/gorm"
)

type businessSettingsRepository struct{}

func NewBusinessSettingsRepository() domainRepo.BusinessSettingsRepository {
	return &businessSettingsRepository{}
}

// Get returns the single settings row, or nil when none has been saved yet.
func (r *businessSettingsRepository) Get(ctx context.Context, db *gorm.DB) (*entity.BusinessSettings, error) {
	var settings entity.BusinessSettings
	err := db.WithContext(ctx).Order("id ASC").First(&settings).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &settings, nil
}

func (r *businessSettingsRepository) Save(ctx context.Context, db *gorm.DB, settings *entity.BusinessSettings) error {
	return db.WithContext(ctx).Save(settings).Error
}
