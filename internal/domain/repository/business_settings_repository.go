package repository

import (
	"context"

	"github.com/guilhermelvc/karvagenda/internal/domain/entity"

	"gorm.io/gorm"
)

type BusinessSettingsRepository interface {
	Get(ctx context.Context, db *gorm.DB) (*entity.BusinessSettings, error)
	Save(ctx context.Context, db *gorm.DB, settings *entity.BusinessSettings) error
}
