package repository

import (
	"context"

	"github.com/guilhermelvc/karvagenda/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfessionalRepository interface {
	Create(ctx context.Context, db *gorm.DB, professional *entity.Professional) error
	FindAll(ctx context.Context, db *gorm.DB, specialty string) ([]entity.Professional, error)
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Professional, error)
	FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.Professional, error)
	Update(ctx context.Context, db *gorm.DB, professional *entity.Professional) error
	Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error)
}
