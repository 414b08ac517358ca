package repository

import (
	"context"

	"github.com/guilhermelvc/karvagenda/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ServiceRepository interface {
	Create(ctx context.Context, db *gorm.DB, service *entity.Service) error
	FindAll(ctx context.Context, db *gorm.DB, category string, activeOnly bool, limit, offset int) ([]entity.Service, int64, error)
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Service, error)
	Update(ctx context.Context, db *gorm.DB, service *entity.Service) error
	Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error)
}
