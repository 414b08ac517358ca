package repository

import (
	"context"

	"github.com/guilhermelvc/karvagenda/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClientRepository interface {
	Create(ctx context.Context, db *gorm.DB, client *entity.Client) error
	FindAll(ctx context.Context, db *gorm.DB, search string, limit, offset int) ([]entity.Client, int64, error)
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Client, error)
	FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.Client, error)
	Update(ctx context.Context, db *gorm.DB, client *entity.Client) error
	Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error)
}
