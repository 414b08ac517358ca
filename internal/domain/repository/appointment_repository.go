package repository

import (
	"context"
	"time"

	"github.com/guilhermelvc/karvagenda/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindAll(ctx context.Context, db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error)
	FindByProfessionalAndDateRange(ctx context.Context, db *gorm.DB, professionalID uuid.UUID, from, to time.Time) ([]entity.Appointment, error)
	ExistsOverlapping(ctx context.Context, db *gorm.DB, professionalID uuid.UUID, start, end time.Time, excludeID uuid.UUID) (bool, error)
	Update(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error
	UpdateStatus(ctx context.Context, db *gorm.DB, id uuid.UUID, from, to entity.AppointmentStatus) (int64, error)
	Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error)
	CountByStatus(ctx context.Context, db *gorm.DB, from, to time.Time) (map[entity.AppointmentStatus]int64, error)
	Revenue(ctx context.Context, db *gorm.DB, from, to time.Time) (decimal.Decimal, error)
	TopServices(ctx context.Context, db *gorm.DB, from, to time.Time, limit int) ([]entity.ServiceUsage, error)
	AverageRating(ctx context.Context, db *gorm.DB, professionalID uuid.UUID) (float64, int64, error)
}
