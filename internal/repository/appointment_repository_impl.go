package repository

import (
	"context"
	"errors"
	"time"

	"github.com/guilhermelvc/karvagenda/internal/domain/entity"
	domainRepo "github.com/guilhermelvc/karvagenda/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error {
	return db.WithContext(ctx).Omit("Client", "Professional", "Service").Create(appointment).Error
}

func (r *appointmentRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.WithContext(ctx).
		Preload("Client").Preload("Professional").Preload("Service").
		Where("id = ?", id).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindAll(ctx context.Context, db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	query := db.WithContext(ctx)

	if filter != nil {
		if filter.StartAt != "" {
			query = query.Where("starts_at >= ?", filter.StartAt)
		}
		if filter.EndAt != "" {
			// EndAt is a date; include the whole day
			query = query.Where("starts_at < (?::date + interval '1 day')", filter.EndAt)
		}
		if filter.ProfessionalID != uuid.Nil {
			query = query.Where("professional_id = ?", filter.ProfessionalID)
		}
		if filter.ClientID != uuid.Nil {
			query = query.Where("client_id = ?", filter.ClientID)
		}
		if filter.Status != "" {
			query = query.Where("status = ?", filter.Status)
		}
	}

	err := query.
		Preload("Client").Preload("Professional").Preload("Service").
		Order("starts_at ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByProfessionalAndDateRange(ctx context.Context, db *gorm.DB, professionalID uuid.UUID, from, to time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.WithContext(ctx).
		Where("professional_id = ? AND starts_at >= ? AND starts_at < ?", professionalID, from, to).
		Order("starts_at ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// ExistsOverlapping reports whether a non-cancelled appointment of the
// professional occupies any part of [start, end). Serves as the storage-level
// backstop against double booking; excludeID skips the appointment being
// rescheduled.
func (r *appointmentRepository) ExistsOverlapping(ctx context.Context, db *gorm.DB, professionalID uuid.UUID, start, end time.Time, excludeID uuid.UUID) (bool, error) {
	var count int64
	query := db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("professional_id = ?", professionalID).
		Where("status != ?", entity.AppointmentStatusCancelled).
		Where("starts_at < ? AND starts_at + (duration_minutes * interval '1 minute') > ?", end, start)
	if excludeID != uuid.Nil {
		query = query.Where("id != ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *appointmentRepository) Update(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error {
	return db.WithContext(ctx).Omit("Client", "Professional", "Service").Save(appointment).Error
}

// UpdateStatus atomically moves an appointment from one status to another.
// Returns affected rows: 0 means the appointment was no longer in the
// expected state (prevents double-cancel and similar races).
func (r *appointmentRepository) UpdateStatus(ctx context.Context, db *gorm.DB, id uuid.UUID, from, to entity.AppointmentStatus) (int64, error) {
	result := db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Appointment{})
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) CountByStatus(ctx context.Context, db *gorm.DB, from, to time.Time) (map[entity.AppointmentStatus]int64, error) {
	type row struct {
		Status entity.AppointmentStatus
		Total  int64
	}
	var rows []row
	err := db.WithContext(ctx).Model(&entity.Appointment{}).
		Select("status, count(*) as total").
		Where("starts_at >= ? AND starts_at < ?", from, to).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[entity.AppointmentStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Total
	}
	return counts, nil
}

// Revenue sums the service price of completed appointments in [from, to).
func (r *appointmentRepository) Revenue(ctx context.Context, db *gorm.DB, from, to time.Time) (decimal.Decimal, error) {
	type row struct {
		Total decimal.Decimal
	}
	var result row
	err := db.WithContext(ctx).Model(&entity.Appointment{}).
		Select("coalesce(sum(services.price), 0) as total").
		Joins("JOIN services ON services.id = appointments.service_id").
		Where("appointments.status = ?", entity.AppointmentStatusCompleted).
		Where("appointments.starts_at >= ? AND appointments.starts_at < ?", from, to).
		Scan(&result).Error
	if err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

func (r *appointmentRepository) TopServices(ctx context.Context, db *gorm.DB, from, to time.Time, limit int) ([]entity.ServiceUsage, error) {
	var usages []entity.ServiceUsage
	err := db.WithContext(ctx).Model(&entity.Appointment{}).
		Select("services.id as service_id, services.name, count(*) as total, coalesce(sum(services.price), 0) as revenue").
		Joins("JOIN services ON services.id = appointments.service_id").
		Where("appointments.status != ?", entity.AppointmentStatusCancelled).
		Where("appointments.starts_at >= ? AND appointments.starts_at < ?", from, to).
		Group("services.id, services.name").
		Order("total DESC").
		Limit(limit).
		Scan(&usages).Error
	if err != nil {
		return nil, err
	}
	return usages, nil
}

func (r *appointmentRepository) AverageRating(ctx context.Context, db *gorm.DB, professionalID uuid.UUID) (float64, int64, error) {
	type row struct {
		Average float64
		Total   int64
	}
	var result row
	err := db.WithContext(ctx).Model(&entity.Appointment{}).
		Select("coalesce(avg(rating), 0) as average, count(rating) as total").
		Where("professional_id = ? AND rating IS NOT NULL", professionalID).
		Scan(&result).Error
	if err != nil {
		return 0, 0, err
	}
	return result.Average, result.Total, nil
}
