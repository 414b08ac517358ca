package repository

import (
	"context"
	"errors"

	"github.com/guilhermelvc/karvagenda/internal/domain/entity"
	domainRepo "github.com/guilhermelvc/karvagenda/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type professionalRepository struct{}

func NewProfessionalRepository() domainRepo.ProfessionalRepository {
	return &professionalRepository{}
}

func (r *professionalRepository) Create(ctx context.Context, db *gorm.DB, professional *entity.Professional) error {
	return db.WithContext(ctx).Create(professional).Error
}

func (r *professionalRepository) FindAll(ctx context.Context, db *gorm.DB, specialty string) ([]entity.Professional, error) {
	var professionals []entity.Professional
	query := db.WithContext(ctx)
	if specialty != "" {
		query = query.Where("specialty ILIKE ?", "%"+specialty+"%")
	}
	err := query.Order("name ASC").Find(&professionals).Error
	if err != nil {
		return nil, err
	}
	return professionals, nil
}

func (r *professionalRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Professional, error) {
	var professional entity.Professional
	err := db.WithContext(ctx).Where("id = ?", id).First(&professional).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &professional, nil
}

func (r *professionalRepository) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.Professional, error) {
	var professional entity.Professional
	err := db.WithContext(ctx).Where("user_id = ?", userID).First(&professional).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &professional, nil
}

func (r *professionalRepository) Update(ctx context.Context, db *gorm.DB, professional *entity.Professional) error {
	return db.WithContext(ctx).Omit("User", "Appointments").Save(professional).Error
}

func (r *professionalRepository) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Professional{})
	return result.RowsAffected, result.Error
}
