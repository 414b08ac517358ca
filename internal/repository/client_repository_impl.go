package repository

import (
	"context"
	"errors"

	"github.com/guilhermelvc/karvagenda/internal/domain/entity"
	domainRepo "github.com/guilhermelvc/karvagenda/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type clientRepository struct{}

func NewClientRepository() domainRepo.ClientRepository {
	return &clientRepository{}
}

func (r *clientRepository) Create(ctx context.Context, db *gorm.DB, client *entity.Client) error {
	return db.WithContext(ctx).Create(client).Error
}

func (r *clientRepository) FindAll(ctx context.Context, db *gorm.DB, search string, limit, offset int) ([]entity.Client, int64, error) {
	var clients []entity.Client
	var total int64

	query := db.WithContext(ctx).Model(&entity.Client{})
	if search != "" {
		query = query.Where("name ILIKE ? OR email ILIKE ? OR phone ILIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("name ASC").Limit(limit).Offset(offset).Find(&clients).Error; err != nil {
		return nil, 0, err
	}

	return clients, total, nil
}

func (r *clientRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Client, error) {
	var client entity.Client
	err := db.WithContext(ctx).Where("id = ?", id).First(&client).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.Client, error) {
	var client entity.Client
	err := db.WithContext(ctx).Where("user_id = ?", userID).First(&client).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) Update(ctx context.Context, db *gorm.DB, client *entity.Client) error {
	return db.WithContext(ctx).Omit("User", "Appointments").Save(client).Error
}

func (r *clientRepository) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Client{})
	return result.RowsAffected, result.Error
}
