package usecase

import (
	"context"

	"github.com/guilhermelvc/karvagenda/internal/converter"
	"github.com/guilhermelvc/karvagenda/internal/delivery/dto"
	"github.com/guilhermelvc/karvagenda/internal/domain/entity"
	"github.com/guilhermelvc/karvagenda/internal/domain/repository"
	"github.com/guilhermelvc/karvagenda/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ProfessionalUsecase interface {
	Create(ctx context.Context, req *dto.CreateProfessionalRequest) (*dto.ProfessionalResponse, error)
	GetAll(ctx context.Context, specialty string) (*dto.ProfessionalListResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.ProfessionalResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateProfessionalRequest) (*dto.ProfessionalResponse, error)
	UpdateSchedule(ctx context.Context, id uuid.UUID, req *dto.UpdateScheduleRequest) (*dto.ProfessionalResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type professionalUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	professionalRepo repository.ProfessionalRepository
	auditService     service.AuditService
}

func NewProfessionalUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	professionalRepo repository.ProfessionalRepository,
	auditService service.AuditService,
) ProfessionalUsecase {
	return &professionalUsecase{
		db:               db,
		log:              log,
		professionalRepo: professionalRepo,
		auditService:     auditService,
	}
}

func (u *professionalUsecase) Create(ctx context.Context, req *dto.CreateProfessionalRequest) (*dto.ProfessionalResponse, error) {
	professional := &entity.Professional{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Specialty: req.Specialty,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.professionalRepo.Create(ctx, tx, professional); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create professional: %+v", err)
		return nil, err
	}

	userID := actorFromContext(ctx)
	u.auditService.LogCreate(ctx, tx, userID, entity.AuditActionProfessionalCreate, "professional", professional.ID.String(), professional)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.ProfessionalToResponse(professional), nil
}

func (u *professionalUsecase) GetAll(ctx context.Context, specialty string) (*dto.ProfessionalListResponse, error) {
	professionals, err := u.professionalRepo.FindAll(ctx, u.db, specialty)
	if err != nil {
		u.log.Warnf("Failed to find professionals: %+v", err)
		return nil, err
	}

	return &dto.ProfessionalListResponse{
		Professionals: converter.ProfessionalsToResponses(professionals),
		Total:         len(professionals),
	}, nil
}

func (u *professionalUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.ProfessionalResponse, error) {
	professional, err := u.professionalRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find professional %s: %+v", id, err)
		return nil, err
	}
	if professional == nil {
		return nil, ErrProfessionalNotFound
	}
	return converter.ProfessionalToResponse(professional), nil
}

func (u *professionalUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateProfessionalRequest) (*dto.ProfessionalResponse, error) {
	professional, err := u.professionalRepo.FindByID(ctx, u.db, id)
	if err != nil {
		return nil, err
	}
	if professional == nil {
		return nil, ErrProfessionalNotFound
	}

	old := *professional

	if req.Name != "" {
		professional.Name = req.Name
	}
	if req.Email != "" {
		professional.Email = req.Email
	}
	if req.Phone != "" {
		professional.Phone = req.Phone
	}
	if req.Specialty != "" {
		professional.Specialty = req.Specialty
	}
	if req.AvatarURL != "" {
		professional.AvatarURL = req.AvatarURL
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.professionalRepo.Update(ctx, tx, professional); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to update professional %s: %+v", id, err)
		return nil, err
	}

	userID := actorFromContext(ctx)
	u.auditService.LogUpdate(ctx, tx, userID, entity.AuditActionProfessionalUpdate, "professional", id.String(), old, professional)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.ProfessionalToResponse(professional), nil
}

// UpdateSchedule replaces the professional's weekly schedule, recurring days
// off and manual leaves. The payload is validated before it reaches the JSONB
// columns so the slot computation never sees malformed data.
func (u *professionalUsecase) UpdateSchedule(ctx context.Context, id uuid.UUID, req *dto.UpdateScheduleRequest) (*dto.ProfessionalResponse, error) {
	professional, err := u.professionalRepo.FindByID(ctx, u.db, id)
	if err != nil {
		return nil, err
	}
	if professional == nil {
		return nil, ErrProfessionalNotFound
	}

	old := *professional

	professional.WorkSchedules = converter.ItemsToWorkSchedules(req.WorkSchedules)
	professional.DaysOff = entity.DaysOffList(req.DaysOff)
	professional.ManualLeaves = converter.ItemsToManualLeaves(req.ManualLeaves)

	if err := professional.ValidateSchedule(); err != nil {
		u.log.Warnf("Rejected invalid schedule for professional %s: %+v", id, err)
		return nil, ErrInvalidSchedule
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.professionalRepo.Update(ctx, tx, professional); err != nil {
		u.log.Warnf("Failed to update schedule for professional %s: %+v", id, err)
		return nil, err
	}

	userID := actorFromContext(ctx)
	u.auditService.LogUpdate(ctx, tx, userID, entity.AuditActionProfessionalUpdate, "professional", id.String(), old, professional)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.ProfessionalToResponse(professional), nil
}

func (u *professionalUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	professional, err := u.professionalRepo.FindByID(ctx, u.db, id)
	if err != nil {
		return err
	}
	if professional == nil {
		return ErrProfessionalNotFound
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.professionalRepo.Delete(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed to delete professional %s: %+v", id, err)
		return err
	}
	if affected == 0 {
		return ErrProfessionalNotFound
	}

	userID := actorFromContext(ctx)
	u.auditService.LogDelete(ctx, tx, userID, entity.AuditActionProfessionalDelete, "professional", id.String(), professional)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	return nil
}
