package usecase

import (
	"context"

	"github.com/guilhermelvc/karvagenda/internal/converter"
	"github.com/guilhermelvc/karvagenda/internal/delivery/dto"
	"github.com/guilhermelvc/karvagenda/internal/domain/entity"
	"github.com/guilhermelvc/karvagenda/internal/domain/repository"
	"github.com/guilhermelvc/karvagenda/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type SettingsUsecase interface {
	Get(ctx context.Context) (*dto.SettingsResponse, error)
	Update(ctx context.Context, req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error)
}

type settingsUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	settingsRepo repository.BusinessSettingsRepository
	auditService service.AuditService
}

func NewSettingsUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	settingsRepo repository.BusinessSettingsRepository,
	auditService service.AuditService,
) SettingsUsecase {
	return &settingsUsecase{
		db:           db,
		log:          log,
		settingsRepo: settingsRepo,
		auditService: auditService,
	}
}

func (u *settingsUsecase) Get(ctx context.Context) (*dto.SettingsResponse, error) {
	settings, err := u.settingsRepo.Get(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to load settings: %+v", err)
		return nil, err
	}
	if settings == nil {
		settings = &entity.BusinessSettings{Language: "pt-BR"}
	}
	return settingsToResponse(settings), nil
}

func (u *settingsUsecase) Update(ctx context.Context, req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	settings, err := u.settingsRepo.Get(ctx, u.db)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = &entity.BusinessSettings{Language: "pt-BR"}
	}

	old := *settings

	if req.BusinessName != "" {
		settings.BusinessName = req.BusinessName
	}
	if req.Description != "" {
		settings.Description = req.Description
	}
	if req.LogoURL != "" {
		settings.LogoURL = req.LogoURL
	}
	if req.PrimaryColor != "" {
		settings.PrimaryColor = req.PrimaryColor
	}
	if req.Slogan != "" {
		settings.Slogan = req.Slogan
	}
	if req.Phone != "" {
		settings.Phone = req.Phone
	}
	if req.Email != "" {
		settings.Email = req.Email
	}
	if req.Address != "" {
		settings.Address = req.Address
	}
	if len(req.OpeningHours) > 0 {
		hours := converter.ItemsToWorkSchedules(req.OpeningHours)
		if err := hours.Validate(); err != nil {
			u.log.Warnf("Rejected invalid opening hours: %+v", err)
			return nil, ErrInvalidSchedule
		}
		settings.OpeningHours = hours
	}
	if req.WhatsAppAPIKey != "" {
		settings.WhatsAppAPIKey = req.WhatsAppAPIKey
	}
	if req.WhatsAppNumber != "" {
		settings.WhatsAppNumber = req.WhatsAppNumber
	}
	if req.GeminiAPIKey != "" {
		settings.GeminiAPIKey = req.GeminiAPIKey
	}
	if req.GeminiPrompt != "" {
		settings.GeminiPrompt = req.GeminiPrompt
	}
	if req.Language != "" {
		settings.Language = req.Language
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.settingsRepo.Save(ctx, tx, settings); err != nil {
		u.log.Warnf("Failed to save settings: %+v", err)
		return nil, err
	}

	userID := actorFromContext(ctx)
	u.auditService.LogUpdate(ctx, tx, userID, entity.AuditActionSettingsUpdate, "business_settings", "1", old, settings)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return settingsToResponse(settings), nil
}

func settingsToResponse(settings *entity.BusinessSettings) *dto.SettingsResponse {
	return &dto.SettingsResponse{
		BusinessName:   settings.BusinessName,
		Description:    settings.Description,
		LogoURL:        settings.LogoURL,
		PrimaryColor:   settings.PrimaryColor,
		Slogan:         settings.Slogan,
		Phone:          settings.Phone,
		Email:          settings.Email,
		Address:        settings.Address,
		OpeningHours:   converter.WorkSchedulesToItems(settings.OpeningHours),
		WhatsAppNumber: settings.WhatsAppNumber,
		GeminiPrompt:   settings.GeminiPrompt,
		Language:       settings.Language,
		UpdatedAt:      settings.UpdatedAt,
	}
}
