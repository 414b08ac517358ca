package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/guilhermelvc/karvagenda/internal/delivery/dto"
	"github.com/guilhermelvc/karvagenda/internal/domain/repository"
	"github.com/guilhermelvc/karvagenda/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AssistantUsecase interface {
	Chat(ctx context.Context, req *dto.AssistantChatRequest) (*dto.AssistantChatResponse, error)
}

type assistantUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	settingsRepo     repository.BusinessSettingsRepository
	serviceRepo      repository.ServiceRepository
	assistantService service.AssistantService
}

func NewAssistantUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	settingsRepo repository.BusinessSettingsRepository,
	serviceRepo repository.ServiceRepository,
	assistantService service.AssistantService,
) AssistantUsecase {
	return &assistantUsecase{
		db:               db,
		log:              log,
		settingsRepo:     settingsRepo,
		serviceRepo:      serviceRepo,
		assistantService: assistantService,
	}
}

// Chat forwards a visitor question to Gemini with the business catalog and
// settings injected as context.
func (u *assistantUsecase) Chat(ctx context.Context, req *dto.AssistantChatRequest) (*dto.AssistantChatResponse, error) {
	businessContext, err := u.buildBusinessContext(ctx)
	if err != nil {
		return nil, err
	}

	history := make([]service.AssistantMessage, len(req.History))
	for i, msg := range req.History {
		history[i] = service.AssistantMessage{Role: msg.Role, Content: msg.Content}
	}

	reply, err := u.assistantService.Chat(ctx, businessContext, history, req.Message)
	if err != nil {
		u.log.Warnf("Assistant chat failed: %+v", err)
		return nil, err
	}

	return &dto.AssistantChatResponse{Reply: reply}, nil
}

func (u *assistantUsecase) buildBusinessContext(ctx context.Context) (string, error) {
	var b strings.Builder

	settings, err := u.settingsRepo.Get(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to load settings for assistant: %+v", err)
		return "", err
	}

	if settings != nil {
		if settings.GeminiPrompt != "" {
			b.WriteString(settings.GeminiPrompt)
			b.WriteString("\n\n")
		}
		if settings.BusinessName != "" {
			fmt.Fprintf(&b, "Business: %s\n", settings.BusinessName)
		}
		if settings.Description != "" {
			fmt.Fprintf(&b, "About: %s\n", settings.Description)
		}
		if settings.Address != "" {
			fmt.Fprintf(&b, "Address: %s\n", settings.Address)
		}
		if settings.Phone != "" {
			fmt.Fprintf(&b, "Phone: %s\n", settings.Phone)
		}
		if settings.Language != "" {
			fmt.Fprintf(&b, "Answer in the language: %s\n", settings.Language)
		}
	}

	services, _, err := u.serviceRepo.FindAll(ctx, u.db, "", true, 100, 0)
	if err != nil {
		u.log.Warnf("Failed to load services for assistant: %+v", err)
		return "", err
	}

	if len(services) > 0 {
		b.WriteString("\nAvailable services:\n")
		for _, svc := range services {
			fmt.Fprintf(&b, "- %s: %d minutes, %s", svc.Name, svc.DurationMinutes, svc.Price.StringFixed(2))
			if svc.Description != "" {
				fmt.Fprintf(&b, " (%s)", svc.Description)
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\nOnly answer questions about this business, its services and bookings.")
	return b.String(), nil
}
