package usecase

import (
	"context"
	"time"

	"github.com/guilhermelvc/karvagenda/internal/delivery/dto"
	"github.com/guilhermelvc/karvagenda/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type DashboardUsecase interface {
	GetOverview(ctx context.Context, from, to string) (*dto.DashboardResponse, error)
	GetProfessionalRating(ctx context.Context, professionalID uuid.UUID) (*dto.ProfessionalRatingResponse, error)
}

type dashboardUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	location         *time.Location
	appointmentRepo  repository.AppointmentRepository
	professionalRepo repository.ProfessionalRepository
}

func NewDashboardUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	location *time.Location,
	appointmentRepo repository.AppointmentRepository,
	professionalRepo repository.ProfessionalRepository,
) DashboardUsecase {
	return &dashboardUsecase{
		db:               db,
		log:              log,
		location:         location,
		appointmentRepo:  appointmentRepo,
		professionalRepo: professionalRepo,
	}
}

// GetOverview returns appointment counts per status for a date range.
// Defaults to the current month when no range is given.
func (u *dashboardUsecase) GetOverview(ctx context.Context, from, to string) (*dto.DashboardResponse, error) {
	now := time.Now().In(u.location)
	fromTime := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, u.location)
	toTime := fromTime.AddDate(0, 1, 0)

	if from != "" {
		parsed, err := time.ParseInLocation("2006-01-02", from, u.location)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		fromTime = parsed
	}
	if to != "" {
		parsed, err := time.ParseInLocation("2006-01-02", to, u.location)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		toTime = parsed.AddDate(0, 0, 1)
	}

	counts, err := u.appointmentRepo.CountByStatus(ctx, u.db, fromTime, toTime)
	if err != nil {
		u.log.Warnf("Failed to count appointments: %+v", err)
		return nil, err
	}

	byStatus := make(map[string]int64, len(counts))
	var total int64
	for status, count := range counts {
		byStatus[string(status)] = count
		total += count
	}

	revenue, err := u.appointmentRepo.Revenue(ctx, u.db, fromTime, toTime)
	if err != nil {
		u.log.Warnf("Failed to compute revenue: %+v", err)
		return nil, err
	}

	topServices, err := u.appointmentRepo.TopServices(ctx, u.db, fromTime, toTime, 5)
	if err != nil {
		u.log.Warnf("Failed to compute top services: %+v", err)
		return nil, err
	}

	return &dto.DashboardResponse{
		TotalAppointments: total,
		ByStatus:          byStatus,
		Revenue:           revenue,
		TopServices:       topServices,
		From:              fromTime.Format("2006-01-02"),
		To:                toTime.AddDate(0, 0, -1).Format("2006-01-02"),
	}, nil
}

func (u *dashboardUsecase) GetProfessionalRating(ctx context.Context, professionalID uuid.UUID) (*dto.ProfessionalRatingResponse, error) {
	professional, err := u.professionalRepo.FindByID(ctx, u.db, professionalID)
	if err != nil {
		return nil, err
	}
	if professional == nil {
		return nil, ErrProfessionalNotFound
	}

	average, count, err := u.appointmentRepo.AverageRating(ctx, u.db, professionalID)
	if err != nil {
		u.log.Warnf("Failed to aggregate ratings for professional %s: %+v", professionalID, err)
		return nil, err
	}

	return &dto.ProfessionalRatingResponse{
		ProfessionalID: professionalID.String(),
		AverageRating:  average,
		RatingCount:    count,
	}, nil
}
