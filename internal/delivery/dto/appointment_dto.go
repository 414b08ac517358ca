package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAppointmentRequest struct {
	ClientID       uuid.UUID `json:"client_id" validate:"required"`
	ProfessionalID uuid.UUID `json:"professional_id" validate:"required"`
	ServiceID      uuid.UUID `json:"service_id" validate:"required"`
	StartsAt       time.Time `json:"starts_at" validate:"required"`
	Notes          string    `json:"notes" validate:"omitempty"`
}

type UpdateAppointmentRequest struct {
	ProfessionalID uuid.UUID  `json:"professional_id" validate:"omitempty"`
	ServiceID      uuid.UUID  `json:"service_id" validate:"omitempty"`
	StartsAt       *time.Time `json:"starts_at" validate:"omitempty"`
	Notes          *string    `json:"notes" validate:"omitempty"`
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=scheduled confirmed completed cancelled"`
}

type RateAppointmentRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"omitempty,max=1000"`
}

type ListAppointmentsRequest struct {
	StartAt        string    `json:"start_at" validate:"omitempty"` // YYYY-MM-DD
	EndAt          string    `json:"end_at" validate:"omitempty"`   // YYYY-MM-DD
	ProfessionalID uuid.UUID `json:"professional_id" validate:"omitempty"`
	ClientID       uuid.UUID `json:"client_id" validate:"omitempty"`
	Status         string    `json:"status" validate:"omitempty,oneof=scheduled confirmed completed cancelled"`
}

// Response DTOs

type AppointmentResponse struct {
	ID              uuid.UUID             `json:"id"`
	ClientID        uuid.UUID             `json:"client_id"`
	ProfessionalID  uuid.UUID             `json:"professional_id"`
	ServiceID       uuid.UUID             `json:"service_id"`
	StartsAt        time.Time             `json:"starts_at"`
	EndsAt          time.Time             `json:"ends_at"`
	DurationMinutes int                   `json:"duration_minutes"`
	Status          string                `json:"status"`
	Notes           string                `json:"notes,omitempty"`
	Rating          *int                  `json:"rating,omitempty"`
	RatingComment   string                `json:"rating_comment,omitempty"`
	Client          *ClientResponse       `json:"client,omitempty"`
	Professional    *ProfessionalResponse `json:"professional,omitempty"`
	Service         *ServiceResponse      `json:"service,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

// AvailabilityResponse lists the bookable start times of one professional on
// one date, already sized to the requested service.
type AvailabilityResponse struct {
	ProfessionalID uuid.UUID `json:"professional_id"`
	ServiceID      uuid.UUID `json:"service_id"`
	Date           string    `json:"date"` // YYYY-MM-DD
	Slots          []string  `json:"slots"`
}
