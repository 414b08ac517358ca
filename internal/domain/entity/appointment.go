package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// ValidStatus reports whether s is a known appointment status.
func ValidStatus(s AppointmentStatus) bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusConfirmed,
		AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

// Appointment represents a booking of a client with a professional for a
// service. DurationMinutes is resolved from the service at booking time and
// persisted, so the occupied interval is always [StartsAt, StartsAt+Duration).
type Appointment struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ClientID        uuid.UUID         `gorm:"type:uuid;not null;index" json:"client_id"`
	ProfessionalID  uuid.UUID         `gorm:"type:uuid;not null;index" json:"professional_id"`
	ServiceID       uuid.UUID         `gorm:"type:uuid;not null;index" json:"service_id"`
	StartsAt        time.Time         `gorm:"not null;index" json:"starts_at"`
	DurationMinutes int               `gorm:"not null" json:"duration_minutes"`
	Status          AppointmentStatus `gorm:"type:varchar(20);not null;default:'scheduled';index" json:"status"`
	Notes           string            `gorm:"type:text" json:"notes,omitempty"`
	Rating          *int              `gorm:"" json:"rating,omitempty"`
	RatingComment   string            `gorm:"type:text" json:"rating_comment,omitempty"`
	CreatedAt       time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Client       Client       `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Professional Professional `gorm:"foreignKey:ProfessionalID" json:"professional,omitempty"`
	Service      Service      `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// EndsAt returns the exclusive end of the occupied interval.
func (a *Appointment) EndsAt() time.Time {
	return a.StartsAt.Add(time.Duration(a.DurationMinutes) * time.Minute)
}

// IsCancelled checks if the appointment is cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

// IsTerminal reports whether no further transition is allowed.
func (a *Appointment) IsTerminal() bool {
	return a.Status == AppointmentStatusCompleted || a.Status == AppointmentStatusCancelled
}

// CanTransitionTo enforces the status machine:
// scheduled -> confirmed -> completed, and -> cancelled from any
// non-terminal state.
func (a *Appointment) CanTransitionTo(next AppointmentStatus) bool {
	if next == AppointmentStatusCancelled {
		return !a.IsTerminal()
	}
	switch a.Status {
	case AppointmentStatusScheduled:
		return next == AppointmentStatusConfirmed
	case AppointmentStatusConfirmed:
		return next == AppointmentStatusCompleted
	}
	return false
}
