package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AppointmentFilter is a domain-level filter for querying appointments.
// Used by repository layer to avoid coupling with delivery DTOs.
type AppointmentFilter struct {
	StartAt        string // Format: YYYY-MM-DD
	EndAt          string // Format: YYYY-MM-DD
	ProfessionalID uuid.UUID
	ClientID       uuid.UUID
	Status         AppointmentStatus
}

// ServiceUsage is a dashboard aggregate: how often a service was booked in a
// period.
type ServiceUsage struct {
	ServiceID uuid.UUID       `json:"service_id"`
	Name      string          `json:"name"`
	Total     int64           `json:"total"`
	Revenue   decimal.Decimal `json:"revenue"`
}
