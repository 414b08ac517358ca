package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateServiceRequest struct {
	Name            string          `json:"name" validate:"required,min=2,max=255"`
	Description     string          `json:"description" validate:"omitempty"`
	DurationMinutes int             `json:"duration_minutes" validate:"required,min=1"`
	Price           decimal.Decimal `json:"price" validate:"required"`
	Category        string          `json:"category" validate:"omitempty,max=100"`
}

type UpdateServiceRequest struct {
	Name            string           `json:"name" validate:"omitempty,min=2,max=255"`
	Description     string           `json:"description" validate:"omitempty"`
	DurationMinutes *int             `json:"duration_minutes" validate:"omitempty,min=1"`
	Price           *decimal.Decimal `json:"price" validate:"omitempty"`
	Category        string           `json:"category" validate:"omitempty,max=100"`
	Active          *bool            `json:"active" validate:"omitempty"`
}

// Response DTOs

type ServiceResponse struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	DurationMinutes int             `json:"duration_minutes"`
	Price           decimal.Decimal `json:"price"`
	Category        string          `json:"category,omitempty"`
	Active          bool            `json:"active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
	Total    int64             `json:"total"`
}
