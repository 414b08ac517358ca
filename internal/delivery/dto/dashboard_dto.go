package dto

import (
	"github.com/guilhermelvc/karvagenda/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// DashboardResponse aggregates counters for the admin home screen
type DashboardResponse struct {
	TotalAppointments int64                 `json:"total_appointments"`
	ByStatus          map[string]int64      `json:"by_status"`
	Revenue           decimal.Decimal       `json:"revenue"`
	TopServices       []entity.ServiceUsage `json:"top_services"`
	From              string                `json:"from"` // YYYY-MM-DD
	To                string                `json:"to"`   // YYYY-MM-DD
}

// ProfessionalRatingResponse summarizes a professional's ratings
type ProfessionalRatingResponse struct {
	ProfessionalID string  `json:"professional_id"`
	AverageRating  float64 `json:"average_rating"`
	RatingCount    int64   `json:"rating_count"`
}
