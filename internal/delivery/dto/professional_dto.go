package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateProfessionalRequest struct {
	Name      string `json:"name" validate:"required,min=2,max=255"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"omitempty,min=10,max=20"`
	Specialty string `json:"specialty" validate:"omitempty,max=100"`
}

type UpdateProfessionalRequest struct {
	Name      string `json:"name" validate:"omitempty,min=2,max=255"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone" validate:"omitempty,min=10,max=20"`
	Specialty string `json:"specialty" validate:"omitempty,max=100"`
	AvatarURL string `json:"avatar_url" validate:"omitempty,url"`
}

// WorkScheduleItem is one weekday's working hours (0=Sunday .. 6=Saturday)
type WorkScheduleItem struct {
	Weekday    int    `json:"weekday" validate:"min=0,max=6"`
	Start      string `json:"start" validate:"required,datetime=15:04"`
	End        string `json:"end" validate:"required,datetime=15:04"`
	BreakStart string `json:"break_start" validate:"omitempty,datetime=15:04"`
	BreakEnd   string `json:"break_end" validate:"omitempty,datetime=15:04"`
}

// ManualLeaveItem is a date-specific blackout window
type ManualLeaveItem struct {
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	Description string `json:"description" validate:"omitempty,max=255"`
	AllDay      bool   `json:"all_day"`
	StartTime   string `json:"start_time" validate:"omitempty,datetime=15:04"`
	EndTime     string `json:"end_time" validate:"omitempty,datetime=15:04"`
}

// UpdateScheduleRequest replaces the professional's full availability setup
type UpdateScheduleRequest struct {
	WorkSchedules []WorkScheduleItem `json:"work_schedules" validate:"omitempty,dive"`
	DaysOff       []int              `json:"days_off" validate:"omitempty,dive,min=0,max=6"`
	ManualLeaves  []ManualLeaveItem  `json:"manual_leaves" validate:"omitempty,dive"`
}

// Response DTOs

type ProfessionalResponse struct {
	ID            uuid.UUID          `json:"id"`
	Name          string             `json:"name"`
	Email         string             `json:"email"`
	Phone         string             `json:"phone,omitempty"`
	Specialty     string             `json:"specialty,omitempty"`
	AvatarURL     string             `json:"avatar_url,omitempty"`
	WorkSchedules []WorkScheduleItem `json:"work_schedules,omitempty"`
	DaysOff       []int              `json:"days_off,omitempty"`
	ManualLeaves  []ManualLeaveItem  `json:"manual_leaves,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

type ProfessionalListResponse struct {
	Professionals []ProfessionalResponse `json:"professionals"`
	Total         int                    `json:"total"`
}
