package converter

import (
	"github.com/guilhermelvc/karvagenda/internal/delivery/dto"
	"github.com/guilhermelvc/karvagenda/internal/domain/entity"
)

// ProfessionalToResponse converts a Professional entity to ProfessionalResponse DTO
func ProfessionalToResponse(professional *entity.Professional) *dto.ProfessionalResponse {
	if professional == nil {
		return nil
	}

	return &dto.ProfessionalResponse{
		ID:            professional.ID,
		Name:          professional.Name,
		Email:         professional.Email,
		Phone:         professional.Phone,
		Specialty:     professional.Specialty,
		AvatarURL:     professional.AvatarURL,
		WorkSchedules: WorkSchedulesToItems(professional.WorkSchedules),
		DaysOff:       professional.DaysOff,
		ManualLeaves:  ManualLeavesToItems(professional.ManualLeaves),
		CreatedAt:     professional.CreatedAt,
		UpdatedAt:     professional.UpdatedAt,
	}
}

// ProfessionalsToResponses converts a slice of Professional entities to slice of ProfessionalResponse DTOs
func ProfessionalsToResponses(professionals []entity.Professional) []dto.ProfessionalResponse {
	responses := make([]dto.ProfessionalResponse, len(professionals))
	for i, professional := range professionals {
		responses[i] = *ProfessionalToResponse(&professional)
	}
	return responses
}

// WorkSchedulesToItems converts schedule JSONB entries to DTO items
func WorkSchedulesToItems(schedules entity.WorkScheduleList) []dto.WorkScheduleItem {
	if len(schedules) == 0 {
		return nil
	}
	items := make([]dto.WorkScheduleItem, len(schedules))
	for i, s := range schedules {
		items[i] = dto.WorkScheduleItem{
			Weekday:    s.Weekday,
			Start:      s.Start,
			End:        s.End,
			BreakStart: s.BreakStart,
			BreakEnd:   s.BreakEnd,
		}
	}
	return items
}

// ItemsToWorkSchedules converts DTO items to schedule JSONB entries
func ItemsToWorkSchedules(items []dto.WorkScheduleItem) entity.WorkScheduleList {
	if len(items) == 0 {
		return nil
	}
	schedules := make(entity.WorkScheduleList, len(items))
	for i, item := range items {
		schedules[i] = entity.WorkSchedule{
			Weekday:    item.Weekday,
			Start:      item.Start,
			End:        item.End,
			BreakStart: item.BreakStart,
			BreakEnd:   item.BreakEnd,
		}
	}
	return schedules
}

// ManualLeavesToItems converts leave JSONB entries to DTO items
func ManualLeavesToItems(leaves entity.ManualLeaveList) []dto.ManualLeaveItem {
	if len(leaves) == 0 {
		return nil
	}
	items := make([]dto.ManualLeaveItem, len(leaves))
	for i, l := range leaves {
		items[i] = dto.ManualLeaveItem{
			Date:        l.Date,
			Description: l.Description,
			AllDay:      l.AllDay,
			StartTime:   l.StartTime,
			EndTime:     l.EndTime,
		}
	}
	return items
}

// ItemsToManualLeaves converts DTO items to leave JSONB entries
func ItemsToManualLeaves(items []dto.ManualLeaveItem) entity.ManualLeaveList {
	if len(items) == 0 {
		return nil
	}
	leaves := make(entity.ManualLeaveList, len(items))
	for i, item := range items {
		leaves[i] = entity.ManualLeave{
			Date:        item.Date,
			Description: item.Description,
			AllDay:      item.AllDay,
			StartTime:   item.StartTime,
			EndTime:     item.EndTime,
		}
	}
	return leaves
}
