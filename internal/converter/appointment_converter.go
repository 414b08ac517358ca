package converter

import (
	"github.com/guilhermelvc/karvagenda/internal/delivery/dto"
	"github.com/guilhermelvc/karvagenda/internal/domain/entity"

	"github.com/google/uuid"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO
// Includes client, professional and service info when preloaded
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:              appointment.ID,
		ClientID:        appointment.ClientID,
		ProfessionalID:  appointment.ProfessionalID,
		ServiceID:       appointment.ServiceID,
		StartsAt:        appointment.StartsAt,
		EndsAt:          appointment.EndsAt(),
		DurationMinutes: appointment.DurationMinutes,
		Status:          string(appointment.Status),
		Notes:           appointment.Notes,
		Rating:          appointment.Rating,
		RatingComment:   appointment.RatingComment,
		CreatedAt:       appointment.CreatedAt,
		UpdatedAt:       appointment.UpdatedAt,
	}

	if appointment.Client.ID != uuid.Nil {
		response.Client = ClientToResponse(&appointment.Client)
	}
	if appointment.Professional.ID != uuid.Nil {
		response.Professional = ProfessionalToResponse(&appointment.Professional)
	}
	if appointment.Service.ID != uuid.Nil {
		response.Service = ServiceToResponse(&appointment.Service)
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities to slice of AppointmentResponse DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i, appointment := range appointments {
		responses[i] = *AppointmentToResponse(&appointment)
	}
	return responses
}
