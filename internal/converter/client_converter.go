package converter

import (
	"github.com/guilhermelvc/karvagenda/internal/delivery/dto"
	"github.com/guilhermelvc/karvagenda/internal/domain/entity"
)

// ClientToResponse converts a Client entity to ClientResponse DTO
func ClientToResponse(client *entity.Client) *dto.ClientResponse {
	if client == nil {
		return nil
	}

	return &dto.ClientResponse{
		ID:        client.ID,
		Name:      client.Name,
		Email:     client.Email,
		Phone:     client.Phone,
		WhatsApp:  client.WhatsApp,
		AvatarURL: client.AvatarURL,
		Notes:     client.Notes,
		CreatedAt: client.CreatedAt,
		UpdatedAt: client.UpdatedAt,
	}
}

// ClientsToResponses converts a slice of Client entities to slice of ClientResponse DTOs
func ClientsToResponses(clients []entity.Client) []dto.ClientResponse {
	responses := make([]dto.ClientResponse, len(clients))
	for i, client := range clients {
		responses[i] = *ClientToResponse(&client)
	}
	return responses
}
