package converter

import (
	"github.com/guilhermelvc/karvagenda/internal/delivery/dto"
	"github.com/guilhermelvc/karvagenda/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO
// Includes the professional and client profiles if they are loaded
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	response := &dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      user.Role.RoleName,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}

	if user.ProfessionalProfile != nil {
		response.ProfessionalProfile = ProfessionalToResponse(user.ProfessionalProfile)
	}

	if user.ClientProfile != nil {
		response.ClientProfile = ClientToResponse(user.ClientProfile)
	}

	return response
}
