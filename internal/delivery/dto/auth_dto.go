package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RegisterClientRequest creates a user account plus a client record
type RegisterClientRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"full_name" validate:"required,min=2"`
	Phone    string `json:"phone" validate:"omitempty,min=10,max=20"`
	WhatsApp string `json:"whatsapp" validate:"omitempty,min=10,max=20"`
}

// RegisterProfessionalRequest creates a user account plus a professional record
type RegisterProfessionalRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	FullName  string `json:"full_name" validate:"required,min=2"`
	Phone     string `json:"phone" validate:"omitempty,min=10,max=20"`
	Specialty string `json:"specialty" validate:"omitempty,max=100"`
}

// Response DTOs

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type UserResponse struct {
	ID                  uuid.UUID             `json:"id"`
	Email               string                `json:"email"`
	FullName            string                `json:"full_name"`
	Role                string                `json:"role"`
	ProfessionalProfile *ProfessionalResponse `json:"professional_profile,omitempty"`
	ClientProfile       *ClientResponse       `json:"client_profile,omitempty"`
	CreatedAt           time.Time             `json:"created_at"`
	UpdatedAt           time.Time             `json:"updated_at"`
}
