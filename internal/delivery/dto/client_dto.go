package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateClientRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"omitempty,min=10,max=20"`
	WhatsApp string `json:"whatsapp" validate:"omitempty,min=10,max=20"`
	Notes    string `json:"notes" validate:"omitempty"`
}

type UpdateClientRequest struct {
	Name      string `json:"name" validate:"omitempty,min=2,max=255"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone" validate:"omitempty,min=10,max=20"`
	WhatsApp  string `json:"whatsapp" validate:"omitempty,min=10,max=20"`
	AvatarURL string `json:"avatar_url" validate:"omitempty,url"`
	Notes     string `json:"notes" validate:"omitempty"`
}

// Response DTOs

type ClientResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	WhatsApp  string    `json:"whatsapp,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ClientListResponse struct {
	Clients []ClientResponse `json:"clients"`
	Total   int64            `json:"total"`
}
