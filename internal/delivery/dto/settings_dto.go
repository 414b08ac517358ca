package dto

import "time"

// Request DTOs

type UpdateSettingsRequest struct {
	BusinessName   string             `json:"business_name" validate:"omitempty,min=2,max=255"`
	Description    string             `json:"description" validate:"omitempty"`
	LogoURL        string             `json:"logo_url" validate:"omitempty,url"`
	PrimaryColor   string             `json:"primary_color" validate:"omitempty,max=20"`
	Slogan         string             `json:"slogan" validate:"omitempty,max=255"`
	Phone          string             `json:"phone" validate:"omitempty,min=10,max=20"`
	Email          string             `json:"email" validate:"omitempty,email"`
	Address        string             `json:"address" validate:"omitempty"`
	OpeningHours   []WorkScheduleItem `json:"opening_hours" validate:"omitempty,dive"`
	WhatsAppAPIKey string             `json:"whatsapp_api_key" validate:"omitempty"`
	WhatsAppNumber string             `json:"whatsapp_number" validate:"omitempty,min=10,max=20"`
	GeminiAPIKey   string             `json:"gemini_api_key" validate:"omitempty"`
	GeminiPrompt   string             `json:"gemini_prompt" validate:"omitempty"`
	Language       string             `json:"language" validate:"omitempty,max=10"`
}

// Response DTOs

type SettingsResponse struct {
	BusinessName   string             `json:"business_name"`
	Description    string             `json:"description,omitempty"`
	LogoURL        string             `json:"logo_url,omitempty"`
	PrimaryColor   string             `json:"primary_color,omitempty"`
	Slogan         string             `json:"slogan,omitempty"`
	Phone          string             `json:"phone,omitempty"`
	Email          string             `json:"email,omitempty"`
	Address        string             `json:"address,omitempty"`
	OpeningHours   []WorkScheduleItem `json:"opening_hours,omitempty"`
	WhatsAppNumber string             `json:"whatsapp_number,omitempty"`
	GeminiPrompt   string             `json:"gemini_prompt,omitempty"`
	Language       string             `json:"language"`
	UpdatedAt      time.Time          `json:"updated_at"`
}
