package dto

// Request DTOs

type AssistantChatMessage struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required"`
}

type AssistantChatRequest struct {
	Message string                 `json:"message" validate:"required,min=1,max=2000"`
	History []AssistantChatMessage `json:"history" validate:"omitempty,dive"`
}

// Response DTOs

type AssistantChatResponse struct {
	Reply string `json:"reply"`
}
