package handler

import (
	"encoding/json"
	"net/http"

	"github.com/guilhermelvc/karvagenda/internal/delivery/dto"
	"github.com/guilhermelvc/karvagenda/internal/service"
	"github.com/guilhermelvc/karvagenda/internal/usecase"
	"github.com/guilhermelvc/karvagenda/pkg/response"
	"github.com/guilhermelvc/karvagenda/pkg/validator"
)

type AssistantHandler struct {
	assistantUsecase usecase.AssistantUsecase
	validator        *validator.CustomValidator
}

func NewAssistantHandler(assistantUsecase usecase.AssistantUsecase, validator *validator.CustomValidator) *AssistantHandler {
	return &AssistantHandler{
		assistantUsecase: assistantUsecase,
		validator:        validator,
	}
}

func (h *AssistantHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req dto.AssistantChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	reply, err := h.assistantUsecase.Chat(r.Context(), &req)
	if err != nil {
		switch err {
		case service.ErrAssistantUnavailable:
			response.Error(w, http.StatusServiceUnavailable, "Assistant is not configured", nil)
		default:
			response.InternalServerError(w, "Failed to get assistant reply")
		}
		return
	}

	response.Success(w, http.StatusOK, "Assistant replied successfully", reply)
}
