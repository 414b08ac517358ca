package handler

import (
	"net/http"

	"github.com/guilhermelvc/karvagenda/internal/usecase"
	"github.com/guilhermelvc/karvagenda/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type DashboardHandler struct {
	dashboardUsecase usecase.DashboardUsecase
}

func NewDashboardHandler(dashboardUsecase usecase.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{
		dashboardUsecase: dashboardUsecase,
	}
}

func (h *DashboardHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	overview, err := h.dashboardUsecase.GetOverview(r.Context(), from, to)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDateFormat:
			response.Error(w, http.StatusBadRequest, "Invalid date range, use YYYY-MM-DD", nil)
		default:
			response.InternalServerError(w, "Failed to get dashboard overview")
		}
		return
	}

	response.Success(w, http.StatusOK, "Dashboard retrieved successfully", overview)
}

func (h *DashboardHandler) GetProfessionalRating(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid professional ID", nil)
		return
	}

	rating, err := h.dashboardUsecase.GetProfessionalRating(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrProfessionalNotFound:
			response.NotFound(w, "Professional not found")
		default:
			response.InternalServerError(w, "Failed to get professional rating")
		}
		return
	}

	response.Success(w, http.StatusOK, "Rating retrieved successfully", rating)
}
