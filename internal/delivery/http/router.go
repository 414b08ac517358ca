package http

import (
	"net/http"

	"github.com/guilhermelvc/karvagenda/internal/delivery/http/handler"
	"github.com/guilhermelvc/karvagenda/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	authHandler         *handler.AuthHandler
	clientHandler       *handler.ClientHandler
	professionalHandler *handler.ProfessionalHandler
	serviceHandler      *handler.ServiceHandler
	appointmentHandler  *handler.AppointmentHandler
	settingsHandler     *handler.SettingsHandler
	assistantHandler    *handler.AssistantHandler
	dashboardHandler    *handler.DashboardHandler
	auditLogHandler     *handler.AuditLogHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	clientHandler *handler.ClientHandler,
	professionalHandler *handler.ProfessionalHandler,
	serviceHandler *handler.ServiceHandler,
	appointmentHandler *handler.AppointmentHandler,
	settingsHandler *handler.SettingsHandler,
	assistantHandler *handler.AssistantHandler,
	dashboardHandler *handler.DashboardHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		authHandler:         authHandler,
		clientHandler:       clientHandler,
		professionalHandler: professionalHandler,
		serviceHandler:      serviceHandler,
		appointmentHandler:  appointmentHandler,
		settingsHandler:     settingsHandler,
		assistantHandler:    assistantHandler,
		dashboardHandler:    dashboardHandler,
		auditLogHandler:     auditLogHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Public routes: registration, login, branding, catalog browsing,
	// availability lookup and the assistant chat
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register/client", r.authHandler.RegisterClient).Methods(http.MethodPost)
	auth.HandleFunc("/register/professional", r.authHandler.RegisterProfessional).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	api.HandleFunc("/settings", r.settingsHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/services", r.serviceHandler.GetAll).Methods(http.MethodGet)
	api.HandleFunc("/services/{id}", r.serviceHandler.GetByID).Methods(http.MethodGet)
	api.HandleFunc("/professionals", r.professionalHandler.GetAll).Methods(http.MethodGet)
	api.HandleFunc("/professionals/{id}", r.professionalHandler.GetByID).Methods(http.MethodGet)
	api.HandleFunc("/professionals/{id}/availability", r.professionalHandler.GetAvailability).Methods(http.MethodGet)
	api.HandleFunc("/assistant/chat", r.assistantHandler.Chat).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Appointment routes: any authenticated user can book, view and rate
	appointments := api.PathPrefix("/appointments").Subrouter()
	appointments.Use(r.authMiddleware.Authenticate)
	appointments.HandleFunc("", r.appointmentHandler.Create).Methods(http.MethodPost)
	appointments.HandleFunc("", r.appointmentHandler.List).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}", r.appointmentHandler.GetByID).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}", r.appointmentHandler.Update).Methods(http.MethodPut)
	appointments.HandleFunc("/{id}/status", r.appointmentHandler.UpdateStatus).Methods(http.MethodPatch)
	appointments.HandleFunc("/{id}/rate", r.appointmentHandler.Rate).Methods(http.MethodPost)

	// Staff routes: admins and professionals manage clients and schedules
	staff := api.PathPrefix("").Subrouter()
	staff.Use(r.authMiddleware.Authenticate)
	staff.Use(middleware.RequireAdminOrProfessional)
	staff.HandleFunc("/clients", r.clientHandler.Create).Methods(http.MethodPost)
	staff.HandleFunc("/clients", r.clientHandler.GetAll).Methods(http.MethodGet)
	staff.HandleFunc("/clients/{id}", r.clientHandler.GetByID).Methods(http.MethodGet)
	staff.HandleFunc("/clients/{id}", r.clientHandler.Update).Methods(http.MethodPut)
	staff.HandleFunc("/professionals/{id}/schedule", r.professionalHandler.UpdateSchedule).Methods(http.MethodPut)
	staff.HandleFunc("/dashboard", r.dashboardHandler.GetOverview).Methods(http.MethodGet)
	staff.HandleFunc("/professionals/{id}/rating", r.dashboardHandler.GetProfessionalRating).Methods(http.MethodGet)

	// Admin routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)

	admin.HandleFunc("/professionals", r.professionalHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/professionals/{id}", r.professionalHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/professionals/{id}", r.professionalHandler.Delete).Methods(http.MethodDelete)

	admin.HandleFunc("/services", r.serviceHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/services/{id}", r.serviceHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/services/{id}", r.serviceHandler.Delete).Methods(http.MethodDelete)

	admin.HandleFunc("/clients/{id}", r.clientHandler.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/appointments/{id}", r.appointmentHandler.Delete).Methods(http.MethodDelete)

	admin.HandleFunc("/settings", r.settingsHandler.Update).Methods(http.MethodPut)

	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
