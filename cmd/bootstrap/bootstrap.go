package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guilhermelvc/karvagenda/config"
	deliveryHttp "github.com/guilhermelvc/karvagenda/internal/delivery/http"
	"github.com/guilhermelvc/karvagenda/internal/delivery/http/handler"
	"github.com/guilhermelvc/karvagenda/internal/delivery/http/middleware"
	"github.com/guilhermelvc/karvagenda/internal/infrastructure/cache"
	"github.com/guilhermelvc/karvagenda/internal/infrastructure/database"
	"github.com/guilhermelvc/karvagenda/internal/repository"
	"github.com/guilhermelvc/karvagenda/internal/service"
	"github.com/guilhermelvc/karvagenda/internal/usecase"
	"github.com/guilhermelvc/karvagenda/pkg/jwt"
	"github.com/guilhermelvc/karvagenda/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server

	assistantService service.AssistantService
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// All slot arithmetic happens in the business timezone
	location, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", cfg.App.Timezone, err)
	}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB, cfg.App.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	// Apply schema migrations
	if err := database.RunMigrations(cfg.DB); err != nil {
		return nil, err
	}

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize all layers
	server, assistantService, err := initializeServer(cfg, db, redisClient, location)
	if err != nil {
		return nil, err
	}
	app.Server = server
	app.assistantService = assistantService

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, location *time.Location) (*http.Server, service.AssistantService, error) {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	roleRepo := repository.NewRoleRepository()
	clientRepo := repository.NewClientRepository()
	professionalRepo := repository.NewProfessionalRepository()
	serviceRepo := repository.NewServiceRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	settingsRepo := repository.NewBusinessSettingsRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize services
	auditService := service.NewAuditService(db, log, auditLogRepo)
	lockService := service.NewBookingLockService(redisClient, log)
	whatsAppService := service.NewWhatsAppService(cfg.WhatsApp.APIURL, cfg.WhatsApp.APIKey, cfg.WhatsApp.Instance, log)
	assistantService, err := service.NewAssistantService(context.Background(), cfg.Gemini.APIKey, cfg.Gemini.Model, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to init assistant service: %w", err)
	}

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, roleRepo, clientRepo, professionalRepo, jwtService, redisClient)
	clientUsecase := usecase.NewClientUsecase(db, log, clientRepo, auditService)
	professionalUsecase := usecase.NewProfessionalUsecase(db, log, professionalRepo, auditService)
	serviceUsecase := usecase.NewServiceUsecase(db, log, serviceRepo, auditService)
	appointmentUsecase := usecase.NewAppointmentUsecase(
		db, log, location, cfg.Booking.SlotGranularityMinutes,
		appointmentRepo, clientRepo, professionalRepo, serviceRepo,
		lockService, auditService, whatsAppService,
	)
	settingsUsecase := usecase.NewSettingsUsecase(db, log, settingsRepo, auditService)
	assistantUsecase := usecase.NewAssistantUsecase(db, log, settingsRepo, serviceRepo, assistantService)
	dashboardUsecase := usecase.NewDashboardUsecase(db, log, location, appointmentRepo, professionalRepo)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator, jwtService)
	clientHandler := handler.NewClientHandler(clientUsecase, customValidator)
	professionalHandler := handler.NewProfessionalHandler(professionalUsecase, appointmentUsecase, customValidator)
	serviceHandler := handler.NewServiceHandler(serviceUsecase, customValidator)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator)
	settingsHandler := handler.NewSettingsHandler(settingsUsecase, customValidator)
	assistantHandler := handler.NewAssistantHandler(assistantUsecase, customValidator)
	dashboardHandler := handler.NewDashboardHandler(dashboardUsecase)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(
		authHandler, clientHandler, professionalHandler, serviceHandler,
		appointmentHandler, settingsHandler, assistantHandler,
		dashboardHandler, auditLogHandler,
		authMiddleware, corsMiddleware,
	)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	server := &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}
	return server, assistantService, nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}

	// Close the Gemini client
	if app.assistantService != nil {
		app.assistantService.Close()
	}
}
