package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"neptrip-backend/config"
	deliveryHttp "neptrip-backend/internal/delivery/http"
	"neptrip-backend/internal/delivery/http/handler"
	"neptrip-backend/internal/delivery/http/middleware"
	"neptrip-backend/internal/infrastructure/cache"
	"neptrip-backend/internal/infrastructure/database"
	"neptrip-backend/internal/repository"
	"neptrip-backend/internal/service"
	"neptrip-backend/internal/usecase"
	"neptrip-backend/pkg/jwt"
	"neptrip-backend/pkg/validator"

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

	// Apply schema migrations before opening the pooled connection
	if err := database.RunMigrations(cfg.DB); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Seed the default admin and guide accounts
	log := logrus.StandardLogger()
	seedService := service.NewSeedService(db, log, cfg.Seed, repository.NewUserRepository(), repository.NewGuideProfileRepository())
	if err := seedService.Run(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to seed default accounts: %w", err)
	}

	// Initialize all layers
	server := initializeServer(cfg, db, redisClient)
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *http.Server {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	guideProfileRepo := repository.NewGuideProfileRepository()
	bookingRepo := repository.NewBookingRepository()
	destinationRepo := repository.NewDestinationRepository()
	notificationRepo := repository.NewNotificationRepository()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize services
	notificationService := service.NewNotificationService(db, log, notificationRepo)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, jwtService, redisClient)
	bookingUsecase := usecase.NewBookingUsecase(db, log, bookingRepo, userRepo, guideProfileRepo, notificationService)
	guideBookingUsecase := usecase.NewGuideBookingUsecase(db, log, bookingRepo, guideProfileRepo, notificationService, cfg.Booking.PerPersonRate)
	guideUsecase := usecase.NewGuideUsecase(db, log, userRepo, guideProfileRepo, bookingRepo)
	destinationUsecase := usecase.NewDestinationUsecase(db, log, destinationRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator, jwtService)
	bookingHandler := handler.NewBookingHandler(bookingUsecase, customValidator)
	guideBookingHandler := handler.NewGuideBookingHandler(guideBookingUsecase, customValidator)
	guideHandler := handler.NewGuideHandler(guideUsecase, customValidator)
	destinationHandler := handler.NewDestinationHandler(destinationUsecase, customValidator)
	notificationHandler := handler.NewNotificationHandler(notificationService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(
		authHandler,
		bookingHandler,
		guideBookingHandler,
		guideHandler,
		destinationHandler,
		notificationHandler,
		authMiddleware,
		corsMiddleware,
	)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}
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
}
