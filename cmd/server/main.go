package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"brickvest.backend/internal/config"
	"brickvest.backend/internal/infrastructure/email"
	"brickvest.backend/internal/infrastructure/gateway"
	"brickvest.backend/internal/infrastructure/geocode"
	"brickvest.backend/internal/infrastructure/jobs"
	"brickvest.backend/internal/infrastructure/repositories"
	"brickvest.backend/internal/infrastructure/storage"
	"brickvest.backend/internal/interfaces/http/handlers"
	"brickvest.backend/internal/interfaces/http/middleware"
	"brickvest.backend/internal/usecases"
	"brickvest.backend/pkg/jwt"
	"brickvest.backend/pkg/logger"
	"brickvest.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	newSessionStore = redis.NewSessionStore
	newFileStorage  = func(cfg config.StorageConfig) (usecases.FileStorage, error) {
		return storage.NewS3Storage(cfg)
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := loadCfg()

	// Initialize Logger
	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Initialize Redis
	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	// Set Gin mode
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database using GORM
	dsn := cfg.Database.URL()
	db, err := openDB(dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("⚠️ Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("✅ Connected to PostgreSQL via GORM")
	}

	// Initialize JWT service
	jwtService := jwt.NewService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	emailVerifRepo := repositories.NewEmailVerificationRepository(db)
	passwordResetRepo := repositories.NewPasswordResetRepository(db)
	projectRepo := repositories.NewProjectRepository(db)
	investmentRepo := repositories.NewInvestmentRepository(db)
	documentRepo := repositories.NewDocumentRepository(db)
	analyticsRepo := repositories.NewAnalyticsRepository(db)
	uow := repositories.NewUnitOfWork(db)

	// Initialize session store
	sessionStore, err := newSessionStore(cfg.Security.SessionEncryptionKey)
	if err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}

	// Initialize external service clients
	paymentGateway := gateway.NewClient(cfg.Payment)
	fileStorage, err := newFileStorage(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize object storage: %w", err)
	}
	emailSender := email.NewSender(cfg.Email)
	geocoder := geocode.NewGeocoder(cfg.Geocoder)

	// Initialize usecases
	authUsecase := usecases.NewAuthUsecase(userRepo, emailVerifRepo, passwordResetRepo, jwtService, emailSender, sessionStore, cfg.Server.AppBaseURL)
	projectUsecase := usecases.NewProjectUsecase(projectRepo, userRepo, uow, geocoder, fileStorage)
	investmentUsecase := usecases.NewInvestmentUsecase(investmentRepo, projectRepo, userRepo, uow, paymentGateway, emailSender, cfg.Payment.FeePercent)
	documentUsecase := usecases.NewDocumentUsecase(documentRepo, userRepo, fileStorage)
	analyticsUsecase := usecases.NewAnalyticsUsecase(analyticsRepo, projectRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authUsecase)
	projectHandler := handlers.NewProjectHandler(projectUsecase, cfg.Server.MaxUploadBytes)
	investmentHandler := handlers.NewInvestmentHandler(investmentUsecase)
	documentHandler := handlers.NewDocumentHandler(documentUsecase, cfg.Server.MaxUploadBytes)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsUsecase)

	authMiddleware := middleware.AuthMiddleware(jwtService, userRepo)

	// Start background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	expiryJob := jobs.NewProjectDeadlineExpiryJob(projectRepo, investmentRepo, uow)
	go expiryJob.Start(ctx)

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	r.GET("/metrics", middleware.MetricsHandler())
	registerAPIRoutes(r, routeDeps{
		authHandler:       authHandler,
		projectHandler:    projectHandler,
		investmentHandler: investmentHandler,
		documentHandler:   documentHandler,
		analyticsHandler:  analyticsHandler,
		authMiddleware:    authMiddleware,
	})

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down server...")
		expiryJob.Stop()
		cancel()
	}()

	// Start server
	log.Printf("🚀 BrickVest Backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
