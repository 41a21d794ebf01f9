package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	_ "github.com/joho/godotenv/autoload"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/nichenav/nichenav-api/docs" // Swagger docs
	"github.com/nichenav/nichenav-api/internal/ai"
	"github.com/nichenav/nichenav-api/internal/config"
	"github.com/nichenav/nichenav-api/internal/database"
	"github.com/nichenav/nichenav-api/internal/handlers"
	"github.com/nichenav/nichenav-api/internal/jobs"
	"github.com/nichenav/nichenav-api/internal/middleware"
	"github.com/nichenav/nichenav-api/internal/repository"
	"github.com/nichenav/nichenav-api/internal/services"
	"github.com/nichenav/nichenav-api/internal/storage"
	"github.com/nichenav/nichenav-api/internal/trends"
	"github.com/nichenav/nichenav-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// @title NicheNav API
// @version 1.0
// @description REST API for NicheNav micro-niche research and validation

// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Setup(cfg.Environment)

	// Initialize Sentry when DSN is configured
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			TracesSampleRate: 0.2,
			Environment:      cfg.Environment,
		}); err != nil {
			logger.Error("Sentry initialization failed", "error", err)
		} else {
			logger.Info("Sentry initialized")
		}
	}

	if cfg.ResendAPIKey == "" || cfg.FromEmail == "" {
		logger.Warn("Resend email disabled: RESEND_API_KEY or FROM_EMAIL not set")
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to database")

	if err := database.Migrate(db); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Initialize storage
	store, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	logger.Info("Initialized local storage")

	// Initialize repositories
	repos := repository.NewRepositories(db)

	// Initialize background worker
	worker := jobs.NewWorker(cfg.WorkerCount)
	logger.Info("Started background worker", "goroutines", cfg.WorkerCount)

	// Initialize the generative AI client and trend generator
	generator, err := ai.NewGeminiClient(context.Background(), cfg.GeminiAPIKey)
	if err != nil {
		logger.Error("Failed to initialize AI client", "error", err)
		os.Exit(1)
	}
	defer generator.Close()
	trendGen := trends.New(nil)

	// Initialize services
	svcs := services.NewServices(repos, worker, store, cfg, generator, trendGen)

	// Schedule recurring jobs
	scheduleJobs(worker, svcs)

	// Initialize handlers
	h := handlers.NewHandlers(svcs)

	// Setup router
	router := setupRouter(h, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	// Shutdown background worker
	worker.Shutdown()
	logger.Info("Background worker stopped")

	// Flush Sentry events before exit
	if cfg.SentryDSN != "" {
		sentry.Flush(5 * time.Second)
	}

	logger.Info("Server exited gracefully")
}

func setupRouter(h *handlers.Handlers, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Global middleware
	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// Redirect root to swagger
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check (public)
		v1.GET("/health", h.Health.Index)

		// Authentication (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
			auth.POST("/logout", h.Auth.Logout)
		}

		// Registration and password recovery (public)
		v1.POST("/users/register", h.User.Register)
		v1.POST("/users/send_recovery_code", h.User.SendRecoveryCode)
		v1.POST("/users/verify_recovery_code", h.User.VerifyRecoveryCode)
		v1.POST("/users/update_password_with_code", h.User.ResetPassword)

		// Protected routes (requires authentication)
		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTSecret))
		{
			// Profile
			protected.GET("/users/me", h.User.Me)
			protected.PUT("/users/me", h.User.UpdateProfile)
			protected.PUT("/users/me/password", h.User.ChangePassword)

			// Niche analysis
			protected.POST("/niches/analyze", h.Niche.Analyze)
			protected.GET("/niches", h.Niche.Index)
			protected.GET("/niches/:niche_id", h.Niche.Show)
			protected.GET("/niches/:niche_id/summary_pdf", h.Niche.SummaryPDF)
			protected.POST("/niches/:niche_id/reports", h.Report.Create)

			// Validation reports
			protected.GET("/reports", h.Report.Index)
			protected.GET("/reports/:report_id", h.Report.Show)
			protected.GET("/reports/:report_id/pdf", h.Report.PDF)

			// Notifications
			// Static route first so "mark_all_as_read" is not matched as :notification_id
			notifications := protected.Group("/notifications")
			{
				notifications.GET("", h.Notification.Index)
				notifications.POST("/mark_all_as_read", h.Notification.MarkAllAsRead)
				notifications.POST("/:notification_id/mark_as_read", h.Notification.MarkAsRead)
			}

			// Admin-only routes
			admin := protected.Group("/admin")
			admin.Use(middleware.RequireAdmin())
			{
				admin.GET("/users", h.Admin.ListUsers)
				admin.GET("/users/:user_id", h.Admin.ShowUser)
				admin.PUT("/users/:user_id/status", h.Admin.UpdateUserStatus)
				admin.PUT("/users/:user_id/subscription", h.Admin.UpdateSubscription)
				admin.GET("/stats", h.Admin.Stats)
				admin.GET("/stats/export", h.Admin.ExportStats)
				admin.GET("/settings/ai", h.Admin.GetAISettings)
				admin.PUT("/settings/ai", h.Admin.UpdateAISettings)
			}
		}
	}

	return router
}

func scheduleJobs(worker *jobs.Worker, svcs *services.Services) {
	// Expire lapsed premium subscriptions daily
	worker.ScheduleEvery(24*time.Hour, func(ctx context.Context) error {
		logger.Info("[Job] Expiring lapsed subscriptions...")
		return svcs.Admin.ExpireLapsedSubscriptions(ctx)
	})

	// Reset free plan report quotas monthly (checked daily, applied on the 1st)
	worker.ScheduleEvery(24*time.Hour, func(ctx context.Context) error {
		if time.Now().Day() != 1 {
			return nil
		}
		logger.Info("[Job] Resetting free plan report quotas...")
		return svcs.Admin.ResetFreeQuotas(ctx)
	})

	logger.Info("Scheduled recurring jobs")
}
