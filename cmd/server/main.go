package main

import (
	"log"
	"os"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/yashika222/ReliefNet/internal/config"
	"github.com/yashika222/ReliefNet/internal/constants"
	"github.com/yashika222/ReliefNet/internal/database"
	"github.com/yashika222/ReliefNet/internal/handlers"
	"github.com/yashika222/ReliefNet/internal/middleware"
	"github.com/yashika222/ReliefNet/internal/models"
	"github.com/yashika222/ReliefNet/internal/notify"
	"github.com/yashika222/ReliefNet/internal/repository"
	"github.com/yashika222/ReliefNet/internal/scheduler"
	"github.com/yashika222/ReliefNet/internal/services"
)

const uploadDir = "uploads"

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		log.Fatalf("Failed to create upload directory: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Repositories
	db := database.GetDB()
	taskRepo := repository.NewTaskRepository(db)
	userRepo := repository.NewUserRepository(db)
	disasterRepo := repository.NewDisasterRepository(db)

	// Notifications: SMTP when configured, log output otherwise. SMS stays
	// disabled until a provider is wired up.
	var base notify.Notifier = notify.NewLogNotifier()
	if cfg.SMTPHost != "" {
		base = notify.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFrom)
	}
	queue := notify.NewQueue(base, 64)
	defer queue.Close()
	var notifier notify.Notifier = queue
	var sms notify.SMSSender

	// Services
	authService := services.NewAuthService(userRepo)
	taskService := services.NewTaskService(taskRepo, userRepo, notifier, sms, cfg.AdminEmail)
	volunteerService := services.NewVolunteerService(userRepo, taskRepo, notifier)
	warningService := services.NewWarningService(taskRepo, userRepo, notifier, sms)
	metricsService := services.NewMetricsService(taskRepo, userRepo)
	var aiService *services.AIService
	if cfg.OpenAIAPIKey != "" {
		aiService = services.NewAIService(cfg.OpenAIAPIKey)
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	taskHandler := handlers.NewTaskHandler(taskService, metricsService, uploadDir)
	adminHandler := handlers.NewAdminHandler(taskService, volunteerService, warningService, metricsService, aiService, disasterRepo)

	// Background warning sweep
	sched := scheduler.New(warningService)
	if err := sched.Start(cfg.WarningSweepSpec); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "ReliefNet API is running",
		})
	})

	// Report attachments
	r.Static("/uploads", uploadDir)

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Volunteer portal (protected)
		volunteer := api.Group("/volunteer")
		volunteer.Use(middleware.RequireAuth(), middleware.RequireRole(models.RoleVolunteer))
		{
			volunteer.GET("/tasks", taskHandler.ListTasks)
			volunteer.GET("/tasks/:id", taskHandler.GetTask)
			volunteer.PATCH("/tasks/:id/status", taskHandler.UpdateStatus)
			volunteer.POST("/tasks/:id/report", taskHandler.SubmitReport)
			volunteer.GET("/metrics", taskHandler.GetMetrics)
		}

		// Coordination dashboard (admin only)
		admin := api.Group("/admin")
		admin.Use(middleware.RequireAuth(), middleware.RequireRole(models.RoleAdmin))
		{
			admin.POST("/tasks", adminHandler.AssignTask)
			admin.GET("/volunteers", adminHandler.ListVolunteers)
			admin.GET("/volunteers/:id", adminHandler.GetVolunteer)
			admin.GET("/volunteers/:id/tasks", adminHandler.ListVolunteerTasks)
			admin.POST("/volunteers/:id/approve", adminHandler.ApproveVolunteer)
			admin.POST("/volunteers/:id/reject", adminHandler.RejectVolunteer)
			admin.POST("/volunteers/:id/block", adminHandler.BlockVolunteer)
			admin.POST("/volunteers/:id/unblock", adminHandler.UnblockVolunteer)
			admin.DELETE("/volunteers/:id", adminHandler.DeleteVolunteer)
			admin.POST("/volunteers/:id/reset-password", adminHandler.ResetVolunteerPassword)
			admin.POST("/volunteers/:id/email", adminHandler.EmailVolunteer)
			admin.POST("/volunteers/:id/warn", adminHandler.WarnVolunteer)
			admin.POST("/warnings/run", adminHandler.RunWarningSweep)
			admin.GET("/summary", adminHandler.GetSummary)
			admin.GET("/disasters", adminHandler.ListActiveDisasters)
			admin.POST("/ai/task-drafts", adminHandler.DraftTasks)
		}
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
