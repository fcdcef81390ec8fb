package main

import (
	"context"

	"github.com/apex/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/codecops/cleanify-api/internal/config"
	"github.com/codecops/cleanify-api/internal/constants"
	"github.com/codecops/cleanify-api/internal/database"
	"github.com/codecops/cleanify-api/internal/handlers"
	"github.com/codecops/cleanify-api/internal/middleware"
	"github.com/codecops/cleanify-api/internal/repository"
	"github.com/codecops/cleanify-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.WithError(err).Fatal("failed to run migrations")
	}

	// Seed demo data when requested
	if cfg.SeedDemo {
		if err := database.SeedDemo(); err != nil {
			log.WithError(err).Fatal("failed to seed demo data")
		}
	}

	// Initialize repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	complaintRepo := repository.NewComplaintRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	rewardRepo := repository.NewRewardRepository(db)
	binRepo := repository.NewBinRepository(db)
	alertRepo := repository.NewAlertRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo)
	lifecycleService := services.NewLifecycleService(db, complaintRepo, taskRepo, rewardRepo, userRepo, binRepo)
	rewardService := services.NewRewardService(rewardRepo)
	workerService := services.NewWorkerService(userRepo, taskRepo, authService)
	binService := services.NewBinService(binRepo, alertRepo)
	statsService := services.NewStatsService(binRepo, alertRepo, complaintRepo, userRepo)
	mediaService, err := services.NewMediaService(cfg.UploadDir)
	if err != nil {
		log.WithError(err).Fatal("failed to prepare upload directory")
	}

	// Initialize Gin router
	r := gin.Default()

	// Allow the dashboard frontend through, whatever origin it runs on
	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: false,
	}))

	// Setup session middleware with Redis
	store, err := redisStore.NewStore(
		10,
		"tcp",
		cfg.RedisAddr(),
		"",
		cfg.RedisPassword,
		[]byte(cfg.SessionSecret),
	)
	if err != nil {
		log.WithError(err).Fatal("failed to create redis session store")
	}
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Redis client for rate limiting
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.RedisPassword,
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	complaintHandler := handlers.NewComplaintHandler(lifecycleService)
	taskHandler := handlers.NewTaskHandler(lifecycleService, workerService, mediaService)
	binHandler := handlers.NewBinHandler(binService)
	rewardHandler := handlers.NewRewardHandler(rewardService)
	statsHandler := handlers.NewStatsHandler(statsService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Cleanify API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/register", authHandler.Register)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Bin routes (protected)
		bins := api.Group("/bins")
		bins.Use(middleware.RequireAuth())
		{
			bins.GET("", binHandler.ListBins)
			bins.POST("/:id/collect", binHandler.CollectBin)
		}

		// Alert routes (protected)
		alerts := api.Group("/alerts")
		alerts.Use(middleware.RequireAuth())
		{
			alerts.GET("", binHandler.ListAlerts)
			alerts.POST("/:id/resolve", binHandler.ResolveAlert)
		}

		// Complaint routes (protected)
		complaints := api.Group("/complaints")
		complaints.Use(middleware.RequireAuth())
		{
			complaints.GET("", complaintHandler.ListComplaints)
			complaints.POST("", middleware.ComplaintRateLimiter(rdb, cfg.ComplaintRateLimit), complaintHandler.SubmitComplaint)
			complaints.POST("/:id/respond", middleware.RequireAdmin(), complaintHandler.Respond)
			complaints.POST("/:id/resolve", middleware.RequireAdmin(), complaintHandler.Resolve)
			complaints.GET("/:id/task-suggestion", middleware.RequireAdmin(), complaintHandler.TaskSuggestion)
		}

		// Reward routes (protected)
		rewards := api.Group("/rewards")
		rewards.Use(middleware.RequireAuth())
		{
			rewards.GET("/me", rewardHandler.GetMyRewards)
		}

		// Stats routes (protected)
		api.GET("/stats", middleware.RequireAuth(), statsHandler.GetStats)

		// Task routes
		tasks := api.Group("/tasks")
		{
			// Media is fetched by <img> tags, no session attached
			tasks.GET("/media/:filename", taskHandler.ServeMedia)

			authed := tasks.Group("")
			authed.Use(middleware.RequireAuth())
			{
				authed.GET("", taskHandler.ListTasks)
				authed.POST("", middleware.RequireAdmin(), taskHandler.CreateTask)
				authed.GET("/workers", middleware.RequireAdmin(), taskHandler.ListWorkers)
				authed.POST("/workers", middleware.RequireAdmin(), taskHandler.CreateWorker)
				authed.DELETE("/workers/:id", middleware.RequireAdmin(), taskHandler.DeleteWorker)
				authed.POST("/:id/start", taskHandler.StartTask)
				authed.POST("/:id/complete", taskHandler.CompleteTask)
				authed.POST("/:id/upload-photo", taskHandler.UploadPhoto)
				authed.POST("/:id/approve", middleware.RequireAdmin(), taskHandler.ApproveTask)
				authed.POST("/:id/reject", middleware.RequireAdmin(), taskHandler.RejectTask)
			}
		}
	}

	// Start the bin fill simulator
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if cfg.SimulatorEnabled {
		simulator := services.NewSimulator(binService, cfg.SimulatorInterval)
		go simulator.Run(ctx)
	}

	// Start server
	log.WithField("addr", cfg.ListenAddr).Info("server starting")
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.WithError(err).Fatal("failed to start server")
	}
}
