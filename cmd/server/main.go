package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"creator-pulse/internal/analytics"
	"creator-pulse/internal/auth"
	"creator-pulse/internal/database"
	"creator-pulse/internal/handlers"
	"creator-pulse/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load database configuration
	dbConfig := database.LoadConfig()

	// Connect to database
	if err := database.Connect(dbConfig); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer database.Close()

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Initialize and start background workers
	workerService := worker.NewWorkerService()
	if err := workerService.Start(); err != nil {
		log.Fatal("Failed to start background workers:", err)
	}

	// Setup graceful shutdown
	setupGracefulShutdown(workerService)

	// Setup HTTP server
	setupServer(workerService)
}

func setupGracefulShutdown(workerService *worker.WorkerService) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Received shutdown signal, gracefully shutting down...")

		workerService.Stop()
		database.Close()

		log.Println("Shutdown complete")
		os.Exit(0)
	}()
}

func setupServer(workerService *worker.WorkerService) {
	// Set Gin mode based on environment
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Initialize handlers
	analyticsService := analytics.NewService(workerService.GetPostsService())
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	adminHandler := handlers.NewAdminHandler(database.DB, workerService.GetPostsService(), workerService)
	docsHandler := handlers.NewDocsHandler()

	tokenService, err := auth.NewTokenService()
	if err != nil {
		log.Fatal("Failed to initialize token service:", err)
	}

	// Health check
	r.GET("/health", handlers.HealthCheck)

	// Serve Markdown documentation as HTML
	r.GET("/doc/:doc", docsHandler.ServeMarkdownAsHTML)

	// API routes (token protected)
	api := r.Group("/api", handlers.RequireAuth(tokenService))
	{
		analyticsGroup := api.Group("/analytics")
		{
			analyticsGroup.GET("/content/:id/insights", analyticsHandler.GetContentInsights)
			analyticsGroup.GET("/creators/:id/patterns", analyticsHandler.GetPerformancePatterns)
			analyticsGroup.GET("/creators/:id/recommendations", analyticsHandler.GetRecommendations)
			analyticsGroup.GET("/creators/:id/factors", analyticsHandler.GetEngagementFactors)
			analyticsGroup.POST("/predictions", analyticsHandler.PredictPerformance)
		}

		workerGroup := api.Group("/worker")
		{
			workerGroup.GET("/status", adminHandler.GetWorkerStatus)
		}
	}

	// Admin routes (password protected)
	admin := r.Group("/admin", adminHandler.AdminAuth())
	{
		admin.GET("/stats", adminHandler.GetStats)
		admin.GET("/worker", adminHandler.GetWorkerStatus)
		admin.POST("/refresh-posts/:id", adminHandler.RefreshCreatorPosts)
		admin.POST("/refresh-metrics", adminHandler.RefreshAllMetrics)
	}

	// Get port from environment or default to 8080
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
