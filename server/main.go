package main

import (
	"log"
	"net/http"
	"time"

	"bloodbank-backend/server/handlers"
	"bloodbank-backend/server/middleware"
	"bloodbank-backend/server/services"
	"bloodbank-backend/shared/config"
	"bloodbank-backend/shared/database"
	"bloodbank-backend/shared/database/models"
	"bloodbank-backend/shared/database/repositories"
	"bloodbank-backend/shared/utils/cache"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func main() {
	// Load configuration
	config.LoadConfig()
	cfg := config.GetConfig()

	// Initialize database
	if err := database.InitDatabase(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.CloseDatabase()

	// Bootstrap the admin account
	if err := database.SeedDatabase(); err != nil {
		log.Printf("Warning: admin seeding failed: %v", err)
	}

	// Redis-backed stats cache; the app degrades to uncached stats when unavailable
	if err := cache.InitCacheManager(); err != nil {
		log.Printf("Warning: cache unavailable, stats will be computed per request: %v", err)
	}
	cacheManager := cache.GetCacheManager()
	defer cacheManager.Close()

	// Services
	db := database.GetDB()
	store := repositories.NewLifecycleRepository(db)
	lifecycleService := services.NewLifecycleService(store, cacheManager)
	statsService := services.NewStatsService(db, cacheManager)

	// Handlers
	authHandler := handlers.NewAuthHandler(db)
	donorHandler := handlers.NewDonorHandler(db, lifecycleService)
	requestHandler := handlers.NewRequestHandler(db, lifecycleService)
	requesterHandler := handlers.NewRequesterHandler(db)
	adminHandler := handlers.NewAdminHandler(db, lifecycleService, statsService)

	// Rate limiting
	rateLimiter := middleware.NewRateLimiter(30 * time.Minute)

	loginConfig := middleware.RateLimitConfig{
		MaxRequests:   cfg.GetLoginRateLimitMaxAttempts(),
		TimeWindow:    cfg.GetLoginRateLimitWindow(),
		BlockDuration: cfg.GetLoginRateLimitBlockDuration(),
	}

	registerConfig := middleware.RateLimitConfig{
		MaxRequests:   cfg.GetRegisterRateLimitMaxAttempts(),
		TimeWindow:    cfg.GetRegisterRateLimitWindow(),
		BlockDuration: cfg.GetRegisterRateLimitBlockDuration(),
	}

	router := gin.Default()
	router.Use(cors.Default())

	registerRoutes(router,
		authHandler, donorHandler, requestHandler, requesterHandler, adminHandler,
		rateLimiter, loginConfig, registerConfig)

	log.Printf("🚀 Blood Bank API starting on port %s...", cfg.ServerPort)
	router.Run(":" + cfg.ServerPort)
}

func registerRoutes(
	router *gin.Engine,
	authHandler *handlers.AuthHandler,
	donorHandler *handlers.DonorHandler,
	requestHandler *handlers.RequestHandler,
	requesterHandler *handlers.RequesterHandler,
	adminHandler *handlers.AdminHandler,
	rateLimiter *middleware.RateLimiter,
	loginConfig, registerConfig middleware.RateLimitConfig,
) {
	// Auth endpoints
	auth := router.Group("/api/auth")
	{
		auth.POST("/register", rateLimiter.RegistrationRateLimitMiddleware(registerConfig), authHandler.Register)
		auth.POST("/login", rateLimiter.LoginRateLimitMiddleware(loginConfig), authHandler.Login)
	}

	// Donor endpoints
	donors := router.Group("/api/donors")
	donors.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.RoleDonor))
	{
		donors.GET("/profile", donorHandler.GetProfile)
		donors.PUT("/profile", donorHandler.UpdateProfile)
		donors.PUT("/availability", donorHandler.UpdateAvailability)
		donors.GET("/requests", donorHandler.GetMatchingRequests)
		donors.POST("/accept-request/:requestId", donorHandler.AcceptRequest)
		donors.GET("/history", donorHandler.GetHistory)
	}

	// Blood request endpoints (requester-owned)
	requests := router.Group("/api/requests")
	requests.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.RoleRequester))
	{
		requests.POST("", requestHandler.Create)
		requests.GET("/my-requests", requestHandler.GetMyRequests)
		requests.GET("/:requestId/matches", requestHandler.GetMatches)
		requests.PUT("/:requestId", requestHandler.UpdateStatus)
		requests.DELETE("/:requestId", requestHandler.Delete)
	}

	// Requester profile endpoints
	requesters := router.Group("/api/requesters")
	requesters.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.RoleRequester))
	{
		requesters.GET("/profile", requesterHandler.GetProfile)
		requesters.PUT("/profile", requesterHandler.UpdateProfile)
	}

	// Admin endpoints
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.RoleAdmin))
	{
		admin.GET("/users", adminHandler.GetUsers)
		admin.PUT("/users/:userId", adminHandler.UpdateUserStatus)
		admin.GET("/stats", adminHandler.GetStats)
		admin.GET("/requests", adminHandler.GetRequests)
		admin.PUT("/requests/:requestId/priority", adminHandler.UpdateRequestPriority)
		admin.PUT("/requests/:requestId/status", adminHandler.UpdateRequestStatus)
		admin.GET("/donations", adminHandler.GetDonations)
		admin.PUT("/donations/:donationId/complete", adminHandler.CompleteDonation)
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "blood-bank",
		})
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
