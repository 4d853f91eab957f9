package main

import (
	"github.com/aquatrack/pool-service-api/internal/config"
	"github.com/aquatrack/pool-service-api/internal/constants"
	"github.com/aquatrack/pool-service-api/internal/database"
	"github.com/aquatrack/pool-service-api/internal/handlers"
	"github.com/aquatrack/pool-service-api/internal/middleware"
	"github.com/aquatrack/pool-service-api/internal/permissions"
	"github.com/aquatrack/pool-service-api/internal/repository"
	"github.com/aquatrack/pool-service-api/internal/services"
	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg := config.Load()

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.JSONFormatter{})

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		logrus.WithError(err).Fatal("failed to run migrations")
	}
	if err := database.AddIndexes(database.GetDB()); err != nil {
		logrus.WithError(err).Fatal("failed to add indexes")
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		logrus.WithError(err).Fatal("failed to create redis store")
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

	// Repositories and services
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	orderRepo := repository.NewWorkOrderRepository(db)

	authService := services.NewAuthService(userRepo)
	oauthService := services.NewOAuthService(userRepo, orgRepo)
	orderService := services.NewWorkOrderService(orderRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	oauthHandler := handlers.NewOAuthHandler(oauthService, cfg)
	orgHandler := handlers.NewOrganizationHandler(orgRepo)
	orderHandler := handlers.NewWorkOrderHandler(orderService)

	requireAuth := middleware.RequireAuth(authService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Pool Service API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", requireAuth, authHandler.GetCurrentUser)
			auth.GET("/google", oauthHandler.Login)
			auth.GET("/google/callback", oauthHandler.Callback)
		}

		// Organization routes (protected)
		orgs := api.Group("/organizations")
		orgs.Use(requireAuth)
		{
			orgs.GET("/:org_id",
				middleware.RequireOrganizationAccess(),
				middleware.RequirePermission(permissions.ResourceOrganizations, permissions.ActionRead),
				orgHandler.GetOrganization)
		}

		// Work order routes (protected)
		orders := api.Group("/work-orders")
		orders.Use(requireAuth)
		{
			orders.GET("",
				middleware.RequirePermission(permissions.ResourceWorkOrders, permissions.ActionRead),
				orderHandler.ListWorkOrders)
			orders.POST("",
				middleware.RequirePermission(permissions.ResourceWorkOrders, permissions.ActionCreate),
				orderHandler.CreateWorkOrder)
			orders.GET("/:id",
				middleware.RequirePermission(permissions.ResourceWorkOrders, permissions.ActionRead),
				orderHandler.GetWorkOrder)
			orders.PATCH("/:id",
				middleware.RequirePermission(permissions.ResourceWorkOrders, permissions.ActionUpdate),
				orderHandler.UpdateWorkOrder)
			orders.DELETE("/:id",
				middleware.RequirePermission(permissions.ResourceWorkOrders, permissions.ActionDelete),
				orderHandler.DeleteWorkOrder)
		}
	}

	// Start server
	logrus.Info("server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		logrus.WithError(err).Fatal("failed to start server")
	}
}
