package main

import (
	"assist_flow_app_go/config"
	"assist_flow_app_go/db"
	"assist_flow_app_go/handlers"
	"assist_flow_app_go/middleware"
	"assist_flow_app_go/models"
	"assist_flow_app_go/services"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Initialize(cfg.DBPath, cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(&models.Usuario{}, &models.Session{}, &models.Corresponsal{}, &models.Caso{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// The dashboard reads from store-owned views
	if err := db.SetupViews(db.DB); err != nil {
		log.Fatalf("Failed to create dashboard views: %v", err)
	}

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: true,
	}))

	// Make config available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})

	// Public routes (no authentication required)
	e.POST("/api/auth/login", handlers.LoginHandler, middleware.LoginRateLimiter.Middleware())
	e.POST("/api/auth/register", handlers.RegisterHandler, middleware.LoginRateLimiter.Middleware())

	// Protected routes
	protected := e.Group("/api")
	protected.Use(middleware.RequireAuth())
	{
		protected.POST("/auth/logout", handlers.LogoutHandler)
		protected.GET("/me", handlers.GetCurrentUserHandler)

		// Cases: every authenticated user can create, edit, and view
		protected.GET("/casos", handlers.GetCasosHandler, middleware.SearchRateLimiter.Middleware())
		protected.GET("/casos/numero", handlers.GenerateCaseNumberHandler)
		protected.GET("/casos/export", handlers.ExportCasosHandler)
		protected.GET("/casos/:id", handlers.GetCasoHandler)
		protected.POST("/casos", handlers.CreateCasoHandler)
		protected.PUT("/casos/:id", handlers.UpdateCasoHandler)

		// The case form needs the correspondent dropdown, so reads stay open
		protected.GET("/corresponsales", handlers.GetCorresponsalesHandler)
		protected.GET("/corresponsales/:id", handlers.GetCorresponsalHandler)

		protected.GET("/dashboard", handlers.GetDashboardHandler)

		// Admin-only routes: correspondent management and case deletion
		adminRoutes := protected.Group("")
		adminRoutes.Use(middleware.RequireRole(models.RolAdmin))
		{
			adminRoutes.DELETE("/casos/:id", handlers.DeleteCasoHandler)
			adminRoutes.POST("/corresponsales", handlers.CreateCorresponsalHandler)
			adminRoutes.PUT("/corresponsales/:id", handlers.UpdateCorresponsalHandler)
			adminRoutes.DELETE("/corresponsales/:id", handlers.DeleteCorresponsalHandler)
		}
	}

	// Start background cleanup job (runs every hour)
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			if err := services.CleanupExpiredSessions(db.DB); err != nil {
				log.Printf("Error cleaning up expired sessions: %v", err)
			}
		}
	}()

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
