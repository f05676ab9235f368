package main

import (
	"github.com/pulse-hq/pulse/internal/config"
	"github.com/pulse-hq/pulse/internal/handlers"
	"github.com/pulse-hq/pulse/internal/models"
	"github.com/pulse-hq/pulse/internal/services"
	"github.com/pulse-hq/pulse/internal/utils"
	"github.com/pulse-hq/pulse/pkg/logger"
)

// appServices holds all initialized services and handlers needed by the application.
type appServices struct {
	cfg          *config.Config
	authHandler  *handlers.AuthHandler
	tokenCleanup *services.TokenCleanupService
}

// bootstrap initializes all application dependencies: database, services, schedulers.
func bootstrap(cfg *config.Config) *appServices {
	utils.SetJWTSecret(cfg.JWT.Secret)

	// Initialize database
	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto migrate database
	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	// Create default admin user
	authHandler := handlers.NewAuthHandler(models.GetDB(), cfg)
	if err := authHandler.CreateAdminIfNotExists(); err != nil {
		logger.Warn().Err(err).Msg("Failed to create admin user")
	}

	// Start expired-token flush scheduler
	tokenCleanup := services.NewTokenCleanupService(models.GetDB())
	tokenCleanup.StartScheduler()

	return &appServices{
		cfg:          cfg,
		authHandler:  authHandler,
		tokenCleanup: tokenCleanup,
	}
}

// shutdown gracefully stops all services.
func (s *appServices) shutdown() {
	s.tokenCleanup.StopScheduler()
	logger.Info().Msg("All schedulers stopped")
}
