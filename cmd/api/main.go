package main

import (
	"fmt"
	"os"

	"spendlog/internal/config"
	"spendlog/internal/database"
	"spendlog/internal/logger"
	"spendlog/internal/validator"

	_ "spendlog/internal/docs" // Import swagger docs
)

// @title           Spendlog
// @version         1.0
// @description     Spendlog is a personal expense tracker with per-user expenses, spending reports, spreadsheet exports and JSON backups.

// @host      localhost:8080
// @BasePath  /

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("failed to close database: %v", err)
		}
	}()

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	validator.Register()

	router, err := setupRouter(appConfig, dbManager.DB())
	if err != nil {
		return fmt.Errorf("failed to set up router: %w", err)
	}

	log.Infof("Starting Spendlog on port %s (%s database)", appConfig.Port, dbConfig.Driver)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
