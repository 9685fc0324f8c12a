package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/paragonmaik/accounts-api/config"
	"github.com/paragonmaik/accounts-api/internal/app/controller"
	"github.com/paragonmaik/accounts-api/internal/app/repository"
	"github.com/paragonmaik/accounts-api/internal/app/service"
	"github.com/paragonmaik/accounts-api/internal/db"
	"github.com/paragonmaik/accounts-api/internal/middleware"
	"github.com/paragonmaik/accounts-api/internal/router"
	"github.com/paragonmaik/accounts-api/pkg/logger"
	"github.com/paragonmaik/accounts-api/pkg/mailer"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting accounts API server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Initialize repositories
	accountRepo := repository.NewAccountRepository(db.GetDB())

	// Initialize services
	accountService := service.NewAccountService(
		accountRepo,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	passwordResetService := service.NewPasswordResetService(
		accountRepo,
		mailer.NewFromConfig(cfg.SMTP),
		cfg.Reset.Secret,
		cfg.Reset.TokenMaxAge,
		cfg.Reset.FrontendURL,
	)

	// Initialize controllers and middleware
	accountController := controller.NewAccountController(accountService, passwordResetService)
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Setup router
	r := router.NewRouter(accountController, authMiddleware, cfg)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
