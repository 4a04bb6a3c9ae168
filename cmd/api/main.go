package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"devhub-api/internal/config"
	"devhub-api/internal/db"
	"devhub-api/internal/handler"
	"devhub-api/internal/integrations/github"
	"devhub-api/internal/middleware"
	"devhub-api/internal/repository"
	"devhub-api/internal/service"
	"devhub-api/internal/utils/email"
	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	database, err := db.Connect(cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()
	if err := db.MigrationsUp(database); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(database)
	var mailer service.Mailer
	if cfg.WelcomeEmail {
		mailer = email.NewSender(cfg, logger)
	}
	svc := service.NewService(repo, logger, cfg, mailer)
	ghClient := github.NewClient(cfg, logger)
	h := handler.NewHandler(svc, ghClient, logger)

	// Setup router
	r := h.Routes(middleware.AuthMiddleware(cfg))

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
