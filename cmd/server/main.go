package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "academyhub-backend/internal/api/http"
	"academyhub-backend/internal/config"
	"academyhub-backend/internal/logger"
	"academyhub-backend/internal/realtime"
	"academyhub-backend/internal/repository/postgres"
	"academyhub-backend/internal/security"
	"academyhub-backend/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting AcademyHub Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(
		cfg.JWT.LoginSecret,
		cfg.JWT.InvitationSecret,
		cfg.JWT.ResetSecret,
		cfg.LoginTokenTTL(),
		cfg.ResetTokenTTL(),
	)

	// Initialize Email Service
	emailSvc := service.NewEmailService(
		cfg.SendGrid.APIKey,
		cfg.SendGrid.FromEmail,
		cfg.SendGrid.FromName,
	)

	// Initialize real-time relay
	hub := realtime.NewHub()

	// Initialize Services
	invitationSvc := service.NewInvitationService(store, tokenManager, emailSvc, cfg.Frontend.BaseURL, cfg.InvitationTokenTTL())
	authSvc := service.NewAuthService(store.Users(), tokenManager, emailSvc, cfg.Frontend.BaseURL)
	academySvc := service.NewAcademyService(store.Academies(), store.Users())
	batchSvc := service.NewBatchService(store.Batches(), store.Academies(), store.Users(), store.Sequences())
	goalSvc := service.NewGoalService(store.Goals(), store.Academies(), store.Users(), store.Sequences())
	taskSvc := service.NewTaskService(store.Tasks(), store.Users(), store.Batches())
	chatSvc := service.NewChatService(store.Messages(), store.FriendRequests(), store.Users(), hub)

	// Assemble the HTTP surface
	router := httpapi.NewRouter(httpapi.RouterDeps{
		Tokens:         tokenManager,
		Auth:           authSvc,
		Invitations:    invitationSvc,
		Academies:      academySvc,
		Batches:        batchSvc,
		Goals:          goalSvc,
		Tasks:          taskSvc,
		Chat:           chatSvc,
		Hub:            hub,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
