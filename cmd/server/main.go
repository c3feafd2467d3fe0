package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "rentby-escrow/internal/api/http"
	"rentby-escrow/internal/config"
	"rentby-escrow/internal/custody"
	"rentby-escrow/internal/logger"
	"rentby-escrow/internal/repository"
	"rentby-escrow/internal/repository/memory"
	"rentby-escrow/internal/repository/postgres"
	"rentby-escrow/internal/security"
	"rentby-escrow/internal/service"

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
	logger.Info("Starting rentby escrow backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress(), "store", cfg.Store.Driver, "faucet", cfg.Custody.EnableFaucet)

	store, closeStore, err := openStore(cfg)
	if err != nil {
		logger.Error("Failed to open store", "error", err)
		log.Fatalf("Failed to open store: %v", err)
	}
	defer closeStore()

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute)
	authMiddleware := httpapi.NewAuthMiddleware(tokenManager)

	// Initialize Services
	rentalSvc := service.NewRentalService(store, custody.NewExecutor(), time.Now)
	resourceSvc := service.NewResourceService(store, time.Now)
	ledgerSvc := service.NewLedgerService(store, cfg.Custody.EnableFaucet)

	// Initialize HTTP handlers
	handler := httpapi.NewHandler(rentalSvc, resourceSvc, ledgerSvc, tokenManager, time.Duration(cfg.JWT.SessionClockSkew)*time.Second)
	router := httpapi.NewRouter(handler, authMiddleware)

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Failed to serve HTTP", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
	logger.Info("HTTP server stopped")
}

// openStore connects the configured store. The postgres schema is migrated
// on startup.
func openStore(cfg *config.Config) (repository.Store, func(), error) {
	if cfg.Store.Driver == config.StoreMemory {
		logger.Warn("Using in-memory store; state is lost on restart")
		return memory.NewStore(), func() {}, nil
	}

	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}
	logger.Info("Database connection established")

	if err := postgres.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	return postgres.NewStore(db), func() { db.Close() }, nil
}
