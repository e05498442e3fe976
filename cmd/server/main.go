/*
Package main is the entry point of the PinMap server.

It loads configuration, initializes logging, opens the pin repository (PostgreSQL, or memory in
development), connects image storage when configured, serves the HTTP API, and shuts down
gracefully on SIGINT or SIGTERM.
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"pinmap/internal/app/db"
	"pinmap/internal/app/pin"
	"pinmap/internal/app/resolver"
	"pinmap/internal/app/storage"
	"pinmap/internal/configs"
	"pinmap/internal/handler"
	"pinmap/internal/pkg/limiter"
	"pinmap/internal/pkg/logx"
)

func main() {
	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logx.InitGlobalLogger(cfg.IsDevelopment())
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Bool("database", cfg.DatabaseDSN != "").
		Msg("Configuration loaded successfully")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var repo pin.Repository
	if cfg.DatabaseDSN != "" {
		pool, err := db.NewPool(ctx, cfg.DatabaseDSN)
		if err != nil {
			logx.Fatal(err, "Failed to connect to database")
		}
		defer pool.Close()
		repo = db.NewPinStore(pool)
	} else {
		logx.Warn("DATABASE_URL not set, pins are kept in memory")
		repo = pin.NewMemoryRepository()
	}

	deps := &handler.AppDeps{
		Config:        cfg,
		CreateLimiter: limiter.NewKeyedRateLimiter(ctx, rate.Limit(cfg.CreatePinRate), cfg.CreatePinBurst),
	}

	storageCfg := storage.ServiceConfig{
		S3BucketName:      cfg.S3BucketName,
		S3Endpoint:        cfg.S3Endpoint,
		S3AccessKeyID:     cfg.S3AccessKeyID,
		S3SecretAccessKey: cfg.S3SecretAccessKey,
	}
	if storageCfg.Configured() {
		deps.Storage, err = storage.NewStorageService(ctx, storageCfg)
		if err != nil {
			logx.Fatal(err, "Failed to initialize image storage")
		}
		deps.Resolvers = resolver.New(repo, deps.Storage)
	} else {
		logx.Warn("S3 storage not configured, image uploads are disabled")
		deps.Resolvers = resolver.New(repo, nil)
	}

	serverAddr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler.Router(deps),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logx.Info(fmt.Sprintf("PinMap Server starting on http://localhost%s", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logx.Fatal(err, "Server failed to start")
		}
	}()

	<-ctx.Done()
	logx.Info("Received shutdown signal. Starting graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Fatal(err, "Server forced to shutdown")
	}

	logx.Info("Server gracefully stopped.")
}
