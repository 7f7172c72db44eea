package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "fitnessmanager/docs"
	"fitnessmanager/internal/auth"
	"fitnessmanager/internal/config"
	"fitnessmanager/internal/db"
	"fitnessmanager/internal/logger"
	"fitnessmanager/internal/server"

	"github.com/redis/go-redis/v9"
)

//go:generate swag init -g cmd/app/main.go -o docs --parseInternal

// @title Fitness Manager API
// @version 1.0
// @description API for gym facilities, course schedules and reservations.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logger.Setup(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	logger.Info("Starting fitness manager")

	logger.Info("Connecting to database...")
	database, err := db.Connect(cfg.DatabaseURL, db.Pool{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()
	logger.Info("Database connected")

	if err := db.RunMigrations(database, cfg.MigrationsPath); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Info("Migrations completed")

	var rdb redis.Cmdable
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer client.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := client.Ping(pingCtx).Err(); err != nil {
			logger.Warn("Redis unreachable, rate limiting will fail open until it recovers", "addr", cfg.RedisAddr, "error", err)
		}
		cancel()

		rdb = client
		logger.Info("Redis rate limiter enabled", "addr", cfg.RedisAddr)
	}

	tokens, err := auth.NewIssuer(cfg.JWTSecret, cfg.JWTRefreshSecret)
	if err != nil {
		logger.Fatalf("Failed to configure token issuer: %v", err)
	}

	srv := server.New(database, cfg, tokens, rdb)

	serverErrChan := make(chan error, 1)
	go func() {
		logger.Infof("Server starting on port %s", cfg.Port)
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Infof("Received signal: %v", sig)
	case err := <-serverErrChan:
		logger.Errorf("Server error: %v", err)
	}

	logger.Info("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Error during server shutdown: %v", err)
	}

	logger.Info("Server stopped")
}
