package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/ipqbbqgyy/parking-system/internal/config"
	"github.com/ipqbbqgyy/parking-system/internal/db"
	"github.com/ipqbbqgyy/parking-system/internal/logger"
	"github.com/ipqbbqgyy/parking-system/internal/notify"
	"github.com/ipqbbqgyy/parking-system/internal/server"
)

// @title Parking System API
// @version 1.0
// @description Vehicle entry and exit, spot reservations, memberships and promotions for a parking lot.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init()
		logger.Fatalf("Failed to load config: %v", err)
	}
	logger.InitLevel(cfg.LogLevel)
	logger.Info("Starting parking system",
		"hourly_rate", cfg.HourlyRate.String(),
		"free_minutes", cfg.FreeDurationMinutes,
		"reservation_window", cfg.ReservationWindow.String(),
	)

	logger.Info("Connecting to database...")
	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()
	logger.Info("Database connected")

	if err := db.RunMigrations(database, cfg.MigrationsPath); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Info("Migrations completed")

	notifier := notify.New(notify.Config{
		From:     cfg.EmailFrom,
		FromName: cfg.EmailFromName,
		SMTPHost: cfg.SMTPHost,
		SMTPPort: strconv.Itoa(cfg.SMTPPort),
		SMTPUser: cfg.SMTPUser,
		SMTPPass: cfg.SMTPPass,
	}, notify.NewRedisClient(cfg.RedisAddr))
	defer notifier.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := notifier.Ping(ctx); err != nil {
		logger.Warn("Redis unavailable, notifications will fail until it is reachable", "error", err)
	}
	go notifier.Start(ctx)

	srv, err := server.New(database, cfg, notifier)
	if err != nil {
		logger.Fatalf("Failed to build server: %v", err)
	}
	srv.RunBackground(ctx)

	serverErrChan := make(chan error, 1)
	go func() {
		logger.Infof("Server starting on port %s", cfg.Port)
		if err := srv.Start(cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
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

	cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Error during server shutdown: %v", err)
	}

	logger.Info("Server stopped")
}
