package main

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"partyhub/internal/app"
	"partyhub/internal/config"
	"partyhub/internal/content"
	"partyhub/internal/domain"
	"partyhub/internal/game"
	"partyhub/internal/timer"
	httpTransport "partyhub/internal/transport/http"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Set up logger
	var logger *slog.Logger
	logOpts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Logging.Level),
	}

	if cfg.Logging.Format == "json" {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, logOpts))
	} else {
		logger = slog.New(slog.NewTextHandler(os.Stdout, logOpts))
	}

	slog.SetDefault(logger)

	logger.Info("starting party game server",
		"env", cfg.Server.Env,
		"port", cfg.Server.Port,
	)

	// Game sessions and rooms share one clock
	clock := timer.Real()
	registry := game.NewRegistry(game.Deps{
		Clock:   clock,
		Logger:  logger,
		Content: content.NewRandom(rand.New(rand.NewSource(time.Now().UnixNano()))),
		Timing:  cfg.Timing(),
	}, game.BuiltinFactories())

	hub := app.NewHub(registry, clock, app.HubOptions{
		RoomCodeLength: cfg.Game.RoomCodeLength,
		Room: app.RoomSettings{
			MinPlayers:          cfg.Game.MinPlayers,
			MaxPlayers:          cfg.Game.MaxPlayers,
			IntermissionSeconds: cfg.Game.IntermissionSeconds,
			DefaultSettings: domain.Settings{
				RoundCount:   cfg.Game.DefaultRoundCount,
				TimePerRound: cfg.Game.DefaultTimePerRound,
			},
			ReconnectGrace: cfg.Game.ReconnectGracePeriod,
		},
	}, logger)
	defer hub.Close()

	logger.Info("games available", "types", registry.ListSupportedTypes())

	// Create HTTP server
	server := httpTransport.NewServer(cfg, hub, logger)

	// Start server in goroutine
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server stopped")
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
