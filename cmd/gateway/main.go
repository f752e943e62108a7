package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	cfg "github.com/sand/wallet-dashboard/backend/config"
	"github.com/sand/wallet-dashboard/backend/internal/gateway"
	"github.com/sand/wallet-dashboard/backend/internal/handlers"
)

// Server timeout constants. Writes must outlast one upstream call.
const (
	readTimeoutSeconds     = 15
	writeTimeoutSeconds    = 20
	idleTimeoutSeconds     = 60
	shutdownTimeoutSeconds = 5
)

func main() {
	time.Local = time.UTC

	// Parse configuration
	config, err := cfg.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}
	if err = config.Validate(); err != nil {
		log.Fatal(err)
	}

	// Setup logging
	opts := &slog.HandlerOptions{
		Level: config.Log.Level,
	}

	if config.App.Debug {
		opts.Level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, opts))
	logger.Info("Starting gateway with configuration",
		"debug", config.App.Debug,
		"environment", config.App.Environment,
		"upstream_base_url", config.Upstream.BaseURL,
		"upstream_timeout", config.Upstream.Timeout.String(),
		"allowed_origin", config.HTTP.AllowedOrigin,
		"server_port", config.HTTP.Port)

	upstream, err := gateway.NewClient(logger, gateway.Config{
		APIKey:    config.Upstream.APIKey,
		APISecret: config.Upstream.APISecret,
		BaseURL:   config.Upstream.BaseURL,
		Timeout:   config.Upstream.Timeout,
	})
	if err != nil {
		logger.Error("Failed to create upstream client", "error", err)
		log.Fatal(err)
	}

	httpHandler := handlers.NewHTTPHandler(logger, upstream)
	handler := handlers.NewRouter(logger, httpHandler, config.HTTP.AllowedOrigin)

	// Create HTTP server with timeouts
	server := &http.Server{
		Addr:         ":" + config.HTTP.Port,
		Handler:      handler,
		ReadTimeout:  readTimeoutSeconds * time.Second,
		WriteTimeout: writeTimeoutSeconds * time.Second,
		IdleTimeout:  idleTimeoutSeconds * time.Second,
	}

	go func() {
		logger.Info("Backend proxy listening", "address", server.Addr)
		if err = server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			log.Fatal(err)
		}
	}()

	// Set up graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeoutSeconds*time.Second)
	defer cancel()

	if err = server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
		return
	}

	logger.Info("Server exited properly")
}
