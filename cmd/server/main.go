package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/formrelay/formrelay/internal/config"
	"github.com/formrelay/formrelay/internal/handler"
	"github.com/formrelay/formrelay/internal/logger"
	"github.com/formrelay/formrelay/internal/mail"
	"github.com/formrelay/formrelay/internal/middleware"
	"github.com/formrelay/formrelay/internal/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	log.Info().Str("version", handler.ServiceVersion).Msg("starting formrelay server")

	// Select the mail transport once at startup. A missing transport is not
	// fatal: the server still serves health (Degraded) and send requests
	// fail with a configuration error.
	var dispatcher handler.Dispatcher
	if transport, err := mail.Select(cfg); err != nil {
		log.Warn().Err(err).Msg("no mail transport configured")
	} else {
		log.Info().Str("transport", transport.Name()).Msg("mail transport selected")
		dispatcher = mail.NewDispatcher(transport, log.WithComponent("dispatcher"))
	}

	// Initialize handlers
	h := handler.New(log, cfg, dispatcher)

	// Initialize middleware
	mw := middleware.New(log, cfg)

	// Set up router
	r := router.New(h, mw, log)

	// Create HTTP server
	addr := cfg.Server.Addr()
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
