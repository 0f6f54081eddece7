package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codeberg.org/algorave/errorhandler/internal/config"
	"codeberg.org/algorave/errorhandler/internal/logger"
)

// @title Error Handler API
// @version 1.0
// @description Sample service translating failures into uniform JSON error responses

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authenticated requests. Format: Bearer {token}

func main() {
	flags, err := config.ParseServerFlags(os.Args[1:])
	if err != nil {
		logger.FatalErr(err, "failed to parse flags")
	}

	// load configuration from environment
	cfg, err := config.LoadEnvironmentVariables()
	if err != nil {
		logger.FatalErr(err, "failed to load configuration")
	}

	cfg.Apply(flags)
	logger.Setup(cfg.Environment, cfg.LogLevel)

	logger.Info("starting errorhandler server", "environment", cfg.Environment)

	ctx := context.Background()

	srv, err := NewServer(ctx, cfg)
	if err != nil {
		logger.FatalErr(err, "failed to create server")
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      srv.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// start server in goroutine
	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.FatalErr(err, "server failed to start")
		}
	}()

	// wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.ErrorErr(err, "server forced to shutdown")
	}

	srv.Close(shutdownCtx)

	logger.Info("server stopped")
}
