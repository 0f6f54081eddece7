package main

import (
	"context"
	"fmt"
	"time"

	"codeberg.org/algorave/errorhandler/errorhandler/users"
	"codeberg.org/algorave/errorhandler/internal/config"
	"codeberg.org/algorave/errorhandler/internal/errors"
	"codeberg.org/algorave/errorhandler/internal/logger"
	"codeberg.org/algorave/errorhandler/internal/telemetry"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

const serviceVersion = "1.0.0"

// creates and configures a new server instance with all dependencies
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	shutdown, err := telemetry.Setup(ctx, cfg.ServiceName, serviceVersion, cfg.OTLPEndpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to set up tracing: %w", err)
	}

	db, userRepo, err := newUserRepository(ctx, cfg.DatabaseURL)
	if err != nil {
		shutdown(ctx) //nolint:errcheck,gosec // best-effort cleanup on init failure
		return nil, err
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	cls := errors.NewClassifier()
	cls.LegacyMalformedMessage = cfg.LegacyMalformedMessage

	server := &Server{
		db:         db,
		config:     cfg,
		classifier: cls,
		userRepo:   userRepo,
		router:     gin.New(),
		shutdown:   shutdown,
	}

	RegisterRoutes(server.router, server)

	return server, nil
}

// returns the postgres repository when a database is configured, the in-memory one otherwise
func newUserRepository(ctx context.Context, databaseURL string) (*pgxpool.Pool, users.Repository, error) {
	if databaseURL == "" {
		logger.Warn("DATABASE_URL not set, using in-memory user repository")
		return nil, users.NewMemoryRepository(), nil
	}

	poolConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MaxConns = 5
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	db, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create database pool: %w", err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, users.NewRepository(db), nil
}

// releases the database pool and flushes pending spans
func (s *Server) Close(ctx context.Context) {
	if s.db != nil {
		s.db.Close()
	}

	if err := s.shutdown(ctx); err != nil {
		logger.ErrorErr(err, "failed to shut down tracer provider")
	}
}
