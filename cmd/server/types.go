package main

import (
	"codeberg.org/algorave/errorhandler/errorhandler/users"
	"codeberg.org/algorave/errorhandler/internal/config"
	"codeberg.org/algorave/errorhandler/internal/errors"
	"codeberg.org/algorave/errorhandler/internal/telemetry"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// holds all dependencies and state for the API server
type Server struct {
	db         *pgxpool.Pool // nil when running on the in-memory repository
	config     *config.Config
	classifier *errors.Classifier
	userRepo   users.Repository
	router     *gin.Engine
	shutdown   telemetry.ShutdownFunc
}
