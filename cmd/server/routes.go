package main

import (
	"net/http"

	"codeberg.org/algorave/errorhandler/api/rest/health"
	"codeberg.org/algorave/errorhandler/api/rest/users"
	"codeberg.org/algorave/errorhandler/internal/errors"
	"github.com/gin-gonic/gin"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) {
	router.HandleMethodNotAllowed = true

	router.Use(RequestIDMiddleware())
	router.Use(RequestLogger())
	router.Use(errors.Handler(server.classifier))
	router.Use(CORSMiddleware(server.config.CORSOrigins))

	router.NoRoute(errors.NoRoute)
	router.NoMethod(errors.NoRoute)

	router.GET("/health", health.Handler)

	v1 := router.Group("/api/v1")
	v1.Use(errors.RequireContentType("application/json"))

	{
		v1.GET("/ping", health.PingHandler)
		v1.GET("/slow", health.SlowHandler(server.config.RequestTimeout))

		users.RegisterRoutes(v1, server.userRepo)
	}
}

// the router wrapped for tracing
func (s *Server) Handler() http.Handler {
	return telemetryHandler(s.router)
}
