// Package http provides the HTTP API server, its middleware stack, and the
// companion metrics server.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
)

// RouteRegistrar registers a group of routes on a gin router group.
type RouteRegistrar interface {
	RegisterRoutes(group *gin.RouterGroup)
}

// ServerOptions configures the API server middleware stack.
type ServerOptions struct {
	// AuthMiddleware guards API routes when set.
	AuthMiddleware gin.HandlerFunc
	// RateLimitMiddleware throttles API routes when set.
	RateLimitMiddleware gin.HandlerFunc
	// CORSEnabled indicates whether CORS is enabled.
	CORSEnabled bool
	// CORSAllowOrigins is a comma-separated list of allowed origins.
	CORSAllowOrigins string
	// HTTPMetricsMiddleware records request metrics when set.
	HTTPMetricsMiddleware gin.HandlerFunc
}

// Server represents the HTTP API server.
type Server struct {
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
}

// NewServer creates a new HTTP server and assembles the middleware stack
// and routes. Registrars are mounted under the /v1 prefix.
func NewServer(
	host string,
	port int,
	logger *slog.Logger,
	opts ServerOptions,
	registrars ...RouteRegistrar,
) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New())
	router.Use(CustomLoggerMiddleware(logger))

	if corsMiddleware := createCORSMiddleware(opts.CORSEnabled, opts.CORSAllowOrigins, logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if opts.HTTPMetricsMiddleware != nil {
		router.Use(opts.HTTPMetricsMiddleware)
	}

	// Health and readiness endpoints stay outside auth and rate limiting
	router.GET("/health", healthHandler)
	router.GET("/ready", readyHandler)

	v1 := router.Group("/v1")
	if opts.AuthMiddleware != nil {
		v1.Use(opts.AuthMiddleware)
	}
	if opts.RateLimitMiddleware != nil {
		v1.Use(opts.RateLimitMiddleware)
	}
	for _, registrar := range registrars {
		registrar.RegisterRoutes(v1)
	}

	return &Server{
		router: router,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

// healthHandler reports process liveness.
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readyHandler reports readiness to serve requests.
func readyHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
