// Package api exposes the split session service over HTTP for the
// editing, assignment, and export collaborators.
package api

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/patungan-app/backend/internal/api/middleware"
	"github.com/patungan-app/backend/internal/service"
)

// Config holds API server configuration.
type Config struct {
	Port           int
	AllowedOrigins []string
}

// DefaultConfig returns sensible defaults for local development.
func DefaultConfig() Config {
	return Config{
		Port:           8080,
		AllowedOrigins: []string{"http://localhost:3000"},
	}
}

// Server is the HTTP API server.
type Server struct {
	config Config
	engine *gin.Engine
}

// NewServer creates the server with middleware and routes configured.
func NewServer(cfg Config, svc *service.SessionService) *Server {
	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		middleware.RequestLogger(),
		middleware.Metrics(),
		cors.New(cors.Config{
			AllowOrigins: cfg.AllowedOrigins,
			AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders: []string{"Accept", "Content-Type"},
		}),
	)

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	h := NewHandler(svc)
	sessions := engine.Group("/api/sessions")
	{
		sessions.POST("", h.CreateSession)
		sessions.GET("", h.ListSessions)
		sessions.GET("/:id", h.GetSession)
		sessions.PUT("/:id/receipt", h.UpdateReceipt)
		sessions.PUT("/:id/people", h.UpdatePeople)
		sessions.PUT("/:id/assignments", h.SetAssignments)
		sessions.POST("/:id/assignments/toggle", h.ToggleAssignment)
		sessions.GET("/:id/summary", h.Summary)
		sessions.POST("/:id/finalize", h.Finalize)
		sessions.DELETE("/:id", h.DeleteSession)
	}

	return &Server{config: cfg, engine: engine}
}

// Handler returns the underlying http.Handler, used by tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run starts the server and blocks until it stops.
func (s *Server) Run() error {
	return s.engine.Run(fmt.Sprintf(":%d", s.config.Port))
}
