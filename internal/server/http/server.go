// Package httpserver exposes the medication tracker over HTTP/JSON.
package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/and161185/medtrack/internal/service"
)

// Pinger reports storage reachability for /health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server wires HTTP routes to the services.
type Server struct {
	auth     service.AuthService
	profiles service.ProfileService
	meds     service.MedicationService
	tokens   TokenVerifier
	health   Pinger
	log      *zap.Logger
}

// New creates a Server. health may be nil.
func New(auth service.AuthService, profiles service.ProfileService, meds service.MedicationService,
	tokens TokenVerifier, health Pinger, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{auth: auth, profiles: profiles, meds: meds, tokens: tokens, health: health, log: log}
}

// Router builds the gin engine with middlewares and all routes registered.
func (s *Server) Router(allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(Recover(s.log), Logging(s.log), CORS(allowedOrigins))

	r.GET("/health", s.handleHealth)

	auth := r.Group("/auth")
	auth.POST("/register", s.handleRegister)
	auth.POST("/login", s.handleLogin)

	authed := r.Group("/", RequireAuth(s.tokens, s.log))
	authed.GET("/profiles", s.handleListProfiles)
	authed.POST("/profiles", s.handleCreateProfile)
	authed.GET("/profiles/:id", s.handleGetProfile)
	authed.DELETE("/profiles/:id", s.handleDeleteProfile)

	authed.GET("/medications", s.handleListMedications)
	authed.POST("/medications", s.handleCreateMedication)
	authed.GET("/medications/:id", s.handleGetMedication)
	authed.PATCH("/medications/:id/taken", s.handleMarkTaken)
	authed.DELETE("/medications/:id", s.handleDeleteMedication)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "route not found"})
	})
	return r
}

func (s *Server) handleHealth(c *gin.Context) {
	if s.health != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := s.health.Ping(ctx); err != nil {
			s.log.Warn("health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
