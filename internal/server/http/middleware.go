package httpserver

import (
	"errors"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/and161185/medtrack/internal/token"
)

// TokenVerifier turns a raw bearer token into a user id.
type TokenVerifier interface {
	Verify(raw string) (uuid.UUID, error)
}

// Logging returns a middleware for structured request logging.
func Logging(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		// metadata only, never bodies
		log.Info("http",
			zap.String("method", c.Request.Method),
			zap.String("route", route),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("dur", time.Since(start)),
			zap.String("peer", c.ClientIP()),
		)
	}
}

// Recover returns a middleware that turns panics into 500 responses.
func Recover(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic",
					zap.Any("reason", r),
					zap.ByteString("stack", debug.Stack()),
					zap.String("route", c.FullPath()),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": msgInternal})
			}
		}()
		c.Next()
	}
}

// RequireAuth verifies "Authorization: Bearer <token>" and stores the user id
// in the request context. Missing token -> 401, any other failure -> 403.
func RequireAuth(v TokenVerifier, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := token.BearerToken(c.GetHeader("Authorization"))
		if err == nil {
			var id uuid.UUID
			if id, err = v.Verify(raw); err == nil {
				setUser(c, id)
				c.Next()
				return
			}
		}

		if errors.Is(err, token.ErrMissing) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "authorization required"})
			return
		}
		log.Debug("token rejected", zap.String("route", c.FullPath()), zap.Error(err))
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "invalid or expired token"})
	}
}

// CORS allows the configured front-end origins to call the API with credentials.
func CORS(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
