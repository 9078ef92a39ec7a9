package httpserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid/v5"
)

type userKey struct{}

// WithUserID returns ctx carrying the authenticated user id.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userKey{}, id)
}

// UserIDFromCtx returns the user id placed by RequireAuth.
func UserIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userKey{}).(uuid.UUID)
	return id, ok && id != uuid.Nil
}

// setUser attaches id to the request so handlers and the error mapper see it.
func setUser(c *gin.Context, id uuid.UUID) {
	c.Request = c.Request.WithContext(WithUserID(c.Request.Context(), id))
}

// currentUser returns the authenticated user id or answers 401.
func currentUser(c *gin.Context) (uuid.UUID, bool) {
	id, ok := UserIDFromCtx(c.Request.Context())
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "authorization required"})
	}
	return id, ok
}
