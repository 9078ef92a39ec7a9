package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/and161185/medtrack/internal/errs"
)

const (
	msgInternal           = "internal error"
	msgNotFound           = "not found"
	msgInvalidCredentials = "invalid credentials"
)

// fail maps a service error to a status and a {"message"} body.
// Unexpected errors are logged and answered with a generic message.
func (s *Server) fail(c *gin.Context, op string, err error, fields ...zap.Field) {
	switch {
	case errors.Is(err, errs.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, errs.ErrOutOfStock):
		c.JSON(http.StatusBadRequest, gin.H{"message": "out of stock"})
	case errors.Is(err, errs.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"message": msgInvalidCredentials})
	case errors.Is(err, errs.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": msgNotFound})
	case errors.Is(err, errs.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"message": "email already registered"})
	default:
		fields = append(fields, zap.String("op", op), zap.Error(err))
		if uid, ok := UserIDFromCtx(c.Request.Context()); ok {
			fields = append(fields, zap.String("user_id", uid.String()))
		}
		s.log.Error("request failed", fields...)
		c.JSON(http.StatusInternalServerError, gin.H{"message": msgInternal})
	}
}

// pathID parses a uuid path parameter. Malformed ids cannot name an owned
// resource, so they answer 404.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.FromString(c.Param(name))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": msgNotFound})
		return uuid.Nil, false
	}
	return id, true
}

func badJSON(c *gin.Context, err error) {
	msg := "invalid JSON body"
	if errors.Is(err, errBadNumber) {
		msg = errBadNumber.Error()
	}
	c.JSON(http.StatusBadRequest, gin.H{"message": msg})
}
