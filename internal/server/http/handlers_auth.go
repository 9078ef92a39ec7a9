package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleRegister(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c, err)
		return
	}
	u, err := s.auth.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		s.fail(c, "auth.register", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "user registered", "user": toUser(u)})
}

func (s *Server) handleLogin(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c, err)
		return
	}
	tok, u, err := s.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.fail(c, "auth.login", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   "login successful",
		"token":     tok.AccessToken,
		"expiresAt": tok.ExpiresAt,
		"user":      toUser(u),
	})
}
