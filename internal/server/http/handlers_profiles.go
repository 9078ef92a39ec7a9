package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (s *Server) handleListProfiles(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	ps, err := s.profiles.List(c.Request.Context(), uid)
	if err != nil {
		s.fail(c, "profiles.list", err)
		return
	}
	c.JSON(http.StatusOK, toProfiles(ps))
}

func (s *Server) handleCreateProfile(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c, err)
		return
	}
	p, err := s.profiles.Create(c.Request.Context(), uid, req.Name)
	if err != nil {
		s.fail(c, "profiles.create", err)
		return
	}
	c.JSON(http.StatusCreated, toProfile(*p))
}

func (s *Server) handleGetProfile(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, err := s.profiles.Get(c.Request.Context(), uid, id)
	if err != nil {
		s.fail(c, "profiles.get", err, zap.String("profile_id", id.String()))
		return
	}
	c.JSON(http.StatusOK, toProfile(*p))
}

func (s *Server) handleDeleteProfile(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := s.profiles.Delete(c.Request.Context(), uid, id); err != nil {
		s.fail(c, "profiles.delete", err, zap.String("profile_id", id.String()))
		return
	}
	c.Status(http.StatusNoContent)
}
