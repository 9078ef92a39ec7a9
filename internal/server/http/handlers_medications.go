package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"
)

func (s *Server) handleListMedications(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	raw := strings.TrimSpace(c.Query("profileId"))
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "profileId is required"})
		return
	}
	pid, err := uuid.FromString(raw)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": msgNotFound})
		return
	}
	ms, err := s.meds.ListByProfile(c.Request.Context(), uid, pid)
	if err != nil {
		s.fail(c, "medications.list", err, zap.String("profile_id", pid.String()))
		return
	}
	c.JSON(http.StatusOK, toMedications(ms))
}

func (s *Server) handleCreateMedication(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	var req medicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c, err)
		return
	}
	rawPID := strings.TrimSpace(req.ProfileID)
	if rawPID == "" || strings.TrimSpace(req.Name) == "" || req.CurrentStock == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "profileId, name and currentStock are required"})
		return
	}
	pid, err := uuid.FromString(rawPID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": msgNotFound})
		return
	}

	m, err := s.meds.Create(c.Request.Context(), uid, req.toModel(pid))
	if err != nil {
		s.fail(c, "medications.create", err, zap.String("profile_id", pid.String()))
		return
	}
	c.JSON(http.StatusCreated, toMedication(*m))
}

func (s *Server) handleGetMedication(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	m, err := s.meds.Get(c.Request.Context(), uid, id)
	if err != nil {
		s.fail(c, "medications.get", err, zap.String("medication_id", id.String()))
		return
	}
	c.JSON(http.StatusOK, toMedication(*m))
}

func (s *Server) handleMarkTaken(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	m, err := s.meds.MarkTaken(c.Request.Context(), uid, id)
	if err != nil {
		s.fail(c, "medications.taken", err, zap.String("medication_id", id.String()))
		return
	}
	c.JSON(http.StatusOK, toMedication(*m))
}

func (s *Server) handleDeleteMedication(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := s.meds.Delete(c.Request.Context(), uid, id); err != nil {
		s.fail(c, "medications.delete", err, zap.String("medication_id", id.String()))
		return
	}
	c.Status(http.StatusNoContent)
}
