package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"task-agent/internal/domain"
)

// commandRequest is the body for POST /api/command.
type commandRequest struct {
	Message string `json:"message"`
}

// handleHealth reports readiness. The database check issues a real ping;
// the api_key check only verifies presence, not validity, so the probe
// never spends LLM quota.
func (s *Server) handleHealth(c *gin.Context) {
	checks := gin.H{
		"database": "ok",
		"api_key":  "ok",
	}
	healthy := true

	if err := s.repo.Ping(c.Request.Context()); err != nil {
		checks["database"] = "unreachable"
		healthy = false
	}
	if !s.config.HasAPIKey() {
		checks["api_key"] = "missing"
		healthy = false
	}

	status := http.StatusOK
	state := "healthy"
	if !healthy {
		status = http.StatusServiceUnavailable
		state = "unhealthy"
	}
	c.JSON(status, gin.H{"status": state, "checks": checks})
}

// handleTasks returns the caller's full task list and category set.
func (s *Server) handleTasks(c *gin.Context) {
	userID := currentUserID(c)

	tasks, categories, err := s.loadTaskState(c.Request.Context(), userID)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": tasks, "categories": categories})
}

// handleCommand runs one natural-language command through the agent and
// returns the reply together with the refreshed task state, so the client
// can redraw without a second round trip.
func (s *Server) handleCommand(c *gin.Context) {
	userID := currentUserID(c)

	var req commandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "Invalid request. Please send a JSON body with a 'message' field.",
			"error_type": "input_error",
		})
		return
	}

	reply, err := s.agent.Process(c.Request.Context(), req.Message, userID)
	if err != nil {
		s.respondError(c, err)
		return
	}

	tasks, categories, err := s.loadTaskState(c.Request.Context(), userID)
	if err != nil {
		// The command itself succeeded; degrade to an empty board
		// rather than failing the whole response.
		s.logger.Error("task refresh failed", "error", err)
		tasks = []domain.Task{}
		categories = []string{}
	}

	c.JSON(http.StatusOK, gin.H{
		"reply":      reply,
		"tasks":      tasks,
		"categories": categories,
	})
}
