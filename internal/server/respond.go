package server

import (
	"github.com/gin-gonic/gin"

	"task-agent/internal/errors"
)

// respondError maps an application error onto the JSON error envelope.
// The status code and label follow the error taxonomy, so clients can
// branch on error_type without parsing the message.
func (s *Server) respondError(c *gin.Context, err error) {
	if errors.ShouldLogError(err) {
		s.logger.Error("request failed", "path", c.Request.URL.Path, "error", err)
	}
	c.JSON(errors.GetHTTPStatus(err), gin.H{
		"error":      errors.GetUserMessage(err),
		"error_type": errors.GetErrorLabel(err),
	})
}
