package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// userIDKey is the gin context key holding the authenticated user's ID.
const userIDKey = "user_id"

// requireAuth verifies the session cookie and stores the user ID in the
// request context. Unauthenticated API requests get a 401 JSON body so
// the front-end can redirect to the login form.
func (s *Server) requireAuth(c *gin.Context) {
	token, err := c.Cookie(sessionCookie)
	if err != nil || token == "" {
		s.rejectUnauthenticated(c)
		return
	}

	userID, err := s.auth.VerifyToken(token)
	if err != nil {
		s.rejectUnauthenticated(c)
		return
	}

	c.Set(userIDKey, userID)
	c.Next()
}

func (s *Server) rejectUnauthenticated(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":      "Authentication required.",
		"error_type": "auth_error",
	})
}

// currentUserID returns the user ID stored by requireAuth.
func currentUserID(c *gin.Context) int64 {
	id, _ := c.Get(userIDKey)
	userID, _ := id.(int64)
	return userID
}
