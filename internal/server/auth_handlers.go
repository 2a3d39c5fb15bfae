package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"task-agent/internal/domain"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// handleLogin checks credentials and sets the session cookie.
func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "Username and password are required.",
			"error_type": "input_error",
		})
		return
	}

	user, err := s.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		s.respondError(c, err)
		return
	}

	if err := s.startSession(c, user); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "username": user.Username})
}

// handleSignup creates an account and logs the new user straight in.
func (s *Server) handleSignup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "Invalid request. Please send username, email and password.",
			"error_type": "input_error",
		})
		return
	}

	user, err := s.auth.Signup(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		s.respondError(c, err)
		return
	}

	if err := s.startSession(c, user); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "username": user.Username})
}

// handleLogout clears the session cookie. Safe to call when not logged in.
func (s *Server) handleLogout(c *gin.Context) {
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) startSession(c *gin.Context, user *domain.User) error {
	token, err := s.auth.IssueToken(user.ID)
	if err != nil {
		return err
	}
	maxAge := int(s.config.Server.SessionTTL.Seconds())
	c.SetCookie(sessionCookie, token, maxAge, "/", "", false, true)
	return nil
}
