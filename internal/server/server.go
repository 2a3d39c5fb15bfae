package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"task-agent/internal/agent"
	"task-agent/internal/auth"
	"task-agent/internal/config"
	"task-agent/internal/repository/sqlite"
)

// sessionCookie is the name of the session cookie set on login/signup.
const sessionCookie = "taskagent_session"

// Server is the HTTP front-end. It shares the agent core with the REPL.
type Server struct {
	engine *gin.Engine
	config *config.Config
	repo   sqlite.Repository
	agent  *agent.Agent
	auth   *auth.Service
	logger *slog.Logger
}

// New creates the server and registers all routes
func New(cfg *config.Config, repo sqlite.Repository, agentInstance *agent.Agent, authService *auth.Service, logger *slog.Logger) *Server {
	if !cfg.Application.Verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		engine: gin.New(),
		config: cfg,
		repo:   repo,
		agent:  agentInstance,
		auth:   authService,
		logger: logger,
	}

	s.engine.Use(gin.Recovery())
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.engine.POST("/login", s.handleLogin)
	s.engine.POST("/signup", s.handleSignup)
	s.engine.GET("/logout", s.handleLogout)

	s.engine.GET("/api/health", s.handleHealth)

	api := s.engine.Group("/api", s.requireAuth)
	api.GET("/tasks", s.handleTasks)
	api.POST("/command", s.handleCommand)

	s.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found", "error_type": "not_found"})
	})
	s.engine.HandleMethodNotAllowed = true
	s.engine.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed", "error_type": "method_error"})
	})
}

// Engine exposes the router for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    ":" + s.config.Server.Port,
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server started", "port", s.config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
