package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hyperjump/yomitori/internal/agent"
	"github.com/hyperjump/yomitori/internal/config"
	"go.uber.org/zap"
)

// AgentServer is the HTTP server for the agent (ACP) API. Configuration
// is read through the manager so that file reloads take effect on
// subsequent requests without a restart.
type AgentServer struct {
	agent   *agent.Agent
	manager *config.Manager
	logger  *zap.Logger
	server  *http.Server
}

// NewAgentServer creates an agent server with the given dependencies.
func NewAgentServer(a *agent.Agent, manager *config.Manager, logger *zap.Logger) *AgentServer {
	return &AgentServer{
		agent:   a,
		manager: manager,
		logger:  logger,
	}
}

// Handler builds the ACP route table.
func (s *AgentServer) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Post("/acp/process", s.handleProcess)
	r.Post("/acp/upload", s.handleUpload)
	r.Get("/acp/status", s.handleStatus)
	r.Get("/acp/tasks/{id}", s.handleTask)
	r.Get("/acp/health", s.handleHealth)

	return r
}

// Start starts the HTTP server and blocks until it stops. The listen
// address is taken from the config snapshot at start time.
func (s *AgentServer) Start() error {
	cfg := s.manager.Current().ACP
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}
	s.logger.Info("Starting ACP server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *AgentServer) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
