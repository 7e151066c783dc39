package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hyperjump/yomitori/internal/config"
	"github.com/hyperjump/yomitori/internal/task"
	"go.uber.org/zap"
)

// mcpMethod handles one model-context method call.
type mcpMethod func(ctx context.Context, params map[string]any) (map[string]any, error)

// MCPServer is the HTTP server for the model-context API. It exposes the
// text-generation gateway directly, without the document pipeline.
// Configuration is read through the manager so reloads are visible to
// subsequent requests.
type MCPServer struct {
	gateway task.Gateway
	manager *config.Manager
	logger  *zap.Logger
	methods map[string]mcpMethod
	server  *http.Server
}

// NewMCPServer creates a model-context server backed by gateway.
func NewMCPServer(gateway task.Gateway, manager *config.Manager, logger *zap.Logger) *MCPServer {
	s := &MCPServer{
		gateway: gateway,
		manager: manager,
		logger:  logger,
	}
	s.methods = map[string]mcpMethod{
		"text/generate":           s.methodGenerate,
		"text/summarize":          s.methodSummarize,
		"text/answer_question":    s.methodAnswerQuestion,
		"text/extract_key_points": s.methodExtractKeyPoints,
	}
	return s
}

// Handler builds the MCP route table.
func (s *MCPServer) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Post("/mcp/query", s.handleQuery)
	r.Get("/mcp/health", s.handleHealth)
	r.Get("/mcp/capabilities", s.handleCapabilities)

	return r
}

// Start starts the HTTP server and blocks until it stops. The listen
// address is taken from the config snapshot at start time.
func (s *MCPServer) Start() error {
	cfg := s.manager.Current().MCP
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}
	s.logger.Info("Starting MCP server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *MCPServer) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
