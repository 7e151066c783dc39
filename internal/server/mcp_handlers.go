package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hyperjump/yomitori/internal/models"
	"go.uber.org/zap"
)

func (s *MCPServer) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req models.MCPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.logger.Debug("mcp query", zap.String("id", req.ID), zap.String("method", req.Method))

	method, ok := s.methods[req.Method]
	if !ok {
		respondJSON(w, http.StatusOK, &models.MCPResponse{
			ID: req.ID,
			Error: &models.MCPError{
				Code:    http.StatusBadRequest,
				Message: fmt.Sprintf("Unsupported method: %s", req.Method),
			},
			Timestamp: time.Now(),
		})
		return
	}

	result, err := method(r.Context(), req.Params)
	if err != nil {
		s.logger.Error("mcp method failed", zap.String("method", req.Method), zap.Error(err))
		respondJSON(w, http.StatusOK, &models.MCPResponse{
			ID: req.ID,
			Error: &models.MCPError{
				Code:    http.StatusInternalServerError,
				Message: err.Error(),
			},
			Timestamp: time.Now(),
		})
		return
	}

	respondJSON(w, http.StatusOK, &models.MCPResponse{
		ID:        req.ID,
		Result:    result,
		Timestamp: time.Now(),
	})
}

func (s *MCPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": "mcp-server"})
}

func (s *MCPServer) handleCapabilities(w http.ResponseWriter, r *http.Request) {
	methods := make([]string, 0, len(s.methods))
	for name := range s.methods {
		methods = append(methods, name)
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"methods": methods,
		"models":  []string{s.manager.Current().Watsonx.Model},
		"version": "1.0.0",
	})
}

func (s *MCPServer) methodGenerate(ctx context.Context, params map[string]any) (map[string]any, error) {
	prompt := paramString(params, "prompt")
	if prompt == "" {
		return nil, fmt.Errorf("prompt is required")
	}
	// Absent params get fixed handler defaults, independent of the
	// configured gateway defaults.
	maxTokens := paramInt(params, "max_tokens")
	if maxTokens == 0 {
		maxTokens = 2048
	}
	temperature := paramFloat(params, "temperature")
	if temperature == 0 {
		temperature = 0.7
	}
	result, err := s.gateway.Generate(ctx, &models.GenerationRequest{
		Prompt:      prompt,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"text":          result.Text,
		"model":         result.Model,
		"usage":         result.Usage,
		"finish_reason": result.FinishReason,
	}, nil
}

func (s *MCPServer) methodSummarize(ctx context.Context, params map[string]any) (map[string]any, error) {
	text := paramString(params, "text")
	if text == "" {
		return nil, fmt.Errorf("text is required")
	}
	maxLength := paramInt(params, "max_length")
	if maxLength == 0 {
		maxLength = 500
	}
	summary, err := s.gateway.Summarize(ctx, text, maxLength)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"summary":         summary,
		"original_length": len(text),
		"summary_length":  len(summary),
	}, nil
}

func (s *MCPServer) methodAnswerQuestion(ctx context.Context, params map[string]any) (map[string]any, error) {
	docContext := paramString(params, "context")
	question := paramString(params, "question")
	if docContext == "" || question == "" {
		return nil, fmt.Errorf("context and question are required")
	}
	answer, err := s.gateway.AnswerQuestion(ctx, docContext, question)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"answer":         answer,
		"question":       question,
		"context_length": len(docContext),
	}, nil
}

func (s *MCPServer) methodExtractKeyPoints(ctx context.Context, params map[string]any) (map[string]any, error) {
	text := paramString(params, "text")
	if text == "" {
		return nil, fmt.Errorf("text is required")
	}
	keyPoints, err := s.gateway.ExtractKeyPoints(ctx, text)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"key_points":      keyPoints,
		"original_length": len(text),
	}, nil
}

func paramString(params map[string]any, key string) string {
	if v, ok := params[key].(string); ok {
		return v
	}
	return ""
}

// paramInt accepts both int and float64; decoded JSON numbers arrive as
// float64.
func paramInt(params map[string]any, key string) int {
	switch v := params[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}

func paramFloat(params map[string]any, key string) float64 {
	switch v := params[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}
