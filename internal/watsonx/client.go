// Package watsonx wraps the watsonx.ai text-generation REST API behind a
// typed client with derived prompt-template operations.
package watsonx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hyperjump/yomitori/internal/config"
	"github.com/hyperjump/yomitori/internal/models"
	"github.com/hyperjump/yomitori/pkg/utils"
	"go.uber.org/zap"
)

const apiVersion = "2024-01-01"

// Client calls the remote text-generation API. Each call is a single
// bounded-timeout request; no retries, no backoff, no circuit breaking —
// one remote failure is one local failure.
type Client struct {
	endpoint    string
	apiKey      string
	projectID   string
	model       string
	maxTokens   int
	temperature float64
	httpClient  *http.Client
	logger      *zap.Logger
}

// NewClient creates a client from config. The timeout bounds every remote
// call, transport included.
func NewClient(cfg *config.WatsonxConfig, timeout time.Duration, logger *zap.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("watsonx API key is required")
	}
	if cfg.ProjectID == "" {
		return nil, errors.New("watsonx project ID is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		endpoint:    strings.TrimRight(cfg.Endpoint, "/"),
		apiKey:      cfg.APIKey,
		projectID:   cfg.ProjectID,
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		httpClient:  &http.Client{Timeout: timeout},
		logger:      logger,
	}, nil
}

type generationParameters struct {
	MaxNewTokens  int      `json:"max_new_tokens"`
	Temperature   float64  `json:"temperature"`
	TopP          float64  `json:"top_p"`
	Stream        bool     `json:"stream"`
	StopSequences []string `json:"stop_sequences,omitempty"`
}

type generationPayload struct {
	ModelID    string               `json:"model_id"`
	Input      string               `json:"input"`
	Parameters generationParameters `json:"parameters"`
}

type generationResponse struct {
	Results []struct {
		GeneratedText string `json:"generated_text"`
		FinishReason  string `json:"finish_reason"`
	} `json:"results"`
	Usage *struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// Generate sends one generation call. Zero-valued request fields fall back
// to the configured defaults (TopP to 1.0). Returns *APIError for non-2xx
// replies, a wrapped transport error on network failure, and ErrNoResults
// when the success response has no result element.
func (c *Client) Generate(ctx context.Context, req *models.GenerationRequest) (*models.GenerationResult, error) {
	model := req.Model
	if model == "" {
		model = c.model
	}
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = c.maxTokens
	}
	temperature := req.Temperature
	if temperature == 0 {
		temperature = c.temperature
	}
	topP := req.TopP
	if topP == 0 {
		topP = 1.0
	}

	payload := generationPayload{
		ModelID: model,
		Input:   req.Prompt,
		Parameters: generationParameters{
			MaxNewTokens:  maxTokens,
			Temperature:   temperature,
			TopP:          topP,
			Stream:        req.Stream,
			StopSequences: req.StopSequences,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	url := fmt.Sprintf("%s/ml/v1/text/generation?version=%s", c.endpoint, apiVersion)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	c.logger.Debug("generation request",
		zap.String("model", model),
		zap.Int("max_tokens", maxTokens),
		zap.String("prompt", utils.Truncate(req.Prompt, 120)))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("watsonx request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("generation failed",
			zap.Int("status", resp.StatusCode),
			zap.String("model", model))
		return nil, &APIError{StatusCode: resp.StatusCode, Body: json.RawMessage(data)}
	}
	return parseResponse(data, model)
}

func parseResponse(data []byte, model string) (*models.GenerationResult, error) {
	var parsed generationResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	if len(parsed.Results) == 0 {
		return nil, ErrNoResults
	}
	first := parsed.Results[0]
	result := &models.GenerationResult{
		Text:         first.GeneratedText,
		Model:        model,
		FinishReason: first.FinishReason,
	}
	if parsed.Usage != nil {
		result.Usage = &models.TokenUsage{
			PromptTokens:     parsed.Usage.PromptTokens,
			CompletionTokens: parsed.Usage.CompletionTokens,
			TotalTokens:      parsed.Usage.TotalTokens,
		}
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err == nil {
		result.Raw = raw
	}
	return result, nil
}
