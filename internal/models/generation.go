package models

// GenerationRequest is one call to the remote text-generation API.
// Zero-valued MaxTokens, Temperature, and TopP fall back to the gateway's
// configured defaults. Stream is sent on the wire but the response is
// always read whole; streaming is not implemented.
type GenerationRequest struct {
	Prompt        string
	Model         string // overrides the gateway's default model when non-empty
	MaxTokens     int
	Temperature   float64
	TopP          float64
	StopSequences []string
	Stream        bool
}

// TokenUsage is the upstream token accounting, when the API reports it.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// GenerationResult is the parsed response of a generation call.
// Model is always the model id actually sent upstream, not merely the
// caller's default.
type GenerationResult struct {
	Text         string         `json:"text"`
	Model        string         `json:"model"`
	Usage        *TokenUsage    `json:"usage,omitempty"`
	FinishReason string         `json:"finish_reason,omitempty"`
	Raw          map[string]any `json:"-"`
}
