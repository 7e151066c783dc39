package models

import "time"

// MCPRequest is a model-context query: a method name plus free-form params.
type MCPRequest struct {
	ID        string         `json:"id"`
	Method    string         `json:"method"`
	Params    map[string]any `json:"params,omitempty"`
	Timestamp time.Time      `json:"timestamp,omitempty"`
}

// MCPResponse carries either a result or an error for a query id.
type MCPResponse struct {
	ID        string         `json:"id"`
	Result    map[string]any `json:"result,omitempty"`
	Error     *MCPError      `json:"error,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// MCPError is the error shape embedded in an MCPResponse.
type MCPError struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}
