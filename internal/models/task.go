package models

import "time"

// TaskKind selects which prompt template and gateway call a request uses.
type TaskKind string

const (
	TaskSummarize      TaskKind = "summarize"
	TaskQuestionAnswer TaskKind = "question_answer"
	TaskExtract        TaskKind = "extract"
	TaskAnalyze        TaskKind = "analyze"
)

// ParseTaskKind reports whether s names a supported task kind.
func ParseTaskKind(s string) (TaskKind, bool) {
	switch TaskKind(s) {
	case TaskSummarize, TaskQuestionAnswer, TaskExtract, TaskAnalyze:
		return TaskKind(s), true
	}
	return "", false
}

// TaskRequest is an inbound document-processing request. RequestID is
// caller-supplied and expected unique per caller; uniqueness is not enforced.
type TaskRequest struct {
	RequestID    string         `json:"request_id"`
	Task         TaskKind       `json:"task"`
	DocumentPath string         `json:"document_path"`
	Parameters   map[string]any `json:"parameters,omitempty"`
	Source       string         `json:"source,omitempty"`
	Timestamp    time.Time      `json:"timestamp,omitempty"`
}

// TaskResponse echoes the request id and carries either a task-shaped
// result or an error message. ProcessingTime (seconds) is set on every
// path, failures included.
type TaskResponse struct {
	RequestID      string         `json:"request_id"`
	Success        bool           `json:"success"`
	Result         map[string]any `json:"result,omitempty"`
	Error          string         `json:"error,omitempty"`
	ProcessingTime float64        `json:"processing_time"`
	Timestamp      time.Time      `json:"timestamp"`
}

// TaskRecord is a tracked task as returned by GET /acp/tasks/{id}.
type TaskRecord struct {
	TaskID      string         `json:"task_id"`
	Request     *TaskRequest   `json:"request"`
	Status      string         `json:"status"`
	Result      map[string]any `json:"result,omitempty"`
	Error       string         `json:"error,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
}

// AgentStatus answers GET /acp/status.
type AgentStatus struct {
	Status             string    `json:"status"`
	Uptime             float64   `json:"uptime"`
	TotalRequests      int64     `json:"total_requests"`
	SuccessfulRequests int64     `json:"successful_requests"`
	FailedRequests     int64     `json:"failed_requests"`
	WatsonxStatus      string    `json:"watsonx_status"`
	MCPStatus          string    `json:"mcp_status"`
	Timestamp          time.Time `json:"timestamp"`
}
