package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/hyperjump/yomitori/internal/models"
)

func TestWriteTaskResponse_Text(t *testing.T) {
	resp := &models.TaskResponse{
		RequestID:      "req-1",
		Success:        true,
		ProcessingTime: 1.5,
		Result: map[string]any{
			"summary":       "short summary",
			"document_info": map[string]any{"file_name": "doc.pdf", "pages": 3},
		},
		Timestamp: time.Now(),
	}
	var buf bytes.Buffer
	if err := WriteTaskResponse(&buf, resp, OutputText); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"req-1", "completed in 1.50s", "short summary", "file_name: doc.pdf"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteTaskResponse_Failure(t *testing.T) {
	resp := &models.TaskResponse{RequestID: "req-2", Success: false, Error: "boom"}
	var buf bytes.Buffer
	if err := WriteTaskResponse(&buf, resp, OutputText); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "failed") || !strings.Contains(buf.String(), "boom") {
		t.Errorf("output = %s", buf.String())
	}
}

func TestWriteTaskResponse_JSON(t *testing.T) {
	resp := &models.TaskResponse{RequestID: "req-3", Success: true, Result: map[string]any{"summary": "s"}}
	var buf bytes.Buffer
	if err := WriteTaskResponse(&buf, resp, OutputJSON); err != nil {
		t.Fatal(err)
	}
	var decoded models.TaskResponse
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.RequestID != "req-3" {
		t.Errorf("RequestID = %q", decoded.RequestID)
	}
}

func TestWriteAgentStatus_Text(t *testing.T) {
	status := &models.AgentStatus{
		Status:             "running",
		Uptime:             90.2,
		TotalRequests:      5,
		SuccessfulRequests: 4,
		FailedRequests:     1,
		WatsonxStatus:      "connected",
		MCPStatus:          "running",
	}
	var buf bytes.Buffer
	if err := WriteAgentStatus(&buf, status, OutputText); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"running", "5 total, 4 ok, 1 failed", "connected", "1m30s"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
