// Package cli provides CLI output utilities for Yomitori.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/hyperjump/yomitori/internal/models"
	"github.com/hyperjump/yomitori/pkg/utils"
)

// OutputFormat is the format for command output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// WriteTaskResponse writes a processing result to w in the given format.
// Use OutputJSON for parseable output consumable by other apps.
func WriteTaskResponse(w io.Writer, resp *models.TaskResponse, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	default:
		writeTaskResponseText(w, resp)
		return nil
	}
}

func writeTaskResponseText(w io.Writer, resp *models.TaskResponse) {
	fmt.Fprintf(w, "\nRequest: %s\n", resp.RequestID)
	if !resp.Success {
		fmt.Fprintf(w, "Status: failed\nError: %s\n", resp.Error)
		return
	}
	fmt.Fprintf(w, "Status: completed in %.2fs\n\n", resp.ProcessingTime)

	keys := make([]string, 0, len(resp.Result))
	for k := range resp.Result {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		switch v := resp.Result[k].(type) {
		case string:
			fmt.Fprintf(w, "--- %s ---\n%s\n\n", k, v)
		case map[string]any:
			fmt.Fprintf(w, "--- %s ---\n", k)
			writeMapText(w, v)
			fmt.Fprintln(w)
		default:
			fmt.Fprintf(w, "%s: %v\n", k, v)
		}
	}
}

func writeMapText(w io.Writer, m map[string]any) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if s, ok := m[k].(string); ok {
			fmt.Fprintf(w, "  %s: %s\n", k, utils.Truncate(s, 120))
			continue
		}
		fmt.Fprintf(w, "  %s: %v\n", k, m[k])
	}
}

// WriteAgentStatus writes agent status to w in the given format.
func WriteAgentStatus(w io.Writer, status *models.AgentStatus, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(status)
	default:
		writeAgentStatusText(w, status)
		return nil
	}
}

func writeAgentStatusText(w io.Writer, status *models.AgentStatus) {
	fmt.Fprintf(w, "Status:    %s\n", status.Status)
	fmt.Fprintf(w, "Uptime:    %s\n", (time.Duration(status.Uptime * float64(time.Second))).Round(time.Second))
	fmt.Fprintf(w, "Requests:  %d total, %d ok, %d failed\n",
		status.TotalRequests, status.SuccessfulRequests, status.FailedRequests)
	fmt.Fprintf(w, "Watsonx:   %s\n", status.WatsonxStatus)
	fmt.Fprintf(w, "MCP:       %s\n", status.MCPStatus)
}
