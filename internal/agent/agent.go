// Package agent implements the document-processing service behind the
// agent-facing HTTP surface: request flow, counters, task tracking, and
// temp storage for uploads.
package agent

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hyperjump/yomitori/internal/models"
	"github.com/hyperjump/yomitori/internal/pipeline"
	"github.com/hyperjump/yomitori/internal/task"
	"go.uber.org/zap"
)

// Agent wires the document pipeline and the task dispatcher into the
// request flow used by the ACP surface.
type Agent struct {
	pipeline   *pipeline.Pipeline
	dispatcher *task.Dispatcher
	stats      *Stats
	tracker    *Tracker
	tempDir    string
	logger     *zap.Logger
}

// New creates an agent. tempDir is where uploads are staged.
func New(p *pipeline.Pipeline, d *task.Dispatcher, tempDir string, logger *zap.Logger) *Agent {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Agent{
		pipeline:   p,
		dispatcher: d,
		stats:      NewStats(),
		tracker:    NewTracker(),
		tempDir:    tempDir,
		logger:     logger,
	}
}

// HandleProcess runs the full validate, extract, dispatch flow for one
// request. Every failure is converted into a success=false response;
// nothing escapes as an error. Counters and the task tracker are updated
// on every path.
func (a *Agent) HandleProcess(ctx context.Context, req *models.TaskRequest) *models.TaskResponse {
	start := time.Now()
	a.stats.RecordRequest()
	rec := a.tracker.Start(req)

	a.logger.Info("processing request",
		zap.String("request_id", req.RequestID),
		zap.String("task", string(req.Task)),
		zap.String("document", req.DocumentPath))

	fail := func(msg string) *models.TaskResponse {
		a.stats.RecordFailure()
		a.tracker.Finish(rec.TaskID, nil, msg)
		a.logger.Error("request failed",
			zap.String("request_id", req.RequestID),
			zap.String("error", msg))
		return &models.TaskResponse{
			RequestID:      req.RequestID,
			Success:        false,
			Error:          msg,
			ProcessingTime: time.Since(start).Seconds(),
			Timestamp:      time.Now(),
		}
	}

	if _, ok := models.ParseTaskKind(string(req.Task)); !ok {
		return fail(fmt.Sprintf("unsupported task type: %s", req.Task))
	}
	if !a.pipeline.IsSupported(req.DocumentPath) {
		return fail(fmt.Sprintf("invalid or unsupported file: %s", req.DocumentPath))
	}

	pres := a.pipeline.Process(req.DocumentPath)
	if !pres.Success {
		return fail(fmt.Sprintf("PDF processing failed: %s", pres.Error))
	}

	result, err := a.dispatcher.Perform(ctx, req.Task, pres.Document, pres.Chunks, req.Parameters)
	if err != nil {
		return fail(err.Error())
	}

	elapsed := time.Since(start)
	a.stats.RecordSuccess()
	a.tracker.Finish(rec.TaskID, result, "")
	a.logger.Info("request completed",
		zap.String("request_id", req.RequestID),
		zap.Duration("elapsed", elapsed))

	return &models.TaskResponse{
		RequestID:      req.RequestID,
		Success:        true,
		Result:         result,
		ProcessingTime: elapsed.Seconds(),
		Timestamp:      time.Now(),
	}
}

// Status reports uptime and counters for GET /acp/status.
func (a *Agent) Status() *models.AgentStatus {
	total, success, failed := a.stats.Snapshot()
	return &models.AgentStatus{
		Status:             "running",
		Uptime:             time.Since(a.stats.StartTime()).Seconds(),
		TotalRequests:      total,
		SuccessfulRequests: success,
		FailedRequests:     failed,
		WatsonxStatus:      "connected",
		MCPStatus:          "running",
		Timestamp:          time.Now(),
	}
}

// Task returns the tracked record for the given id.
func (a *Agent) Task(id string) (*models.TaskRecord, bool) {
	return a.tracker.Get(id)
}

// IsSupportedUpload reports whether filename carries the accepted extension.
func (a *Agent) IsSupportedUpload(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".pdf")
}

// SaveUpload stages an uploaded file under a generated unique name so
// concurrent uploads with identical filenames cannot clobber each other.
// Returns the staged path; callers remove it with RemoveUpload.
func (a *Agent) SaveUpload(filename string, r io.Reader) (string, error) {
	if err := os.MkdirAll(a.tempDir, 0o755); err != nil {
		return "", fmt.Errorf("create temp directory: %w", err)
	}
	name := uuid.New().String() + strings.ToLower(filepath.Ext(filename))
	path := filepath.Join(a.tempDir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("write upload: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("close temp file: %w", err)
	}
	return path, nil
}

// RemoveUpload deletes a staged upload. Removal is best-effort; failure
// is logged and swallowed.
func (a *Agent) RemoveUpload(path string) {
	if err := os.Remove(path); err != nil {
		a.logger.Debug("temp file cleanup failed", zap.String("path", path), zap.Error(err))
	}
}
