package agent

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hyperjump/yomitori/internal/models"
	"github.com/hyperjump/yomitori/internal/pipeline"
	"github.com/hyperjump/yomitori/internal/task"
	"go.uber.org/zap"
)

type fakeExtractor struct {
	text string
	fail bool
}

func (f *fakeExtractor) Extract(path string) (string, *models.DocumentMetadata, error) {
	if f.fail {
		return "", nil, os.ErrInvalid
	}
	return f.text, &models.DocumentMetadata{PageCount: 2}, nil
}

func (f *fakeExtractor) CanOpen(path string) bool { return !f.fail }

type fakeGateway struct{ reply string }

func (g *fakeGateway) Generate(ctx context.Context, req *models.GenerationRequest) (*models.GenerationResult, error) {
	return &models.GenerationResult{Text: g.reply, Model: "m"}, nil
}

func (g *fakeGateway) Summarize(ctx context.Context, text string, maxLength int) (string, error) {
	return g.reply, nil
}

func (g *fakeGateway) AnswerQuestion(ctx context.Context, docContext, question string) (string, error) {
	return g.reply, nil
}

func (g *fakeGateway) ExtractKeyPoints(ctx context.Context, text string) (string, error) {
	return g.reply, nil
}

func newTestAgent(t *testing.T, ext *fakeExtractor) *Agent {
	t.Helper()
	p := pipeline.NewPipeline(ext, pipeline.NewChunker(1000), 1<<20, zap.NewNop())
	d := task.NewDispatcher(&fakeGateway{reply: "out"}, zap.NewNop())
	return New(p, d, t.TempDir(), zap.NewNop())
}

func writePDF(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("%PDF-1.4 fake"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestHandleProcess_Success(t *testing.T) {
	a := newTestAgent(t, &fakeExtractor{text: "document body"})
	path := writePDF(t, "doc.pdf")

	resp := a.HandleProcess(context.Background(), &models.TaskRequest{
		RequestID:    "req-1",
		Task:         models.TaskSummarize,
		DocumentPath: path,
	})
	if !resp.Success {
		t.Fatalf("failed: %s", resp.Error)
	}
	if resp.RequestID != "req-1" {
		t.Errorf("RequestID = %q", resp.RequestID)
	}
	if resp.Result["summary"] != "out" {
		t.Errorf("Result = %v", resp.Result)
	}
	if resp.ProcessingTime < 0 {
		t.Errorf("ProcessingTime = %f", resp.ProcessingTime)
	}

	rec, ok := a.Task("req-1")
	if !ok {
		t.Fatal("task not tracked")
	}
	if rec.Status != "completed" || rec.CompletedAt == nil {
		t.Errorf("record = %+v", rec)
	}
}

func TestHandleProcess_InvalidFile(t *testing.T) {
	a := newTestAgent(t, &fakeExtractor{text: "body"})

	resp := a.HandleProcess(context.Background(), &models.TaskRequest{
		RequestID:    "req-2",
		Task:         models.TaskSummarize,
		DocumentPath: "/nope/doc.pdf",
	})
	if resp.Success {
		t.Fatal("expected failure")
	}
	if !strings.Contains(resp.Error, "invalid or unsupported file") {
		t.Errorf("Error = %q", resp.Error)
	}
	rec, _ := a.Task("req-2")
	if rec == nil || rec.Status != "failed" {
		t.Errorf("record = %+v", rec)
	}
}

func TestHandleProcess_UnknownTask(t *testing.T) {
	a := newTestAgent(t, &fakeExtractor{text: "body"})
	path := writePDF(t, "doc.pdf")

	resp := a.HandleProcess(context.Background(), &models.TaskRequest{
		RequestID:    "req-3",
		Task:         models.TaskKind("translate"),
		DocumentPath: path,
	})
	if resp.Success || !strings.Contains(resp.Error, "unsupported task type") {
		t.Errorf("resp = %+v", resp)
	}
}

func TestCounters_MixedOutcomes(t *testing.T) {
	a := newTestAgent(t, &fakeExtractor{text: "body"})
	path := writePDF(t, "doc.pdf")

	for i := 0; i < 3; i++ {
		a.HandleProcess(context.Background(), &models.TaskRequest{
			RequestID: "ok", Task: models.TaskSummarize, DocumentPath: path,
		})
	}
	for i := 0; i < 2; i++ {
		a.HandleProcess(context.Background(), &models.TaskRequest{
			RequestID: "bad", Task: models.TaskSummarize, DocumentPath: "/nope.pdf",
		})
	}

	status := a.Status()
	if status.TotalRequests != 5 {
		t.Errorf("TotalRequests = %d, want 5", status.TotalRequests)
	}
	if status.SuccessfulRequests+status.FailedRequests != status.TotalRequests {
		t.Errorf("counters do not add up: %+v", status)
	}
	if status.SuccessfulRequests != 3 || status.FailedRequests != 2 {
		t.Errorf("counters = %d/%d, want 3/2", status.SuccessfulRequests, status.FailedRequests)
	}
	if status.Uptime < 0 {
		t.Errorf("Uptime = %f", status.Uptime)
	}
}

func TestSaveUpload_UniqueNames(t *testing.T) {
	a := newTestAgent(t, &fakeExtractor{text: "body"})

	p1, err := a.SaveUpload("report.pdf", strings.NewReader("one"))
	if err != nil {
		t.Fatal(err)
	}
	p2, err := a.SaveUpload("report.pdf", strings.NewReader("two"))
	if err != nil {
		t.Fatal(err)
	}
	if p1 == p2 {
		t.Error("identical filenames must not collide in temp storage")
	}
	if filepath.Ext(p1) != ".pdf" {
		t.Errorf("staged name should keep the extension, got %q", p1)
	}
	b1, _ := os.ReadFile(p1)
	b2, _ := os.ReadFile(p2)
	if string(b1) != "one" || string(b2) != "two" {
		t.Error("staged contents mixed up")
	}
	a.RemoveUpload(p1)
	if _, err := os.Stat(p1); !os.IsNotExist(err) {
		t.Error("RemoveUpload should delete the file")
	}
	a.RemoveUpload(p1) // second removal is swallowed
}

func TestIsSupportedUpload(t *testing.T) {
	a := newTestAgent(t, &fakeExtractor{text: "body"})
	if !a.IsSupportedUpload("Doc.PDF") {
		t.Error("pdf extension should be accepted case-insensitively")
	}
	if a.IsSupportedUpload("doc.docx") {
		t.Error("non-pdf upload should be rejected")
	}
}
