package task

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hyperjump/yomitori/internal/models"
	"go.uber.org/zap"
)

// recordingGateway captures the last call made through the Gateway interface.
type recordingGateway struct {
	lastMethod    string
	lastText      string
	lastQuestion  string
	lastMaxLength int
	lastRequest   *models.GenerationRequest
	reply         string
	err           error
}

func (g *recordingGateway) Generate(ctx context.Context, req *models.GenerationRequest) (*models.GenerationResult, error) {
	g.lastMethod = "generate"
	g.lastRequest = req
	if g.err != nil {
		return nil, g.err
	}
	return &models.GenerationResult{Text: g.reply, Model: "m"}, nil
}

func (g *recordingGateway) Summarize(ctx context.Context, text string, maxLength int) (string, error) {
	g.lastMethod = "summarize"
	g.lastText = text
	g.lastMaxLength = maxLength
	return g.reply, g.err
}

func (g *recordingGateway) AnswerQuestion(ctx context.Context, docContext, question string) (string, error) {
	g.lastMethod = "answer_question"
	g.lastText = docContext
	g.lastQuestion = question
	return g.reply, g.err
}

func (g *recordingGateway) ExtractKeyPoints(ctx context.Context, text string) (string, error) {
	g.lastMethod = "extract_key_points"
	g.lastText = text
	return g.reply, g.err
}

func testDoc() *models.Document {
	return &models.Document{
		FileName:    "report.pdf",
		FileSize:    4096,
		PageCount:   7,
		TextContent: "The quick brown fox jumps over the lazy dog.",
	}
}

func TestPerform_Summarize(t *testing.T) {
	g := &recordingGateway{reply: "short version"}
	d := NewDispatcher(g, zap.NewNop())

	result, err := d.Perform(context.Background(), models.TaskSummarize, testDoc(), nil,
		map[string]any{"max_length": float64(300)})
	if err != nil {
		t.Fatal(err)
	}
	if g.lastMethod != "summarize" || g.lastMaxLength != 300 {
		t.Errorf("gateway call = %s/%d", g.lastMethod, g.lastMaxLength)
	}
	if result["summary"] != "short version" {
		t.Errorf("summary = %v", result["summary"])
	}
	if result["original_length"] != len(testDoc().TextContent) {
		t.Errorf("original_length = %v", result["original_length"])
	}
	if result["summary_length"] != len("short version") {
		t.Errorf("summary_length = %v", result["summary_length"])
	}
	info := result["document_info"].(map[string]any)
	if info["file_name"] != "report.pdf" || info["page_count"] != 7 || info["file_size"] != int64(4096) {
		t.Errorf("document_info = %v", info)
	}
}

func TestPerform_SummarizeDefaultLength(t *testing.T) {
	g := &recordingGateway{reply: "s"}
	d := NewDispatcher(g, zap.NewNop())
	if _, err := d.Perform(context.Background(), models.TaskSummarize, testDoc(), nil, nil); err != nil {
		t.Fatal(err)
	}
	if g.lastMaxLength != 500 {
		t.Errorf("max_length default = %d, want 500", g.lastMaxLength)
	}
}

func TestPerform_QuestionAnswerDefaultQuestion(t *testing.T) {
	g := &recordingGateway{reply: "an answer"}
	d := NewDispatcher(g, zap.NewNop())

	result, err := d.Perform(context.Background(), models.TaskQuestionAnswer, testDoc(), nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if g.lastQuestion != "What is this document about?" {
		t.Errorf("question = %q, want the generic default", g.lastQuestion)
	}
	if result["answer"] != "an answer" || result["question"] != g.lastQuestion {
		t.Errorf("result = %v", result)
	}
	info := result["document_info"].(map[string]any)
	if _, ok := info["file_size"]; ok {
		t.Error("question_answer document_info should not carry file_size")
	}
}

func TestPerform_ExtractKeyPoints(t *testing.T) {
	g := &recordingGateway{reply: "1. point"}
	d := NewDispatcher(g, zap.NewNop())

	result, err := d.Perform(context.Background(), models.TaskExtract, testDoc(), nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if g.lastMethod != "extract_key_points" {
		t.Errorf("gateway call = %s", g.lastMethod)
	}
	if result["key_points"] != "1. point" || result["extraction_type"] != "key_points" {
		t.Errorf("result = %v", result)
	}
}

func TestPerform_UnsupportedExtractionType(t *testing.T) {
	d := NewDispatcher(&recordingGateway{}, zap.NewNop())
	_, err := d.Perform(context.Background(), models.TaskExtract, testDoc(), nil,
		map[string]any{"extraction_type": "tables"})
	if !errors.Is(err, ErrUnsupportedTask) {
		t.Errorf("err = %v, want ErrUnsupportedTask", err)
	}
}

func TestPerform_Analyze(t *testing.T) {
	g := &recordingGateway{reply: "the analysis"}
	d := NewDispatcher(g, zap.NewNop())

	result, err := d.Perform(context.Background(), models.TaskAnalyze, testDoc(), nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if g.lastMethod != "generate" {
		t.Fatalf("gateway call = %s", g.lastMethod)
	}
	if g.lastRequest.MaxTokens != 1500 || g.lastRequest.Temperature != 0.3 {
		t.Errorf("params = %d/%f, want 1500/0.3", g.lastRequest.MaxTokens, g.lastRequest.Temperature)
	}
	if !strings.Contains(g.lastRequest.Prompt, testDoc().TextContent) {
		t.Error("analysis prompt should embed the document text")
	}
	if result["analysis"] != "the analysis" {
		t.Errorf("result = %v", result)
	}
}

func TestPerform_UnknownKind(t *testing.T) {
	d := NewDispatcher(&recordingGateway{}, zap.NewNop())
	_, err := d.Perform(context.Background(), models.TaskKind("translate"), testDoc(), nil, nil)
	if !errors.Is(err, ErrUnsupportedTask) {
		t.Errorf("err = %v, want ErrUnsupportedTask", err)
	}
}

func TestPerform_GatewayErrorPropagates(t *testing.T) {
	g := &recordingGateway{err: errors.New("upstream down")}
	d := NewDispatcher(g, zap.NewNop())
	_, err := d.Perform(context.Background(), models.TaskSummarize, testDoc(), nil, nil)
	if err == nil || !strings.Contains(err.Error(), "upstream down") {
		t.Errorf("err = %v, want verbatim gateway failure", err)
	}
}
