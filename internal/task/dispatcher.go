// Package task maps task kinds onto model gateway calls and shapes the
// structured results returned to callers.
package task

import (
	"context"
	"errors"
	"fmt"

	"github.com/hyperjump/yomitori/internal/models"
	"go.uber.org/zap"
)

// ErrUnsupportedTask is returned for an unknown task kind or extraction sub-type.
var ErrUnsupportedTask = errors.New("unsupported task")

// Gateway is the slice of the model client the dispatcher needs.
type Gateway interface {
	Generate(ctx context.Context, req *models.GenerationRequest) (*models.GenerationResult, error)
	Summarize(ctx context.Context, text string, maxLength int) (string, error)
	AnswerQuestion(ctx context.Context, docContext, question string) (string, error)
	ExtractKeyPoints(ctx context.Context, text string) (string, error)
}

const (
	defaultMaxLength = 500
	defaultQuestion  = "What is this document about?"
)

const analyzePrompt = `Please provide a comprehensive analysis of the following document:

Document: %s

Please include:
1. Main topics and themes
2. Key findings or conclusions
3. Document structure and organization
4. Any notable insights or observations

Analysis:`

// Dispatcher performs document tasks against a model gateway.
type Dispatcher struct {
	gateway Gateway
	logger  *zap.Logger
}

// NewDispatcher creates a dispatcher over the given gateway.
func NewDispatcher(gateway Gateway, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{gateway: gateway, logger: logger}
}

// Perform runs the task of the given kind over the processed document and
// returns the task-shaped result mapping. chunks are accepted alongside
// the document for chunk-wise strategies; the current templates consume
// the full text.
func (d *Dispatcher) Perform(ctx context.Context, kind models.TaskKind, doc *models.Document, chunks []string, params map[string]any) (map[string]any, error) {
	d.logger.Debug("performing task",
		zap.String("task", string(kind)),
		zap.String("file", doc.FileName))
	switch kind {
	case models.TaskSummarize:
		return d.summarize(ctx, doc, params)
	case models.TaskQuestionAnswer:
		return d.answerQuestion(ctx, doc, params)
	case models.TaskExtract:
		return d.extract(ctx, doc, params)
	case models.TaskAnalyze:
		return d.analyze(ctx, doc)
	default:
		return nil, fmt.Errorf("%w type: %s", ErrUnsupportedTask, kind)
	}
}

func (d *Dispatcher) summarize(ctx context.Context, doc *models.Document, params map[string]any) (map[string]any, error) {
	maxLength := intParam(params, "max_length", defaultMaxLength)
	summary, err := d.gateway.Summarize(ctx, doc.TextContent, maxLength)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"summary":         summary,
		"original_length": len(doc.TextContent),
		"summary_length":  len(summary),
		"document_info":   documentInfo(doc, true),
	}, nil
}

func (d *Dispatcher) answerQuestion(ctx context.Context, doc *models.Document, params map[string]any) (map[string]any, error) {
	question := stringParam(params, "question", defaultQuestion)
	answer, err := d.gateway.AnswerQuestion(ctx, doc.TextContent, question)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"answer":        answer,
		"question":      question,
		"document_info": documentInfo(doc, false),
	}, nil
}

func (d *Dispatcher) extract(ctx context.Context, doc *models.Document, params map[string]any) (map[string]any, error) {
	extractionType := stringParam(params, "extraction_type", "key_points")
	if extractionType != "key_points" {
		return nil, fmt.Errorf("%w extraction type: %s", ErrUnsupportedTask, extractionType)
	}
	keyPoints, err := d.gateway.ExtractKeyPoints(ctx, doc.TextContent)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"key_points":      keyPoints,
		"extraction_type": extractionType,
		"document_info":   documentInfo(doc, false),
	}, nil
}

func (d *Dispatcher) analyze(ctx context.Context, doc *models.Document) (map[string]any, error) {
	resp, err := d.gateway.Generate(ctx, &models.GenerationRequest{
		Prompt:      fmt.Sprintf(analyzePrompt, doc.TextContent),
		MaxTokens:   1500,
		Temperature: 0.3,
	})
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"analysis":      resp.Text,
		"document_info": documentInfo(doc, true),
	}, nil
}

func documentInfo(doc *models.Document, withSize bool) map[string]any {
	info := map[string]any{
		"file_name":  doc.FileName,
		"page_count": doc.PageCount,
	}
	if withSize {
		info["file_size"] = doc.FileSize
	}
	return info
}

// intParam reads an integer parameter; JSON-decoded numbers arrive as
// float64, so both forms are accepted.
func intParam(params map[string]any, key string, def int) int {
	if params == nil {
		return def
	}
	switch v := params[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return def
}

func stringParam(params map[string]any, key, def string) string {
	if params == nil {
		return def
	}
	if v, ok := params[key].(string); ok && v != "" {
		return v
	}
	return def
}
