package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hyperjump/yomitori/internal/models"
	"go.uber.org/zap"
)

// TextExtractor extracts a document's text and metadata.
type TextExtractor interface {
	Extract(path string) (string, *models.DocumentMetadata, error)
	CanOpen(path string) bool
}

// Pipeline validates, extracts, and chunks documents.
type Pipeline struct {
	extractor   TextExtractor
	chunker     *Chunker
	maxFileSize int64
	logger      *zap.Logger
}

// NewPipeline creates a pipeline with the given extractor, chunker, and
// file size ceiling in bytes.
func NewPipeline(extractor TextExtractor, chunker *Chunker, maxFileSize int64, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		extractor:   extractor,
		chunker:     chunker,
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

// Process runs validation, extraction, and chunking for the file at path.
// Validation order: existence, size ceiling, non-empty extracted text.
// Failures are converted into a failure result and never escape as errors.
// Processing time is measured entry to return on every path.
func (p *Pipeline) Process(path string) *models.PipelineResult {
	start := time.Now()
	fail := func(msg string) *models.PipelineResult {
		return &models.PipelineResult{
			Success:        false,
			Error:          msg,
			ProcessingTime: time.Since(start).Seconds(),
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return fail(fmt.Sprintf("file not found: %s", path))
	}
	if info.Size() > p.maxFileSize {
		return fail(fmt.Sprintf("file too large: %d bytes", info.Size()))
	}

	text, meta, err := p.extractor.Extract(path)
	if err != nil {
		p.logger.Error("extraction failed", zap.String("path", path), zap.Error(err))
		return fail(err.Error())
	}
	if strings.TrimSpace(text) == "" {
		return fail("no text content found in PDF")
	}

	pageCount := 0
	if meta != nil {
		pageCount = meta.PageCount
	}
	doc := &models.Document{
		FilePath:    path,
		FileName:    filepath.Base(path),
		FileSize:    info.Size(),
		PageCount:   pageCount,
		TextContent: text,
		Metadata:    meta,
		ProcessedAt: time.Now(),
	}
	chunks := p.chunker.Chunk(text)

	elapsed := time.Since(start)
	p.logger.Info("document processed",
		zap.String("path", path),
		zap.Int("chunks", len(chunks)),
		zap.Duration("elapsed", elapsed))

	return &models.PipelineResult{
		Success:        true,
		Document:       doc,
		Chunks:         chunks,
		ProcessingTime: elapsed.Seconds(),
	}
}

// IsSupported reports whether path points at a processable document: it
// exists, carries the accepted extension, fits the size ceiling, and the
// fallback reader can open it. Used as a pre-flight gate before Process.
func (p *Pipeline) IsSupported(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return false
	}
	if info.Size() > p.maxFileSize {
		return false
	}
	return p.extractor.CanOpen(path)
}
