// Package extract provides PDF text and metadata extraction with ordered
// fallback strategies.
package extract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hyperjump/yomitori/internal/models"
	"go.uber.org/zap"
)

// ErrNoText is returned when every strategy runs but none yields text.
var ErrNoText = errors.New("no text content found in PDF")

// Strategy extracts text from a document file, reading at most pageLimit
// pages (0 means no limit).
type Strategy interface {
	Name() string
	Extract(path string, pageLimit int) (string, error)
}

// Extractor tries an ordered list of strategies and returns the first
// non-empty text. Metadata is always read with the plain reader, no matter
// which strategy supplied the text.
type Extractor struct {
	strategies []Strategy
	pageLimit  int
	logger     *zap.Logger
}

// NewExtractor returns an extractor with the default strategy order:
// layout-aware first, plain page iteration as fallback.
func NewExtractor(pageLimit int, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{
		strategies: []Strategy{layoutStrategy{}, plainStrategy{}},
		pageLimit:  pageLimit,
		logger:     logger,
	}
}

// Extract reads the file at path and returns its text and metadata.
// Strategies are tried in order; a non-final strategy's failure or empty
// result falls through to the next one, the final strategy's failure is
// fatal. All strategies exhausted without text yields ErrNoText.
func (e *Extractor) Extract(path string) (string, *models.DocumentMetadata, error) {
	var text string
	for i, s := range e.strategies {
		out, err := s.Extract(path, e.pageLimit)
		if err != nil {
			if i == len(e.strategies)-1 {
				return "", nil, fmt.Errorf("%s extraction: %w", s.Name(), err)
			}
			e.logger.Warn("extraction strategy failed",
				zap.String("strategy", s.Name()),
				zap.String("path", path),
				zap.Error(err))
			continue
		}
		if strings.TrimSpace(out) != "" {
			text = out
			break
		}
		e.logger.Debug("extraction strategy yielded no text",
			zap.String("strategy", s.Name()),
			zap.String("path", path))
	}

	meta := e.readMetadata(path)
	if strings.TrimSpace(text) == "" {
		return "", meta, ErrNoText
	}
	return text, meta, nil
}
