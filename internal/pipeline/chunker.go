// Package pipeline provides document validation, extraction, and chunking
// behind a single process call.
package pipeline

import "strings"

// Chunker splits text into bounded-size chunks along paragraph, then
// sentence, boundaries.
type Chunker struct {
	maxSize int
}

// NewChunker creates a chunker with the given maximum chunk size in characters.
func NewChunker(maxSize int) *Chunker {
	return &Chunker{maxSize: maxSize}
}

// Chunk splits text into chunks of at most maxSize characters. Paragraphs
// (blank-line separated) are accumulated greedily; any chunk still over
// the limit is re-split on sentence boundaries. A single sentence longer
// than maxSize is emitted whole, so the limit is advisory in that one
// case. Empty input yields nil.
func (c *Chunker) Chunk(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	var chunks []string
	for _, chunk := range accumulate(strings.Split(text, "\n\n"), "\n\n", c.maxSize) {
		if len(chunk) <= c.maxSize {
			chunks = append(chunks, chunk)
			continue
		}
		// SplitAfter keeps the terminator with its sentence, so chunk
		// boundaries never swallow a period.
		chunks = append(chunks, accumulate(strings.SplitAfter(chunk, ". "), "", c.maxSize)...)
	}
	return chunks
}

// accumulate greedily packs units into chunks of at most maxSize
// characters, rejoining them with sep. Emitted chunks are trimmed and
// never empty; a trailing non-empty buffer is always emitted.
func accumulate(units []string, sep string, maxSize int) []string {
	var chunks []string
	var buf strings.Builder
	flush := func() {
		if s := strings.TrimSpace(buf.String()); s != "" {
			chunks = append(chunks, s)
		}
		buf.Reset()
	}
	for _, unit := range units {
		if strings.TrimSpace(unit) == "" {
			continue
		}
		if buf.Len() > 0 && buf.Len()+len(sep)+len(unit) > maxSize {
			flush()
		}
		if buf.Len() > 0 {
			buf.WriteString(sep)
		}
		buf.WriteString(unit)
	}
	flush()
	return chunks
}
