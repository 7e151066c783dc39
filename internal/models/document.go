// Package models defines core data structures for documents, tasks, and generation calls.
package models

import "time"

// DocumentMetadata holds metadata read from a PDF's Info dictionary.
// Every field except PageCount is optional; a source without metadata
// yields empty fields, never an error.
type DocumentMetadata struct {
	PageCount        int    `json:"page_count"`
	Title            string `json:"title,omitempty"`
	Author           string `json:"author,omitempty"`
	Subject          string `json:"subject,omitempty"`
	Creator          string `json:"creator,omitempty"`
	Producer         string `json:"producer,omitempty"`
	CreationDate     string `json:"creation_date,omitempty"`
	ModificationDate string `json:"modification_date,omitempty"`
}

// Document is a single input file with its extracted text and metadata.
// Immutable once constructed; it lives only for the pipeline call that built it.
type Document struct {
	FilePath    string            `json:"file_path"`
	FileName    string            `json:"file_name"`
	FileSize    int64             `json:"file_size"`
	PageCount   int               `json:"page_count"`
	TextContent string            `json:"text_content"`
	Metadata    *DocumentMetadata `json:"metadata,omitempty"`
	ProcessedAt time.Time         `json:"processed_at"`
}

// PipelineResult is the outcome of processing one document. On success,
// Document and Chunks are set; on failure, Error carries the cause.
// ProcessingTime (seconds) is populated on every path, failures included.
type PipelineResult struct {
	Success        bool      `json:"success"`
	Document       *Document `json:"document,omitempty"`
	Chunks         []string  `json:"chunks,omitempty"`
	Error          string    `json:"error,omitempty"`
	ProcessingTime float64   `json:"processing_time"`
}
