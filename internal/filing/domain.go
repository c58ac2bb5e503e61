// Package filing orchestrates one annual-filing export: it builds the
// resolution context from the caller's bookkeeping rows, loads the mapping
// tables, runs the target renderers and stores the produced artifacts.
package filing

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/cemyet/summare-sub001/internal/export"
)

// Artifact is one rendered output file.
type Artifact struct {
	ID          uuid.UUID     `json:"id"`
	FilingID    string        `json:"filing_id"`
	Target      export.Target `json:"target"`
	FileName    string        `json:"file_name"`
	ContentType string        `json:"content_type"`
	Content     []byte        `json:"content"`
	CreatedAt   time.Time     `json:"created_at"`
}

// Result aggregates everything one export produced.
type Result struct {
	Artifacts []Artifact `json:"artifacts"`
}

var (
	// ErrArtifactNotFound occurs when an artifact lookup fails.
	ErrArtifactNotFound = errors.New("filing: artifact not found")
	// ErrUnknownTarget occurs when a requested target is not supported.
	ErrUnknownTarget = errors.New("filing: unknown export target")
	// ErrFormFillUnavailable occurs when the external fill service cannot
	// produce the PDF.
	ErrFormFillUnavailable = errors.New("filing: form fill service unavailable")
)
