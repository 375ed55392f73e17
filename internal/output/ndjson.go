package output

import (
	"encoding/json"
	"io"
	"time"

	"github.com/crashlens/crashlens/internal/domain"
	"github.com/crashlens/crashlens/internal/engine"
)

// SchemaVersion identifies the NDJSON output contract.
const SchemaVersion = 1

// NDJSONWriter writes scan events as NDJSON for machine consumers.
type NDJSONWriter struct {
	w       io.Writer
	encoder *json.Encoder
}

// NewNDJSONWriter creates a new NDJSON writer
func NewNDJSONWriter(w io.Writer) *NDJSONWriter {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false) // keep report text unescaped
	return &NDJSONWriter{
		w:       w,
		encoder: enc,
	}
}

// ResultEvent is the per-analyzer NDJSON record.
type ResultEvent struct {
	Type          string            `json:"type"` // Always "result"
	SchemaVersion int               `json:"schemaVersion"`
	Analyzer      string            `json:"analyzer"`
	Success       bool              `json:"success"`
	Skipped       bool              `json:"skipped"`
	Severity      string            `json:"severity"`
	ElapsedMS     int64             `json:"elapsed_ms"`
	Warnings      []string          `json:"warnings,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// VerdictEvent is the final NDJSON record for one scan.
type VerdictEvent struct {
	Type            string   `json:"type"` // Always "verdict"
	SchemaVersion   int      `json:"schemaVersion"`
	Source          string   `json:"source,omitempty"`
	Severity        string   `json:"severity"`
	Report          string   `json:"report"`
	Recommendations []string `json:"recommendations,omitempty"`
	Timestamp       string   `json:"timestamp"`
}

// ErrorEvent represents a structured command failure.
type ErrorEvent struct {
	Type          string `json:"type"` // Always "error"
	SchemaVersion int    `json:"schemaVersion"`
	Code          string `json:"code"`
	Message       string `json:"message"`
}

// WriteResult emits one per-analyzer record.
func (w *NDJSONWriter) WriteResult(res *domain.Result) error {
	return w.encoder.Encode(ResultEvent{
		Type:          "result",
		SchemaVersion: SchemaVersion,
		Analyzer:      res.Analyzer,
		Success:       res.Success,
		Skipped:       res.Skipped,
		Severity:      res.Severity.String(),
		ElapsedMS:     res.Elapsed.Milliseconds(),
		Warnings:      res.Warnings,
		Metadata:      res.Metadata,
	})
}

// WriteVerdict emits the final verdict record for one scan.
func (w *NDJSONWriter) WriteVerdict(source string, outcome *engine.Outcome) error {
	return w.encoder.Encode(VerdictEvent{
		Type:            "verdict",
		SchemaVersion:   SchemaVersion,
		Source:          source,
		Severity:        outcome.Severity.String(),
		Report:          outcome.Report.Render(),
		Recommendations: outcome.Recommendations,
		Timestamp:       time.Now().UTC().Format(time.RFC3339),
	})
}

// WriteError emits a machine-readable command failure.
func (w *NDJSONWriter) WriteError(code, message string) error {
	return w.encoder.Encode(ErrorEvent{
		Type:          "error",
		SchemaVersion: SchemaVersion,
		Code:          code,
		Message:       message,
	})
}
