package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crashlens/crashlens/internal/domain"
	"github.com/crashlens/crashlens/internal/engine"
)

func TestNDJSONWriteResult(t *testing.T) {
	var buf bytes.Buffer
	w := NewNDJSONWriter(&buf)

	res := &domain.Result{
		Analyzer: "problematic-mods",
		Success:  true,
		Severity: domain.SeverityWarning,
		Elapsed:  1500 * time.Millisecond,
		Metadata: map[string]string{"matches": "1"},
	}
	require.NoError(t, w.WriteResult(res))

	var event ResultEvent
	require.NoError(t, json.Unmarshal(buf.Bytes(), &event))
	assert.Equal(t, "result", event.Type)
	assert.Equal(t, SchemaVersion, event.SchemaVersion)
	assert.Equal(t, "problematic-mods", event.Analyzer)
	assert.Equal(t, "warning", event.Severity)
	assert.Equal(t, int64(1500), event.ElapsedMS)
	assert.Equal(t, "1", event.Metadata["matches"])
}

func TestNDJSONWriteVerdict(t *testing.T) {
	var buf bytes.Buffer
	w := NewNDJSONWriter(&buf)

	outcome := &engine.Outcome{
		Severity:        domain.SeverityError,
		Report:          domain.NewFragment("Crash Suspects", 20, "SUSPECT: access violation"),
		Recommendations: []string{"update the driver"},
	}
	require.NoError(t, w.WriteVerdict("crash.log", outcome))

	var event VerdictEvent
	require.NoError(t, json.Unmarshal(buf.Bytes(), &event))
	assert.Equal(t, "verdict", event.Type)
	assert.Equal(t, "crash.log", event.Source)
	assert.Equal(t, "error", event.Severity)
	assert.Contains(t, event.Report, "SUSPECT: access violation")
	assert.Equal(t, []string{"update the driver"}, event.Recommendations)
}

func TestNDJSONWriteError(t *testing.T) {
	var buf bytes.Buffer
	w := NewNDJSONWriter(&buf)

	require.NoError(t, w.WriteError("BAD_CATALOG", "entry has no warning text"))

	var event ErrorEvent
	require.NoError(t, json.Unmarshal(buf.Bytes(), &event))
	assert.Equal(t, "error", event.Type)
	assert.Equal(t, "BAD_CATALOG", event.Code)
}

func TestNDJSONOneEventPerLine(t *testing.T) {
	var buf bytes.Buffer
	w := NewNDJSONWriter(&buf)

	require.NoError(t, w.WriteError("A", "first"))
	require.NoError(t, w.WriteError("B", "second"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2)
}

func TestRendererPlainText(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf).WithColor(false)

	outcome := &engine.Outcome{
		Severity: domain.SeverityWarning,
		Report: domain.Merge(
			domain.NewFragment("Report Overview", 10, "Plugins detected: 2"),
			domain.NewFragment("Mods With Known Issues", 30, `FOUND: Scrap Everything`),
		).Sorted(),
		Recommendations: []string{"Breaks precombines."},
		Results: []*domain.Result{
			{Analyzer: "extract", Success: true},
			{Analyzer: "gpu-advice", Success: true, Skipped: true, Metadata: map[string]string{"skip_reason": "not_applicable"}},
			{Analyzer: "slow-unit", Success: false, Warnings: []string{"timeout exceeded"}},
		},
	}
	require.NoError(t, r.Render("crash.log", outcome))

	text := buf.String()
	assert.Contains(t, text, "Verdict: WARNING (crash.log)")
	assert.Contains(t, text, "Report Overview")
	assert.Contains(t, text, "Plugins detected: 2")
	assert.Contains(t, text, "Recommendations")
	assert.Contains(t, text, "Breaks precombines.")
	assert.Contains(t, text, "skipped gpu-advice (not_applicable)")
	assert.Contains(t, text, "failed  slow-unit: timeout exceeded")
	assert.NotContains(t, text, "extract", "healthy units get no diagnostic line")
}
