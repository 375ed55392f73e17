// Package analyzers contains the built-in analysis units that run against a
// crash report's shared context: fact extraction, suspect-pattern scanning,
// mod detection, and record-id resolution.
package analyzers

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/crashlens/crashlens/internal/domain"
	"github.com/crashlens/crashlens/internal/engine"
)

// Analysis priorities. Extraction must complete before anything that reads
// its facts, so the remaining units sit in later bands.
const (
	priorityExtract = 10
	prioritySuspect = 20
	priorityMods    = 30
	priorityLookup  = 40
)

var (
	mainErrorRe  = regexp.MustCompile(`(?i)^\s*unhandled exception\b.*$`)
	pluginLineRe = regexp.MustCompile(`^\s*\[([0-9A-Fa-f: ]+)\]\s+(\S.*?)\s*$`)
	gpuLineRe    = regexp.MustCompile(`(?i)^\s*GPU(?:\s*#?\d+)?\s*:\s*(.+?)\s*$`)
	sectionRe    = regexp.MustCompile(`^[A-Z][A-Z0-9 ]+:\s*$`)
)

// Extract segments the raw crash-report text into the facts the later bands
// consume: the main error line, the probable call stack, the plugin list,
// and the GPU description.
type Extract struct {
	engine.Meta
}

// NewExtract creates the extraction unit.
func NewExtract() *Extract {
	return &Extract{Meta: engine.Meta{
		ID:       "extract",
		Title:    "Log Segmentation",
		Order:    priorityExtract,
		Deadline: 10 * time.Second,
	}}
}

// CanRun implements engine.Analyzer.
func (e *Extract) CanRun(sc *engine.Context) bool {
	return sc.Has(engine.KeyRawText)
}

// Execute implements engine.Analyzer.
func (e *Extract) Execute(ctx context.Context, sc *engine.Context) (*domain.Result, error) {
	raw, err := engine.Get[string](sc, engine.KeyRawText)
	if err != nil {
		return nil, err
	}

	lines := strings.Split(raw, "\n")
	plugins := make(map[string]string)
	var (
		mainError string
		callStack []string
		gpu       string
	)

	section := ""
	for _, line := range lines {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		trimmed := strings.TrimSpace(line)

		if sectionRe.MatchString(trimmed) {
			section = strings.TrimSuffix(trimmed, ":")
			continue
		}
		if mainError == "" && mainErrorRe.MatchString(trimmed) {
			mainError = trimmed
			continue
		}
		if gpu == "" {
			if m := gpuLineRe.FindStringSubmatch(trimmed); m != nil {
				gpu = m[1]
				continue
			}
		}

		switch section {
		case "PROBABLE CALL STACK":
			if trimmed != "" {
				callStack = append(callStack, trimmed)
			}
		case "PLUGINS":
			if m := pluginLineRe.FindStringSubmatch(trimmed); m != nil {
				plugins[m[2]] = strings.TrimSpace(m[1])
			}
		}
	}

	if mainError != "" {
		sc.Set(engine.KeyMainError, mainError)
	}
	if len(callStack) > 0 {
		sc.Set(engine.KeyCallStack, callStack)
	}
	if len(plugins) > 0 {
		sc.Set(engine.KeyPlugins, plugins)
	}
	if gpu != "" {
		sc.Set(engine.KeyGPU, gpu)
	}

	res := domain.NewResult(e.Name())
	res.SetMeta("plugins", fmt.Sprintf("%d", len(plugins)))
	res.SetMeta("call_stack_lines", fmt.Sprintf("%d", len(callStack)))
	var summary []string
	if mainError != "" {
		summary = append(summary, "Main error: "+mainError)
	}
	summary = append(summary, fmt.Sprintf("Plugins detected: %d", len(plugins)))
	if gpu != "" {
		summary = append(summary, "GPU: "+gpu)
	}
	return res.WithFragment(domain.NewFragment("Report Overview", priorityExtract, summary...)), nil
}
