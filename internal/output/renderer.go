package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/crashlens/crashlens/internal/domain"
	"github.com/crashlens/crashlens/internal/engine"
)

// Renderer writes the merged report tree as human-readable text.
type Renderer struct {
	w     io.Writer
	color bool
}

// NewRenderer creates a text renderer. Color is enabled automatically when w
// is a terminal.
func NewRenderer(w io.Writer) *Renderer {
	color := false
	if f, ok := w.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Renderer{w: w, color: color}
}

// WithColor overrides terminal detection.
func (r *Renderer) WithColor(enabled bool) *Renderer {
	r.color = enabled
	return r
}

func (r *Renderer) styled(style lipgloss.Style, s string) string {
	if !r.color {
		return s
	}
	return style.Render(s)
}

// Render writes the scan outcome: overall verdict, report sections,
// recommendations, and a per-analyzer diagnostic line for failures.
func (r *Renderer) Render(source string, outcome *engine.Outcome) error {
	sev := outcome.Severity
	header := fmt.Sprintf("Verdict: %s (%s)", strings.ToUpper(sev.String()), source)
	fmt.Fprintln(r.w, r.styled(SeverityStyle(sev), header))
	fmt.Fprintln(r.w)

	r.renderFragment(outcome.Report, 0)

	if len(outcome.Recommendations) > 0 {
		fmt.Fprintln(r.w, r.styled(Styles.Section, "Recommendations"))
		for _, rec := range outcome.Recommendations {
			fmt.Fprintf(r.w, "  - %s\n", r.styled(Styles.Advice, rec))
		}
		fmt.Fprintln(r.w)
	}

	for _, res := range outcome.Results {
		if res.Success && !res.Skipped {
			continue
		}
		switch {
		case res.Skipped:
			fmt.Fprintf(r.w, "%s\n", r.styled(Styles.Skipped,
				fmt.Sprintf("skipped %s (%s)", res.Analyzer, res.Metadata["skip_reason"])))
		default:
			fmt.Fprintf(r.w, "%s\n", r.styled(Styles.Failed,
				fmt.Sprintf("failed  %s: %s", res.Analyzer, strings.Join(res.Warnings, "; "))))
		}
	}
	return nil
}

func (r *Renderer) renderFragment(f *domain.Fragment, depth int) {
	if f == nil || !f.HasContent() {
		return
	}
	indent := strings.Repeat("  ", depth)
	if f.Title() != "" {
		fmt.Fprintf(r.w, "%s%s\n", indent, r.styled(Styles.Section, f.Title()))
		depth++
		indent = strings.Repeat("  ", depth)
	}
	for _, line := range f.Lines() {
		fmt.Fprintf(r.w, "%s%s\n", indent, line)
	}
	for _, c := range f.Children() {
		r.renderFragment(c, depth)
	}
	if f.Title() != "" {
		fmt.Fprintln(r.w)
	}
}
