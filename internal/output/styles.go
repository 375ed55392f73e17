package output

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/crashlens/crashlens/internal/domain"
)

// Styles holds all lipgloss styles for text output
var Styles = struct {
	// Severity styles
	None    lipgloss.Style
	Info    lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style

	// Component styles
	Header   lipgloss.Style
	Section  lipgloss.Style
	Label    lipgloss.Style
	Line     lipgloss.Style
	Advice   lipgloss.Style
	Failed   lipgloss.Style
	Skipped  lipgloss.Style
	Duration lipgloss.Style
}{
	None:    lipgloss.NewStyle().Foreground(lipgloss.Color("243")),             // Gray
	Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),              // Cyan
	Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),  // Orange bold
	Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),  // Red bold

	Header:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(lipgloss.Color("239")),
	Section:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
	Label:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	Line:     lipgloss.NewStyle(),
	Advice:   lipgloss.NewStyle().Foreground(lipgloss.Color("142")), // Yellow-green
	Failed:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	Skipped:  lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
	Duration: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
}

// SeverityStyle returns the style for a severity value
func SeverityStyle(s domain.Severity) lipgloss.Style {
	switch s {
	case domain.SeverityInfo:
		return Styles.Info
	case domain.SeverityWarning:
		return Styles.Warning
	case domain.SeverityError:
		return Styles.Error
	default:
		return Styles.None
	}
}
