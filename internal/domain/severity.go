package domain

import "fmt"

// Severity ranks how concerning a finding is. Higher values always dominate
// when results are aggregated.
type Severity int

const (
	SeverityNone Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
)

// String returns the canonical lower-case name of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityNone:
		return "none"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// Max returns the higher of s and other.
func (s Severity) Max(other Severity) Severity {
	if other > s {
		return other
	}
	return s
}

// MarshalJSON encodes the severity as its string name.
func (s Severity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// ParseSeverity converts a catalog/config severity name to a Severity.
func ParseSeverity(name string) (Severity, error) {
	switch name {
	case "none":
		return SeverityNone, nil
	case "info":
		return SeverityInfo, nil
	case "warning":
		return SeverityWarning, nil
	case "error":
		return SeverityError, nil
	default:
		return SeverityNone, fmt.Errorf("unknown severity %q", name)
	}
}
