package diag

import (
	"fmt"
	"strings"
)

// Severity defines the importance of a diagnostic. Values are spaced so
// that thresholds can be compared numerically.
type Severity uint16

const (
	// SevDebug is for compiler-internal traces surfaced as diagnostics.
	SevDebug Severity = 0
	// SevInfo is for informational diagnostics.
	SevInfo Severity = 100
	// SevWarning is for warning diagnostics.
	SevWarning Severity = 200
	SevError   Severity = 300
	// SevNever is a threshold no diagnostic reaches.
	SevNever Severity = 1000
)

func (s Severity) String() string {
	switch s {
	case SevDebug:
		return "DEBUG"
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	case SevNever:
		return "NEVER"
	}
	return "UNKNOWN"
}

// ParseSeverity converts a flag or manifest value to a Severity.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return SevDebug, nil
	case "info":
		return SevInfo, nil
	case "warning", "warn":
		return SevWarning, nil
	case "error":
		return SevError, nil
	case "never", "none":
		return SevNever, nil
	}
	return SevError, fmt.Errorf("invalid severity: %q (expected: debug|info|warning|error|never)", s)
}
