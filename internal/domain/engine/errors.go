package engine

import (
	"fmt"
	"strings"

	"github.com/macsnap/macsnap/internal/domain/catalog"
)

// ExitError reports a phase script that ran and returned non-zero.
// It is never conflated with a script that failed to start (see
// ports.LaunchError).
type ExitError struct {
	ItemID   string
	Phase    catalog.Phase
	ExitCode int
	Stderr   string
}

// Error returns the formatted error message with the first stderr line
// as a diagnostic hint.
func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%s script for %q exited with code %d", e.Phase, e.ItemID, e.ExitCode)
	if hint := FirstLine(e.Stderr); hint != "" {
		msg += ": " + hint
	}
	return msg
}

// CancelledError reports a run interrupted by the caller. Everything
// recorded before the interrupt is preserved.
type CancelledError struct {
	ItemID string
	Phase  catalog.Phase
}

// Error returns the formatted error message.
func (e *CancelledError) Error() string {
	if e.ItemID == "" {
		return "run cancelled"
	}
	return fmt.Sprintf("run cancelled during %s of %q", e.Phase, e.ItemID)
}

// FirstLine returns the first non-empty line of s, trimmed.
func FirstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
