// Package resolve expands a selection to its dependency closure and
// produces the deterministic execution order for a run.
package resolve

import (
	"fmt"
	"sort"
	"strings"
)

// DependencyErrorKind categorizes a DependencyError.
type DependencyErrorKind string

const (
	// KindUnknownReference means a dependency names an item that does
	// not exist in the catalog.
	KindUnknownReference DependencyErrorKind = "unknown-reference"
	// KindCycle means the selection's induced subgraph contains a cycle.
	KindCycle DependencyErrorKind = "cycle"
)

// MissingRef records one dangling dependency edge.
type MissingRef struct {
	ItemID       string // the referrer; empty when the selection itself named the id
	DependencyID string // the id that does not exist
}

// DependencyError reports why a plan could not be built. It aborts the
// run before any script executes.
type DependencyError struct {
	Kind    DependencyErrorKind
	Missing []MissingRef // populated for KindUnknownReference
	Cycle   []string     // every id on the cycle, for KindCycle
}

// Error returns the formatted error message naming every offending id.
func (e *DependencyError) Error() string {
	switch e.Kind {
	case KindUnknownReference:
		parts := make([]string, 0, len(e.Missing))
		for _, ref := range e.Missing {
			if ref.ItemID == "" {
				parts = append(parts, fmt.Sprintf("%q (selected)", ref.DependencyID))
			} else {
				parts = append(parts, fmt.Sprintf("%q (required by %q)", ref.DependencyID, ref.ItemID))
			}
		}
		return "unknown item reference: " + strings.Join(parts, ", ")
	case KindCycle:
		return "dependency cycle detected among: " + strings.Join(e.Cycle, ", ")
	default:
		return "dependency resolution failed"
	}
}

// IDs returns the offending ids, sorted and de-duplicated.
func (e *DependencyError) IDs() []string {
	seen := make(map[string]bool)
	out := make([]string, 0)

	add := func(id string) {
		if id != "" && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}

	for _, ref := range e.Missing {
		add(ref.DependencyID)
	}
	for _, id := range e.Cycle {
		add(id)
	}

	sort.Strings(out)
	return out
}
