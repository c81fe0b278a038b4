package engine

import (
	"time"

	"github.com/macsnap/macsnap/internal/domain/catalog"
)

// PhaseResult captures one script invocation within an item's lifecycle.
type PhaseResult struct {
	Phase      catalog.Phase
	ExitCode   int
	Stdout     string
	Stderr     string
	StartedAt  time.Time
	FinishedAt time.Time

	// Err is non-nil when the phase counted as a failure: a
	// *ports.LaunchError if the script never started, an *ExitError if
	// it exited non-zero.
	Err error
}

// ItemOutcome is the per-item record the aggregator collects.
// Outcomes are created fresh per run and discarded with the summary;
// the engine persists nothing across runs.
type ItemOutcome struct {
	ItemID     string
	State      ItemState
	Phases     []PhaseResult
	Reason     string // one-line diagnostic for non-success states
	StartedAt  time.Time
	FinishedAt time.Time
}

// Failed returns true for terminal states that count against the run.
func (o ItemOutcome) Failed() bool {
	return o.State.Terminal() && !o.State.Success()
}

// Phase returns the recorded result for a phase, if it ran.
func (o ItemOutcome) Phase(phase catalog.Phase) (PhaseResult, bool) {
	for _, p := range o.Phases {
		if p.Phase == phase {
			return p, true
		}
	}
	return PhaseResult{}, false
}
