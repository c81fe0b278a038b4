package engine

import (
	"time"

	"github.com/google/uuid"
)

// Verdict classifies a whole run.
type Verdict string

const (
	// VerdictSuccess means every processed item ended in a success state.
	VerdictSuccess Verdict = "success"
	// VerdictPartialFailure means the plan was built and executed but at
	// least one item failed, was skipped, or was cancelled.
	VerdictPartialFailure Verdict = "partial_failure"
	// VerdictTotalFailure means the run aborted before any item could be
	// processed: the catalog would not load or the plan could not be
	// built.
	VerdictTotalFailure Verdict = "total_failure"
)

// ExitCode maps the verdict onto the process exit code.
func (v Verdict) ExitCode() int {
	switch v {
	case VerdictSuccess:
		return 0
	case VerdictPartialFailure:
		return 1
	default:
		return 2
	}
}

// Failure is one failed item in the summary, with its one-line reason.
type Failure struct {
	ItemID string
	State  ItemState
	Reason string
}

// RunSummary is the aggregate verdict over one run.
type RunSummary struct {
	RunID      uuid.UUID
	StartedAt  time.Time
	FinishedAt time.Time
	Counts     map[ItemState]int
	Failures   []Failure
	Outcomes   []ItemOutcome
	Verdict    Verdict

	// Err carries the abort cause when the run never produced outcomes,
	// for example a catalog load or resolution failure.
	Err error
}

// Succeeded returns the number of items that ended in a success state.
func (s RunSummary) Succeeded() int {
	n := 0
	for state, count := range s.Counts {
		if state.Success() {
			n += count
		}
	}
	return n
}

// Failed returns the number of items that ended in a failure state.
func (s RunSummary) Failed() int {
	return len(s.Failures)
}

// Aggregator collects per-item outcomes and produces the run summary.
// State is per-run; nothing survives Summarize.
type Aggregator struct {
	runID     uuid.UUID
	startedAt time.Time
	outcomes  []ItemOutcome
}

// NewAggregator starts collecting for a new run.
func NewAggregator() *Aggregator {
	return &Aggregator{
		runID:     uuid.New(),
		startedAt: time.Now(),
	}
}

// RunID identifies this run in logs and output.
func (a *Aggregator) RunID() uuid.UUID {
	return a.runID
}

// Record adds one item outcome.
func (a *Aggregator) Record(outcome ItemOutcome) {
	a.outcomes = append(a.outcomes, outcome)
}

// RecordAll adds a batch of outcomes in order.
func (a *Aggregator) RecordAll(outcomes []ItemOutcome) {
	a.outcomes = append(a.outcomes, outcomes...)
}

// Summarize closes the run and computes the verdict. An empty run (no
// items selected, nothing to do) counts as success. Any failure in an
// executed run is a partial failure, even when nothing succeeded: total
// failure is reserved for runs that never got to execute, see
// TotalFailureSummary.
func (a *Aggregator) Summarize() RunSummary {
	summary := RunSummary{
		RunID:      a.runID,
		StartedAt:  a.startedAt,
		FinishedAt: time.Now(),
		Counts:     make(map[ItemState]int),
		Outcomes:   a.outcomes,
	}

	for _, outcome := range a.outcomes {
		summary.Counts[outcome.State]++
		if outcome.State.Success() {
			continue
		}
		summary.Failures = append(summary.Failures, Failure{
			ItemID: outcome.ItemID,
			State:  outcome.State,
			Reason: outcome.Reason,
		})
	}

	if len(summary.Failures) == 0 {
		summary.Verdict = VerdictSuccess
	} else {
		summary.Verdict = VerdictPartialFailure
	}

	return summary
}

// TotalFailureSummary builds the summary for a run that aborted before
// any item could be processed, such as a catalog or resolution error.
func TotalFailureSummary(err error) RunSummary {
	now := time.Now()
	return RunSummary{
		RunID:      uuid.New(),
		StartedAt:  now,
		FinishedAt: now,
		Counts:     make(map[ItemState]int),
		Verdict:    VerdictTotalFailure,
		Err:        err,
	}
}
