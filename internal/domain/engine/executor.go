package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/macsnap/macsnap/internal/domain/catalog"
	"github.com/macsnap/macsnap/internal/domain/resolve"
	"github.com/macsnap/macsnap/internal/ports"
)

// Executor runs each plan item's lifecycle strictly sequentially: one
// item completes before the next is considered, and no id is scheduled
// twice within a run. Scripts commonly touch global system state
// (package-manager locks, defaults domains), so there is no parallel
// execution and no default timeout on a phase.
type Executor struct {
	runner ports.ScriptRunner
	logger ports.Logger
	policy ReconfigurePolicy
}

// NewExecutor creates an Executor using the given script runner.
func NewExecutor(runner ports.ScriptRunner) *Executor {
	return &Executor{
		runner: runner,
		logger: noopLogger{},
		policy: PolicySkipWhenSatisfied,
	}
}

// WithLogger returns an Executor that logs phase activity.
func (e *Executor) WithLogger(logger ports.Logger) *Executor {
	return &Executor{runner: e.runner, logger: logger, policy: e.policy}
}

// WithPolicy returns an Executor using the given reconfigure policy.
func (e *Executor) WithPolicy(policy ReconfigurePolicy) *Executor {
	return &Executor{runner: e.runner, logger: e.logger, policy: policy}
}

// Execute runs the plan and returns one outcome per processed item.
// A caller-issued interrupt stops scheduling between items; the item in
// flight records the terminal state it reached and items never started
// are not recorded.
func (e *Executor) Execute(ctx context.Context, cat *catalog.Catalog, plan *resolve.ExecutionPlan) []ItemOutcome {
	outcomes := make([]ItemOutcome, 0, plan.Len())
	failed := make(map[string]bool) // ids whose install failed or was skipped

	for _, id := range plan.IDs() {
		select {
		case <-ctx.Done():
			return outcomes
		default:
		}

		item, ok := cat.Get(id)
		if !ok {
			// Resolve guarantees plan ids exist; guard anyway.
			continue
		}

		outcome := e.executeItem(ctx, item, failed)
		outcomes = append(outcomes, outcome)

		if outcome.State == StateInstallFailed || outcome.State == StateSkippedDependencyFailed {
			failed[id] = true
		}
		if outcome.State == StateCancelled {
			break
		}
	}

	return outcomes
}

// executeItem drives one item's state machine start to finish.
func (e *Executor) executeItem(ctx context.Context, item catalog.Item, failed map[string]bool) ItemOutcome {
	outcome := ItemOutcome{ItemID: item.ID, StartedAt: time.Now()}
	defer func() { outcome.FinishedAt = time.Now() }()

	lc, err := newLifecycle(item.ID)
	if err != nil {
		outcome.State = StateInstallFailed
		outcome.Reason = err.Error()
		return outcome
	}
	defer lc.stop()

	// Cascade: a failed ancestor means none of this item's scripts run,
	// not even validate. The plan is topologically ordered, so checking
	// direct dependencies propagates transitively.
	for _, dep := range item.Dependencies {
		if failed[dep] {
			lc.fire(eventDependencyFailed)
			outcome.State = lc.state()
			outcome.Reason = fmt.Sprintf("dependency %q failed to install", dep)
			e.logger.Warn(ctx, "skipping item, dependency failed",
				ports.F("item", item.ID), ports.F("dependency", dep))
			return outcome
		}
	}

	lc.fire(eventStart)

	// Validate. Exit 0 means already satisfied; non-zero or absent means
	// the item needs install. A validate script that cannot even launch
	// is recorded but treated as needs-install.
	needsInstall := true
	if body, ok := item.Script(catalog.PhaseValidate); ok {
		result, runErr := e.runPhase(ctx, item, catalog.PhaseValidate, body, &outcome)
		if e.interrupted(ctx, lc, catalog.PhaseValidate, &outcome, result, runErr) {
			return outcome
		}
		needsInstall = runErr != nil || !result.Success()
	}

	if !needsInstall {
		if e.policy == PolicyAlwaysReconfigure && item.HasScript(catalog.PhaseConfigure) {
			lc.fire(eventSatisfiedReconfigure)
			e.runConfigure(ctx, item, lc, &outcome)
			return outcome
		}
		lc.fire(eventSatisfied)
		outcome.State = lc.state()
		return outcome
	}

	lc.fire(eventNeedsInstall)

	// Install. Absence is vacuous success; failure is terminal and
	// cascades to every dependent in the plan.
	if body, ok := item.Script(catalog.PhaseInstall); ok {
		result, runErr := e.runPhase(ctx, item, catalog.PhaseInstall, body, &outcome)
		if e.interrupted(ctx, lc, catalog.PhaseInstall, &outcome, result, runErr) {
			return outcome
		}
		if runErr != nil || !result.Success() {
			lc.fire(eventInstallFailed)
			outcome.State = lc.state()
			outcome.Reason = phaseFailureReason(item.ID, catalog.PhaseInstall, result, runErr)
			return outcome
		}
	}

	lc.fire(eventInstalled)
	e.runConfigure(ctx, item, lc, &outcome)
	return outcome
}

// runConfigure runs the configure phase from the configuring state.
// Absence is vacuous success. Failure is terminal for the item but never
// cascades to dependents.
func (e *Executor) runConfigure(ctx context.Context, item catalog.Item, lc *lifecycle, outcome *ItemOutcome) {
	if body, ok := item.Script(catalog.PhaseConfigure); ok {
		result, runErr := e.runPhase(ctx, item, catalog.PhaseConfigure, body, outcome)
		if e.interrupted(ctx, lc, catalog.PhaseConfigure, outcome, result, runErr) {
			return
		}
		if runErr != nil || !result.Success() {
			lc.fire(eventConfigureFailed)
			outcome.State = lc.state()
			outcome.Reason = phaseFailureReason(item.ID, catalog.PhaseConfigure, result, runErr)
			return
		}
	}
	lc.fire(eventConfigured)
	outcome.State = lc.state()
}

// Uninstall runs a single item's uninstall script. It is only ever
// invoked directly against one targeted item, outside the default plan,
// and never cascades to dependents.
func (e *Executor) Uninstall(ctx context.Context, item catalog.Item) ItemOutcome {
	outcome := ItemOutcome{ItemID: item.ID, StartedAt: time.Now()}
	defer func() { outcome.FinishedAt = time.Now() }()

	body, ok := item.Script(catalog.PhaseUninstall)
	if !ok {
		outcome.State = StateUninstalled
		outcome.Reason = "no uninstall script defined"
		return outcome
	}

	result, runErr := e.runPhase(ctx, item, catalog.PhaseUninstall, body, &outcome)
	if runErr != nil || !result.Success() {
		outcome.State = StateUninstallFailed
		outcome.Reason = phaseFailureReason(item.ID, catalog.PhaseUninstall, result, runErr)
		return outcome
	}

	outcome.State = StateUninstalled
	return outcome
}

// runPhase executes one script body exactly once, records the result on
// the outcome, and surfaces the raw output through the logger.
func (e *Executor) runPhase(ctx context.Context, item catalog.Item, phase catalog.Phase, body string, outcome *ItemOutcome) (ports.ScriptResult, error) {
	e.logger.Debug(ctx, "running phase",
		ports.F("item", item.ID), ports.F("phase", phase.String()))

	env := ports.ScriptEnv{
		ItemID:    item.ID,
		ItemName:  item.Name,
		ItemType:  item.Type.String(),
		Category:  item.Category,
		ConfigDir: item.ConfigDir,
	}

	started := time.Now()
	result, runErr := e.runner.Run(ctx, env, body)
	finished := time.Now()

	record := PhaseResult{
		Phase:      phase,
		ExitCode:   result.ExitCode,
		Stdout:     result.Stdout,
		Stderr:     result.Stderr,
		StartedAt:  started,
		FinishedAt: finished,
	}
	if runErr != nil {
		record.Err = runErr
	} else if !result.Success() {
		record.Err = &ExitError{
			ItemID:   item.ID,
			Phase:    phase,
			ExitCode: result.ExitCode,
			Stderr:   result.Stderr,
		}
	}
	outcome.Phases = append(outcome.Phases, record)

	if result.Stdout != "" {
		e.logger.Debug(ctx, "script stdout",
			ports.F("item", item.ID), ports.F("phase", phase.String()),
			ports.F("output", result.Stdout))
	}
	if result.Stderr != "" {
		e.logger.Debug(ctx, "script stderr",
			ports.F("item", item.ID), ports.F("phase", phase.String()),
			ports.F("output", result.Stderr))
	}
	e.logger.Info(ctx, "phase finished",
		ports.F("item", item.ID), ports.F("phase", phase.String()),
		ports.F("exit_code", result.ExitCode),
		ports.F("duration", result.Duration.Round(time.Millisecond)))

	return result, runErr
}

// interrupted checks whether a phase ended because the caller cancelled
// the run. The interrupted item still records a terminal state; it is
// never silently dropped.
func (e *Executor) interrupted(ctx context.Context, lc *lifecycle, phase catalog.Phase, outcome *ItemOutcome, result ports.ScriptResult, runErr error) bool {
	if ctx.Err() == nil {
		return false
	}
	if runErr == nil && result.Success() {
		// The phase finished before the signal landed; let the item
		// conclude normally. Scheduling stops before the next item.
		return false
	}
	lc.fire(eventCancelled)
	outcome.State = lc.state()
	outcome.Reason = (&CancelledError{ItemID: outcome.ItemID, Phase: phase}).Error()
	return true
}

// phaseFailureReason builds the one-line diagnostic for a failed phase.
func phaseFailureReason(itemID string, phase catalog.Phase, result ports.ScriptResult, runErr error) string {
	if runErr != nil {
		return runErr.Error()
	}
	return (&ExitError{
		ItemID:   itemID,
		Phase:    phase,
		ExitCode: result.ExitCode,
		Stderr:   result.Stderr,
	}).Error()
}

// noopLogger is the default when no logger is attached.
type noopLogger struct{}

func (noopLogger) Debug(context.Context, string, ...ports.Field) {}
func (noopLogger) Info(context.Context, string, ...ports.Field)  {}
func (noopLogger) Warn(context.Context, string, ...ports.Field)  {}
func (noopLogger) Error(context.Context, string, ...ports.Field) {}
func (noopLogger) With(...ports.Field) ports.Logger              { return noopLogger{} }
