// Package engine drives each item through its validate/install/configure
// lifecycle in plan order, applying the failure-cascade rules, and
// aggregates the outcomes into a run verdict.
package engine

// ItemState represents an item's position in its lifecycle.
type ItemState string

const (
	// StatePending indicates the item has not started.
	StatePending ItemState = "pending"
	// StateValidating indicates the validate script is running.
	StateValidating ItemState = "validating"
	// StateAlreadySatisfied indicates validate exited 0; install and
	// configure are skipped for this run.
	StateAlreadySatisfied ItemState = "already_satisfied"
	// StateInstalling indicates the install script is running.
	StateInstalling ItemState = "installing"
	// StateInstallFailed indicates the install phase failed. This is the
	// only failure that cascades to dependents.
	StateInstallFailed ItemState = "install_failed"
	// StateConfiguring indicates the configure script is running.
	StateConfiguring ItemState = "configuring"
	// StateConfigureFailed indicates the configure phase failed. It does
	// not cascade: dependents need the installed artifact, not its
	// post-install tuning.
	StateConfigureFailed ItemState = "configure_failed"
	// StateDone indicates the item completed its lifecycle.
	StateDone ItemState = "done"
	// StateSkippedDependencyFailed indicates an ancestor's install phase
	// failed, so none of this item's scripts were run.
	StateSkippedDependencyFailed ItemState = "skipped_dependency_failed"
	// StateCancelled indicates the caller interrupted the item mid-phase.
	StateCancelled ItemState = "cancelled"
	// StateUninstalled indicates a targeted uninstall completed.
	StateUninstalled ItemState = "uninstalled"
	// StateUninstallFailed indicates a targeted uninstall failed.
	StateUninstallFailed ItemState = "uninstall_failed"
)

// String returns the string representation of the state.
func (s ItemState) String() string {
	return string(s)
}

// Terminal returns true if the state is a final lifecycle state.
func (s ItemState) Terminal() bool {
	switch s {
	case StateAlreadySatisfied, StateInstallFailed, StateConfigureFailed,
		StateDone, StateSkippedDependencyFailed, StateCancelled,
		StateUninstalled, StateUninstallFailed:
		return true
	}
	return false
}

// Success returns true for terminal states that count toward a
// successful run.
func (s ItemState) Success() bool {
	switch s {
	case StateDone, StateAlreadySatisfied, StateUninstalled:
		return true
	}
	return false
}
