package engine

import (
	"github.com/felixgeelhaar/statekit"
)

// Event types for the item lifecycle state machine.
const (
	eventStart                = "START"
	eventDependencyFailed     = "DEPENDENCY_FAILED"
	eventSatisfied            = "SATISFIED"
	eventSatisfiedReconfigure = "SATISFIED_RECONFIGURE"
	eventNeedsInstall         = "NEEDS_INSTALL"
	eventInstalled            = "INSTALLED"
	eventInstallFailed        = "INSTALL_FAILED"
	eventConfigured           = "CONFIGURED"
	eventConfigureFailed      = "CONFIGURE_FAILED"
	eventCancelled            = "CANCELLED"
)

// lifecycleContext is the statekit context for one item's machine.
type lifecycleContext struct {
	ItemID string
}

// lifecycle wraps the per-item state machine. One machine is built per
// item per run; the executor fires events as phases complete and reads
// the terminal state for the outcome.
type lifecycle struct {
	interp *statekit.Interpreter[lifecycleContext]
}

// buildLifecycleMachine constructs the item state machine:
//
//	pending → validating → {already_satisfied, installing}
//	installing → {configuring, install_failed}
//	configuring → {done, configure_failed}
//
// plus the terminal skipped_dependency_failed and cancelled states.
func buildLifecycleMachine(itemID string) (*statekit.Interpreter[lifecycleContext], error) {
	sid := func(s ItemState) statekit.StateID {
		return statekit.StateID(s)
	}
	machine, err := statekit.NewMachine[lifecycleContext]("item-lifecycle").
		WithInitial(sid(StatePending)).
		WithContext(lifecycleContext{ItemID: itemID}).
		State(sid(StatePending)).
		On(eventStart).Target(sid(StateValidating)).
		On(eventDependencyFailed).Target(sid(StateSkippedDependencyFailed)).
		On(eventCancelled).Target(sid(StateCancelled)).Done().
		State(sid(StateValidating)).
		On(eventSatisfied).Target(sid(StateAlreadySatisfied)).
		On(eventSatisfiedReconfigure).Target(sid(StateConfiguring)).
		On(eventNeedsInstall).Target(sid(StateInstalling)).
		On(eventCancelled).Target(sid(StateCancelled)).Done().
		State(sid(StateInstalling)).
		On(eventInstalled).Target(sid(StateConfiguring)).
		On(eventInstallFailed).Target(sid(StateInstallFailed)).
		On(eventCancelled).Target(sid(StateCancelled)).Done().
		State(sid(StateConfiguring)).
		On(eventConfigured).Target(sid(StateDone)).
		On(eventConfigureFailed).Target(sid(StateConfigureFailed)).
		On(eventCancelled).Target(sid(StateCancelled)).Done().
		State(sid(StateAlreadySatisfied)).Done().
		State(sid(StateInstallFailed)).Done().
		State(sid(StateConfigureFailed)).Done().
		State(sid(StateDone)).Done().
		State(sid(StateSkippedDependencyFailed)).Done().
		State(sid(StateCancelled)).Done().
		Build()
	if err != nil {
		return nil, err
	}
	return statekit.NewInterpreter(machine), nil
}

// newLifecycle builds and starts the machine for one item.
func newLifecycle(itemID string) (*lifecycle, error) {
	interp, err := buildLifecycleMachine(itemID)
	if err != nil {
		return nil, err
	}
	interp.Start()
	return &lifecycle{interp: interp}, nil
}

// fire sends an event to the machine.
func (l *lifecycle) fire(event string) {
	l.interp.Send(statekit.Event{Type: statekit.EventType(event)})
}

// state returns the machine's current state.
func (l *lifecycle) state() ItemState {
	return ItemState(l.interp.State().Value)
}

// stop shuts the interpreter down.
func (l *lifecycle) stop() {
	l.interp.Stop()
}
