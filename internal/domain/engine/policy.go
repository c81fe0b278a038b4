package engine

import "fmt"

// ReconfigurePolicy decides what a successful validate means for the
// configure phase. Item authors disagree on this: some validate real
// state and expect configure to be skipped too, others force validate to
// fail so configure reruns every time. The engine makes the choice an
// explicit, named policy instead of a silent default.
type ReconfigurePolicy string

const (
	// PolicySkipWhenSatisfied skips both install and configure when
	// validate exits 0. This is the default.
	PolicySkipWhenSatisfied ReconfigurePolicy = "skip-when-satisfied"
	// PolicyAlwaysReconfigure still runs configure when validate exits 0
	// (install remains skipped).
	PolicyAlwaysReconfigure ReconfigurePolicy = "always-reconfigure"
)

// ParseReconfigurePolicy converts a config/flag value into a policy.
func ParseReconfigurePolicy(s string) (ReconfigurePolicy, error) {
	switch ReconfigurePolicy(s) {
	case PolicySkipWhenSatisfied:
		return PolicySkipWhenSatisfied, nil
	case PolicyAlwaysReconfigure:
		return PolicyAlwaysReconfigure, nil
	case "":
		return PolicySkipWhenSatisfied, nil
	default:
		return "", fmt.Errorf("unknown reconfigure policy %q (valid: %s, %s)",
			s, PolicySkipWhenSatisfied, PolicyAlwaysReconfigure)
	}
}
