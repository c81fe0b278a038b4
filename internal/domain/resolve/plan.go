package resolve

// ExecutionPlan is the ordered, duplicate-free sequence of item ids
// scheduled for one run: dependencies before dependents, ties broken by
// original selection order. Plans are created fresh per run.
type ExecutionPlan struct {
	ids      []string
	pulledBy map[string]string // dep id -> first item that pulled it in; "" if selected
}

// Len returns the number of scheduled ids.
func (p *ExecutionPlan) Len() int {
	return len(p.ids)
}

// IsEmpty returns true if nothing is scheduled.
func (p *ExecutionPlan) IsEmpty() bool {
	return len(p.ids) == 0
}

// IDs returns the scheduled ids in execution order.
func (p *ExecutionPlan) IDs() []string {
	out := make([]string, len(p.ids))
	copy(out, p.ids)
	return out
}

// Contains reports whether id is scheduled.
func (p *ExecutionPlan) Contains(id string) bool {
	_, ok := p.pulledBy[id]
	return ok
}

// PulledInBy returns the id of the item whose dependency list first
// pulled id into the plan, or "" if the caller selected it directly.
func (p *ExecutionPlan) PulledInBy(id string) string {
	return p.pulledBy[id]
}
