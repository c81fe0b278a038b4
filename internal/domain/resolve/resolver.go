package resolve

import (
	"github.com/macsnap/macsnap/internal/domain/catalog"
)

// Resolver turns a selection of item ids into an ExecutionPlan.
// It is a pure function of its inputs: no side effects, no I/O.
type Resolver struct{}

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// ValidateReferences checks that every dependency of every catalog item
// resolves to an existing item. Returns a *DependencyError naming every
// dangling reference. Run once at load time; Resolve enforces the same
// rule again for the selection it is given.
func ValidateReferences(cat *catalog.Catalog) error {
	missing := make([]MissingRef, 0)
	for _, item := range cat.Items() {
		for _, dep := range item.Dependencies {
			if _, ok := cat.Get(dep); !ok {
				missing = append(missing, MissingRef{ItemID: item.ID, DependencyID: dep})
			}
		}
	}
	if len(missing) > 0 {
		return &DependencyError{Kind: KindUnknownReference, Missing: missing}
	}
	return nil
}

// Resolve expands selected to the transitive closure of its dependencies
// and returns the topological execution order. A dependency the caller
// did not pick is still scheduled. When several items are simultaneously
// schedulable the original selection order wins, with pulled-in
// dependencies following in discovery order, so resolving the same
// selection over an unchanged catalog always yields an identical plan.
func (r *Resolver) Resolve(cat *catalog.Catalog, selected []string) (*ExecutionPlan, error) {
	ranks := make(map[string]int)
	pulledBy := make(map[string]string)
	order := make([]string, 0, len(selected))
	missing := make([]MissingRef, 0)

	claim := func(id, referrer string) bool {
		if _, seen := ranks[id]; seen {
			return false
		}
		ranks[id] = len(order)
		pulledBy[id] = referrer
		order = append(order, id)
		return true
	}

	for _, id := range selected {
		if _, ok := cat.Get(id); !ok {
			missing = append(missing, MissingRef{DependencyID: id})
			continue
		}
		claim(id, "")
	}

	// Breadth-first expansion in discovery order keeps ranks stable.
	for cursor := 0; cursor < len(order); cursor++ {
		item, _ := cat.Get(order[cursor])
		for _, dep := range item.Dependencies {
			if _, ok := cat.Get(dep); !ok {
				missing = append(missing, MissingRef{ItemID: item.ID, DependencyID: dep})
				continue
			}
			claim(dep, item.ID)
		}
	}

	if len(missing) > 0 {
		return nil, &DependencyError{Kind: KindUnknownReference, Missing: missing}
	}

	g := newGraph()
	for _, id := range order {
		item, _ := cat.Get(id)
		g.add(id, ranks[id], item.Dependencies)
	}

	sorted, cycle := g.topologicalSort()
	if cycle != nil {
		return nil, &DependencyError{Kind: KindCycle, Cycle: cycle}
	}

	return &ExecutionPlan{ids: sorted, pulledBy: pulledBy}, nil
}
