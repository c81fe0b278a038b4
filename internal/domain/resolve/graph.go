package resolve

// graph is the induced dependency subgraph of one expansion. Nodes carry
// the rank assigned during expansion; ranks break ties in the
// topological order so plans are deterministic and follow the caller's
// selection order.
type graph struct {
	nodes      map[string]int      // id -> rank
	dependsOn  map[string][]string // id -> dependency ids (edges into the node)
	dependedBy map[string][]string // id -> ids that depend on it
}

func newGraph() *graph {
	return &graph{
		nodes:      make(map[string]int),
		dependsOn:  make(map[string][]string),
		dependedBy: make(map[string][]string),
	}
}

// add inserts a node with its expansion rank and dependency edges.
// Edges to ids outside the graph are the caller's responsibility; the
// resolver only adds edges between expanded nodes.
func (g *graph) add(id string, rank int, deps []string) {
	g.nodes[id] = rank
	g.dependsOn[id] = deps
	for _, dep := range deps {
		g.dependedBy[dep] = append(g.dependedBy[dep], id)
	}
}

// topologicalSort returns the ids in dependency order: dependencies
// strictly before dependents, ties broken by ascending rank. A non-nil
// cycle slice is returned instead when the graph is cyclic.
func (g *graph) topologicalSort() (sorted []string, cycle []string) {
	inDegree := make(map[string]int, len(g.nodes))
	for id := range g.nodes {
		inDegree[id] = len(g.dependsOn[id])
	}

	ready := make([]string, 0)
	for id, degree := range inDegree {
		if degree == 0 {
			ready = append(ready, id)
		}
	}

	sorted = make([]string, 0, len(g.nodes))

	for len(ready) > 0 {
		// Pick the ready node with the smallest rank. The sets are small
		// (one catalog's worth of items), so a linear scan is fine.
		best := 0
		for i := 1; i < len(ready); i++ {
			if g.nodes[ready[i]] < g.nodes[ready[best]] {
				best = i
			}
		}
		id := ready[best]
		ready = append(ready[:best], ready[best+1:]...)

		sorted = append(sorted, id)

		for _, dependent := range g.dependedBy[id] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				ready = append(ready, dependent)
			}
		}
	}

	if len(sorted) != len(g.nodes) {
		return nil, g.findCycle()
	}
	return sorted, nil
}

// findCycle extracts the member ids of one cycle via depth-first search
// with a recursion stack. Called only when topologicalSort left nodes
// unprocessed, so a cycle is guaranteed to exist.
func (g *graph) findCycle() []string {
	visited := make(map[string]bool)
	onStack := make(map[string]bool)
	var cycle []string

	var visit func(id string, path []string) bool
	visit = func(id string, path []string) bool {
		if onStack[id] {
			// Found it: the cycle is the path suffix starting at id.
			for i, member := range path {
				if member == id {
					cycle = append(cycle, path[i:]...)
					return true
				}
			}
			return true
		}
		if visited[id] {
			return false
		}
		visited[id] = true
		onStack[id] = true

		for _, dep := range g.dependsOn[id] {
			if _, ok := g.nodes[dep]; !ok {
				continue
			}
			if visit(dep, append(path, id)) {
				return true
			}
		}

		onStack[id] = false
		return false
	}

	for id := range g.nodes {
		if !visited[id] && visit(id, nil) {
			break
		}
	}
	return cycle
}
