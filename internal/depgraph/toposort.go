package depgraph

import (
	"fmt"
	"sort"
)

// ErrCycle is the CycleError of spec.md §7: the graph still has a
// cycle after restricting to the requested edge set.
type ErrCycle struct {
	Remaining []string
}

func (e *ErrCycle) Error() string {
	return fmt.Sprintf("depgraph: cycle among %d node(s) after topological restriction", len(e.Remaining))
}

// TopoSortKahn returns a dependency-first order of g's nodes (a node
// appears only after every node it points to), using Kahn's algorithm
// over the edges selected by include. Ties are broken by ascending
// node id for determinism. Returns ErrCycle if a cycle survives.
func TopoSortKahn(g *Graph, include func(p *Polarity) bool) ([]int, error) {
	n := g.Len()
	indegree := make([]int, n)
	// Build the reverse adjacency (v -> u for every u->v edge) so that
	// Kahn's algorithm naturally peels off nodes with no remaining
	// dependees first, i.e. emits dependees before dependers.
	revAdj := make([][]int, n)
	for u := 0; u < n; u++ {
		for v, p := range g.Edges(u) {
			if !include(p) {
				continue
			}
			revAdj[v] = append(revAdj[v], u)
			indegree[u]++
		}
	}
	for u := range revAdj {
		sort.Ints(revAdj[u])
	}

	var queue []int
	for u := 0; u < n; u++ {
		if indegree[u] == 0 {
			queue = append(queue, u)
		}
	}
	sort.Ints(queue)

	var order []int
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		order = append(order, u)
		next := make([]int, 0, len(revAdj[u]))
		for _, w := range revAdj[u] {
			indegree[w]--
			if indegree[w] == 0 {
				next = append(next, w)
			}
		}
		sort.Ints(next)
		queue = append(queue, next...)
		sort.Ints(queue)
	}

	if len(order) != n {
		seen := make(map[int]bool, len(order))
		for _, v := range order {
			seen[v] = true
		}
		var remaining []string
		for u := 0; u < n; u++ {
			if !seen[u] {
				remaining = append(remaining, g.Sig(u))
			}
		}
		return nil, &ErrCycle{Remaining: remaining}
	}
	return order, nil
}
