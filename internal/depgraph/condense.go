package depgraph

import "strconv"

// Condensation is the component graph obtained by contracting each SCC
// to a single node (§4.7).
type Condensation struct {
	// Components holds one SCC per component node, indexed by component id.
	Components []SCC
	// Graph is the contracted graph: node i corresponds to Components[i].
	Graph *Graph
	// owner maps an original node id to its component id.
	owner []int
}

// Condense builds the component graph from g's SCCs. An edge between
// two distinct components is negative if any underlying edge between
// their members is negative.
func Condense(g *Graph, sccs []SCC) *Condensation {
	owner := make([]int, g.Len())
	for ci, comp := range sccs {
		for _, v := range comp.Members {
			owner[v] = ci
		}
	}

	cg := New()
	for ci := range sccs {
		cg.EnsureNode(componentSig(ci))
	}
	for u := 0; u < g.Len(); u++ {
		for v, p := range g.Edges(u) {
			cu, cv := owner[u], owner[v]
			if cu == cv {
				continue
			}
			if p.Pos {
				cg.AddEdge(componentSig(cu), componentSig(cv), false)
			}
			if p.Neg {
				cg.AddEdge(componentSig(cu), componentSig(cv), true)
			}
		}
	}

	return &Condensation{Components: sccs, Graph: cg, owner: owner}
}

// ComponentOf returns the component id owning original node v.
func (c *Condensation) ComponentOf(v int) int { return c.owner[v] }

func componentSig(id int) string {
	// Component signatures never collide with predicate signatures
	// (which always contain a '/'): the index is prefixed with
	// "#component:" to form the node key in the contracted Graph.
	return "#component:" + strconv.Itoa(id)
}
