// Package depgraph builds the rule dependency graph of spec.md §3.9 —
// one node per predicate signature, edges from a rule's consequents to
// the predicates its body depends on — and computes its strongly
// connected components via Tarjan's algorithm, the same construction
// gitrdm-gokando's SLG engine uses for its own negative-cycle
// detection, generalized here to predicate dependencies instead of
// subgoal call dependencies.
package depgraph

import (
	"sort"

	"github.com/bits-and-blooms/bitset"
	"github.com/google/uuid"
)

// Polarity records whether an edge u->v (u depends on v) is ever
// reached positively, under default negation, or both.
type Polarity struct {
	Pos bool
	Neg bool
}

// Graph is a directed multigraph over predicate signatures (name/arity
// strings, or an auxiliary literal's AsPredicateSig()).
type Graph struct {
	nodes []string
	uuids []uuid.UUID
	index map[string]int
	adj   []map[int]*Polarity
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{index: map[string]int{}}
}

func (g *Graph) id(sig string) int {
	if i, ok := g.index[sig]; ok {
		return i
	}
	i := len(g.nodes)
	g.nodes = append(g.nodes, sig)
	g.uuids = append(g.uuids, uuid.New())
	g.index[sig] = i
	g.adj = append(g.adj, map[int]*Polarity{})
	return i
}

// UUID returns the stable opaque identifier assigned to node id when
// it was first registered — a value-independent key a caller (e.g.
// obslog) can log or compare without pinning to slice position.
func (g *Graph) UUID(id int) uuid.UUID { return g.uuids[id] }

// EnsureNode registers sig even if it never appears as the dependee of
// an edge — a statement's head predicate with a fact-only body, say.
func (g *Graph) EnsureNode(sig string) int { return g.id(sig) }

// AddEdge records that a rule headed by `from` depends on `to`, via a
// positive or negative (NAF) body occurrence.
func (g *Graph) AddEdge(from, to string, negative bool) {
	u, v := g.id(from), g.id(to)
	p, ok := g.adj[u][v]
	if !ok {
		p = &Polarity{}
		g.adj[u][v] = p
	}
	if negative {
		p.Neg = true
	} else {
		p.Pos = true
	}
}

// Sig returns the predicate signature a node id was registered under.
func (g *Graph) Sig(id int) string { return g.nodes[id] }

// Index returns the node id for sig, if it has been registered.
func (g *Graph) Index(sig string) (int, bool) {
	i, ok := g.index[sig]
	return i, ok
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// Edges returns u's outgoing edges as a map from neighbor id to
// polarity; iteration order is unspecified.
func (g *Graph) Edges(u int) map[int]*Polarity { return g.adj[u] }

// SCC is one strongly connected component of the graph.
type SCC struct {
	Members []int
	// Negative reports whether some edge strictly between two members
	// of this component is a NAF edge — the component is unstratified
	// on its own terms (§4.7; full stratification also checks
	// transitive dependency on another unstratified component, done by
	// internal/component).
	Negative bool
}

// Tarjan computes the graph's strongly connected components, in
// reverse topological order (a component's dependees are emitted
// before it) — mirroring gitrdm-gokando's computeUndefinedSCCs.
func (g *Graph) Tarjan() []SCC {
	n := g.Len()
	const unvisited = -1
	indices := make([]int, n)
	lowlink := make([]int, n)
	for i := range indices {
		indices[i] = unvisited
	}
	onStack := bitset.New(uint(n))
	var stack []int
	index := 0
	var sccs []SCC

	var strongConnect func(v int)
	strongConnect = func(v int) {
		indices[v] = index
		lowlink[v] = index
		index++
		stack = append(stack, v)
		onStack.Set(uint(v))

		neighbors := make([]int, 0, len(g.adj[v]))
		for w := range g.adj[v] {
			neighbors = append(neighbors, w)
		}
		sort.Ints(neighbors)

		for _, w := range neighbors {
			if indices[w] == unvisited {
				strongConnect(w)
				if lowlink[w] < lowlink[v] {
					lowlink[v] = lowlink[w]
				}
			} else if onStack.Test(uint(w)) {
				if indices[w] < lowlink[v] {
					lowlink[v] = indices[w]
				}
			}
		}

		if lowlink[v] == indices[v] {
			var comp []int
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack.Clear(uint(w))
				comp = append(comp, w)
				if w == v {
					break
				}
			}
			sccs = append(sccs, SCC{Members: comp, Negative: g.hasInternalNegativeEdge(comp)})
		}
	}

	for v := 0; v < n; v++ {
		if indices[v] == unvisited {
			strongConnect(v)
		}
	}
	return sccs
}

func (g *Graph) hasInternalNegativeEdge(comp []int) bool {
	member := make(map[int]bool, len(comp))
	for _, u := range comp {
		member[u] = true
	}
	for _, u := range comp {
		for v, p := range g.adj[u] {
			if member[v] && p.Neg {
				return true
			}
		}
	}
	return false
}
