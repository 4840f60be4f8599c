// Package component computes the rule dependency graph's strongly
// connected components and sequences them for grounding (spec.md §3.9,
// §4.7): an outer, dependees-first sequence of components, and within
// each component a further positive-edge-only refinement so that
// genuinely recursive statement groups ground together.
package component

import (
	"fmt"

	"github.com/aspgo/grounder/internal/depgraph"
	"github.com/aspgo/grounder/internal/literal"
	"github.com/aspgo/grounder/internal/obslog"
	"github.com/aspgo/grounder/internal/statement"
)

// auxSig is satisfied by literal.Base/Element/Placeholder.
type auxSig interface {
	AsPredicateSig() string
}

func literalSig(l literal.Literal) (sig string, negative bool, ok bool) {
	if p, isPred := l.(*literal.Predicate); isPred {
		return p.Sig(), p.NAF, true
	}
	if s, isAux := l.(auxSig); isAux {
		return s.AsPredicateSig(), false, true
	}
	return "", false, false
}

func constraintSig(i int) string { return fmt.Sprintf("#constraint:%d", i) }

func headSigsOf(i int, s statement.Statement) []string {
	heads := s.HeadSigs()
	if len(heads) == 0 {
		return []string{constraintSig(i)}
	}
	return heads
}

// BuildGraph constructs the predicate dependency graph (§3.9) for a
// set of statements already past aggregate/choice rewriting: one node
// per head predicate (or a synthetic node for a head-less Constraint),
// edges to every predicate its body depends on. A rule's own
// co-occurring heads (disjunction, choice elements) are linked to each
// other too, since grounding one head means grounding the whole rule.
func BuildGraph(stmts []statement.Statement) *depgraph.Graph {
	g := depgraph.New()
	for i, s := range stmts {
		heads := headSigsOf(i, s)
		for _, h := range heads {
			g.EnsureNode(h)
		}
		for a := range heads {
			for b := range heads {
				if a != b {
					g.AddEdge(heads[a], heads[b], false)
				}
			}
		}
		for _, l := range s.Body() {
			sig, neg, ok := literalSig(l)
			if !ok {
				continue
			}
			for _, h := range heads {
				g.AddEdge(h, sig, neg)
			}
		}
	}
	return g
}

// Component is one element of the outer sequence: a maximal group of
// statements whose head predicates are mutually (possibly negatively)
// recursive.
type Component struct {
	ID         int
	Statements []statement.Statement
	Stratified bool
}

// Sequence computes the outer component sequence (§4.7 "Outer").
// Tarjan's completion order already places dependees before
// dependers, so no separate reversal or topological sort is needed. A
// component is Stratified iff it has no negative edge strictly between
// two of its own members and every component it depends on is itself
// Stratified. Sequence logs to obslog.Nop(); SequenceLogged lets a
// caller thread its own invocation logger through.
func Sequence(stmts []statement.Statement) []*Component {
	return SequenceLogged(stmts, obslog.Nop())
}

// SequenceLogged is Sequence with stratification decisions reported
// to log (§4.2 log sites). log may be nil, in which case obslog.Nop()
// is used.
func SequenceLogged(stmts []statement.Statement, log *obslog.Logger) []*Component {
	if log == nil {
		log = obslog.Nop()
	}
	g := BuildGraph(stmts)
	sccs := g.Tarjan()
	cond := depgraph.Condense(g, sccs)

	stratified := make([]bool, len(sccs))
	for i := range sccs {
		strat := !sccs[i].Negative
		for j := range cond.Graph.Edges(i) {
			if !stratified[j] {
				strat = false
			}
		}
		stratified[i] = strat
	}

	components := make([]*Component, len(sccs))
	for ci := range sccs {
		components[ci] = &Component{ID: ci, Stratified: stratified[ci]}
		nodeUUID := ""
		if len(sccs[ci].Members) > 0 {
			nodeUUID = g.UUID(sccs[ci].Members[0]).String()
		}
		log.Stratification(ci, nodeUUID, stratified[ci], len(sccs[ci].Members))
	}
	for i, s := range stmts {
		sig := headSigsOf(i, s)[0]
		nodeID, ok := g.Index(sig)
		if !ok {
			continue
		}
		ci := cond.ComponentOf(nodeID)
		components[ci].Statements = append(components[ci].Statements, s)
	}

	out := make([]*Component, 0, len(components))
	for _, c := range components {
		if len(c.Statements) > 0 {
			out = append(out, c)
		}
	}
	return out
}

// Refinement is one inner sequencing unit (§4.7 "Inner"): a maximal
// group of a component's statements mutually dependent through
// positive edges alone.
type Refinement struct {
	Statements []statement.Statement
}

func stmtSig(i int) string { return fmt.Sprintf("#stmt:%d", i) }

// Refine computes a component's inner (refined) sequence: its
// statements restricted to positive intra-component edges, decomposed
// into finer SCCs so a statement group that is positively recursive
// even on its own stays together as one unit for the per-component
// fixpoint (§4.9) to resolve jointly. Because a condensation graph is
// always acyclic by construction, this can never itself discover an
// unresolvable cycle; the error return exists for symmetry with
// depgraph.TopoSortKahn and as a defensive invariant check.
func (c *Component) Refine() ([]*Refinement, error) {
	if len(c.Statements) <= 1 {
		return []*Refinement{{Statements: c.Statements}}, nil
	}

	headOwners := map[string][]int{}
	for i, s := range c.Statements {
		for _, h := range s.HeadSigs() {
			headOwners[h] = append(headOwners[h], i)
		}
	}

	g := depgraph.New()
	for i := range c.Statements {
		g.EnsureNode(stmtSig(i))
	}
	for i, s := range c.Statements {
		for _, l := range s.Body() {
			sig, neg, ok := literalSig(l)
			if !ok || neg {
				continue
			}
			for _, owner := range headOwners[sig] {
				if owner != i {
					g.AddEdge(stmtSig(i), stmtSig(owner), false)
				}
			}
		}
	}

	sccs := g.Tarjan()
	refinements := make([]*Refinement, len(sccs))
	for ri, comp := range sccs {
		group := make([]statement.Statement, len(comp.Members))
		for k, nodeID := range comp.Members {
			idx, err := stmtIndexFromSig(g.Sig(nodeID))
			if err != nil {
				return nil, err
			}
			group[k] = c.Statements[idx]
		}
		refinements[ri] = &Refinement{Statements: group}
	}
	return refinements, nil
}

func stmtIndexFromSig(sig string) (int, error) {
	var i int
	if _, err := fmt.Sscanf(sig, "#stmt:%d", &i); err != nil {
		return 0, fmt.Errorf("component: malformed statement node %q: %w", sig, err)
	}
	return i, nil
}
