// Package statement implements the statement algebra of spec.md §3.5:
// normal/disjunctive/choice/constraint/NPP rules, their variable
// tables, aggregate/choice rewriting into epsilon/eta auxiliary rules,
// and reassembly after grounding.
package statement

import "github.com/aspgo/grounder/internal/term"

// VariableTable holds the fresh-name counters for anonymous and
// arithmetic-placeholder variables, scoped to a single statement (§9
// design note: "keep them per-VariableTable, scoped to a single
// statement; never process-wide").
type VariableTable struct {
	anonSeq   int
	arithSeq  int
}

// NewVariableTable returns an empty table.
func NewVariableTable() *VariableTable { return &VariableTable{} }

// FreshAnon mints a new AnonVariable distinct from every other anon
// variable minted by this table.
func (vt *VariableTable) FreshAnon() term.AnonVariable {
	vt.anonSeq++
	return term.AnonVariable{ID: vt.anonSeq}
}

// FreshArithPlaceholder mints a new ArithPlaceholderVariable wrapping
// original, distinct from every other placeholder minted by this
// table (§4.3).
func (vt *VariableTable) FreshArithPlaceholder(original term.Term) term.ArithPlaceholderVariable {
	vt.arithSeq++
	return term.ArithPlaceholderVariable{ID: vt.arithSeq, Original: original}
}
