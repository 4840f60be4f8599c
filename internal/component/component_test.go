package component

import (
	"testing"

	"github.com/aspgo/grounder/internal/literal"
	"github.com/aspgo/grounder/internal/statement"
	"github.com/aspgo/grounder/internal/term"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func v(name string) term.Variable { return term.Variable{Name: name} }

func mustNormal(t *testing.T, head *literal.Predicate, body []literal.Literal) *statement.NormalRule {
	t.Helper()
	r, err := statement.NewNormalRule(head, body, nil)
	require.NoError(t, err)
	return r
}

func TestSequenceStratifiesAcyclicProgram(t *testing.T) {
	// base(1). derived(X) :- base(X).
	base := mustNormal(t, literal.NewPredicate("base", false, false, term.Number(1)), nil)
	derived := mustNormal(t, literal.NewPredicate("derived", false, false, v("X")),
		[]literal.Literal{literal.NewPredicate("base", false, false, v("X"))})

	comps := Sequence([]statement.Statement{base, derived})
	require.Len(t, comps, 2)
	for _, c := range comps {
		assert.True(t, c.Stratified)
	}
	// base's component must precede derived's (dependees first).
	baseIdx, derivedIdx := -1, -1
	for i, c := range comps {
		if c.Statements[0].(*statement.NormalRule).Head.Name == "base" {
			baseIdx = i
		}
		if c.Statements[0].(*statement.NormalRule).Head.Name == "derived" {
			derivedIdx = i
		}
	}
	assert.Less(t, baseIdx, derivedIdx)
}

func TestSequenceMarksNegativeSelfLoopUnstratified(t *testing.T) {
	// p(X) :- q(X), not p(X).
	p := mustNormal(t, literal.NewPredicate("p", false, false, v("X")),
		[]literal.Literal{
			literal.NewPredicate("q", false, false, v("X")),
			literal.NewPredicate("p", true, false, v("X")),
		})
	comps := Sequence([]statement.Statement{p})
	require.Len(t, comps, 1)
	assert.False(t, comps[0].Stratified)
}

func TestSequencePropagatesUnstratifiedTransitively(t *testing.T) {
	// p(X) :- q(X), not p(X).       -- unstratified
	// r(X) :- p(X).                 -- depends on an unstratified component
	p := mustNormal(t, literal.NewPredicate("p", false, false, v("X")),
		[]literal.Literal{
			literal.NewPredicate("q", false, false, v("X")),
			literal.NewPredicate("p", true, false, v("X")),
		})
	r := mustNormal(t, literal.NewPredicate("r", false, false, v("X")),
		[]literal.Literal{literal.NewPredicate("p", false, false, v("X"))})

	comps := Sequence([]statement.Statement{p, r})
	require.Len(t, comps, 2)
	for _, c := range comps {
		assert.False(t, c.Stratified)
	}
}

func TestRefineOrdersBaseRuleBeforeRecursiveRule(t *testing.T) {
	// reach(X,Y) :- edge(X,Y).
	// reach(X,Z) :- edge(X,Y), reach(Y,Z).
	r1 := mustNormal(t, literal.NewPredicate("reach", false, false, v("X"), v("Y")),
		[]literal.Literal{literal.NewPredicate("edge", false, false, v("X"), v("Y"))})
	r2 := mustNormal(t, literal.NewPredicate("reach", false, false, v("X"), v("Z")),
		[]literal.Literal{
			literal.NewPredicate("edge", false, false, v("X"), v("Y")),
			literal.NewPredicate("reach", false, false, v("Y"), v("Z")),
		})

	comps := Sequence([]statement.Statement{r1, r2})
	require.Len(t, comps, 1)
	refinements, err := comps[0].Refine()
	require.NoError(t, err)
	// r2 depends positively on r1 but not the other way round, so each
	// statement is its own unit, r1 first.
	require.Len(t, refinements, 2)
	assert.Equal(t, []statement.Statement{r1}, refinements[0].Statements)
	assert.Equal(t, []statement.Statement{r2}, refinements[1].Statements)
}

func TestRefineSingleStatementIsItsOwnUnit(t *testing.T) {
	base := mustNormal(t, literal.NewPredicate("base", false, false, term.Number(1)), nil)
	comps := Sequence([]statement.Statement{base})
	refinements, err := comps[0].Refine()
	require.NoError(t, err)
	require.Len(t, refinements, 1)
	assert.Len(t, refinements[0].Statements, 1)
}
