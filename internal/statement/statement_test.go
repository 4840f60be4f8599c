package statement

import (
	"testing"

	"github.com/aspgo/grounder/internal/literal"
	"github.com/aspgo/grounder/internal/term"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func v(name string) term.Variable { return term.Variable{Name: name} }

func TestNormalRuleSafety(t *testing.T) {
	// p(X) :- q(X).
	head := literal.NewPredicate("p", false, false, v("X"))
	body := []literal.Literal{literal.NewPredicate("q", false, false, v("X"))}
	r, err := NewNormalRule(head, body, nil)
	require.NoError(t, err)
	assert.NoError(t, r.Safe())
	assert.Equal(t, "p(X) :- q(X).", r.String())
}

func TestNormalRuleUnsafe(t *testing.T) {
	// p(X) :- not q(X).
	head := literal.NewPredicate("p", false, false, v("X"))
	body := []literal.Literal{literal.NewPredicate("q", true, false, v("X"))}
	r, err := NewNormalRule(head, body, nil)
	require.NoError(t, err)
	assert.Error(t, r.Safe())
}

func TestNormalRuleSafetyCached(t *testing.T) {
	head := literal.NewPredicate("p", false, false, v("X"))
	body := []literal.Literal{literal.NewPredicate("q", true, false, v("X"))}
	r, err := NewNormalRule(head, body, nil)
	require.NoError(t, err)
	err1 := r.Safe()
	err2 := r.Safe()
	require.Error(t, err1)
	assert.Same(t, err1, err2)
}

func TestNormalRuleArithReplacement(t *testing.T) {
	// p(X+1) :- q(X).
	sum := term.Add{L: v("X"), R: term.Number(1)}
	head := literal.NewPredicate("p", false, false, sum)
	body := []literal.Literal{literal.NewPredicate("q", false, false, v("X"))}
	r, err := NewNormalRule(head, body, nil)
	require.NoError(t, err)
	_, ok := r.Head.Terms[0].(term.ArithPlaceholderVariable)
	assert.True(t, ok, "non-ground arithmetic subterm should become a placeholder")
}

func TestNormalRuleGroundArithSimplified(t *testing.T) {
	// p(1+1).
	sum := term.Add{L: term.Number(1), R: term.Number(1)}
	head := literal.NewPredicate("p", false, false, sum)
	r, err := NewNormalRule(head, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, term.Number(2), r.Head.Terms[0])
}

func TestDivisionByZeroErrors(t *testing.T) {
	div := term.Div{L: term.Number(1), R: term.Number(0)}
	head := literal.NewPredicate("p", false, false, div)
	_, err := NewNormalRule(head, nil, nil)
	assert.Error(t, err)
}

func TestDisjunctiveRuleNonDeterministicFalse(t *testing.T) {
	heads := []*literal.Predicate{
		literal.NewPredicate("p", false, false, v("X")),
		literal.NewPredicate("q", false, false, v("X")),
	}
	body := []literal.Literal{literal.NewPredicate("r", false, false, v("X"))}
	r, err := NewDisjunctiveRule(heads, body, nil)
	require.NoError(t, err)
	assert.False(t, r.NonDeterministic())
	assert.NoError(t, r.Safe())
	assert.ElementsMatch(t, []string{"p/1", "q/1"}, r.HeadSigs())
}

func TestConstraintHasNoHeads(t *testing.T) {
	body := []literal.Literal{literal.NewPredicate("r", false, false, v("X"))}
	c, err := NewConstraint(body, nil)
	require.NoError(t, err)
	assert.Empty(t, c.HeadPredicates())
	assert.Empty(t, c.HeadSigs())
	assert.Equal(t, ":- r(X).", c.String())
}

func TestChoiceRuleNonDeterministicTrue(t *testing.T) {
	// 1 <= { p(X) : q(X) } <= 3 :- r(X).
	choice := &literal.Choice{
		Elements: []literal.ChoiceElement{
			{
				Atom:      literal.NewPredicate("p", false, false, v("X")),
				Condition: []literal.Literal{literal.NewPredicate("q", false, false, v("X"))},
			},
		},
		LGuard: &literal.Guard{Op: literal.Leq, Bound: term.Number(1)},
		RGuard: &literal.Guard{Op: literal.Leq, Bound: term.Number(3)},
	}
	body := []literal.Literal{literal.NewPredicate("r", false, false, v("X"))}
	cr, err := NewChoiceRule(choice, body, nil)
	require.NoError(t, err)
	assert.True(t, cr.NonDeterministic())
	assert.NoError(t, cr.Safe())
}

func TestChoiceRuleElementUnsafeWithoutCondition(t *testing.T) {
	// { p(X,Y) } :- r(X). with Y appearing only in the element, unbound.
	choice := &literal.Choice{
		Elements: []literal.ChoiceElement{
			{Atom: literal.NewPredicate("p", false, false, v("X"), v("Y"))},
		},
		RGuard: &literal.Guard{Op: literal.Leq, Bound: term.Number(1)},
	}
	body := []literal.Literal{literal.NewPredicate("r", false, false, v("X"))}
	cr, err := NewChoiceRule(choice, body, nil)
	require.NoError(t, err)
	assert.Error(t, cr.Safe())
}

func TestNPPDesugarsToChoiceGuardedByOne(t *testing.T) {
	decl := &NPPDeclaration{
		Name:     "digit",
		Args:     []term.Term{v("X")},
		Outcomes: []term.Term{term.Number(0), term.Number(1)},
	}
	body := []literal.Literal{literal.NewPredicate("pixel", false, false, v("X"))}
	cr, err := NewNPPRule(decl, body, nil)
	require.NoError(t, err)
	require.Len(t, cr.Choice.Elements, 2)
	require.NotNil(t, cr.Choice.LGuard)
	require.NotNil(t, cr.Choice.RGuard)
	assert.Equal(t, term.Number(1), cr.Choice.LGuard.Bound)
	assert.Equal(t, term.Number(1), cr.Choice.RGuard.Bound)
	assert.Equal(t, "digit", cr.Choice.Elements[0].Atom.Name)
	assert.Len(t, cr.Choice.Elements[0].Atom.Terms, 2)
}

func TestRewriteAggregatesReplacesWithPlaceholder(t *testing.T) {
	// total(S) :- #sum{ W,I : w(I,W) } = S.
	elem := literal.AggregateElement{
		Head: []term.Term{v("W"), v("I")},
		Body: []literal.Literal{literal.NewPredicate("w", false, false, v("I"), v("W"))},
	}
	agg, err := literal.NewAggregate(literal.Sum, []literal.AggregateElement{elem}, nil,
		&literal.Guard{Op: literal.Eq, Bound: v("S")}, false)
	require.NoError(t, err)

	head := literal.NewPredicate("total", false, false, v("S"))
	body := []literal.Literal{agg}
	vt := NewVariableTable()
	seq := &RefSeq{}

	ruleGlobals := RuleGlobals(head.Vars(), body)
	newBody, rewrites, err := RewriteAggregates(body, ruleGlobals, seq, vt)
	require.NoError(t, err)
	require.Len(t, rewrites, 1)
	require.Len(t, newBody, 1)

	ph, ok := newBody[0].(*literal.Placeholder)
	require.True(t, ok)
	assert.Equal(t, 1, ph.RefID)

	rw := rewrites[0]
	assert.Len(t, rw.Etas, 1)
	assert.NotNil(t, rw.Epsilon)
	// The eta rule's body is the element's own body (w(I,W)); no
	// non-aggregate body literals here since total(S) :- agg. has none.
	assert.Equal(t, elem.Body, rw.Etas[0].Body())
}

func TestRewriteAggregatesEpsilonBuildsBaseGuard(t *testing.T) {
	elem := literal.AggregateElement{
		Body: []literal.Literal{literal.NewPredicate("e", false, false, v("I"))},
	}
	agg, err := literal.NewAggregate(literal.Count, []literal.AggregateElement{elem}, nil,
		&literal.Guard{Op: literal.Geq, Bound: term.Number(2)}, false)
	require.NoError(t, err)
	body := []literal.Literal{agg, literal.NewPredicate("active", false, false, v("X"))}
	vt := NewVariableTable()
	seq := &RefSeq{}
	newBody, rewrites, err := RewriteAggregates(body, RuleGlobals(nil, body), seq, vt)
	require.NoError(t, err)
	require.Len(t, rewrites, 1)
	require.Len(t, newBody, 2)

	eps := rewrites[0].Epsilon
	require.Len(t, eps.Body(), 2) // base-value guard + the active(X) literal.
	bi, ok := eps.Body()[0].(*literal.Builtin)
	require.True(t, ok)
	assert.Equal(t, term.Number(0), bi.L) // count's base value.
}

func TestRewriteChoiceProducesPlaceholderHeadedRule(t *testing.T) {
	choice := &literal.Choice{
		Elements: []literal.ChoiceElement{
			{Atom: literal.NewPredicate("p", false, false, v("X"))},
		},
		RGuard: &literal.Guard{Op: literal.Leq, Bound: term.Number(1)},
	}
	body := []literal.Literal{literal.NewPredicate("r", false, false, v("X"))}
	cr, err := NewChoiceRule(choice, body, nil)
	require.NoError(t, err)

	seq := &RefSeq{}
	replacement, rewrite, err := RewriteChoice(cr, seq)
	require.NoError(t, err)
	assert.Equal(t, body, replacement.Body())
	ph, ok := replacement.Head.(*literal.Placeholder)
	require.True(t, ok)
	assert.Equal(t, literal.AuxChoice, ph.Kind)
	require.Len(t, rewrite.Etas, 1)
}

func TestSubstituteProducesNewStatement(t *testing.T) {
	head := literal.NewPredicate("p", false, false, v("X"))
	body := []literal.Literal{literal.NewPredicate("q", false, false, v("X"))}
	r, err := NewNormalRule(head, body, nil)
	require.NoError(t, err)

	s := term.Singleton(term.VarID{Name: "X"}, term.Number(5))
	substituted := r.Substitute(s)
	assert.True(t, substituted.Ground())
	assert.False(t, r.Ground(), "original statement must be unaffected")
}
