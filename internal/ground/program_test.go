package ground

import (
	"testing"

	"github.com/aspgo/grounder/internal/literal"
	"github.com/aspgo/grounder/internal/statement"
	"github.com/aspgo/grounder/internal/term"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func v(name string) term.Variable { return term.Variable{Name: name} }

func fact(t *testing.T, name string, terms ...term.Term) *statement.NormalRule {
	t.Helper()
	r, err := statement.NewNormalRule(literal.NewPredicate(name, false, false, terms...), nil, nil)
	require.NoError(t, err)
	return r
}

func hasHead(stmts []statement.Statement, name string, terms ...term.Term) bool {
	for _, s := range stmts {
		for _, h := range s.HeadPredicates() {
			if h.Name != name || len(h.Terms) != len(terms) {
				continue
			}
			match := true
			for i, tm := range terms {
				if h.Terms[i].String() != tm.String() {
					match = false
					break
				}
			}
			if match {
				return true
			}
		}
	}
	return false
}

// S1. Minimal stratified: u(1). u(2). v(2). v(3).
// p(X) :- not q(X), u(X). q(X) :- not p(X), v(X).
// x :- not p(1). y :- not q(3).
func TestGroundMinimalStratified(t *testing.T) {
	u1 := fact(t, "u", term.Number(1))
	u2 := fact(t, "u", term.Number(2))
	v2 := fact(t, "v", term.Number(2))
	v3 := fact(t, "v", term.Number(3))

	pHead := literal.NewPredicate("p", false, false, v("X"))
	pBody := []literal.Literal{
		literal.NewPredicate("q", true, false, v("X")),
		literal.NewPredicate("u", false, false, v("X")),
	}
	p, err := statement.NewNormalRule(pHead, pBody, nil)
	require.NoError(t, err)

	qHead := literal.NewPredicate("q", false, false, v("X"))
	qBody := []literal.Literal{
		literal.NewPredicate("p", true, false, v("X")),
		literal.NewPredicate("v", false, false, v("X")),
	}
	q, err := statement.NewNormalRule(qHead, qBody, nil)
	require.NoError(t, err)

	xHead := literal.NewPredicate("x", false, false)
	x, err := statement.NewNormalRule(xHead, []literal.Literal{literal.NewPredicate("p", true, false, term.Number(1))}, nil)
	require.NoError(t, err)

	yHead := literal.NewPredicate("y", false, false)
	y, err := statement.NewNormalRule(yHead, []literal.Literal{literal.NewPredicate("q", true, false, term.Number(3))}, nil)
	require.NoError(t, err)

	res, err := Ground([]statement.Statement{u1, u2, v2, v3, p, q, x, y}, nil)
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)
	out := res.Statements

	for _, want := range [][2]interface{}{{"u", term.Number(1)}, {"u", term.Number(2)}, {"v", term.Number(2)}, {"v", term.Number(3)}} {
		assert.True(t, hasHead(out, want[0].(string), want[1].(term.Number)), "missing fact %v", want)
	}
	assert.True(t, hasHead(out, "p", term.Number(2)), "p(2) should be possible")
	assert.True(t, hasHead(out, "q", term.Number(2)), "q(2) should be possible")
	assert.True(t, hasHead(out, "q", term.Number(3)), "q(3) should be possible")
}

// S2. Arithmetic guard: p(1). p(2). p(3). q(X) :- p(X), X*2 = 4.
// Expected ground: q(2) only; X∈{1,3} discarded by arithmetic validity.
func TestGroundArithmeticGuard(t *testing.T) {
	p1 := fact(t, "p", term.Number(1))
	p2 := fact(t, "p", term.Number(2))
	p3 := fact(t, "p", term.Number(3))

	qHead := literal.NewPredicate("q", false, false, v("X"))
	doubled := term.Mul{L: v("X"), R: term.Number(2)}
	qBody := []literal.Literal{
		literal.NewPredicate("p", false, false, v("X")),
		literal.NewBuiltin(literal.Eq, doubled, term.Number(4)),
	}
	q, err := statement.NewNormalRule(qHead, qBody, nil)
	require.NoError(t, err)

	res, err := Ground([]statement.Statement{p1, p2, p3, q}, nil)
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)
	out := res.Statements

	assert.True(t, hasHead(out, "q", term.Number(2)))
	assert.False(t, hasHead(out, "q", term.Number(1)))
	assert.False(t, hasHead(out, "q", term.Number(3)))
}

// S3. Count aggregate: a. b. p(1). p(2). ok :- 2 <= #count{X:p(X)}.
func TestGroundCountAggregate(t *testing.T) {
	a := fact(t, "a")
	b := fact(t, "b")
	p1 := fact(t, "p", term.Number(1))
	p2 := fact(t, "p", term.Number(2))

	elem := literal.AggregateElement{
		Head: []term.Term{v("X")},
		Body: []literal.Literal{literal.NewPredicate("p", false, false, v("X"))},
	}
	guard := &literal.Guard{Op: literal.Leq, Bound: term.Number(2)}
	agg, err := literal.NewAggregate(literal.Count, []literal.AggregateElement{elem}, guard, nil, false)
	require.NoError(t, err)

	okHead := literal.NewPredicate("ok", false, false)
	ok, err := statement.NewNormalRule(okHead, []literal.Literal{agg}, nil)
	require.NoError(t, err)

	res, err := Ground([]statement.Statement{a, b, p1, p2, ok}, nil)
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)

	assert.True(t, hasHead(res.Statements, "ok"))
	for _, s := range res.Statements {
		assert.True(t, s.Ground(), "every statement in the ground program must be ground: %s", s)
	}
}

func TestGroundConstraintUnsatisfiableWarning(t *testing.T) {
	a := fact(t, "a")
	c, err := statement.NewConstraint([]literal.Literal{literal.NewPredicate("a", false, false)}, nil)
	require.NoError(t, err)

	res, err := Ground([]statement.Statement{a, c}, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Warnings)
}
