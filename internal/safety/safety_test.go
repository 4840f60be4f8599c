package safety

import (
	"testing"

	"github.com/aspgo/grounder/internal/literal"
	"github.com/aspgo/grounder/internal/term"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vx(name string) term.VarID { return term.VarID{Name: name} }

func TestPositivePredicateSafesAllVars(t *testing.T) {
	p := literal.NewPredicate("p", false, false, term.Variable{Name: "X"})
	tr := BodySafety([]literal.Literal{p}, nil)
	assert.True(t, tr.IsFullySafe(map[term.VarID]struct{}{vx("X"): {}}))
}

func TestNAFPredicateUnsafe(t *testing.T) {
	p := literal.NewPredicate("p", true, false, term.Variable{Name: "X"})
	tr := BodySafety([]literal.Literal{p}, nil)
	err := Check(tr, map[term.VarID]struct{}{vx("X"): {}})
	require.Error(t, err)
}

func TestEqualityPropagatesSafety(t *testing.T) {
	// p(X), X = Y  =>  Y becomes safe via equality.
	p := literal.NewPredicate("p", false, false, term.Variable{Name: "X"})
	eqLit := literal.NewBuiltin(literal.Eq, term.Variable{Name: "X"}, term.Variable{Name: "Y"})
	tr := BodySafety([]literal.Literal{p, eqLit}, nil)
	globals := map[term.VarID]struct{}{vx("X"): {}, vx("Y"): {}}
	assert.NoError(t, Check(tr, globals))
}

func TestUnsafeRejectsUngroundedFact(t *testing.T) {
	// p(X). with no body literal at all => X unsafe (S5 scenario).
	tr := Empty()
	err := Check(tr, map[term.VarID]struct{}{vx("X"): {}})
	require.Error(t, err)
	var serr *Error
	require.ErrorAs(t, err, &serr)
	assert.Contains(t, serr.Unsafe, vx("X"))
}

func TestInequalityMarksUnsafe(t *testing.T) {
	lit := literal.NewBuiltin(literal.Neq, term.Variable{Name: "X"}, term.Number(1))
	tr := BodySafety([]literal.Literal{lit}, nil)
	err := Check(tr, map[term.VarID]struct{}{vx("X"): {}})
	require.Error(t, err)
}

func TestSelfDependentRuleDropped(t *testing.T) {
	// X = X style self-loop must not fabricate safety.
	tr := RuleTriplet(vx("X"), map[term.VarID]struct{}{vx("X"): {}})
	closed := Closure(tr)
	assert.Empty(t, closed.Safe)
	assert.Empty(t, closed.Rules)
}
