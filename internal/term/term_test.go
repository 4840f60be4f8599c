package term

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestGroundInvariant(t *testing.T) {
	t.Run("ground iff no variables", func(t *testing.T) {
		f, err := NewFunctional("p", Number(1), Variable{Name: "X"})
		require.NoError(t, err)
		assert.False(t, f.Ground())
		assert.Len(t, f.Vars(), 1)

		g, err := NewFunctional("p", Number(1), Number(2))
		require.NoError(t, err)
		assert.True(t, g.Ground())
		assert.Empty(t, g.Vars())
	})

	t.Run("ground term substitutes to itself under any substitution", func(t *testing.T) {
		sub := Singleton(VarID{Name: "X"}, Number(99))
		n := Number(7)
		assert.True(t, Equal(n, n.Substitute(sub)))
	})
}

func TestTotalOrder(t *testing.T) {
	sc, _ := NewSymbolicConstant("a")
	str := String("a")
	fn, _ := NewFunctional("f", Number(1))

	order := []Term{Infimum, Number(-5), Number(5), sc, str, fn, Supremum}
	for i := 0; i < len(order)-1; i++ {
		lt, err := Precedes(order[i], order[i+1])
		require.NoError(t, err)
		assert.True(t, lt, "expected %s < %s", order[i], order[i+1])
	}
}

func TestOrderUndefinedOnNonGround(t *testing.T) {
	_, err := Precedes(Variable{Name: "X"}, Number(1))
	require.Error(t, err)
}

func TestFunctionalOrderByArityThenName(t *testing.T) {
	a, _ := NewFunctional("b")
	b, _ := NewFunctional("a", Number(1))
	lt, err := Precedes(a, b) // arity 0 < arity 1 regardless of name
	require.NoError(t, err)
	assert.True(t, lt)
}

func TestSubstitutionCompositionLaw(t *testing.T) {
	// (s1 ∘ s2).Substitute(x) == s2.Substitute(s1.Substitute(x))  (§8.1)
	x := Variable{Name: "X"}
	s1 := Singleton(VarID{Name: "X"}, Variable{Name: "Y"})
	s2 := Singleton(VarID{Name: "Y"}, Number(42))

	composed := Compose(s1, s2)
	lhs := x.Substitute(composed)
	rhs := x.Substitute(s1).Substitute(s2)
	assert.True(t, Equal(lhs, rhs))
}

func TestSubstitutionCompositionLawProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		names := []string{"X", "Y", "Z"}
		pick := rapid.SampledFrom(names)
		x := Variable{Name: pick.Draw(rt, "x")}

		s1 := NewSubstitution()
		s2 := NewSubstitution()
		for _, n := range names {
			if rapid.Bool().Draw(rt, "bind1-"+n) {
				s1 = s1.Extend(VarID{Name: n}, Number(rapid.Int64Range(-5, 5).Draw(rt, "v1-"+n)))
			}
			if rapid.Bool().Draw(rt, "bind2-"+n) {
				s2 = s2.Extend(VarID{Name: n}, Number(rapid.Int64Range(-5, 5).Draw(rt, "v2-"+n)))
			}
		}
		composed := Compose(s1, s2)
		lhs := x.Substitute(composed)
		rhs := x.Substitute(s1).Substitute(s2)
		if !Equal(lhs, rhs) {
			rt.Fatalf("composition law violated for %v: lhs=%s rhs=%s", x, lhs, rhs)
		}
	})
}

func TestMergeConflict(t *testing.T) {
	s1 := Singleton(VarID{Name: "X"}, Number(1))
	s2 := Singleton(VarID{Name: "X"}, Number(2))
	_, err := Merge(s1, s2)
	require.Error(t, err)
	var conflict *ErrAssignmentConflict
	assert.ErrorAs(t, err, &conflict)
}

func TestMatchFunctional(t *testing.T) {
	pattern, _ := NewFunctional("p", Variable{Name: "X"}, Number(2))
	ground, _ := NewFunctional("p", Number(1), Number(2))

	sub, ok := Match(pattern, ground)
	require.True(t, ok)
	assert.True(t, Equal(Number(1), sub.Lookup(VarID{Name: "X"})))
}

func TestMatchArityMismatchFails(t *testing.T) {
	pattern, _ := NewFunctional("p", Variable{Name: "X"})
	ground, _ := NewFunctional("p", Number(1), Number(2))
	_, ok := Match(pattern, ground)
	assert.False(t, ok)
}

func TestArithSimplifyAndEval(t *testing.T) {
	expr := Add{L: Mul{L: Number(2), R: Number(3)}, R: Number(1)}
	n, err := Eval(expr)
	require.NoError(t, err)
	assert.Equal(t, Number(7), n)
}

func TestArithDivByZero(t *testing.T) {
	_, err := Eval(Div{L: Number(1), R: Number(0)})
	require.Error(t, err)
	assert.IsType(t, ErrDivByZero{}, err)
}

func TestReservedPrefixRejected(t *testing.T) {
	_, err := NewSymbolicConstant("αaux")
	require.Error(t, err)
}
