package literal

import (
	"testing"

	"github.com/aspgo/grounder/internal/term"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinEqHoldsForEqualNumbers(t *testing.T) {
	b := NewBuiltin(Eq, term.Number(1), term.Number(1))
	ok, err := b.Holds()
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAggregateRequiresGuard(t *testing.T) {
	_, err := NewAggregate(Count, nil, nil, nil, false)
	require.ErrorIs(t, err, ErrNoGuard)

	g := &Guard{Op: Leq, Bound: term.Number(2)}
	agg, err := NewAggregate(Count, nil, nil, g, false)
	require.NoError(t, err)
	assert.Same(t, g, agg.RGuard)
}

func TestPlaceholderArityInvariant(t *testing.T) {
	_, err := NewPlaceholder(AuxAggregate, 1, []term.VarID{{Name: "X"}}, nil, false)
	require.Error(t, err)

	p, err := NewPlaceholder(AuxAggregate, 1, []term.VarID{{Name: "X"}}, []term.Term{term.Number(1)}, false)
	require.NoError(t, err)
	assert.Equal(t, "α1(1)", p.String())
}

func TestAggregateWeight(t *testing.T) {
	e := AggregateElement{Head: []term.Term{term.Number(3), term.Number(1)}}
	assert.Equal(t, term.Number(3), e.Weight())

	e2 := AggregateElement{Head: []term.Term{term.Variable{Name: "X"}}}
	assert.Equal(t, term.Number(0), e2.Weight())
}

func TestPredicatePositiveClearsNAF(t *testing.T) {
	p := NewPredicate("q", true, false, term.Number(1))
	pos := p.Positive()
	assert.False(t, pos.NAF)
	assert.Equal(t, "q/1", pos.Sig())
}
