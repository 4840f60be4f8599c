package propagate

import (
	"testing"

	"github.com/aspgo/grounder/internal/literal"
	"github.com/aspgo/grounder/internal/statement"
	"github.com/aspgo/grounder/internal/term"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkAggRewrite(t *testing.T, fn literal.AggFunc, nElems int) *statement.AggregateRewrite {
	t.Helper()
	elems := make([]literal.AggregateElement, nElems)
	for i := range elems {
		elems[i] = literal.AggregateElement{Head: []term.Term{term.Number(i + 1)}}
	}
	guard := &literal.Guard{Op: literal.Geq, Bound: term.Number(2)}
	agg, err := literal.NewAggregate(fn, elems, nil, guard, false)
	require.NoError(t, err)

	seq := &statement.RefSeq{}
	body, rewrites, err := statement.RewriteAggregates([]literal.Literal{agg}, map[term.VarID]struct{}{}, seq, statement.NewVariableTable())
	require.NoError(t, err)
	require.Len(t, body, 1)
	require.Len(t, rewrites, 1)
	return rewrites[0]
}

func elementLiteral(rewrite *statement.AggregateRewrite, id int) *literal.Element {
	eta := rewrite.Etas[id].Head.(*literal.Element)
	el, err := literal.NewElement(literal.AuxAggregate, rewrite.K, id, eta.LocalVars, rewrite.GlobVars, eta.AssignmentTerms)
	if err != nil {
		panic(err)
	}
	return el
}

func TestPropagateCountBoundsSatisfyGuard(t *testing.T) {
	rewrite := mkAggRewrite(t, literal.Count, 3)
	possible := []literal.Literal{
		elementLiteral(rewrite, 0),
		elementLiteral(rewrite, 1),
	}
	p := New([]*statement.AggregateRewrite{rewrite}, nil)
	phs := p.Propagate(nil, possible)
	require.Len(t, phs, 1)
	assert.Equal(t, rewrite.K, phs[0].RefID)
}

func TestPropagateCountBelowGuardYieldsNothing(t *testing.T) {
	rewrite := mkAggRewrite(t, literal.Count, 3)
	possible := []literal.Literal{elementLiteral(rewrite, 0)}
	p := New([]*statement.AggregateRewrite{rewrite}, nil)
	phs := p.Propagate(nil, possible)
	assert.Empty(t, phs)
}

func TestPropagateSumUsesElementWeights(t *testing.T) {
	rewrite := mkAggRewrite(t, literal.Sum, 3) // weights 1,2,3
	possible := []literal.Literal{
		elementLiteral(rewrite, 0), // weight 1
		elementLiteral(rewrite, 2), // weight 3
	}
	p := New([]*statement.AggregateRewrite{rewrite}, nil)
	phs := p.Propagate(nil, possible) // sum in [0,4], guard >=2 possible
	require.Len(t, phs, 1)
}

func TestAssembleAggregatesReconstructsElements(t *testing.T) {
	rewrite := mkAggRewrite(t, literal.Count, 2)
	possible := []literal.Literal{elementLiteral(rewrite, 0), elementLiteral(rewrite, 1)}
	aggs := AssembleAggregates(rewrite, nil, possible)
	require.Len(t, aggs, 1)
	agg := aggs[0].(*literal.Aggregate)
	assert.Len(t, agg.Elements, 2)
}
