package depgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTarjanFindsSimpleCycle(t *testing.T) {
	g := New()
	g.AddEdge("a/1", "b/1", false)
	g.AddEdge("b/1", "a/1", false)
	g.AddEdge("a/1", "c/1", false)

	sccs := g.Tarjan()
	var cycle *SCC
	for i := range sccs {
		if len(sccs[i].Members) == 2 {
			cycle = &sccs[i]
		}
	}
	require.NotNil(t, cycle)
	assert.False(t, cycle.Negative)
}

func TestTarjanMarksNegativeCycle(t *testing.T) {
	g := New()
	g.AddEdge("a/1", "b/1", true)
	g.AddEdge("b/1", "a/1", false)

	sccs := g.Tarjan()
	var cycle *SCC
	for i := range sccs {
		if len(sccs[i].Members) == 2 {
			cycle = &sccs[i]
		}
	}
	require.NotNil(t, cycle)
	assert.True(t, cycle.Negative)
}

func TestTopoSortKahnOrdersDependeesFirst(t *testing.T) {
	g := New()
	g.AddEdge("p/1", "q/1", false) // p depends on q
	g.AddEdge("q/1", "r/1", false) // q depends on r

	order, err := TopoSortKahn(g, func(p *Polarity) bool { return true })
	require.NoError(t, err)
	require.Len(t, order, 3)

	pos := map[string]int{}
	for i, id := range order {
		pos[g.Sig(id)] = i
	}
	assert.Less(t, pos["r/1"], pos["q/1"])
	assert.Less(t, pos["q/1"], pos["p/1"])
}

func TestTopoSortKahnDetectsCycle(t *testing.T) {
	g := New()
	g.AddEdge("a/1", "b/1", false)
	g.AddEdge("b/1", "a/1", false)

	_, err := TopoSortKahn(g, func(p *Polarity) bool { return true })
	require.Error(t, err)
	var cerr *ErrCycle
	require.ErrorAs(t, err, &cerr)
}

func TestCondenseContractsSCCs(t *testing.T) {
	g := New()
	g.AddEdge("a/1", "b/1", false)
	g.AddEdge("b/1", "a/1", false)
	g.AddEdge("a/1", "c/1", false)

	sccs := g.Tarjan()
	cond := Condense(g, sccs)
	assert.Equal(t, len(sccs), cond.Graph.Len())

	aID, _ := g.Index("a/1")
	bID, _ := g.Index("b/1")
	assert.Equal(t, cond.ComponentOf(aID), cond.ComponentOf(bID))
}
