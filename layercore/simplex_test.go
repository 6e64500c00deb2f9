package layercore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"oss.terrastruct.com/layercore"
)

// layerFrom runs every stage up to (not including) the Pivoter, so tests can
// inspect the state RunSimplex starts from.
func layerFrom(t *testing.T, edges [][3]int) *layercore.Graph {
	t.Helper()

	g := layercore.NewGraph(1)
	max := 0
	for _, e := range edges {
		if e[0] > max {
			max = e[0]
		}
		if e[1] > max {
			max = e[1]
		}
	}
	for i := 0; i <= max; i++ {
		g.AddVertex()
	}
	for _, e := range edges {
		w := e[2]
		if w == 0 {
			w = 1
		}
		g.AddEdge(layercore.VertexID(e[0]), layercore.VertexID(e[1]), w)
	}

	assert.Nil(t, layercore.InitialRank(g))
	assert.Nil(t, layercore.MakeTight(g))
	layercore.InitLowLim(g)
	layercore.InitCutValues(g)
	return g
}

func assertNoNegativeCutValues(t *testing.T, g *layercore.Graph) {
	t.Helper()
	for _, e := range g.EdgeIDs() {
		if !g.IsTreeEdge(e) {
			continue
		}
		cv, ok := g.CutValue(e)
		assert.True(t, ok)
		assert.True(t, cv >= 0, "tree edge %d has negative cut value %d", e, cv)
	}
}

func assertFeasible(t *testing.T, g *layercore.Graph) {
	t.Helper()
	for _, e := range g.EdgeIDs() {
		assert.True(t, g.Slack(e) >= 0, "edge %d is infeasible with slack %d", e, g.Slack(e))
	}
}

func weightedLength(g *layercore.Graph) int {
	total := 0
	for _, e := range g.EdgeIDs() {
		tail, head := g.Endpoints(e)
		total += g.Weight(e) * (g.Rank(head) - g.Rank(tail))
	}
	return total
}

// 0=a 1=b 2=c 3=d 4=e 5=f 6=g 7=h, the Gansner et al. canonical example.
var gansnerExample = [][3]int{
	{0, 1, 0}, {1, 2, 0}, {2, 3, 0}, {3, 7, 0},
	{0, 4, 0}, {4, 6, 0}, {6, 7, 0},
	{0, 5, 0}, {5, 6, 0},
}

func TestRunSimplexGansnerExample(t *testing.T) {
	t.Parallel()

	g := layerFrom(t, gansnerExample)
	layercore.RunSimplex(g)

	assertNoNegativeCutValues(t, g)
	assertFeasible(t, g)
}

func TestRunSimplexChainIsAlreadyOptimal(t *testing.T) {
	t.Parallel()

	g := layerFrom(t, [][3]int{{0, 1, 0}, {1, 2, 0}, {2, 3, 0}})
	pivots := layercore.RunSimplex(g)

	assert.Equal(t, 0, pivots)
	assert.Equal(t, 0, g.Rank(0))
	assert.Equal(t, 1, g.Rank(1))
	assert.Equal(t, 2, g.Rank(2))
	assert.Equal(t, 3, g.Rank(3))
}

func TestRunSimplexWeightedLongEdgeMinimizesTotalLength(t *testing.T) {
	t.Parallel()

	// a->b, a->c, b->d, c->d, a->d(w=4).
	g := layerFrom(t, [][3]int{
		{0, 1, 1}, {0, 2, 1}, {1, 3, 1}, {2, 3, 1}, {0, 3, 4},
	})

	before := weightedLength(g)
	layercore.RunSimplex(g)

	assertNoNegativeCutValues(t, g)
	assertFeasible(t, g)
	assert.True(t, weightedLength(g) <= before)
}

func TestRunSimplexForcedPivot(t *testing.T) {
	t.Parallel()

	// a->b, b->c, c->d, a->e, e->d(w=2): initial longest-path ranking puts
	// a=0,b=1,c=2,d=3,e=1, so e->d has slack 1. MakeTight grows from a
	// across every zero-slack edge (a->b, b->c, c->d, a->e) and leaves e->d
	// as a non-tree edge. Its weight of 2 outweighs a->e, giving the tree
	// edge a->e a cut value of -1 and forcing a pivot that moves e to rank 2.
	g := layerFrom(t, [][3]int{
		{0, 1, 1}, {1, 2, 1}, {2, 3, 1}, {0, 4, 1}, {4, 3, 2},
	})

	var negativeBefore int
	for _, e := range g.EdgeIDs() {
		if g.IsTreeEdge(e) {
			if cv, _ := g.CutValue(e); cv < 0 {
				negativeBefore++
			}
		}
	}
	assert.True(t, negativeBefore >= 1, "fixture should start with at least one negative cut value")

	pivots := layercore.RunSimplex(g)
	assert.True(t, pivots >= 1)
	assertNoNegativeCutValues(t, g)
	assertFeasible(t, g)
}

func TestRunSimplexIdempotent(t *testing.T) {
	t.Parallel()

	g := layerFrom(t, gansnerExample)
	layercore.RunSimplex(g)

	ranksBefore := make([]int, g.NumVertices())
	for _, v := range g.VertexIDs() {
		ranksBefore[v] = g.Rank(v)
	}

	pivots := layercore.RunSimplex(g)
	assert.Equal(t, 0, pivots)

	for _, v := range g.VertexIDs() {
		assert.Equal(t, ranksBefore[v], g.Rank(v))
	}
}
