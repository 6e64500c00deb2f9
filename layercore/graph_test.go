package layercore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"oss.terrastruct.com/layercore"
)

func TestGraphAddVertexAndEdge(t *testing.T) {
	t.Parallel()

	g := layercore.NewGraph(1)
	a := g.AddVertex()
	b := g.AddVertex()
	e := g.AddEdge(a, b, 3)

	assert.Equal(t, 2, g.NumVertices())
	assert.Equal(t, 1, g.NumEdges())

	tail, head := g.Endpoints(e)
	assert.Equal(t, a, tail)
	assert.Equal(t, b, head)
	assert.Equal(t, 3, g.Weight(e))
}

func TestGraphFindEdgeUndirected(t *testing.T) {
	t.Parallel()

	g := layercore.NewGraph(1)
	a := g.AddVertex()
	b := g.AddVertex()
	e := g.AddEdge(a, b, 1)

	found, reversed, ok := g.FindEdgeUndirected(b, a)
	assert.True(t, ok)
	assert.True(t, reversed)
	assert.Equal(t, e, found)

	found, reversed, ok = g.FindEdgeUndirected(a, b)
	assert.True(t, ok)
	assert.False(t, reversed)
	assert.Equal(t, e, found)

	_, _, ok = g.FindEdgeUndirected(a, a)
	assert.False(t, ok)
}

func TestGraphSlack(t *testing.T) {
	t.Parallel()

	g := layercore.NewGraph(2)
	a := g.AddVertex()
	b := g.AddVertex()
	e := g.AddEdge(a, b, 1)

	g.SetRank(a, 0)
	g.SetRank(b, 5)
	assert.Equal(t, 3, g.Slack(e))

	g.SetRank(b, 2)
	assert.Equal(t, 0, g.Slack(e))
}
