package layercore_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"oss.terrastruct.com/layercore"
)

func TestInitialRankChain(t *testing.T) {
	t.Parallel()

	g := layercore.NewGraph(1)
	a, b, c, d := g.AddVertex(), g.AddVertex(), g.AddVertex(), g.AddVertex()
	g.AddEdge(a, b, 1)
	g.AddEdge(b, c, 1)
	g.AddEdge(c, d, 1)

	assert.Nil(t, layercore.InitialRank(g))
	assert.Equal(t, 0, g.Rank(a))
	assert.Equal(t, 1, g.Rank(b))
	assert.Equal(t, 2, g.Rank(c))
	assert.Equal(t, 3, g.Rank(d))
}

func TestInitialRankIsTopologicallyMinimal(t *testing.T) {
	t.Parallel()

	// a->c is a long edge that should not force c any higher than the
	// longest path through b demands.
	g := layercore.NewGraph(1)
	a, b, c := g.AddVertex(), g.AddVertex(), g.AddVertex()
	g.AddEdge(a, b, 1)
	g.AddEdge(b, c, 1)
	g.AddEdge(a, c, 1)

	assert.Nil(t, layercore.InitialRank(g))
	assert.Equal(t, 0, g.Rank(a))
	assert.Equal(t, 1, g.Rank(b))
	assert.Equal(t, 2, g.Rank(c))
}

func TestInitialRankDetectsCycle(t *testing.T) {
	t.Parallel()

	g := layercore.NewGraph(1)
	a, b := g.AddVertex(), g.AddVertex()
	g.AddEdge(a, b, 1)
	g.AddEdge(b, a, 1)

	err := layercore.InitialRank(g)
	assert.NotNil(t, err)

	var lerr *layercore.Error
	assert.True(t, errors.As(err, &lerr))
	assert.Equal(t, layercore.InputNotAcyclic, lerr.Kind)
}
