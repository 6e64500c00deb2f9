package layercore_test

import (
	"context"
	"testing"

	"cdr.dev/slog/sloggers/slogtest"
	"github.com/stretchr/testify/assert"

	"oss.terrastruct.com/layercore"
)

func TestRunChain(t *testing.T) {
	t.Parallel()

	g := layercore.NewGraph(1)
	a, b, c, d := g.AddVertex(), g.AddVertex(), g.AddVertex(), g.AddVertex()
	g.AddEdge(a, b, 1)
	g.AddEdge(b, c, 1)
	g.AddEdge(c, d, 1)

	result, err := layercore.Run(context.Background(), g, slogtest.Make(t, nil))
	assert.Nil(t, err)
	assert.Equal(t, []int{0, 1, 2, 3}, result.Ranks)
	assert.Equal(t, 0, result.PivotCount)
}

func TestRunRejectsInvalidGraph(t *testing.T) {
	t.Parallel()

	g := layercore.NewGraph(0)
	a := g.AddVertex()
	b := g.AddVertex()
	g.AddEdge(a, b, 1)

	_, err := layercore.Run(context.Background(), g, slogtest.Make(t, &slogtest.Options{IgnoreErrors: true}))
	assert.NotNil(t, err)
}

func TestRunRejectsCyclicGraph(t *testing.T) {
	t.Parallel()

	g := layercore.NewGraph(1)
	a := g.AddVertex()
	b := g.AddVertex()
	g.AddEdge(a, b, 1)
	g.AddEdge(b, a, 1)

	_, err := layercore.Run(context.Background(), g, slogtest.Make(t, &slogtest.Options{IgnoreErrors: true}))
	assert.NotNil(t, err)
}

func TestRunIsIdempotent(t *testing.T) {
	t.Parallel()

	build := func() *layercore.Graph {
		g := layercore.NewGraph(1)
		a, b, c, d, e, f, h := g.AddVertex(), g.AddVertex(), g.AddVertex(), g.AddVertex(), g.AddVertex(), g.AddVertex(), g.AddVertex()
		g.AddEdge(a, b, 1)
		g.AddEdge(b, c, 1)
		g.AddEdge(c, d, 1)
		g.AddEdge(d, h, 1)
		g.AddEdge(a, e, 1)
		g.AddEdge(e, h, 1)
		g.AddEdge(a, f, 1)
		g.AddEdge(f, e, 1)
		return g
	}

	logger := slogtest.Make(t, nil)
	r1, err := layercore.Run(context.Background(), build(), logger)
	assert.Nil(t, err)
	r2, err := layercore.Run(context.Background(), build(), logger)
	assert.Nil(t, err)

	assert.Equal(t, r1.Ranks, r2.Ranks)
	assert.Equal(t, r1.PivotCount, r2.PivotCount)
}

func TestRunSingleVertex(t *testing.T) {
	t.Parallel()

	g := layercore.NewGraph(1)
	g.AddVertex()

	result, err := layercore.Run(context.Background(), g, slogtest.Make(t, nil))
	assert.Nil(t, err)
	assert.Equal(t, []int{0}, result.Ranks)
}

func TestRunTwoVertices(t *testing.T) {
	t.Parallel()

	g := layercore.NewGraph(3)
	a := g.AddVertex()
	b := g.AddVertex()
	e := g.AddEdge(a, b, 5)

	result, err := layercore.Run(context.Background(), g, slogtest.Make(t, nil))
	assert.Nil(t, err)
	assert.Equal(t, []int{0, 3}, result.Ranks)

	cv, ok := g.CutValue(e)
	assert.True(t, ok)
	assert.Equal(t, 5, cv)
}
