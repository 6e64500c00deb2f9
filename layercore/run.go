package layercore

import (
	"context"

	"cdr.dev/slog"
	"golang.org/x/xerrors"
)

// Result holds the outcome of a successful Run: the final rank of every
// vertex and a count of simplex pivots performed, useful for diagnostics
// and for the domain stack's reporting and rendering components.
type Result struct {
	Ranks      []int
	PivotCount int
}

// Run executes the full layer-assignment pipeline against g: validation,
// initial ranking, tight-tree construction, cut-value and low/lim
// initialization, and network-simplex optimization (SPEC_FULL.md §2's data
// flow, "InitialRanker → TightTreeBuilder → CutValueEngine → LowLimLabeller
// → Pivoter").
//
// logger may be the zero slog.Logger, which has no sinks, in which case
// stage progress is not logged.
func Run(ctx context.Context, g *Graph, logger slog.Logger) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			if ip, ok := r.(invariantPanic); ok {
				err = xerrors.Errorf("layercore: run: %w", &Error{Kind: ConsistencyViolation, Msg: ip.msg})
				return
			}
			panic(r)
		}
	}()

	if err := Validate(g); err != nil {
		return nil, xerrors.Errorf("layercore: validate: %w", err)
	}
	logger.Debug(ctx, "validated graph", slog.F("vertices", g.NumVertices()), slog.F("edges", g.NumEdges()))

	if err := InitialRank(g); err != nil {
		return nil, xerrors.Errorf("layercore: initial rank: %w", err)
	}
	logger.Debug(ctx, "computed initial ranks")

	if err := MakeTight(g); err != nil {
		return nil, xerrors.Errorf("layercore: make tight: %w", err)
	}
	logger.Debug(ctx, "built tight spanning tree")

	InitCutValues(g)
	InitLowLim(g)
	logger.Debug(ctx, "initialized cut values and low/lim numbers")

	pivots := RunSimplex(g)
	logger.Info(ctx, "network simplex converged", slog.F("pivots", pivots))

	ranks := make([]int, g.NumVertices())
	for _, v := range g.VertexIDs() {
		ranks[v] = g.Rank(v)
	}
	normalizeRanks(ranks)

	return &Result{Ranks: ranks, PivotCount: pivots}, nil
}

// normalizeRanks shifts every rank down so the minimum is zero, per the
// downstream normalization SPEC_FULL.md §4.6 defers to.
func normalizeRanks(ranks []int) {
	if len(ranks) == 0 {
		return
	}
	min := ranks[0]
	for _, r := range ranks[1:] {
		if r < min {
			min = r
		}
	}
	if min == 0 {
		return
	}
	for i := range ranks {
		ranks[i] -= min
	}
}
