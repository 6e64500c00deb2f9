package layercore

// neighborhoodInfo summarizes a vertex's incident edges in one direction,
// distinguishing tree incidences with a known cut value, tree incidences
// still awaiting one, and non-tree incidences (SPEC_FULL.md §4.4).
type neighborhoodInfo struct {
	nonTreeWeightSum int
	treeCutSum       int
	treeWeightSum    int
	missing          VertexID
	hasMissing       bool
}

// neighborhoodInfoOf builds the neighborhoodInfo for v in the given
// direction. ok is false if more than one tree-incident edge in that
// direction is missing a cut value, meaning v cannot be resolved yet.
func neighborhoodInfoOf(g *Graph, v VertexID, dir Direction) (info neighborhoodInfo, ok bool) {
	for _, e := range g.EdgesDirected(v, dir) {
		var other VertexID
		if dir == Outgoing {
			_, other = g.Endpoints(e)
		} else {
			other, _ = g.Endpoints(e)
		}

		if !g.IsTreeEdge(e) {
			info.nonTreeWeightSum += g.Weight(e)
			continue
		}
		if cv, has := g.CutValue(e); has {
			info.treeCutSum += cv
			info.treeWeightSum += g.Weight(e)
			continue
		}
		if info.hasMissing {
			return neighborhoodInfo{}, false
		}
		info.missing, info.hasMissing = other, true
	}
	return info, true
}

// InitCutValues computes the cut value of every tree edge by propagating
// inward from the tree's leaves (SPEC_FULL.md §4.4, "Algorithm (initial)").
func InitCutValues(g *Graph) {
	var queue []VertexID
	for _, v := range g.VertexIDs() {
		if g.treeDegree(v) == 1 {
			queue = append(queue, v)
		}
	}
	propagateCutValues(g, queue)
}

// updateCutValues recomputes cut values after a pivot: it clears the cut
// value of the edge that just left the tree and of every edge on the tree
// path between the entering edge's endpoints, then re-propagates starting
// from the leave edge's tail (SPEC_FULL.md §4.4, "Algorithm (incremental)").
func updateCutValues(g *Graph, leave EdgeID, path []EdgeID) {
	g.ClearCutValue(leave)
	for _, e := range path {
		g.ClearCutValue(e)
	}
	tail, _ := g.Endpoints(leave)
	propagateCutValues(g, []VertexID{tail})
}

// propagateCutValues runs the leaf-inward BFS shared by the initial and
// incremental cut-value algorithms.
func propagateCutValues(g *Graph, queue []VertexID) {
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]

		incoming, ok1 := neighborhoodInfoOf(g, v, Incoming)
		outgoing, ok2 := neighborhoodInfoOf(g, v, Outgoing)
		if !ok1 || !ok2 {
			continue
		}

		var missing VertexID
		switch {
		case incoming.hasMissing && !outgoing.hasMissing:
			missing = incoming.missing
		case outgoing.hasMissing && !incoming.hasMissing:
			missing = outgoing.missing
		default:
			// Either fully known (nothing to do) or two unknowns
			// (not resolvable from v yet).
			continue
		}

		var e EdgeID
		if eid, ok := g.FindEdgeDirected(v, missing); ok {
			// The edge runs v->missing: v is its tail, so swap the two
			// infos so "incoming" denotes the side containing v, as the
			// formula below assumes.
			e = eid
			incoming, outgoing = outgoing, incoming
		} else {
			eid, _ := g.FindEdgeDirected(missing, v)
			e = eid
		}

		g.SetCutValue(e, cutValueFormula(g, e, incoming, outgoing))
		queue = append(queue, missing)
	}
}

// cutValueFormula implements SPEC_FULL.md §4.4 step 3's formula.
func cutValueFormula(g *Graph, e EdgeID, incoming, outgoing neighborhoodInfo) int {
	return g.Weight(e) +
		incoming.nonTreeWeightSum - incoming.treeCutSum + incoming.treeWeightSum -
		outgoing.nonTreeWeightSum + outgoing.treeCutSum - outgoing.treeWeightSum
}
