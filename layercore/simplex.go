package layercore

// RunSimplex repeatedly pivots the tight spanning tree until every tree
// edge has a non-negative cut value (I6), implementing the distilled
// spec's Pivoter (§4.6). It assumes cut values and low/lim numbers are
// already populated for the current tree (InitCutValues, InitLowLim), and
// returns the number of pivots performed.
func RunSimplex(g *Graph) int {
	pivots := 0
	for {
		leave, ok := leaveEdge(g)
		if !ok {
			break
		}
		pivot(g, leave)
		pivots++
	}
	return pivots
}

// leaveEdge scans tree edges in edge-id order and returns the first with a
// negative cut value (§4.6 step 1). First-negative selection with
// edge-id-order tie-breaking is what guarantees termination (Bland's-rule
// equivalent anti-cycling).
func leaveEdge(g *Graph) (EdgeID, bool) {
	for _, e := range g.EdgeIDs() {
		if !g.IsTreeEdge(e) {
			continue
		}
		if cv, has := g.CutValue(e); has && cv < 0 {
			return e, true
		}
	}
	return 0, false
}

// enterEdge finds the minimum-slack non-tree edge crossing from the leave
// edge's head component to its tail component (§4.6 step 3). u is always
// the smaller-lim endpoint of the leave edge, i.e. the root of the component
// that gets cut off, and subtreeIsTail reports whether that subtree is the
// tail component (u is the leave edge's tail) or the head component.
func enterEdge(g *Graph, u VertexID, subtreeIsTail bool) (EdgeID, bool) {
	var best EdgeID
	bestSlack := 0
	found := false

	for _, e := range g.EdgeIDs() {
		if g.IsTreeEdge(e) {
			continue
		}
		tail, head := g.Endpoints(e)
		tailIn, headIn := g.InSubtree(u, tail), g.InSubtree(u, head)
		if tailIn == headIn || headIn != subtreeIsTail {
			continue
		}
		if s := g.Slack(e); !found || s < bestSlack {
			found, bestSlack, best = true, s, e
		}
	}
	return best, found
}

// pathInTree walks up parent links from x and from w until it finds their
// least common ancestor in the current tree, returning the ancestor and the
// ordered list of tree edges on the x-w path (§4.6 step 4).
//
// Both sides advance symmetrically: this corrects the distilled spec's
// source, whose x-side loop read x.parent without advancing x (see
// SPEC_FULL.md §9).
func pathInTree(g *Graph, x, w VertexID) (lca VertexID, path []EdgeID) {
	var fromW []EdgeID
	cur := w
	for !g.InSubtree(cur, x) {
		parent, ok := g.Parent(cur)
		if !ok {
			invariantViolation("vertex %d has no parent while searching for LCA of %d and %d", cur, x, w)
		}
		e, _, ok := g.FindEdgeUndirected(cur, parent)
		if !ok {
			invariantViolation("tree edge between %d and %d not found", cur, parent)
		}
		fromW = append(fromW, e)
		cur = parent
	}
	lca = cur

	var fromX []EdgeID
	cur = x
	for cur != lca {
		parent, ok := g.Parent(cur)
		if !ok {
			invariantViolation("vertex %d has no parent while walking up to LCA %d", cur, lca)
		}
		e, _, ok := g.FindEdgeUndirected(cur, parent)
		if !ok {
			invariantViolation("tree edge between %d and %d not found", cur, parent)
		}
		fromX = append(fromX, e)
		cur = parent
	}
	for i, j := 0, len(fromX)-1; i < j; i, j = i+1, j-1 {
		fromX[i], fromX[j] = fromX[j], fromX[i]
	}

	path = append(fromX, fromW...)
	return lca, path
}

// updateRanks re-derives every rank from the current tree structure by BFS
// from an arbitrary root, adding minimum_length across each outgoing tree
// edge and subtracting it across each incoming one (§4.6 step 8). This is a
// full recomputation rather than an incremental shift, matching the
// distilled spec's own update_ranks.
func updateRanks(g *Graph) {
	n := g.NumVertices()
	if n == 0 {
		return
	}
	minLen := g.MinimumLength()

	visited := make([]bool, n)
	root := VertexID(0)
	g.SetRank(root, 0)
	visited[root] = true
	queue := []VertexID{root}

	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]

		for _, e := range g.EdgesDirected(v, Outgoing) {
			if !g.IsTreeEdge(e) {
				continue
			}
			_, head := g.Endpoints(e)
			if !visited[head] {
				g.SetRank(head, g.Rank(v)+minLen)
				visited[head] = true
				queue = append(queue, head)
			}
		}
		for _, e := range g.EdgesDirected(v, Incoming) {
			if !g.IsTreeEdge(e) {
				continue
			}
			tail, _ := g.Endpoints(e)
			if !visited[tail] {
				g.SetRank(tail, g.Rank(v)-minLen)
				visited[tail] = true
				queue = append(queue, tail)
			}
		}
	}
}

// pivot performs one exchange: it replaces the leave edge with its minimum-
// slack replacement and brings cut values, low/lim numbers, and ranks back
// into a consistent state (§4.6 steps 2-8).
func pivot(g *Graph, leave EdgeID) {
	tail0, head0 := g.Endpoints(leave)
	u, v := tail0, head0
	if !(g.Lim(u) < g.Lim(v)) {
		u, v = v, u
	}
	_ = v

	enter, ok := enterEdge(g, u, u == tail0)
	if !ok {
		invariantViolation("no replacement edge found for leave edge %d (%d->%d)", leave, tail0, head0)
	}

	entTail, entHead := g.Endpoints(enter)
	lca, path := pathInTree(g, entTail, entHead)

	g.SetTreeEdge(leave, false)
	g.SetTreeEdge(enter, true)

	updateCutValues(g, leave, path)
	updateLowLim(g, lca)
	updateRanks(g)
}
