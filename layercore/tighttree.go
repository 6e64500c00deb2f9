package layercore

// MakeTight grows a maximal tight subtree from an arbitrary start vertex,
// and whenever growth gets stuck, shifts the ranks of the current tight
// component along the minimum-slack incident edge to bring a new edge to
// zero slack, repeating until the tree spans every vertex (the distilled
// spec's TightTreeBuilder, §4.3).
//
// Returns an *Error of kind DisconnectedGraph if no incident edge exists to
// extend the component, meaning the input graph is not connected.
func MakeTight(g *Graph) error {
	n := g.NumVertices()
	if n <= 1 {
		return nil
	}

	inTree := make([]bool, n)
	treeSize := growTightComponent(g, 0, inTree)

	for treeSize < n {
		e, delta, ok := minSlackTighteningEdge(g, inTree)
		if !ok {
			return newError(DisconnectedGraph, "tight tree spans %d of %d vertices: no incident edge connects the remainder", treeSize, n)
		}

		shiftComponentRanks(g, inTree, delta)

		g.SetTreeEdge(e, true)
		tail, head := g.Endpoints(e)
		next := head
		if inTree[head] {
			next = tail
		}
		treeSize += growTightComponent(g, next, inTree)
	}

	return nil
}

// growTightComponent extends the tight component from start across any
// incident edge of zero slack, marking each as a tree edge, and returns the
// number of previously-untreed vertices it added (including start, if it
// was not already in the component).
func growTightComponent(g *Graph, start VertexID, inTree []bool) int {
	if inTree[start] {
		return 0
	}

	added := 0
	stack := []VertexID{start}
	inTree[start] = true
	added++

	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, e := range g.EdgesDirected(v, Outgoing) {
			_, head := g.Endpoints(e)
			if !inTree[head] && g.Slack(e) == 0 {
				g.SetTreeEdge(e, true)
				inTree[head] = true
				added++
				stack = append(stack, head)
			}
		}
		for _, e := range g.EdgesDirected(v, Incoming) {
			tail, _ := g.Endpoints(e)
			if !inTree[tail] && g.Slack(e) == 0 {
				g.SetTreeEdge(e, true)
				inTree[tail] = true
				added++
				stack = append(stack, tail)
			}
		}
	}

	return added
}

// minSlackTighteningEdge finds the incident non-tree edge with exactly one
// endpoint in the tight component and minimum slack, returning that edge
// and the signed rank delta to apply to the component to make it tight:
// +slack if the out-of-component endpoint is the head, -slack if it is the
// tail.
func minSlackTighteningEdge(g *Graph, inTree []bool) (EdgeID, int, bool) {
	var best EdgeID
	bestSlack := 0
	found := false

	for _, e := range g.EdgeIDs() {
		tail, head := g.Endpoints(e)
		tailIn, headIn := inTree[tail], inTree[head]
		if tailIn == headIn {
			continue
		}
		s := g.Slack(e)
		if !found || s < bestSlack {
			found, bestSlack, best = true, s, e
		}
	}

	if !found {
		return 0, 0, false
	}

	tail, _ := g.Endpoints(best)
	delta := bestSlack
	if inTree[tail] {
		// head is the out-of-component endpoint.
		delta = bestSlack
	} else {
		delta = -bestSlack
	}
	return best, delta, true
}

// shiftComponentRanks adds delta to the rank of every vertex currently in
// the tight component.
func shiftComponentRanks(g *Graph, inTree []bool, delta int) {
	if delta == 0 {
		return
	}
	for _, v := range g.VertexIDs() {
		if inTree[v] {
			g.SetRank(v, g.Rank(v)+delta)
		}
	}
}
