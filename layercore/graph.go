// Package layercore implements the layer-assignment core of a Sugiyama-style
// layered-graph drawing pipeline: it ranks the vertices of a directed acyclic
// graph by network simplex so that every edge spans at least a configured
// minimum length and the total weighted edge length is minimized.
package layercore

import "fmt"

// VertexID identifies a vertex. Ids are assigned in insertion order starting
// at zero and are never reused or invalidated by later mutation.
type VertexID int

// EdgeID identifies an edge. Ids are assigned in insertion order starting at
// zero and are never reused or invalidated by later mutation.
type EdgeID int

// noParent is the sentinel stored for a vertex with no parent in the tight
// tree (the tree root, or any vertex before a tree exists).
const noParent = VertexID(-1)

// Direction selects which incident edges of a vertex to consider.
type Direction int

const (
	// Outgoing selects edges whose tail is the vertex in question.
	Outgoing Direction = iota
	// Incoming selects edges whose head is the vertex in question.
	Incoming
)

type vertex struct {
	rank   int
	low    int
	lim    int
	parent VertexID
	out    []EdgeID
	in     []EdgeID
}

type edge struct {
	tail, head  VertexID
	weight      int
	isTreeEdge  bool
	cutValue    int
	hasCutValue bool
}

// Graph is a stable mutable directed multigraph over vertices and edges.
// Vertex and edge ids are never invalidated once assigned: the core never
// deletes a vertex or an edge. Iteration order over vertices and edges is
// always insertion (id) order, so every tie-break in the algorithms below is
// reproducible rather than dependent on map iteration.
type Graph struct {
	minimumLength int
	vertices      []vertex
	edges         []edge
}

// NewGraph creates an empty graph with the given minimum edge length.
// minimumLength must be at least 1; this is not validated here (construction
// never fails) but is checked by Validate before the pipeline runs.
func NewGraph(minimumLength int) *Graph {
	return &Graph{minimumLength: minimumLength}
}

// MinimumLength returns the configured minimum rank span for any edge.
func (g *Graph) MinimumLength() int {
	return g.minimumLength
}

// AddVertex creates a new vertex and returns its id.
func (g *Graph) AddVertex() VertexID {
	id := VertexID(len(g.vertices))
	g.vertices = append(g.vertices, vertex{parent: noParent})
	return id
}

// AddEdge creates a new directed edge from tail to head with the given
// weight and returns its id. Weight is not validated here; Validate checks
// it before the pipeline runs.
func (g *Graph) AddEdge(tail, head VertexID, weight int) EdgeID {
	id := EdgeID(len(g.edges))
	g.edges = append(g.edges, edge{tail: tail, head: head, weight: weight})
	g.vertices[tail].out = append(g.vertices[tail].out, id)
	g.vertices[head].in = append(g.vertices[head].in, id)
	return id
}

// NumVertices returns the number of vertices in the graph.
func (g *Graph) NumVertices() int {
	return len(g.vertices)
}

// NumEdges returns the number of edges in the graph.
func (g *Graph) NumEdges() int {
	return len(g.edges)
}

// VertexIDs returns all vertex ids in insertion order.
func (g *Graph) VertexIDs() []VertexID {
	ids := make([]VertexID, len(g.vertices))
	for i := range ids {
		ids[i] = VertexID(i)
	}
	return ids
}

// EdgeIDs returns all edge ids in insertion order.
func (g *Graph) EdgeIDs() []EdgeID {
	ids := make([]EdgeID, len(g.edges))
	for i := range ids {
		ids[i] = EdgeID(i)
	}
	return ids
}

// Endpoints returns the tail and head vertex of an edge.
func (g *Graph) Endpoints(e EdgeID) (tail, head VertexID) {
	ed := &g.edges[e]
	return ed.tail, ed.head
}

// EdgesDirected returns, in insertion order, the ids of the edges incident
// to v in the given direction.
func (g *Graph) EdgesDirected(v VertexID, dir Direction) []EdgeID {
	if dir == Outgoing {
		return g.vertices[v].out
	}
	return g.vertices[v].in
}

// FindEdgeDirected returns an edge with tail u and head v, if one exists.
func (g *Graph) FindEdgeDirected(u, v VertexID) (EdgeID, bool) {
	for _, e := range g.vertices[u].out {
		if g.edges[e].head == v {
			return e, true
		}
	}
	return 0, false
}

// FindEdgeUndirected returns an edge connecting u and v in either direction,
// if one exists, along with whether it runs v->u (reversed) rather than
// u->v.
func (g *Graph) FindEdgeUndirected(u, v VertexID) (id EdgeID, reversed bool, ok bool) {
	if e, found := g.FindEdgeDirected(u, v); found {
		return e, false, true
	}
	if e, found := g.FindEdgeDirected(v, u); found {
		return e, true, true
	}
	return 0, false, false
}

// Weight returns an edge's weight.
func (g *Graph) Weight(e EdgeID) int {
	return g.edges[e].weight
}

// IsTreeEdge reports whether an edge currently belongs to the tight
// spanning tree.
func (g *Graph) IsTreeEdge(e EdgeID) bool {
	return g.edges[e].isTreeEdge
}

// SetTreeEdge marks or unmarks an edge as a tree edge.
func (g *Graph) SetTreeEdge(e EdgeID, isTree bool) {
	g.edges[e].isTreeEdge = isTree
}

// CutValue returns a tree edge's cut value, if computed.
func (g *Graph) CutValue(e EdgeID) (int, bool) {
	ed := &g.edges[e]
	return ed.cutValue, ed.hasCutValue
}

// SetCutValue records a tree edge's cut value.
func (g *Graph) SetCutValue(e EdgeID, v int) {
	g.edges[e].cutValue = v
	g.edges[e].hasCutValue = true
}

// ClearCutValue marks a tree edge's cut value as unknown.
func (g *Graph) ClearCutValue(e EdgeID) {
	g.edges[e].cutValue = 0
	g.edges[e].hasCutValue = false
}

// Rank returns a vertex's current rank.
func (g *Graph) Rank(v VertexID) int {
	return g.vertices[v].rank
}

// SetRank sets a vertex's rank.
func (g *Graph) SetRank(v VertexID, r int) {
	g.vertices[v].rank = r
}

// Low returns a vertex's low traversal number.
func (g *Graph) Low(v VertexID) int {
	return g.vertices[v].low
}

// SetLow sets a vertex's low traversal number.
func (g *Graph) SetLow(v VertexID, low int) {
	g.vertices[v].low = low
}

// Lim returns a vertex's lim traversal number.
func (g *Graph) Lim(v VertexID) int {
	return g.vertices[v].lim
}

// SetLim sets a vertex's lim traversal number.
func (g *Graph) SetLim(v VertexID, lim int) {
	g.vertices[v].lim = lim
}

// Parent returns a vertex's parent in the tight tree, if it has one.
func (g *Graph) Parent(v VertexID) (VertexID, bool) {
	p := g.vertices[v].parent
	return p, p != noParent
}

// SetParent sets a vertex's parent in the tight tree.
func (g *Graph) SetParent(v, parent VertexID) {
	g.vertices[v].parent = parent
}

// ClearParent marks a vertex as having no parent (the tree root).
func (g *Graph) ClearParent(v VertexID) {
	g.vertices[v].parent = noParent
}

// Slack returns an edge's slack: rank(head) - rank(tail) - minimum_length.
// Slack is zero for a tight edge and non-negative for any feasible edge.
func (g *Graph) Slack(e EdgeID) int {
	ed := &g.edges[e]
	return g.vertices[ed.head].rank - g.vertices[ed.tail].rank - g.minimumLength
}

// InSubtree reports whether y lies in the tree subtree rooted at x, using
// the low/lim numbering: y is in x's subtree iff low(x) <= lim(y) <= lim(x).
func (g *Graph) InSubtree(x, y VertexID) bool {
	low, lim := g.vertices[x].low, g.vertices[x].lim
	ylim := g.vertices[y].lim
	return low <= ylim && ylim <= lim
}

// treeNeighbors returns the vertices adjacent to v via a tree edge: the
// heads of v's outgoing tree edges, then the tails of its incoming ones,
// each group in edge-id order.
func (g *Graph) treeNeighbors(v VertexID) []VertexID {
	var out []VertexID
	for _, e := range g.vertices[v].out {
		if g.edges[e].isTreeEdge {
			out = append(out, g.edges[e].head)
		}
	}
	for _, e := range g.vertices[v].in {
		if g.edges[e].isTreeEdge {
			out = append(out, g.edges[e].tail)
		}
	}
	return out
}

// treeDegree returns the number of tree edges incident to v, in either
// direction.
func (g *Graph) treeDegree(v VertexID) int {
	n := 0
	for _, e := range g.vertices[v].out {
		if g.edges[e].isTreeEdge {
			n++
		}
	}
	for _, e := range g.vertices[v].in {
		if g.edges[e].isTreeEdge {
			n++
		}
	}
	return n
}

func (g *Graph) String() string {
	return fmt.Sprintf("Graph{vertices: %d, edges: %d, minimumLength: %d}", len(g.vertices), len(g.edges), g.minimumLength)
}
