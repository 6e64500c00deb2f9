// Package reportmd renders a Markdown summary of a layering run (ranks,
// pivot count, per-tree-edge cut values) and converts it to HTML, for
// embedding in build logs or a web dashboard.
package reportmd

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"oss.terrastruct.com/layercore"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.Table))

// Markdown builds a Markdown report of a completed Run, grouping vertices
// by rank and listing every tree edge's cut value.
func Markdown(g *layercore.Graph, result *layercore.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Layering report\n\n")
	fmt.Fprintf(&b, "- vertices: %d\n", g.NumVertices())
	fmt.Fprintf(&b, "- edges: %d\n", g.NumEdges())
	fmt.Fprintf(&b, "- pivots: %d\n\n", result.PivotCount)

	byRank := map[int][]layercore.VertexID{}
	maxRank := 0
	for _, v := range g.VertexIDs() {
		r := result.Ranks[v]
		byRank[r] = append(byRank[r], v)
		if r > maxRank {
			maxRank = r
		}
	}

	b.WriteString("## Ranks\n\n")
	for r := 0; r <= maxRank; r++ {
		vs := byRank[r]
		sort.Slice(vs, func(i, j int) bool { return vs[i] < vs[j] })
		names := make([]string, len(vs))
		for i, v := range vs {
			names[i] = fmt.Sprintf("%d", v)
		}
		fmt.Fprintf(&b, "- rank %d: %s\n", r, strings.Join(names, ", "))
	}

	b.WriteString("\n## Tree edges\n\n")
	b.WriteString("| edge | weight | cut value |\n")
	b.WriteString("|---|---|---|\n")
	for _, e := range g.EdgeIDs() {
		if !g.IsTreeEdge(e) {
			continue
		}
		tail, head := g.Endpoints(e)
		cv, _ := g.CutValue(e)
		fmt.Fprintf(&b, "| %d -> %d | %d | %d |\n", tail, head, g.Weight(e), cv)
	}

	return b.String()
}

// HTML renders the Markdown report to a standalone HTML fragment.
func HTML(g *layercore.Graph, result *layercore.Result) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(Markdown(g, result)), &buf); err != nil {
		return "", fmt.Errorf("reportmd: convert markdown to html: %w", err)
	}
	return buf.String(), nil
}
