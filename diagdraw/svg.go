// Package diagdraw renders a diagnostic view of a layered graph: an SVG
// strip with one row per rank, vertices colored along a gradient, and tree
// edges annotated with their cut value, for visually inspecting what the
// network simplex core produced. It can additionally rasterize that SVG to
// PNG through a headless browser, or plot ranks against lim numbers as a
// scatter chart.
package diagdraw

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/csscolorparser"

	"oss.terrastruct.com/layercore"
)

const (
	rowHeight  = 48
	colWidth   = 64
	nodeRadius = 14
)

// Options controls the gradient and labeling used when rendering.
type Options struct {
	// LowColor and HighColor are CSS color strings (e.g. "#1d4ed8",
	// "tomato") interpolated across the rank range. Defaults are used if
	// empty.
	LowColor, HighColor string
	// ShowCutValues draws each tree edge's cut value as a label.
	ShowCutValues bool
}

func (o Options) gradient() (colorful.Color, colorful.Color, error) {
	low, high := o.LowColor, o.HighColor
	if low == "" {
		low = "#1d4ed8"
	}
	if high == "" {
		high = "#f97316"
	}
	lowC, err := csscolorparser.Parse(low)
	if err != nil {
		return colorful.Color{}, colorful.Color{}, fmt.Errorf("diagdraw: parse low color %q: %w", low, err)
	}
	highC, err := csscolorparser.Parse(high)
	if err != nil {
		return colorful.Color{}, colorful.Color{}, fmt.Errorf("diagdraw: parse high color %q: %w", high, err)
	}
	return colorful.Color{R: lowC.R, G: lowC.G, B: lowC.B}, colorful.Color{R: highC.R, G: highC.G, B: highC.B}, nil
}

// RenderSVG draws one row per rank, placing each vertex in its row in
// vertex-id order within the row, and colors it along the configured
// gradient by rank. If opts.ShowCutValues is set, every tree edge is drawn
// with its cut value as a label.
func RenderSVG(g *layercore.Graph, opts Options) (string, error) {
	low, high, err := opts.gradient()
	if err != nil {
		return "", err
	}

	byRank := map[int][]layercore.VertexID{}
	minRank, maxRank := 0, 0
	for i, v := range g.VertexIDs() {
		r := g.Rank(v)
		byRank[r] = append(byRank[r], v)
		if i == 0 || r < minRank {
			minRank = r
		}
		if i == 0 || r > maxRank {
			maxRank = r
		}
	}

	pos := make(map[layercore.VertexID][2]float64, g.NumVertices())
	for r := minRank; r <= maxRank; r++ {
		for i, v := range byRank[r] {
			pos[v] = [2]float64{float64(i+1) * colWidth, float64(r-minRank+1) * rowHeight}
		}
	}

	var b strings.Builder
	width := colWidth * (maxCol(byRank) + 2)
	height := rowHeight * (maxRank - minRank + 2)
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n", width, height, width, height)

	for _, e := range g.EdgeIDs() {
		if opts.ShowCutValues && !g.IsTreeEdge(e) {
			continue
		}
		tail, head := g.Endpoints(e)
		tp, hp := pos[tail], pos[head]
		fmt.Fprintf(&b, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#999" stroke-width="1.5"/>`+"\n", tp[0], tp[1], hp[0], hp[1])
		if opts.ShowCutValues && g.IsTreeEdge(e) {
			if cv, ok := g.CutValue(e); ok {
				mx, my := (tp[0]+hp[0])/2, (tp[1]+hp[1])/2
				fmt.Fprintf(&b, `<text x="%.1f" y="%.1f" font-size="10" fill="#555">%d</text>`+"\n", mx, my, cv)
			}
		}
	}

	for _, v := range g.VertexIDs() {
		p := pos[v]
		var t float64
		if maxRank > minRank {
			t = float64(g.Rank(v)-minRank) / float64(maxRank-minRank)
		}
		c := low.BlendLab(high, t)
		fmt.Fprintf(&b, `<circle cx="%.1f" cy="%.1f" r="%d" fill="%s" stroke="#222"/>`+"\n", p[0], p[1], nodeRadius, c.Hex())
		fmt.Fprintf(&b, `<text x="%.1f" y="%.1f" font-size="10" text-anchor="middle" dy="4" fill="#fff">%d</text>`+"\n", p[0], p[1], v)
	}

	b.WriteString("</svg>\n")
	return b.String(), nil
}

func maxCol(byRank map[int][]layercore.VertexID) int {
	max := 0
	for _, vs := range byRank {
		if len(vs) > max {
			max = len(vs)
		}
	}
	return max
}
