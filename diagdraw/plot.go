package diagdraw

import (
	"bytes"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"oss.terrastruct.com/layercore"
)

// PlotRankLim renders a scatter chart of rank (x) against lim (y) for every
// vertex, a quick way to eyeball whether the low/lim numbering tracks the
// rank order as expected, and returns it PNG-encoded.
func PlotRankLim(g *layercore.Graph) ([]byte, error) {
	p := plot.New()
	p.Title.Text = "rank vs lim"
	p.X.Label.Text = "rank"
	p.Y.Label.Text = "lim"

	pts := make(plotter.XYs, g.NumVertices())
	for i, v := range g.VertexIDs() {
		pts[i].X = float64(g.Rank(v))
		pts[i].Y = float64(g.Lim(v))
	}

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, fmt.Errorf("diagdraw: build scatter plotter: %w", err)
	}
	p.Add(scatter)

	writer, err := p.WriterTo(4*vg.Inch, 4*vg.Inch, "png")
	if err != nil {
		return nil, fmt.Errorf("diagdraw: prepare plot writer: %w", err)
	}
	var buf bytes.Buffer
	if _, err := writer.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("diagdraw: write plot: %w", err)
	}
	return buf.Bytes(), nil
}
