package views

import (
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// gradientPath is a polyline whose segments are coloured by time. Segment i
// joins points i and i+1 and takes the colour of ts[i+1].
type gradientPath struct {
	xs, ys, ts []float64
	cmap       palette.ColorMap
	width      vg.Length
}

func newGradientPath(xs, ys, ts []float64, cmap palette.ColorMap) *gradientPath {
	return &gradientPath{xs: xs, ys: ys, ts: ts, cmap: cmap, width: vg.Points(2)}
}

// Plot implements plot.Plotter.
func (g *gradientPath) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	sty := draw.LineStyle{Width: g.width}
	for i := 1; i < len(g.xs); i++ {
		sty.Color = colorAt(g.cmap, g.ts[i])
		seg := []vg.Point{
			{X: trX(g.xs[i-1]), Y: trY(g.ys[i-1])},
			{X: trX(g.xs[i]), Y: trY(g.ys[i])},
		}
		c.StrokeLines(sty, c.ClipLinesXY(seg)...)
	}
}

// DataRange implements plot.DataRanger.
func (g *gradientPath) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, ymin = math.Inf(1), math.Inf(1)
	xmax, ymax = math.Inf(-1), math.Inf(-1)
	for i := range g.xs {
		xmin, xmax = min(xmin, g.xs[i]), max(xmax, g.xs[i])
		ymin, ymax = min(ymin, g.ys[i]), max(ymax, g.ys[i])
	}
	return xmin, xmax, ymin, ymax
}
