package views

import (
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"trajectory-logger/utils"
)

// arrow is a heading marker in plot data coordinates.
type arrow struct {
	x0, y0, x1, y1 float64
	t              float64
}

// headingArrows places one arrow per interval seconds of recorded time. Each
// points along the local direction of travel, is length long and sits offset
// to the left of the path. Stationary stretches produce no arrow.
func headingArrows(xs, ys, ts []float64, cfg utils.ArrowConfig) []arrow {
	if !cfg.Enabled || cfg.IntervalS <= 0 || len(xs) < 2 {
		return nil
	}
	var out []arrow
	next := ts[0] + cfg.IntervalS
	for i := 1; i < len(xs); i++ {
		if ts[i] < next {
			continue
		}
		for next <= ts[i] {
			next += cfg.IntervalS
		}

		dx, dy := xs[i]-xs[i-1], ys[i]-ys[i-1]
		n := math.Hypot(dx, dy)
		if n == 0 {
			continue
		}
		dx, dy = dx/n, dy/n
		bx := xs[i] - dy*cfg.Offset
		by := ys[i] + dx*cfg.Offset
		out = append(out, arrow{
			x0: bx, y0: by,
			x1: bx + dx*cfg.Scale, y1: by + dy*cfg.Scale,
			t: ts[i],
		})
	}
	return out
}

// arrowSet draws heading arrows coloured like the path beneath them.
type arrowSet struct {
	arrows []arrow
	cmap   palette.ColorMap
}

// Plot implements plot.Plotter.
func (a *arrowSet) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	sty := draw.LineStyle{Width: vg.Points(1.5)}
	for _, ar := range a.arrows {
		sty.Color = colorAt(a.cmap, ar.t)
		tail := vg.Point{X: trX(ar.x0), Y: trY(ar.y0)}
		tip := vg.Point{X: trX(ar.x1), Y: trY(ar.y1)}
		c.StrokeLines(sty, c.ClipLinesXY([]vg.Point{tail, tip})...)

		// Head: two barbs at ±25° off the shaft, a third of its length.
		dx, dy := float64(tail.X-tip.X), float64(tail.Y-tip.Y)
		l := math.Hypot(dx, dy)
		if l == 0 {
			continue
		}
		for _, s := range []float64{1, -1} {
			ang := s * 25 * math.Pi / 180
			bx := (dx*math.Cos(ang) - dy*math.Sin(ang)) / 3
			by := (dx*math.Sin(ang) + dy*math.Cos(ang)) / 3
			barb := vg.Point{X: tip.X + vg.Length(bx), Y: tip.Y + vg.Length(by)}
			c.StrokeLines(sty, c.ClipLinesXY([]vg.Point{tip, barb})...)
		}
	}
}
