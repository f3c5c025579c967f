package views

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"

	"trajectory-logger/utils"
)

// projection is one planar view of the track.
type projection struct {
	file           string
	title          string
	xlabel, ylabel string
	a, b           func(track) []float64
	ra, rb         func(Bounds) Range
}

var projections = []projection{
	{
		file: "xy.png", title: "XY Plane", xlabel: "X (m)", ylabel: "Y (m)",
		a: func(tr track) []float64 { return tr.x }, b: func(tr track) []float64 { return tr.y },
		ra: func(b Bounds) Range { return b.X }, rb: func(b Bounds) Range { return b.Y },
	},
	{
		file: "yz.png", title: "YZ Plane", xlabel: "Y (m)", ylabel: "Z (m, up)",
		a: func(tr track) []float64 { return tr.y }, b: func(tr track) []float64 { return tr.up },
		ra: func(b Bounds) Range { return b.Y }, rb: func(b Bounds) Range { return b.Z },
	},
	{
		file: "xz.png", title: "XZ Plane", xlabel: "X (m)", ylabel: "Z (m, up)",
		a: func(tr track) []float64 { return tr.x }, b: func(tr track) []float64 { return tr.up },
		ra: func(b Bounds) Range { return b.X }, rb: func(b Bounds) Range { return b.Z },
	},
}

// projectionPlot builds the plot for pr with the shared bounds applied.
// Ranges are final only after equalAspect has seen the target canvas.
func projectionPlot(pr projection, tr track, b Bounds, cmap palette.ColorMap, arrows utils.ArrowConfig) *plot.Plot {
	p := plot.New()
	p.Title.Text = pr.title
	p.X.Label.Text = pr.xlabel
	p.Y.Label.Text = pr.ylabel
	stylePlot(p)

	grid := plotter.NewGrid()
	grid.Horizontal.Color = gridColor
	grid.Vertical.Color = gridColor
	p.Add(grid)

	as, bs := pr.a(tr), pr.b(tr)
	p.Add(newGradientPath(as, bs, tr.t, cmap))
	if ar := headingArrows(as, bs, tr.t, arrows); len(ar) > 0 {
		p.Add(&arrowSet{arrows: ar, cmap: cmap})
	}

	setRange(p, pr.ra(b), pr.rb(b))
	return p
}

// drawProjection lays out the projection and its colour bar on c.
func drawProjection(c draw.Canvas, p *plot.Plot, cmap palette.ColorMap) {
	main, bar := splitForColorBar(c)
	equalAspect(p, main)
	p.Draw(main)
	drawColorBar(bar, p.DataCanvas(main), cmap, "Time (s)")
}
