package views

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// colorBarShare is the fraction of the canvas width reserved for the bar.
const colorBarShare = 0.18

// minColorBarWidth is the narrowest strip that still fits the bar's axis;
// thumbnails below it are drawn without a bar.
var minColorBarWidth = vg.Points(60)

// splitForColorBar divides c into a main area and a colour bar strip on
// the right.
func splitForColorBar(c draw.Canvas) (main, bar draw.Canvas) {
	barW := (c.Max.X - c.Min.X) * colorBarShare
	main = draw.Crop(c, 0, -barW, 0, 0)
	bar = draw.Crop(c, c.Max.X-c.Min.X-barW, 0, 0, 0)
	return main, bar
}

// drawColorBar draws a vertical bar for cmap into c, aligned vertically
// with the data area da of the main plot.
func drawColorBar(c, da draw.Canvas, cmap palette.ColorMap, label string) {
	p := plot.New()
	stylePlot(p)
	p.HideX()
	p.X.Padding = 0
	p.Y.Padding = 0
	p.Y.Label.Text = label
	p.Y.Tick.Marker = niceTicker{maxTicks: 6}
	p.Add(&plotter.ColorBar{ColorMap: cmap, Vertical: true, Colors: 64})

	strip := draw.Crop(c, vg.Points(2), -vg.Points(6), da.Min.Y-c.Min.Y, da.Max.Y-c.Max.Y)
	if strip.Max.X-strip.Min.X < minColorBarWidth || strip.Max.Y <= strip.Min.Y {
		return
	}
	p.Draw(strip)
}
