package views

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// series names one time-series figure.
type series struct {
	file   string
	title  string
	ylabel string
	values func(track) []float64
}

var timeSeries = []series{
	{"x_time.png", "X vs Time", "X (m)", func(tr track) []float64 { return tr.x }},
	{"y_time.png", "Y vs Time", "Y (m)", func(tr track) []float64 { return tr.y }},
	{"z_time.png", "Z (up) vs Time", "Z (m, up)", func(tr track) []float64 { return tr.up }},
	{"roll_time.png", "Roll vs Time", "Roll (deg)", func(tr track) []float64 { return tr.roll }},
	{"pitch_time.png", "Pitch vs Time", "Pitch (deg)", func(tr track) []float64 { return tr.pitch }},
	{"yaw_time.png", "Yaw vs Time", "Yaw (deg)", func(tr track) []float64 { return tr.yaw }},
}

// timeSeriesPlot builds a single line plot of vs against ts.
func timeSeriesPlot(title, ylabel string, ts, vs []float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = ylabel
	stylePlot(p)

	grid := plotter.NewGrid()
	grid.Horizontal.Color = gridColor
	grid.Vertical.Color = gridColor
	p.Add(grid)

	pts := make(plotter.XYs, len(ts))
	for i := range ts {
		pts[i].X = ts[i]
		pts[i].Y = vs[i]
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", title, err)
	}
	line.LineStyle.Color = lineBlue
	line.LineStyle.Width = vg.Points(1.5)
	p.Add(line)
	return p, nil
}
