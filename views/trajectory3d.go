package views

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"trajectory-logger/models"
)

// boxAspect scales the vertical edge of the bounding box relative to the
// horizontal ones.
const boxAspect = 0.75

// View3D is an orthographic camera. Azimuth rotates about the vertical axis
// and elevation tilts above the horizontal plane, both in degrees.
type View3D struct {
	Azimuth   float64
	Elevation float64
}

// project maps a point of the unit box onto the screen plane.
func (v View3D) project(x, y, z float64) (u, w float64) {
	az := v.Azimuth * math.Pi / 180
	el := v.Elevation * math.Pi / 180
	u = -x*math.Sin(az) + y*math.Cos(az)
	w = -(x*math.Cos(az)+y*math.Sin(az))*math.Sin(el) + z*math.Cos(el)
	return u, w
}

// Trajectory3D renders a track as a time-graded path inside its bounding
// box, seen through View.
type Trajectory3D struct {
	View     View3D
	ColorMap string
	Margin   float64
	Title    string
}

// scene is a track mapped into the unit box and projected.
type scene struct {
	view View3D
	b    Bounds
}

func (s scene) norm(x, y, z float64) (float64, float64, float64) {
	return (x - s.b.X.Mid()) / s.b.X.Span(),
		(y - s.b.Y.Mid()) / s.b.Y.Span(),
		(z - s.b.Z.Mid()) / s.b.Z.Span() * boxAspect
}

func (s scene) screen(x, y, z float64) (float64, float64) {
	return s.view.project(s.norm(x, y, z))
}

// Canvas renders run onto a new w × h pixel canvas.
func (r Trajectory3D) Canvas(run *models.Run, w, h int) (*vgimg.Canvas, error) {
	c := pixelCanvas(w, h)
	if err := r.draw(draw.New(c), newTrack(run)); err != nil {
		return nil, err
	}
	return c, nil
}

// draw renders tr onto c using bounds fitted to tr.
func (r Trajectory3D) draw(c draw.Canvas, tr track) error {
	return r.drawBounded(c, tr, tr.bounds(r.Margin))
}

func (r Trajectory3D) drawBounded(c draw.Canvas, tr track, b Bounds) error {
	cmap, err := NewColorMap(r.ColorMap, 0, max(1e-6, tr.lastT()))
	if err != nil {
		return err
	}
	s := scene{view: r.View, b: b}

	p := plot.New()
	p.Title.Text = r.Title
	stylePlot(p)
	p.HideAxes()

	box := newBox3D(s, p.X.Label.TextStyle)
	p.Add(box)

	us := make([]float64, tr.len())
	ws := make([]float64, tr.len())
	for i := range us {
		us[i], ws[i] = s.screen(tr.x[i], tr.y[i], tr.up[i])
	}
	p.Add(newGradientPath(us, ws, tr.t, cmap))

	// Fix the view to the box so the camera does not drift with the path.
	umin, umax, wmin, wmax := box.DataRange()
	pad := 0.12 * max(umax-umin, wmax-wmin)
	setRange(p, Range{umin - pad, umax + pad}, Range{wmin - pad, wmax + pad})

	main, bar := splitForColorBar(c)
	equalAspect(p, main)
	p.Draw(main)
	drawColorBar(bar, p.DataCanvas(main), cmap, "Time (s)")
	return nil
}

// ─── bounding box ───────────────────────────────────────────────────────

type label3D struct {
	u, w float64
	text string
}

// box3D draws the twelve edges of the bounds and labels three of them.
type box3D struct {
	corners [8][2]float64
	labels  []label3D
	center  [2]float64
	style   text.Style
}

func newBox3D(s scene, sty text.Style) *box3D {
	bx := &box3D{style: sty}
	xs := [2]float64{s.b.X.Min, s.b.X.Max}
	ys := [2]float64{s.b.Y.Min, s.b.Y.Max}
	zs := [2]float64{s.b.Z.Min, s.b.Z.Max}
	for i := 0; i < 8; i++ {
		u, w := s.screen(xs[i&1], ys[i>>1&1], zs[i>>2&1])
		bx.corners[i] = [2]float64{u, w}
	}
	bx.center[0], bx.center[1] = s.screen(s.b.X.Mid(), s.b.Y.Mid(), s.b.Z.Mid())

	// Label the bottom edges nearest the camera, and a vertical edge at
	// the left of them.
	az := s.view.Azimuth * math.Pi / 180
	nx, ny := 0, 0
	if math.Cos(az) > 0 {
		nx = 1
	}
	if math.Sin(az) > 0 {
		ny = 1
	}
	bx.axisLabels(s, "X (m)", s.b.X, func(v float64) [3]float64 { return [3]float64{v, ys[ny], zs[0]} })
	bx.axisLabels(s, "Y (m)", s.b.Y, func(v float64) [3]float64 { return [3]float64{xs[nx], v, zs[0]} })
	bx.axisLabels(s, "Z (m, up)", s.b.Z, func(v float64) [3]float64 { return [3]float64{xs[1-nx], ys[ny], v} })
	return bx
}

func (bx *box3D) axisLabels(s scene, name string, r Range, at func(float64) [3]float64) {
	add := func(v float64, txt string) {
		p := at(v)
		u, w := s.screen(p[0], p[1], p[2])
		bx.labels = append(bx.labels, label3D{u: u, w: w, text: txt})
	}
	add(r.Min, fmt.Sprintf("%.1f", r.Min))
	add(r.Max, fmt.Sprintf("%.1f", r.Max))
	add(r.Mid(), name)
}

// Plot implements plot.Plotter.
func (bx *box3D) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	pt := func(i int) vg.Point {
		return vg.Point{X: trX(bx.corners[i][0]), Y: trY(bx.corners[i][1])}
	}
	sty := draw.LineStyle{Color: boxGray, Width: vg.Points(0.8)}
	for i := 0; i < 8; i++ {
		for _, bit := range []int{1, 2, 4} {
			if j := i | bit; j != i {
				c.StrokeLines(sty, c.ClipLinesXY([]vg.Point{pt(i), pt(j)})...)
			}
		}
	}

	// Push labels away from the box centre so they clear the edges.
	ts := bx.style
	ts.XAlign = text.XCenter
	ts.YAlign = text.YCenter
	cx, cy := trX(bx.center[0]), trY(bx.center[1])
	for _, l := range bx.labels {
		x, y := trX(l.u), trY(l.w)
		dx, dy := float64(x-cx), float64(y-cy)
		if n := math.Hypot(dx, dy); n > 0 {
			off := float64(vg.Points(14))
			x += vg.Length(dx / n * off)
			y += vg.Length(dy / n * off)
		}
		c.FillText(ts, vg.Point{X: x, Y: y}, l.text)
	}
}

// DataRange implements plot.DataRanger over the projected corners.
func (bx *box3D) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, ymin = math.Inf(1), math.Inf(1)
	xmax, ymax = math.Inf(-1), math.Inf(-1)
	for _, c := range bx.corners {
		xmin, xmax = min(xmin, c[0]), max(xmax, c[0])
		ymin, ymax = min(ymin, c[1]), max(ymax, c[1])
	}
	return xmin, xmax, ymin, ymax
}
