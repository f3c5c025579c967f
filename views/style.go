package views

import (
	"bufio"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/vgimg"
)

var (
	lineBlue  = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	boxGray   = color.RGBA{R: 150, G: 150, B: 150, A: 255}
	gridColor = color.RGBA{R: 220, G: 220, B: 220, A: 255}
)

// niceTicker places ticks on a 1, 2, 2.5 or 5 × 10^k grid, choosing the
// finest step that keeps at most maxTicks ticks inside [min, max].
type niceTicker struct {
	maxTicks int
}

var niceSteps = []float64{1, 2, 2.5, 5, 10}

// niceStep returns the smallest grid step not below raw.
func niceStep(raw float64) float64 {
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, s := range niceSteps {
		if s*mag >= raw*(1-1e-9) {
			return s * mag
		}
	}
	return 10 * mag
}

// tickLabel formats v with just enough decimals to tell steps apart.
func tickLabel(v, step float64) string {
	prec := max(0, int(-math.Floor(math.Log10(step))))
	if scaled := step * math.Pow10(prec); math.Abs(scaled-math.Round(scaled)) > 1e-6 {
		prec++
	}
	if math.Abs(v) < step*1e-9 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', prec, 64)
}

func (t niceTicker) Ticks(min, max float64) []plot.Tick {
	if math.IsNaN(min) || math.IsNaN(max) || math.IsInf(min, 0) || math.IsInf(max, 0) || max < min {
		return nil
	}
	if max == min {
		return []plot.Tick{{Value: min, Label: strconv.FormatFloat(min, 'f', -1, 64)}}
	}
	n := t.maxTicks
	if n < 2 {
		n = 2
	}
	step := niceStep((max - min) / float64(n-1))

	var ticks []plot.Tick
	for i := math.Ceil(min/step - 1e-9); i*step <= max+step*1e-9; i++ {
		v := i * step
		ticks = append(ticks, plot.Tick{Value: v, Label: tickLabel(v, step)})
	}
	return ticks
}

// stylePlot gives every figure the same look: smaller fonts, thin axes and
// a nice-step grid of at most seven ticks per axis.
func stylePlot(p *plot.Plot) {
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.Title.Padding = vg.Points(8)

	for _, ax := range []*plot.Axis{&p.X, &p.Y} {
		ax.Label.TextStyle.Font.Size = vg.Points(11)
		ax.Label.Padding = vg.Points(4)
		ax.LineStyle.Width = vg.Points(1)
		ax.Padding = vg.Points(4)
		ax.Tick.LineStyle.Width = vg.Points(0.8)
		ax.Tick.Length = vg.Points(4)
		ax.Tick.Label.Font.Size = vg.Points(9)
		ax.Tick.Marker = niceTicker{maxTicks: 7}
	}
}

// newCanvas creates a raster canvas of widthIn × heightIn inches at dpi.
func newCanvas(widthIn, heightIn float64, dpi int) *vgimg.Canvas {
	return vgimg.NewWith(
		vgimg.UseWH(vg.Length(widthIn)*vg.Inch, vg.Length(heightIn)*vg.Inch),
		vgimg.UseDPI(dpi),
	)
}

// pixelCanvas creates a canvas that rasterises to exactly w × h pixels.
func pixelCanvas(w, h int) *vgimg.Canvas {
	const dpi = 96
	return newCanvas(float64(w)/dpi, float64(h)/dpi, dpi)
}

// writePNG encodes a rendered canvas to filename.
func writePNG(c *vgimg.Canvas, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("cannot create png: %w", err)
	}
	bw := bufio.NewWriter(f)

	png := vgimg.PngCanvas{Canvas: c}
	if _, err := png.WriteTo(bw); err != nil {
		f.Close()
		return fmt.Errorf("cannot write png %s: %w", filepath.Base(filename), err)
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("cannot write png %s: %w", filepath.Base(filename), err)
	}
	return f.Close()
}
