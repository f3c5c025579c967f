package views

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg/draw"
)

// Range is a closed interval on one axis.
type Range struct {
	Min, Max float64
}

func (r Range) Span() float64 { return r.Max - r.Min }
func (r Range) Mid() float64  { return (r.Min + r.Max) / 2 }

// extent returns the smallest range covering vs, grown by margin on both
// sides. An empty input yields [-margin, margin].
func extent(vs []float64, margin float64) Range {
	if len(vs) == 0 {
		return Range{Min: -margin, Max: margin}
	}
	r := Range{Min: vs[0], Max: vs[0]}
	for _, v := range vs[1:] {
		r.Min = min(r.Min, v)
		r.Max = max(r.Max, v)
	}
	r.Min -= margin
	r.Max += margin
	if r.Span() == 0 {
		r.Min, r.Max = r.Min-0.5, r.Max+0.5
	}
	return r
}

// Bounds is the displayed extent of a trajectory, with the vertical axis
// already in the up-positive display convention.
type Bounds struct {
	X, Y, Z Range
}

// ComputeBounds covers every point of the track plus margin.
func ComputeBounds(xs, ys, ups []float64, margin float64) Bounds {
	return Bounds{
		X: extent(xs, margin),
		Y: extent(ys, margin),
		Z: extent(ups, margin),
	}
}

// setRange fixes both axes of p.
func setRange(p *plot.Plot, x, y Range) {
	p.X.Min, p.X.Max = x.Min, x.Max
	p.Y.Min, p.Y.Max = y.Min, y.Max
}

// equalAspect widens whichever axis range is over-scaled so that one data
// unit spans the same length on both axes when p is drawn onto c. Tick
// labels change the data area as ranges move, so it settles iteratively.
func equalAspect(p *plot.Plot, c draw.Canvas) {
	for i := 0; i < 4; i++ {
		da := p.DataCanvas(c)
		w := float64(da.Max.X - da.Min.X)
		h := float64(da.Max.Y - da.Min.Y)
		if w <= 0 || h <= 0 {
			return
		}
		sx := w / (p.X.Max - p.X.Min)
		sy := h / (p.Y.Max - p.Y.Min)
		switch {
		case sx > sy:
			widen(&p.X.Min, &p.X.Max, w/sy)
		case sy > sx:
			widen(&p.Y.Min, &p.Y.Max, h/sx)
		default:
			return
		}
	}
}

func widen(lo, hi *float64, span float64) {
	mid := (*lo + *hi) / 2
	*lo, *hi = mid-span/2, mid+span/2
}
