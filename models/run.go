package models

import (
	"errors"
	"fmt"
)

// ErrNonMonotonic is returned when a sample does not advance time.
var ErrNonMonotonic = errors.New("sample timestamp does not advance")

// Run is the ordered list of samples recorded by one recorder execution,
// together with the output directory it will be exported to.
type Run struct {
	Index   int    // NN of output_NN
	Dir     string // absolute export directory
	samples []Sample
}

// NewRun creates an empty run bound to an output directory.
func NewRun(index int, dir string) *Run {
	return &Run{Index: index, Dir: dir}
}

// Append records a sample. Timestamps must be strictly increasing.
func (r *Run) Append(s Sample) error {
	if n := len(r.samples); n > 0 && s.T <= r.samples[n-1].T {
		return fmt.Errorf("%w: t=%.6f after t=%.6f", ErrNonMonotonic, s.T, r.samples[n-1].T)
	}
	r.samples = append(r.samples, s)
	return nil
}

// Len returns the number of recorded samples.
func (r *Run) Len() int { return len(r.samples) }

// Samples returns a copy of the recorded samples.
func (r *Run) Samples() []Sample {
	out := make([]Sample, len(r.samples))
	copy(out, r.samples)
	return out
}

// Last returns the most recent sample, if any.
func (r *Run) Last() (Sample, bool) {
	if len(r.samples) == 0 {
		return Sample{}, false
	}
	return r.samples[len(r.samples)-1], true
}

// Duration is the timestamp of the last sample.
func (r *Run) Duration() float64 {
	s, ok := r.Last()
	if !ok {
		return 0
	}
	return s.T
}

// ─── column accessors ───────────────────────────────────────────────────

func (r *Run) column(f func(Sample) float64) []float64 {
	out := make([]float64, len(r.samples))
	for i, s := range r.samples {
		out[i] = f(s)
	}
	return out
}

func (r *Run) Times() []float64 { return r.column(func(s Sample) float64 { return s.T }) }
func (r *Run) Xs() []float64    { return r.column(func(s Sample) float64 { return s.Position.X }) }
func (r *Run) Ys() []float64    { return r.column(func(s Sample) float64 { return s.Position.Y }) }
func (r *Run) Zs() []float64    { return r.column(func(s Sample) float64 { return s.Position.Z }) }

// UpZs returns the vertical coordinate converted to up-positive. The stored
// samples keep the simulator's down-positive value.
func (r *Run) UpZs() []float64 {
	return r.column(func(s Sample) float64 { return ToUp(s.Position.Z) })
}

func (r *Run) Rolls() []float64   { return r.column(func(s Sample) float64 { return s.Orientation.Roll }) }
func (r *Run) Pitches() []float64 { return r.column(func(s Sample) float64 { return s.Orientation.Pitch }) }
func (r *Run) Yaws() []float64    { return r.column(func(s Sample) float64 { return s.Orientation.Yaw }) }
