package models

import (
	"errors"
	"testing"
)

func TestRunAppendStrictlyIncreasing(t *testing.T) {
	r := NewRun(1, "output/output_01")

	for i, ts := range []float64{0, 0.05, 0.1, 0.15} {
		if err := r.Append(Sample{T: ts}); err != nil {
			t.Fatalf("append %d (t=%v): %v", i, ts, err)
		}
	}
	if r.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", r.Len())
	}

	for _, ts := range []float64{0.15, 0.1} {
		err := r.Append(Sample{T: ts})
		if !errors.Is(err, ErrNonMonotonic) {
			t.Errorf("Append(t=%v) err = %v, want ErrNonMonotonic", ts, err)
		}
	}
	if r.Len() != 4 {
		t.Errorf("rejected samples were stored: Len() = %d", r.Len())
	}

	times := r.Times()
	for i := 1; i < len(times); i++ {
		if times[i] <= times[i-1] {
			t.Errorf("times not strictly increasing at %d: %v", i, times)
		}
	}
}

func TestUpTransformRoundTrip(t *testing.T) {
	for _, z := range []float64{0, -3.25, 7.125, 1e-9, -1e6} {
		if got := FromUp(ToUp(z)); got != z {
			t.Errorf("FromUp(ToUp(%v)) = %v", z, got)
		}
		if ToUp(z) != -z {
			t.Errorf("ToUp(%v) = %v, want %v", z, ToUp(z), -z)
		}
	}
}

func TestUpZsDoesNotMutateSamples(t *testing.T) {
	r := NewRun(1, "")
	_ = r.Append(Sample{T: 0, Position: Vec3{Z: -2}})
	_ = r.Append(Sample{T: 1, Position: Vec3{Z: -4}})

	up := r.UpZs()
	if up[0] != 2 || up[1] != 4 {
		t.Errorf("UpZs() = %v, want [2 4]", up)
	}
	up[0] = 100

	zs := r.Zs()
	if zs[0] != -2 || zs[1] != -4 {
		t.Errorf("stored Z changed: %v", zs)
	}
}

func TestSamplesReturnsCopy(t *testing.T) {
	r := NewRun(1, "")
	_ = r.Append(Sample{T: 0, Position: Vec3{X: 1}})

	s := r.Samples()
	s[0].Position.X = 42
	if last, _ := r.Last(); last.Position.X != 1 {
		t.Errorf("Samples() exposed internal storage")
	}
}
