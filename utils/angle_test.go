package utils

import (
	"math"
	"testing"
)

func TestUnwrapDegreesCrossing180(t *testing.T) {
	in := []float64{170, 175, -179, -175}
	got := UnwrapDegrees(in)

	want := []float64{170, 175, 181, 185}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("UnwrapDegrees(%v) = %v, want %v", in, got, want)
		}
	}
	for i := 1; i < len(got); i++ {
		if math.Abs(got[i]-got[i-1]) > 180 {
			t.Errorf("jump of %v between %d and %d", got[i]-got[i-1], i-1, i)
		}
	}
	if in[2] != -179 {
		t.Errorf("input modified: %v", in)
	}
}

func TestUnwrapDegreesMultipleTurns(t *testing.T) {
	// Three full clockwise turns sampled every 30° in wrapped form.
	var in []float64
	for a := 0.0; a <= 1080; a += 30 {
		in = append(in, math.Mod(a+180, 360)-180)
	}
	got := UnwrapDegrees(in)
	for i, v := range got {
		if want := float64(i) * 30; math.Abs(v-want) > 1e-9 {
			t.Fatalf("sample %d = %v, want %v", i, v, want)
		}
	}
}

func TestUnwrapDegreesNegativeDirection(t *testing.T) {
	got := UnwrapDegrees([]float64{-170, -178, 176, 170})
	want := []float64{-170, -178, -184, -190}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestUnwrapDegreesSmallInputs(t *testing.T) {
	if got := UnwrapDegrees(nil); len(got) != 0 {
		t.Errorf("nil input gave %v", got)
	}
	if got := UnwrapDegrees([]float64{-179}); got[0] != -179 {
		t.Errorf("single input gave %v", got)
	}
}
