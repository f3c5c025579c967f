package models

import (
	"math"
	"testing"
)

func TestQuaternionToEuler(t *testing.T) {
	half := func(deg float64) float64 { return deg * math.Pi / 360 }

	tests := []struct {
		name string
		q    Quaternion
		want Orientation
	}{
		{"identity", Quaternion{W: 1}, Orientation{}},
		{"yaw 90", Quaternion{W: math.Cos(half(90)), Z: math.Sin(half(90))}, Orientation{Yaw: 90}},
		{"yaw -135", Quaternion{W: math.Cos(half(-135)), Z: math.Sin(half(-135))}, Orientation{Yaw: -135}},
		{"roll 30", Quaternion{W: math.Cos(half(30)), X: math.Sin(half(30))}, Orientation{Roll: 30}},
		{"pitch -20", Quaternion{W: math.Cos(half(-20)), Y: math.Sin(half(-20))}, Orientation{Pitch: -20}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.q.ToEuler()
			for _, c := range []struct {
				axis      string
				got, want float64
			}{
				{"roll", got.Roll, tc.want.Roll},
				{"pitch", got.Pitch, tc.want.Pitch},
				{"yaw", got.Yaw, tc.want.Yaw},
			} {
				if math.IsNaN(c.got) || math.Abs(c.got-c.want) > 0.05 {
					t.Errorf("%s = %v, want %v", c.axis, c.got, c.want)
				}
			}
		})
	}
}

func TestQuaternionPitchClamped(t *testing.T) {
	// Slightly denormalised past the pole must not produce NaN.
	got := Quaternion{W: 0.7072, Y: 0.7072}.ToEuler()
	if math.IsNaN(got.Pitch) || math.Abs(got.Pitch-90) > 1e-9 {
		t.Errorf("pitch = %v, want 90", got.Pitch)
	}
}
