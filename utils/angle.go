package utils

import (
	"math"
)

// UnwrapDegrees removes artificial 360° jumps from an angle sequence so that
// no two consecutive values differ by more than 180°. The first value is
// kept as is; the input slice is not modified.
func UnwrapDegrees(angles []float64) []float64 {
	out := make([]float64, len(angles))
	if len(angles) == 0 {
		return out
	}
	out[0] = angles[0]
	var correction float64
	for i := 1; i < len(angles); i++ {
		d := angles[i] - angles[i-1]
		// Wrap the raw step into [-180, 180).
		dm := math.Mod(d+180, 360)
		if dm < 0 {
			dm += 360
		}
		dm -= 180
		// A step of exactly +180 stays +180 rather than flipping to -180.
		if dm == -180 && d > 0 {
			dm = 180
		}
		if math.Abs(d) >= 180 {
			correction += dm - d
		}
		out[i] = angles[i] + correction
	}
	return out
}
