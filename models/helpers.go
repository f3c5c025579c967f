package models

import (
	"math"
	"strconv"
)

// ─── shared numeric helpers (package-private) ───────────────────────────

func ftoa(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

func rad2deg(r float64) float64 { return r * 180 / math.Pi }
