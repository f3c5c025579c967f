package models

// Sample is one recorded pose with its time since the start of the run.
// Samples are never modified after they are appended to a Run.
type Sample struct {
	T           float64     `json:"t"` // seconds since run start
	Position    Vec3        `json:"position"`
	Orientation Orientation `json:"orientation"`
}

// NewSample stamps a pose with the given elapsed time.
func NewSample(t float64, p Pose) Sample {
	return Sample{T: t, Position: p.Position, Orientation: p.Orientation}
}
