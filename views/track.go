package views

import (
	"trajectory-logger/models"
	"trajectory-logger/utils"
)

// track holds a run in display form: vertical axis up-positive and attitude
// angles unwrapped, so nothing jumps by 360° on the plots.
type track struct {
	t, x, y, up      []float64
	roll, pitch, yaw []float64
}

func newTrack(run *models.Run) track {
	return track{
		t:     run.Times(),
		x:     run.Xs(),
		y:     run.Ys(),
		up:    run.UpZs(),
		roll:  utils.UnwrapDegrees(run.Rolls()),
		pitch: utils.UnwrapDegrees(run.Pitches()),
		yaw:   utils.UnwrapDegrees(run.Yaws()),
	}
}

func (tr track) len() int { return len(tr.t) }

// prefix returns the first n samples, sharing storage with tr.
func (tr track) prefix(n int) track {
	n = min(n, tr.len())
	return track{
		t: tr.t[:n], x: tr.x[:n], y: tr.y[:n], up: tr.up[:n],
		roll: tr.roll[:n], pitch: tr.pitch[:n], yaw: tr.yaw[:n],
	}
}

// lastT is the time of the final sample, or 0 for an empty track.
func (tr track) lastT() float64 {
	if tr.len() == 0 {
		return 0
	}
	return tr.t[tr.len()-1]
}

func (tr track) bounds(margin float64) Bounds {
	return ComputeBounds(tr.x, tr.y, tr.up, margin)
}
