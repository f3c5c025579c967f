package controller

import (
	"context"
	"time"

	"trajectory-logger/models"
	"trajectory-logger/utils"
)

// RectangleWaypoints lays out a closed rectangle of width (x) by height (y)
// at altitude metres above origin. The first waypoint climbs straight up.
func RectangleWaypoints(origin models.Vec3, width, height, altitude float64) []models.Vec3 {
	z := models.FromUp(models.ToUp(origin.Z) + altitude)
	x0, y0 := origin.X, origin.Y
	return []models.Vec3{
		{X: x0, Y: y0, Z: z},
		{X: x0 + width, Y: y0, Z: z},
		{X: x0 + width, Y: y0 + height, Z: z},
		{X: x0, Y: y0 + height, Z: z},
		{X: x0, Y: y0, Z: z},
	}
}

// Mission flies a fixed list of world-frame waypoints.
//
// Each tick it reads the pose and commands a velocity toward the active
// waypoint: its magnitude is speed, or the remaining distance once that is
// smaller. A waypoint is reached within tolerance, or abandoned once its
// leg exceeds the segment timeout.
type Mission struct {
	src PoseSource
	cfg utils.MissionConfig

	waypoints []models.Vec3 // nil until the first pose for relative shapes
	idx       int
	legStart  time.Duration
	done      bool
}

func NewMission(src PoseSource, cfg utils.MissionConfig) *Mission {
	m := &Mission{src: src, cfg: cfg}
	if cfg.Shape == "waypoints" {
		for _, w := range cfg.Waypoints {
			m.waypoints = append(m.waypoints, models.Vec3{X: w[0], Y: w[1], Z: w[2]})
		}
	}
	return m
}

// Step implements Pilot.
func (m *Mission) Step(ctx context.Context, elapsed time.Duration) Intent {
	if m.done {
		return Intent{Done: true}
	}

	pose, err := m.src.Pose(ctx)
	if err != nil {
		utils.L().Warn("mission: pose unavailable, tick skipped: %v", err)
		return Intent{Idle: true}
	}
	pos := pose.Position

	if m.waypoints == nil {
		m.waypoints = RectangleWaypoints(pos, m.cfg.Width, m.cfg.Height, m.cfg.Altitude)
		m.legStart = elapsed
		utils.L().Info("mission: %d waypoints from origin %s", len(m.waypoints), pos)
	}

	for {
		if m.idx >= len(m.waypoints) {
			m.done = true
			utils.L().Info("mission complete")
			return Intent{Done: true, Land: m.cfg.LandOnComplete}
		}
		target := m.waypoints[m.idx]
		dist := target.Sub(pos).Norm()
		timedOut := m.cfg.SegmentTimeoutS > 0 && elapsed-m.legStart > m.cfg.SegmentTimeout()
		if dist > m.cfg.Tolerance && !timedOut {
			break
		}
		if timedOut {
			utils.L().Warn("mission: waypoint %d %s timed out at %.2f m", m.idx+1, target, dist)
		} else {
			utils.L().Info("mission: reached waypoint %d %s", m.idx+1, target)
		}
		m.idx++
		m.legStart = elapsed
	}

	delta := m.waypoints[m.idx].Sub(pos)
	dist := delta.Norm()
	vel := delta.Scale(min(m.cfg.Speed, dist) / dist)
	return Intent{Command: models.Command{Velocity: vel, Frame: models.FrameWorld}}
}

// Progress returns the active waypoint index and the waypoint count.
func (m *Mission) Progress() (int, int) {
	return m.idx, len(m.waypoints)
}
