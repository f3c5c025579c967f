package controller

import (
	"context"
	"time"

	"trajectory-logger/models"
	"trajectory-logger/utils"
)

// KeyState reports held keys. *keyboard.Keyboard satisfies it.
type KeyState interface {
	Pressed(r rune) bool
	Quit() bool
}

const (
	ModeRamp   = "ramp"
	ModeDirect = "direct"
)

// Key bindings. Body frame, NED: +z is down.
const (
	KeyForward  = 'w'
	KeyBack     = 's'
	KeyRight    = 'd'
	KeyLeft     = 'a'
	KeyDown     = 'i'
	KeyUp       = 'u'
	KeyYawRight = 'l'
	KeyYawLeft  = 'j'
	KeyYawStop  = 'k'
	KeyLand     = 'p'
)

// axis holds the state of one commanded channel.
type axis struct {
	pos, neg     rune
	max          float64
	accel, decel float64

	target float64 // integrated set-point
	out    float64 // smoothed value actually sent
}

// direction returns +1, -1 or 0. Opposing keys cancel out.
func (a *axis) direction(keys KeyState) float64 {
	p, n := keys.Pressed(a.pos), keys.Pressed(a.neg)
	switch {
	case p && !n:
		return 1
	case n && !p:
		return -1
	}
	return 0
}

// ramp integrates the target toward ±max while held and decays it toward
// zero, without overshoot, when released.
func (a *axis) ramp(dir, dt float64) {
	if dir != 0 {
		a.target = clamp(a.target+dir*a.accel*dt, -a.max, a.max)
		return
	}
	step := a.decel * dt
	switch {
	case a.target > 0:
		a.target = max(0, a.target-step)
	case a.target < 0:
		a.target = min(0, a.target+step)
	}
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}

// KeyMapper turns held keys into body-frame velocity and yaw-rate commands.
//
// In ramp mode a held key accelerates its axis and release decelerates it,
// and the sent command is low-pass filtered. In direct mode a held key maps
// straight to the axis maximum.
type KeyMapper struct {
	keys  KeyState
	mode  string
	alpha float64
	dt    float64

	vx, vy, vz, yaw axis
}

// NewKeyMapper builds a mapper that is stepped once per control period.
func NewKeyMapper(keys KeyState, cfg utils.KeyMapConfig, period time.Duration) *KeyMapper {
	mode := cfg.Mode
	if mode == "" {
		mode = ModeRamp
	}
	return &KeyMapper{
		keys:  keys,
		mode:  mode,
		alpha: cfg.SmoothAlpha,
		dt:    period.Seconds(),
		vx:    axis{pos: KeyForward, neg: KeyBack, max: cfg.MaxSpeedXY, accel: cfg.AccelXY, decel: cfg.DecelXY},
		vy:    axis{pos: KeyRight, neg: KeyLeft, max: cfg.MaxSpeedXY, accel: cfg.AccelXY, decel: cfg.DecelXY},
		vz:    axis{pos: KeyDown, neg: KeyUp, max: cfg.MaxSpeedZ, accel: cfg.AccelZ, decel: cfg.DecelZ},
		yaw:   axis{pos: KeyYawRight, neg: KeyYawLeft, max: cfg.MaxYawRate, accel: cfg.AccelYaw, decel: cfg.DecelYaw},
	}
}

// Step samples the keyboard and advances every axis by one period.
func (m *KeyMapper) Step(_ context.Context, _ time.Duration) Intent {
	if m.keys.Quit() {
		return Intent{Done: true}
	}

	for _, a := range m.axes() {
		dir := a.direction(m.keys)
		if m.mode == ModeDirect {
			a.target = dir * a.max
		} else {
			a.ramp(dir, m.dt)
		}
	}
	if m.keys.Pressed(KeyYawStop) {
		m.yaw.target = 0
	}
	for _, a := range m.axes() {
		if m.mode == ModeDirect {
			a.out = a.target
		} else {
			a.out += m.alpha * (a.target - a.out)
		}
	}

	return Intent{
		Command: models.Command{
			Velocity: models.Vec3{X: m.vx.out, Y: m.vy.out, Z: m.vz.out},
			YawRate:  m.yaw.out,
			Frame:    models.FrameBody,
		},
		Land: m.keys.Pressed(KeyLand),
	}
}

func (m *KeyMapper) axes() [4]*axis {
	return [4]*axis{&m.vx, &m.vy, &m.vz, &m.yaw}
}
