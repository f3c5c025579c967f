package controller

import (
	"context"
	"time"

	"trajectory-logger/models"
)

// PoseSource yields the vehicle's current pose. *airsim.Client satisfies it.
type PoseSource interface {
	Pose(ctx context.Context) (models.Pose, error)
}

// Vehicle is the command surface the flight controller drives.
type Vehicle interface {
	PoseSource
	Ping(ctx context.Context) error
	EnableAPIControl(ctx context.Context, on bool) error
	ArmDisarm(ctx context.Context, arm bool) error
	Takeoff(ctx context.Context, timeout time.Duration) error
	Land(ctx context.Context, timeout time.Duration) error
	Hover(ctx context.Context) error
	Flying(ctx context.Context) (bool, error)
	MoveByVelocity(ctx context.Context, cmd models.Command, duration time.Duration) error
}

// Intent is what a pilot wants done on one control tick.
type Intent struct {
	Command models.Command
	Land    bool // request a landing; honoured once while airborne
	Done    bool // stop the control loop
	Idle    bool // send nothing this tick
}

// Pilot produces one Intent per control tick. elapsed is the time since the
// control loop started.
type Pilot interface {
	Step(ctx context.Context, elapsed time.Duration) Intent
}

// PilotFunc adapts an ordinary function to the Pilot interface.
type PilotFunc func(ctx context.Context, elapsed time.Duration) Intent

func (f PilotFunc) Step(ctx context.Context, elapsed time.Duration) Intent { return f(ctx, elapsed) }
