package controller

import (
	"context"
	"errors"
	"sync"
	"time"

	"trajectory-logger/models"
)

var errSim = errors.New("simulated failure")

// fakeVehicle records every call and can be told to fail specific ones.
type fakeVehicle struct {
	mu       sync.Mutex
	calls    []string
	commands []models.Command
	poses    []models.Pose // consumed in order; the last one repeats
	failPose map[int]bool  // 0-based pose query indexes that fail
	failMove bool
	failLand bool
	flying   bool // landed state reported to Flying
	nPose    int
}

func (v *fakeVehicle) record(name string) {
	v.mu.Lock()
	v.calls = append(v.calls, name)
	v.mu.Unlock()
}

func (v *fakeVehicle) Calls() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]string(nil), v.calls...)
}

func (v *fakeVehicle) Ping(context.Context) error { v.record("ping"); return nil }

func (v *fakeVehicle) EnableAPIControl(_ context.Context, on bool) error {
	if on {
		v.record("enable")
	} else {
		v.record("release")
	}
	return nil
}

func (v *fakeVehicle) ArmDisarm(_ context.Context, arm bool) error {
	if arm {
		v.record("arm")
	} else {
		v.record("disarm")
	}
	return nil
}

func (v *fakeVehicle) Takeoff(context.Context, time.Duration) error { v.record("takeoff"); return nil }

func (v *fakeVehicle) Land(context.Context, time.Duration) error {
	v.record("land")
	if v.failLand {
		return errSim
	}
	return nil
}

func (v *fakeVehicle) Hover(context.Context) error { v.record("hover"); return nil }

func (v *fakeVehicle) Flying(context.Context) (bool, error) { v.record("state"); return v.flying, nil }

func (v *fakeVehicle) MoveByVelocity(_ context.Context, cmd models.Command, _ time.Duration) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.calls = append(v.calls, "move")
	if v.failMove {
		return errSim
	}
	v.commands = append(v.commands, cmd)
	return nil
}

func (v *fakeVehicle) Pose(context.Context) (models.Pose, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	i := v.nPose
	v.nPose++
	if v.failPose[i] {
		return models.Pose{}, errSim
	}
	if len(v.poses) == 0 {
		return models.Pose{}, nil
	}
	if i >= len(v.poses) {
		i = len(v.poses) - 1
	}
	return v.poses[i], nil
}

// fakeKeys is a KeyState with explicitly held keys.
type fakeKeys struct {
	held map[rune]bool
	quit bool
}

func newFakeKeys(keys ...rune) *fakeKeys {
	k := &fakeKeys{held: map[rune]bool{}}
	k.hold(keys...)
	return k
}

func (k *fakeKeys) hold(keys ...rune) {
	for _, r := range keys {
		k.held[r] = true
	}
}

func (k *fakeKeys) release() { k.held = map[rune]bool{} }

func (k *fakeKeys) Pressed(r rune) bool { return k.held[r] }
func (k *fakeKeys) Quit() bool          { return k.quit }

// scriptPilot replays a fixed list of intents, then reports Done.
type scriptPilot struct {
	intents []Intent
	n       int
}

func (p *scriptPilot) Step(context.Context, time.Duration) Intent {
	if p.n >= len(p.intents) {
		return Intent{Done: true}
	}
	in := p.intents[p.n]
	p.n++
	return in
}

// stepClock advances by step on every reading.
type stepClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(c.step)
	return c.now
}

// fakeExporter records what it was asked to export.
type fakeExporter struct {
	calls   int
	samples int
	dir     string
	err     error
}

func (e *fakeExporter) Export(run *models.Run, dir string) error {
	e.calls++
	e.samples = run.Len()
	e.dir = dir
	return e.err
}
