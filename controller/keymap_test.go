package controller

import (
	"context"
	"math"
	"testing"
	"time"

	"trajectory-logger/models"
	"trajectory-logger/utils"
)

const dt = 50 * time.Millisecond

func newTestMapper(keys KeyState, mode string) *KeyMapper {
	cfg := utils.DefaultPilotConfig().Keys
	cfg.Mode = mode
	return NewKeyMapper(keys, cfg, dt)
}

func step(m *KeyMapper, n int) Intent {
	var in Intent
	for i := 0; i < n; i++ {
		in = m.Step(context.Background(), 0)
	}
	return in
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestRampAccelerates(t *testing.T) {
	keys := newFakeKeys(KeyForward)
	m := newTestMapper(keys, ModeRamp)

	in := step(m, 10)
	if !near(m.vx.target, 1.5) { // 10 × 3 m/s² × 0.05 s
		t.Fatalf("vx target = %v, want 1.5", m.vx.target)
	}
	if in.Command.Velocity.X <= 0 || in.Command.Velocity.X >= m.vx.target {
		t.Fatalf("smoothed vx = %v, want in (0, target)", in.Command.Velocity.X)
	}
	if in.Command.Frame != models.FrameBody {
		t.Fatalf("frame = %v, want body", in.Command.Frame)
	}
	if in.Command.Velocity.Y != 0 || in.Command.Velocity.Z != 0 || in.Command.YawRate != 0 {
		t.Fatalf("unexpected motion on idle axes: %v", in.Command)
	}
}

func TestRampClampsAtMax(t *testing.T) {
	keys := newFakeKeys(KeyBack, KeyYawRight)
	m := newTestMapper(keys, ModeRamp)
	in := step(m, 200)
	if m.vx.target != -4 {
		t.Fatalf("vx target = %v, want -4", m.vx.target)
	}
	if m.yaw.target != 90 {
		t.Fatalf("yaw target = %v, want 90", m.yaw.target)
	}
	if math.Abs(in.Command.Velocity.X+4) > 1e-6 {
		t.Fatalf("smoothed vx = %v, want ≈ -4", in.Command.Velocity.X)
	}
}

func TestRampDecaysWithoutOvershoot(t *testing.T) {
	keys := newFakeKeys(KeyForward)
	m := newTestMapper(keys, ModeRamp)
	step(m, 10)

	keys.release()
	step(m, 1)
	if !near(m.vx.target, 1.5-3.5*0.05) {
		t.Fatalf("vx target after one release tick = %v", m.vx.target)
	}
	step(m, 100)
	if m.vx.target != 0 {
		t.Fatalf("vx target = %v, want exactly 0", m.vx.target)
	}
}

func TestOpposingKeysCountAsReleased(t *testing.T) {
	keys := newFakeKeys(KeyRight)
	m := newTestMapper(keys, ModeRamp)
	step(m, 10)
	before := m.vy.target

	keys.hold(KeyLeft)
	step(m, 1)
	if m.vy.target >= before {
		t.Fatalf("vy target %v did not decay from %v", m.vy.target, before)
	}
	if m.vy.target < 0 {
		t.Fatalf("vy target overshot to %v", m.vy.target)
	}
}

func TestVerticalKeysAreNED(t *testing.T) {
	m := newTestMapper(newFakeKeys(KeyDown), ModeRamp)
	step(m, 5)
	if m.vz.target <= 0 {
		t.Fatalf("down key gave vz target %v, want positive (NED)", m.vz.target)
	}
	m = newTestMapper(newFakeKeys(KeyUp), ModeRamp)
	step(m, 5)
	if m.vz.target >= 0 {
		t.Fatalf("up key gave vz target %v, want negative (NED)", m.vz.target)
	}
}

func TestYawStopZeroesTarget(t *testing.T) {
	keys := newFakeKeys(KeyYawLeft)
	m := newTestMapper(keys, ModeRamp)
	step(m, 10)
	if m.yaw.target >= 0 {
		t.Fatalf("yaw target = %v, want negative", m.yaw.target)
	}
	keys.hold(KeyYawStop)
	step(m, 1)
	if m.yaw.target != 0 {
		t.Fatalf("yaw target = %v after K, want 0", m.yaw.target)
	}
}

func TestLandAndQuit(t *testing.T) {
	keys := newFakeKeys(KeyLand)
	m := newTestMapper(keys, ModeRamp)
	if in := step(m, 1); !in.Land || in.Done {
		t.Fatalf("intent = %+v, want Land", in)
	}
	keys.quit = true
	if in := step(m, 1); !in.Done {
		t.Fatalf("intent = %+v, want Done", in)
	}
}

func TestDirectMode(t *testing.T) {
	keys := newFakeKeys(KeyForward, KeyYawLeft)
	m := newTestMapper(keys, ModeDirect)

	in := step(m, 1)
	if in.Command.Velocity.X != 4 || in.Command.YawRate != -90 {
		t.Fatalf("command = %v, want vx=4 yaw=-90", in.Command)
	}
	keys.release()
	in = step(m, 1)
	if !in.Command.IsZero() {
		t.Fatalf("command = %v after release, want zero", in.Command)
	}
	keys.hold(KeyForward, KeyBack)
	if in = step(m, 1); in.Command.Velocity.X != 0 {
		t.Fatalf("opposing keys gave vx=%v", in.Command.Velocity.X)
	}
}
