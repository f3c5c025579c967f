package controller

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"trajectory-logger/models"
	"trajectory-logger/utils"
)

// FlightStats counts what the control loop has done so far.
type FlightStats struct {
	Ticks  uint64
	Sent   uint64
	Failed uint64
}

// StatusFunc is called after every tick with the command just handled.
type StatusFunc func(elapsed time.Duration, cmd models.Command, airborne bool, st FlightStats)

// FlightController owns the vehicle for the duration of a flight: it brings
// the vehicle up, relays one pilot command per control period and brings it
// back down on exit.
type FlightController struct {
	vehicle Vehicle
	pilot   Pilot
	cfg     utils.ControlConfig
	status  StatusFunc

	airborne bool
	sleep    func(ctx context.Context, d time.Duration)

	ticks  uint64
	sent   uint64
	failed uint64
}

func NewFlightController(v Vehicle, p Pilot, cfg utils.ControlConfig) *FlightController {
	return &FlightController{
		vehicle: v,
		pilot:   p,
		cfg:     cfg,
		sleep:   sleepCtx,
	}
}

// OnStatus registers a per-tick status callback.
func (fc *FlightController) OnStatus(f StatusFunc) { fc.status = f }

// Airborne reports whether the controller believes the vehicle is flying.
func (fc *FlightController) Airborne() bool { return fc.airborne }

// Start confirms the connection, takes API control, arms and, when
// configured, takes off. Any failure here is fatal to the flight.
func (fc *FlightController) Start(ctx context.Context) error {
	if err := fc.vehicle.Ping(ctx); err != nil {
		return fmt.Errorf("confirm connection: %w", err)
	}
	utils.L().Info("connected to simulator")

	if err := fc.vehicle.EnableAPIControl(ctx, true); err != nil {
		return fmt.Errorf("enable api control: %w", err)
	}
	if err := fc.vehicle.ArmDisarm(ctx, true); err != nil {
		return fmt.Errorf("arm: %w", err)
	}
	utils.L().Info("api control enabled & armed")

	if fc.cfg.TakeoffOnStart {
		utils.L().Info("taking off...")
		if err := fc.vehicle.Takeoff(ctx, seconds(fc.cfg.TakeoffTimeoutS)); err != nil {
			return fmt.Errorf("takeoff: %w", err)
		}
		fc.airborne = true
		utils.L().Info("takeoff done")
		return nil
	}

	// Without a takeoff the vehicle may already be in the air.
	flying, err := fc.vehicle.Flying(ctx)
	if err != nil {
		utils.L().Warn("landed state: %v", err)
		return nil
	}
	fc.airborne = flying
	if flying {
		utils.L().Info("vehicle already airborne")
	}
	return nil
}

// Run relays pilot intents until ctx is cancelled or the pilot is done.
// Send failures are logged and the loop moves on to the next tick.
func (fc *FlightController) Run(ctx context.Context) error {
	period := fc.cfg.Period()
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	start := time.Now()
	utils.L().Info("control loop started  period=%v", period)

	for {
		select {
		case <-ctx.Done():
			utils.L().Info("control loop stopped: %v", ctx.Err())
			return nil
		case <-ticker.C:
		}

		elapsed := time.Since(start)
		if done := fc.tick(ctx, elapsed); done {
			utils.L().Info("control loop finished  %s", fc.summary())
			return nil
		}
	}
}

// tick handles a single intent and reports whether the loop should end.
func (fc *FlightController) tick(ctx context.Context, elapsed time.Duration) bool {
	atomic.AddUint64(&fc.ticks, 1)
	in := fc.pilot.Step(ctx, elapsed)

	if in.Land && fc.airborne {
		utils.L().Info("landing...")
		if err := fc.vehicle.Land(ctx, seconds(fc.cfg.LandTimeoutS)); err != nil {
			utils.L().Warn("land: %v", err)
		} else {
			utils.L().Info("landing done")
		}
		fc.airborne = false
	}
	if in.Done {
		return true
	}

	if !in.Idle {
		if err := fc.vehicle.MoveByVelocity(ctx, in.Command, fc.cfg.Period()); err != nil {
			atomic.AddUint64(&fc.failed, 1)
			if ctx.Err() == nil {
				utils.L().Warn("send %s: %v", in.Command, err)
			}
		} else {
			atomic.AddUint64(&fc.sent, 1)
		}
	}

	if fc.status != nil {
		fc.status(elapsed, in.Command, fc.airborne, fc.Stats())
	}
	return false
}

// Shutdown hovers, lands and releases the vehicle. It never fails; each
// step is attempted and its error logged. ctx should be fresh, since the
// run context is usually cancelled by now.
func (fc *FlightController) Shutdown(ctx context.Context) {
	if fc.cfg.LandOnExit && fc.airborne {
		utils.L().Info("stopping, landing...")
		if err := fc.vehicle.Hover(ctx); err != nil {
			utils.L().Warn("hover: %v", err)
		}
		fc.sleep(ctx, time.Duration(fc.cfg.SettleMs)*time.Millisecond)
		if err := fc.vehicle.Land(ctx, seconds(fc.cfg.LandTimeoutS)); err != nil {
			utils.L().Error("land on exit: %v", err)
		} else {
			fc.airborne = false
			utils.L().Info("landed")
		}
	}
	if err := fc.vehicle.ArmDisarm(ctx, false); err != nil {
		utils.L().Warn("disarm: %v", err)
	}
	if err := fc.vehicle.EnableAPIControl(ctx, false); err != nil {
		utils.L().Warn("release api control: %v", err)
	}
	utils.L().Info("flight controller shut down  %s", fc.summary())
}

// Stats returns a snapshot of the loop counters.
func (fc *FlightController) Stats() FlightStats {
	return FlightStats{
		Ticks:  atomic.LoadUint64(&fc.ticks),
		Sent:   atomic.LoadUint64(&fc.sent),
		Failed: atomic.LoadUint64(&fc.failed),
	}
}

func (fc *FlightController) summary() string {
	st := fc.Stats()
	return fmt.Sprintf("(ticks=%d, sent=%d, failed=%d)", st.Ticks, st.Sent, st.Failed)
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func sleepCtx(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
