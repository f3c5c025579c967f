package controller

import (
	"context"
	"reflect"
	"slices"
	"testing"
	"time"

	"trajectory-logger/models"
	"trajectory-logger/utils"
)

func controlCfg() utils.ControlConfig {
	cfg := utils.DefaultPilotConfig().Control
	cfg.PeriodMs = 5
	cfg.SettleMs = 0
	return cfg
}

func TestStartSequence(t *testing.T) {
	v := &fakeVehicle{}
	fc := NewFlightController(v, &scriptPilot{}, controlCfg())
	if err := fc.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	want := []string{"ping", "enable", "arm", "takeoff"}
	if got := v.Calls(); !reflect.DeepEqual(got, want) {
		t.Fatalf("calls = %v, want %v", got, want)
	}
	if !fc.Airborne() {
		t.Fatal("not airborne after takeoff")
	}
}

func TestStartWithoutTakeoff(t *testing.T) {
	v := &fakeVehicle{}
	cfg := controlCfg()
	cfg.TakeoffOnStart = false
	fc := NewFlightController(v, &scriptPilot{}, cfg)
	if err := fc.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	if fc.Airborne() {
		t.Fatal("airborne without takeoff")
	}
	want := []string{"ping", "enable", "arm", "state"}
	if got := v.Calls(); !reflect.DeepEqual(got, want) {
		t.Fatalf("calls = %v, want %v", got, want)
	}
}

func TestStartAdoptsAirborneVehicle(t *testing.T) {
	v := &fakeVehicle{flying: true}
	cfg := controlCfg()
	cfg.TakeoffOnStart = false
	fc := NewFlightController(v, &scriptPilot{}, cfg)
	if err := fc.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !fc.Airborne() {
		t.Fatal("vehicle already flying but controller thinks it is landed")
	}

	fc.sleep = func(context.Context, time.Duration) {}
	fc.Shutdown(context.Background())
	calls := v.Calls()
	if !slices.Contains(calls, "land") {
		t.Fatalf("no exit landing for an airborne vehicle: %v", calls)
	}
}

func TestRunRelaysCommandsUntilDone(t *testing.T) {
	cmd := models.Command{Velocity: models.Vec3{X: 1}, Frame: models.FrameBody}
	pilot := &scriptPilot{intents: []Intent{
		{Command: cmd},
		{Idle: true},
		{Command: cmd},
	}}
	v := &fakeVehicle{}
	fc := NewFlightController(v, pilot, controlCfg())

	var statuses int
	fc.OnStatus(func(time.Duration, models.Command, bool, FlightStats) { statuses++ })

	if err := fc.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	st := fc.Stats()
	if st.Ticks != 4 || st.Sent != 2 || st.Failed != 0 {
		t.Fatalf("stats = %+v, want 4 ticks, 2 sent", st)
	}
	if statuses != 3 {
		t.Fatalf("status callbacks = %d, want 3", statuses)
	}
	if len(v.commands) != 2 || v.commands[0] != cmd {
		t.Fatalf("commands = %v", v.commands)
	}
}

func TestSendFailuresAreNotFatal(t *testing.T) {
	pilot := &scriptPilot{intents: []Intent{{}, {}, {}}}
	v := &fakeVehicle{failMove: true}
	fc := NewFlightController(v, pilot, controlCfg())
	if err := fc.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if st := fc.Stats(); st.Failed != 3 || st.Sent != 0 {
		t.Fatalf("stats = %+v, want 3 failed", st)
	}
}

func TestLandHonouredOnceWhileAirborne(t *testing.T) {
	pilot := &scriptPilot{intents: []Intent{{Land: true}, {Land: true}, {}}}
	v := &fakeVehicle{}
	fc := NewFlightController(v, pilot, controlCfg())
	fc.airborne = true

	if err := fc.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	lands := 0
	for _, c := range v.Calls() {
		if c == "land" {
			lands++
		}
	}
	if lands != 1 {
		t.Fatalf("land called %d times, want 1", lands)
	}
	if fc.Airborne() {
		t.Fatal("still airborne after landing")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	pilot := PilotFunc(func(context.Context, time.Duration) Intent { return Intent{} })
	v := &fakeVehicle{}
	fc := NewFlightController(v, pilot, controlCfg())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- fc.Run(ctx) }()
	select {
	case err := <-done:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestShutdownSequence(t *testing.T) {
	v := &fakeVehicle{}
	fc := NewFlightController(v, &scriptPilot{}, controlCfg())
	fc.airborne = true
	fc.Shutdown(context.Background())

	want := []string{"hover", "land", "disarm", "release"}
	if got := v.Calls(); !reflect.DeepEqual(got, want) {
		t.Fatalf("calls = %v, want %v", got, want)
	}
}

func TestShutdownContinuesAfterLandFailure(t *testing.T) {
	v := &fakeVehicle{failLand: true}
	fc := NewFlightController(v, &scriptPilot{}, controlCfg())
	fc.airborne = true
	fc.Shutdown(context.Background())

	want := []string{"hover", "land", "disarm", "release"}
	if got := v.Calls(); !reflect.DeepEqual(got, want) {
		t.Fatalf("calls = %v, want %v", got, want)
	}
}

func TestShutdownOnGroundSkipsLanding(t *testing.T) {
	v := &fakeVehicle{}
	fc := NewFlightController(v, &scriptPilot{}, controlCfg())
	fc.Shutdown(context.Background())

	want := []string{"disarm", "release"}
	if got := v.Calls(); !reflect.DeepEqual(got, want) {
		t.Fatalf("calls = %v, want %v", got, want)
	}
}
