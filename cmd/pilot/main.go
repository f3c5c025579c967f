package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"trajectory-logger/controller"
	"trajectory-logger/models"
	"trajectory-logger/services/airsim"
	"trajectory-logger/services/keyboard"
	"trajectory-logger/utils"
)

func main() {
	// ── CLI flags ────────────────────────────────────────────────────
	cfgPath := flag.String("config", "config/pilot.yaml", "path to pilot.yaml")
	logFile := flag.String("log", "", "log file path (overrides log.file; the terminal is busy while flying)")
	mission := flag.Bool("mission", false, "fly the configured mission instead of reading the keyboard")
	flag.Parse()

	// ── Config + logger ──────────────────────────────────────────────
	cfg, cfgErr := utils.LoadPilotConfig(*cfgPath)
	logPath := *logFile
	if logPath == "" && cfgErr == nil {
		logPath = cfg.Log.File
	}
	logger := utils.InitLogger(utils.INFO, logPath)
	defer logger.Close()
	if cfgErr != nil {
		utils.L().Fatal("load pilot config: %v", cfgErr)
	}
	logger.SetLevel(utils.ParseLevel(cfg.Log.Level))
	if *mission {
		cfg.Mission.Enabled = true
		if err := cfg.Validate(); err != nil {
			utils.L().Fatal("mission config: %v", err)
		}
	}

	utils.L().Info("═══════════════════════════════════════════════════")
	utils.L().Info("  Pilot  ·  vehicle=%s  ·  mode=%s", cfg.Simulator.Vehicle, pilotMode(cfg))
	utils.L().Info("  GOMAXPROCS=%d  ·  PID=%d", runtime.GOMAXPROCS(0), os.Getpid())
	utils.L().Info("═══════════════════════════════════════════════════")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// ── Simulator + lifecycle ────────────────────────────────────────
	client, err := airsim.Dial(ctx, cfg.Simulator.Address, cfg.Simulator.Vehicle, cfg.Simulator.Timeout())
	if err != nil {
		utils.L().Fatal("connect: %v", err)
	}
	defer client.Close()

	kb, err := keyboard.Open(cfg.Keys.HoldWindow())
	if err != nil {
		utils.L().Fatal("open terminal: %v", err)
	}

	var pilot controller.Pilot
	var mis *controller.Mission
	if cfg.Mission.Enabled {
		mis = controller.NewMission(client, cfg.Mission)
		pilot = mis
	} else {
		pilot = controller.NewKeyMapper(kb, cfg.Keys, cfg.Control.Period())
	}
	fc := controller.NewFlightController(client, pilot, cfg.Control)

	// The screen owns the terminal from here until kb.Close.
	kb.Render("Pilot  ·  starting", []string{"connecting, arming and taking off..."})
	logger.SetConsole(false)
	restore := func() {
		kb.Close()
		logger.SetConsole(true)
	}

	if err := fc.Start(ctx); err != nil {
		restore()
		fc.Shutdown(context.Background())
		utils.L().Fatal("start flight: %v", err)
	}

	fc.OnStatus(func(elapsed time.Duration, cmd models.Command, airborne bool, st controller.FlightStats) {
		lines := []string{
			fmt.Sprintf("mode      %s", pilotMode(cfg)),
			fmt.Sprintf("command   %s", cmd),
			fmt.Sprintf("airborne  %v", airborne),
			fmt.Sprintf("sent      %d  (failed %d)", st.Sent, st.Failed),
		}
		if mis != nil {
			i, n := mis.Progress()
			lines = append(lines, fmt.Sprintf("waypoint  %d / %d", min(i+1, n), n))
		}
		kb.Render("Pilot  ·  "+utils.FormatElapsed(elapsed), lines)
	})

	// ── Control loop ─────────────────────────────────────────────────
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return kb.Listen(gctx)
	})

	g.Go(func() error {
		select {
		case sig := <-sigCh:
			utils.L().Info("received signal: %v, stopping...", sig)
		case <-kb.Done():
			utils.L().Info("quit key pressed")
		case <-gctx.Done():
			return nil
		}
		cancel()
		return nil
	})

	g.Go(func() error {
		defer cancel()
		return fc.Run(gctx)
	})

	runErr := g.Wait()
	restore()
	if runErr != nil {
		utils.L().Error("control loop: %v", runErr)
	}

	// ── Shutdown ─────────────────────────────────────────────────────
	budget := time.Duration(cfg.Control.LandTimeoutS*float64(time.Second)) + 10*time.Second
	sctx, scancel := context.WithTimeout(context.Background(), budget)
	defer scancel()
	fc.Shutdown(sctx)

	st := fc.Stats()
	fmt.Printf("\n✓ Pilot finished. ticks=%d sent=%d failed=%d\n", st.Ticks, st.Sent, st.Failed)
}

func pilotMode(cfg *utils.PilotConfig) string {
	if cfg.Mission.Enabled {
		return "mission(" + cfg.Mission.Shape + ")"
	}
	return "manual(" + cfg.Keys.Mode + ")"
}
