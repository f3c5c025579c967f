package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"trajectory-logger/controller"
	"trajectory-logger/models"
	"trajectory-logger/services/airsim"
	"trajectory-logger/utils"
	"trajectory-logger/views"
)

func main() {
	// ── CLI flags ────────────────────────────────────────────────────
	cfgPath := flag.String("config", "config/recorder.yaml", "path to recorder.yaml")
	logFile := flag.String("log", "", "optional log file path (overrides log.file)")
	flag.Parse()

	// ── Config + logger ──────────────────────────────────────────────
	cfg, cfgErr := utils.LoadRecorderConfig(*cfgPath)
	logPath := *logFile
	if logPath == "" && cfgErr == nil {
		logPath = cfg.Log.File
	}
	logger := utils.InitLogger(utils.INFO, logPath)
	defer logger.Close()
	if cfgErr != nil {
		utils.L().Fatal("load recorder config: %v", cfgErr)
	}
	logger.SetLevel(utils.ParseLevel(cfg.Log.Level))

	utils.L().Info("═══════════════════════════════════════════════════")
	utils.L().Info("  Trajectory Recorder  ·  vehicle=%s", cfg.Simulator.Vehicle)
	utils.L().Info("  GOMAXPROCS=%d  ·  PID=%d", runtime.GOMAXPROCS(0), os.Getpid())
	utils.L().Info("═══════════════════════════════════════════════════")

	// Resolve relative output_root to absolute.
	if !filepath.IsAbs(cfg.Sampling.OutputRoot) {
		abs, _ := filepath.Abs(cfg.Sampling.OutputRoot)
		cfg.Sampling.OutputRoot = abs
	}

	// ── Context with OS signal cancellation ──────────────────────────
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// ── Simulator ────────────────────────────────────────────────────
	client, err := airsim.Dial(ctx, cfg.Simulator.Address, cfg.Simulator.Vehicle, cfg.Simulator.Timeout())
	if err != nil {
		utils.L().Fatal("connect: %v", err)
	}
	defer client.Close()
	if err := client.Ping(ctx); err != nil {
		utils.L().Fatal("confirm connection: %v", err)
	}
	utils.L().Info("connected to simulator at %s", cfg.Simulator.Address)

	// ── Run directory ────────────────────────────────────────────────
	idx, dir, err := utils.CreateOutputDir(cfg.Sampling.OutputRoot)
	if err != nil {
		utils.L().Fatal("create output dir: %v", err)
	}
	run := models.NewRun(idx, dir)
	utils.L().Info("output folder: %s", dir)

	// ── Pipeline assembly ────────────────────────────────────────────
	//
	//  pose ticker ──► Run ──► render mailbox ──► LiveView (preview png)
	//                   │
	//                   └── on stop ──► Exporter ──► output_NN/*.png, *.gif
	exporter := views.NewExporter(cfg.Plot, cfg.GIF)
	live := controller.NewLiveView(exporter.View(), cfg.Live)
	recorder := controller.NewRecordingController(client, utils.SystemClock{}, cfg.Sampling, run, live, exporter)

	if limit := cfg.Sampling.RuntimeLimit(); limit > 0 {
		utils.L().Info("recording will auto-stop after %v", limit)
	}
	utils.L().Info("recording, press Ctrl+C to stop")

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		select {
		case sig := <-sigCh:
			utils.L().Info("received signal: %v, stopping...", sig)
			cancel()
		case <-gctx.Done():
		}
		return nil
	})

	g.Go(func() error {
		statsTicker := time.NewTicker(5 * time.Second)
		defer statsTicker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-statsTicker.C:
				st := recorder.Stats()
				utils.L().Info("stats  ticks=%d  samples=%d  failed=%d", st.Ticks, st.Samples, st.Failed)
			}
		}
	})

	g.Go(func() error {
		defer cancel()
		return recorder.Run(gctx)
	})

	if err := g.Wait(); err != nil {
		utils.L().Fatal("export: %v", err)
	}

	utils.L().Info("session saved to: %s", dir)
	fmt.Println("\n✓ Recorder finished. Figures at:", dir)
}
