package controller

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"trajectory-logger/models"
	"trajectory-logger/utils"
)

// RunExporter writes the figures for a finished run. *views.Exporter
// satisfies it.
type RunExporter interface {
	Export(run *models.Run, dir string) error
}

// RecorderStats counts sampling outcomes.
type RecorderStats struct {
	Ticks   uint64
	Samples uint64
	Failed  uint64
}

// RecordingController polls the vehicle pose at a fixed period into a Run,
// keeps the live view current and exports the run when recording stops.
//
// Everything happens on the goroutine that calls Run: sample ticks and
// render ticks are multiplexed by one select loop, and a render tick waits
// in a one-slot mailbox so a slow render coalesces instead of queueing.
type RecordingController struct {
	src    PoseSource
	clock  utils.Clock
	cfg    utils.SamplingConfig
	run    *models.Run
	live   *LiveView
	export RunExporter

	renderCh chan struct{}

	ticks   uint64
	samples uint64
	failed  uint64
}

// NewRecordingController wires a recorder. live may be nil.
func NewRecordingController(src PoseSource, clock utils.Clock, cfg utils.SamplingConfig,
	run *models.Run, live *LiveView, export RunExporter) *RecordingController {
	return &RecordingController{
		src:      src,
		clock:    clock,
		cfg:      cfg,
		run:      run,
		live:     live,
		export:   export,
		renderCh: make(chan struct{}, 1),
	}
}

// Run records until ctx is cancelled or the run-time limit passes, then
// exports synchronously. Both ways of stopping are normal; only an export
// failure is returned.
func (rc *RecordingController) Run(ctx context.Context) error {
	recCtx := ctx
	if limit := rc.cfg.RuntimeLimit(); limit > 0 {
		var cancel context.CancelFunc
		recCtx, cancel = context.WithTimeout(ctx, limit)
		defer cancel()
	}

	rc.record(recCtx)

	st := rc.Stats()
	utils.L().Info("recording stopped  (ticks=%d, samples=%d, failed=%d, duration=%s)",
		st.Ticks, st.Samples, st.Failed, utils.FormatElapsed(secondsDuration(rc.run.Duration())))

	utils.L().Info("exporting %d samples to %s", rc.run.Len(), rc.run.Dir)
	if err := rc.export.Export(rc.run, rc.run.Dir); err != nil {
		return err
	}
	utils.L().Info("export complete  dir=%s", rc.run.Dir)
	return nil
}

func (rc *RecordingController) record(ctx context.Context) {
	period := rc.cfg.Period()
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	start := rc.clock.Now()
	utils.L().Info("recording started  period=%v  dir=%s", period, rc.run.Dir)
	rc.sample(ctx, start)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rc.sample(ctx, start)
		case <-rc.renderCh:
			if rc.live != nil {
				if err := rc.live.Update(rc.run); err != nil {
					utils.L().Warn("live view: %v", err)
				}
			}
		}
	}
}

// sample takes one pose reading. Failures are logged and the tick skipped.
func (rc *RecordingController) sample(ctx context.Context, start time.Time) {
	atomic.AddUint64(&rc.ticks, 1)

	pose, err := rc.src.Pose(ctx)
	if err != nil {
		atomic.AddUint64(&rc.failed, 1)
		if ctx.Err() == nil {
			utils.L().Warn("pose query failed, tick skipped: %v", err)
		}
		return
	}

	t := rc.clock.Now().Sub(start).Seconds()
	if err := rc.run.Append(models.NewSample(t, pose)); err != nil {
		atomic.AddUint64(&rc.failed, 1)
		if errors.Is(err, models.ErrNonMonotonic) {
			utils.L().Debug("sample dropped: %v", err)
		} else {
			utils.L().Warn("sample dropped: %v", err)
		}
		return
	}
	atomic.AddUint64(&rc.samples, 1)

	select {
	case rc.renderCh <- struct{}{}:
	default:
	}
}

// Stats returns a snapshot of the sampling counters.
func (rc *RecordingController) Stats() RecorderStats {
	return RecorderStats{
		Ticks:   atomic.LoadUint64(&rc.ticks),
		Samples: atomic.LoadUint64(&rc.samples),
		Failed:  atomic.LoadUint64(&rc.failed),
	}
}

// Recording returns the run being recorded.
func (rc *RecordingController) Recording() *models.Run { return rc.run }

func secondsDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
