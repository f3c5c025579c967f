package views

import (
	"bufio"
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"trajectory-logger/models"
	"trajectory-logger/utils"
)

const (
	FileTrajectory3D = "trajectory_3d.png"
	FileAnimation    = "trajectory_3d.gif"
)

// Figure sizes in inches.
const (
	seriesW, seriesH = 8.0, 4.0
	projW, projH     = 7.2, 6.0
	view3DW, view3DH = 8.0, 7.0
)

// StaticFiles lists every PNG a full export writes, in write order.
func StaticFiles() []string {
	files := []string{FileTrajectory3D}
	for _, s := range timeSeries {
		files = append(files, s.file)
	}
	for _, p := range projections {
		files = append(files, p.file)
	}
	return files
}

// Exporter writes the end-of-run figures into a run directory.
type Exporter struct {
	plot   utils.PlotConfig
	gifCfg utils.GIFConfig

	// GIF encodes the animation. nil skips it.
	GIF GIFEncoder
}

// NewExporter configures an exporter. The animation encoder is installed
// only when the GIF output is enabled.
func NewExporter(plotCfg utils.PlotConfig, gifCfg utils.GIFConfig) *Exporter {
	e := &Exporter{plot: plotCfg, gifCfg: gifCfg}
	if gifCfg.Enabled {
		e.GIF = PalettedGIF{}
	}
	return e
}

// View returns the 3D renderer configured for this exporter.
func (e *Exporter) View() Trajectory3D {
	return Trajectory3D{
		View:     View3D{Azimuth: e.plot.Azimuth, Elevation: e.plot.Elevation},
		ColorMap: e.plot.ColorMap,
		Margin:   e.plot.Margin,
		Title:    "3D Trajectory",
	}
}

// Export renders run into dir. The 3D figure is always written; the time
// series, projections and animation need at least two samples. The first
// failure aborts the remaining figures.
func (e *Exporter) Export(run *models.Run, dir string) error {
	tr := newTrack(run)
	b := tr.bounds(e.plot.Margin)

	c := newCanvas(view3DW, view3DH, e.plot.DPI)
	if err := e.View().drawBounded(draw.New(c), tr, b); err != nil {
		return err
	}
	if err := e.write(c, dir, FileTrajectory3D); err != nil {
		return err
	}

	if tr.len() < 2 {
		utils.L().Warn("export: %d sample(s), not enough for time series and projections", tr.len())
		return nil
	}

	for _, s := range timeSeries {
		p, err := timeSeriesPlot(s.title, s.ylabel, tr.t, s.values(tr))
		if err != nil {
			return err
		}
		c := newCanvas(seriesW, seriesH, e.plot.DPI)
		p.Draw(draw.New(c))
		if err := e.write(c, dir, s.file); err != nil {
			return err
		}
	}

	cmap, err := NewColorMap(e.plot.ColorMap, 0, max(1e-6, tr.lastT()))
	if err != nil {
		return err
	}
	for _, pr := range projections {
		p := projectionPlot(pr, tr, b, cmap, e.plot.Arrows)
		c := newCanvas(projW, projH, e.plot.DPI)
		drawProjection(draw.New(c), p, cmap)
		if err := e.write(c, dir, pr.file); err != nil {
			return err
		}
	}

	if e.GIF == nil {
		utils.L().Info("export: animation disabled, static figures only")
		return nil
	}
	return e.writeAnimation(tr, filepath.Join(dir, FileAnimation))
}

func (e *Exporter) write(c *vgimg.Canvas, dir, name string) error {
	if err := writePNG(c, filepath.Join(dir, name)); err != nil {
		return err
	}
	utils.L().Debug("saved %s", name)
	return nil
}

// writeAnimation replays the run as growing prefixes. Frames are thinned to
// at most gif.max_frames and timed so playback runs gif.speed times faster
// than the recording.
func (e *Exporter) writeAnimation(tr track, path string) error {
	n := tr.len()
	step := 1
	if e.gifCfg.MaxFrames > 0 && n > e.gifCfg.MaxFrames {
		step = (n + e.gifCfg.MaxFrames - 1) / e.gifCfg.MaxFrames
	}
	frames := (n + step - 1) / step

	period := (tr.lastT() - tr.t[0]) / float64(n-1)
	speed := e.gifCfg.Speed
	if speed <= 0 {
		speed = 1
	}
	delay := max(2, int(math.Round(100*period*float64(step)/speed)))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create gif: %w", err)
	}
	bw := bufio.NewWriter(f)

	view := e.View()
	w, h := e.gifCfg.WidthPx, e.gifCfg.HeightPx
	err = e.GIF.EncodeGIF(bw, frames, delay, func(i int) (image.Image, error) {
		c := pixelCanvas(w, h)
		if err := view.draw(draw.New(c), tr.prefix(min(n, (i+1)*step))); err != nil {
			return nil, err
		}
		return c.Image(), nil
	})
	if err == nil {
		err = bw.Flush()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("cannot write gif: %w", err)
	}
	utils.L().Info("saved %s  (frames=%d, delay=%dcs)", filepath.Base(path), frames, delay)
	return nil
}

// WritePNGAtomic writes c to path through a temporary file in the same
// directory, so readers never observe a partial image.
func WritePNGAtomic(c *vgimg.Canvas, path string) error {
	tmp := path + ".tmp"
	if err := writePNG(c, tmp); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}
