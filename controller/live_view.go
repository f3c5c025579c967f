package controller

import (
	"image"

	"trajectory-logger/models"
	"trajectory-logger/utils"
	"trajectory-logger/views"
)

// LiveView keeps a rendering of the trajectory so far, refreshed every
// few samples. With a preview path the image is also published to disk for
// an auto-reloading viewer.
type LiveView struct {
	view  views.Trajectory3D
	every int
	path  string
	w, h  int

	pending int
	renders int
	latest  image.Image
}

func NewLiveView(view views.Trajectory3D, cfg utils.LiveConfig) *LiveView {
	return &LiveView{
		view:  view,
		every: max(1, cfg.Every),
		path:  cfg.PreviewPath,
		w:     cfg.WidthPx,
		h:     cfg.HeightPx,
	}
}

// Update is called on every render tick and redraws on every Nth one.
func (lv *LiveView) Update(run *models.Run) error {
	lv.pending++
	if lv.pending < lv.every {
		return nil
	}
	lv.pending = 0

	c, err := lv.view.Canvas(run, lv.w, lv.h)
	if err != nil {
		return err
	}
	lv.latest = c.Image()
	lv.renders++

	if lv.path != "" {
		return views.WritePNGAtomic(c, lv.path)
	}
	return nil
}

// Latest returns the most recent rendering, or nil before the first.
func (lv *LiveView) Latest() image.Image { return lv.latest }

// Renders returns how many times the view has been redrawn.
func (lv *LiveView) Renders() int { return lv.renders }
