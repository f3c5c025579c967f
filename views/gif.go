package views

import (
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
)

// FrameSource renders frame i on demand, so only the quantised frames are
// held in memory during encoding.
type FrameSource func(i int) (image.Image, error)

// GIFEncoder writes an animation of n frames, each shown for delay
// hundredths of a second. The exporter skips the animation when no
// encoder is configured.
type GIFEncoder interface {
	EncodeGIF(w io.Writer, n, delay int, frame FrameSource) error
}

// PalettedGIF quantises frames to the Plan 9 palette with Floyd-Steinberg
// dithering and loops forever.
type PalettedGIF struct{}

func (PalettedGIF) EncodeGIF(w io.Writer, n, delay int, frame FrameSource) error {
	anim := &gif.GIF{LoopCount: 0}
	for i := 0; i < n; i++ {
		img, err := frame(i)
		if err != nil {
			return err
		}
		b := img.Bounds()
		pm := image.NewPaletted(b, palette.Plan9)
		draw.FloydSteinberg.Draw(pm, b, img, b.Min)
		anim.Image = append(anim.Image, pm)
		anim.Delay = append(anim.Delay, delay)
	}
	return gif.EncodeAll(w, anim)
}
