// Package anim renders a sweep of plots into an animated GIF.
package anim

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	vgdraw "gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Options controls the sweep and the frame geometry.
type Options struct {
	Start, End, Step int
	FPS              int
	Width, Height    vg.Length
}

// FrameFunc builds the plot for one update count. Returning (nil, nil)
// skips the count, for sparse experiment directories.
type FrameFunc func(count int) (*plot.Plot, error)

// SaveGIF sweeps counts from Start to End and writes one GIF frame per
// plot. It is an error if the whole sweep yields no frame.
func SaveGIF(path string, opts Options, frame FrameFunc) error {
	if opts.Step <= 0 {
		return fmt.Errorf("anim: step must be positive, got %d", opts.Step)
	}
	if opts.FPS <= 0 {
		return fmt.Errorf("anim: fps must be positive, got %d", opts.FPS)
	}

	delay := 100 / opts.FPS
	if delay < 1 {
		delay = 1
	}

	out := &gif.GIF{LoopCount: 0}
	for count := opts.Start; count <= opts.End; count += opts.Step {
		p, err := frame(count)
		if err != nil {
			return fmt.Errorf("anim: frame at count %d: %w", count, err)
		}
		if p == nil {
			continue
		}
		out.Image = append(out.Image, renderFrame(p, opts.Width, opts.Height))
		out.Delay = append(out.Delay, delay)
	}

	if len(out.Image) == 0 {
		return fmt.Errorf("anim: no renderable frames in counts [%d, %d]", opts.Start, opts.End)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := gif.EncodeAll(f, out); err != nil {
		return err
	}
	return f.Close()
}

// renderFrame draws the plot onto an image canvas and quantizes it to
// a paletted frame.
func renderFrame(p *plot.Plot, w, h vg.Length) *image.Paletted {
	img := vgimg.New(w, h)
	p.Draw(vgdraw.New(img))

	src := img.Image()
	frame := image.NewPaletted(src.Bounds(), palette.Plan9)
	draw.FloydSteinberg.Draw(frame, frame.Bounds(), src, image.Point{})
	return frame
}
