// Package figure lays out finished axes side by side and writes the
// composed figure to disk.
package figure

import (
	"fmt"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"
)

// Row lays the plots out left to right on the given canvas.
func Row(plots []*plot.Plot, dc draw.Canvas) {
	tiles := draw.Tiles{
		Rows:      1,
		Cols:      len(plots),
		PadX:      vg.Points(12),
		PadTop:    vg.Points(6),
		PadBottom: vg.Points(6),
		PadLeft:   vg.Points(6),
		PadRight:  vg.Points(6),
	}
	canvases := plot.Align([][]*plot.Plot{plots}, tiles, dc)
	for i, p := range plots {
		p.Draw(canvases[0][i])
	}
}

// SavePNG writes the plots as one row to a PNG file.
func SavePNG(plots []*plot.Plot, w, h vg.Length, path string) error {
	if len(plots) == 0 {
		return fmt.Errorf("figure: no plots to draw")
	}
	img := vgimg.New(w, h)
	Row(plots, draw.New(img))

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return err
	}
	return f.Close()
}

// SavePDF writes the plots as one row to a PDF file.
func SavePDF(plots []*plot.Plot, w, h vg.Length, path string) error {
	if len(plots) == 0 {
		return fmt.Errorf("figure: no plots to draw")
	}
	c := vgpdf.New(w, h)
	Row(plots, draw.New(c))

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := c.WriteTo(f); err != nil {
		return err
	}
	return f.Close()
}

// SaveSVG writes a single plot to an SVG file.
func SaveSVG(p *plot.Plot, w, h vg.Length, path string) error {
	c := vgsvg.New(w, h)
	p.Draw(draw.New(c))

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := c.WriteTo(f); err != nil {
		return err
	}
	return f.Close()
}
