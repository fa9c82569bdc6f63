// Package plotviz builds the individual chart axes: density snapshots
// rendered as bars or error-bar points against a closed-form reference
// curve, and the divergence-over-time panel.
package plotviz

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/denslab/densplot/internal/snapshot"
)

// Bounds fixes the axis ranges of a density panel.
type Bounds struct {
	XMin, XMax float64
	YMin, YMax float64
}

// DensityBars renders a snapshot as a bar chart with the reference
// density overlaid. Each record is a bin centered on its position with
// width derived from its neighbors.
func DensityBars(snap *snapshot.Snapshot, ref func(float64) float64, b Bounds) (*plot.Plot, error) {
	if len(snap.Points) == 0 {
		return nil, fmt.Errorf("snapshot at count %d has no records", snap.Count)
	}

	p := plot.New()

	widths := snap.Widths()
	bins := make([]plotter.HistogramBin, len(snap.Points))
	meanWidth := 0.0
	for i, pt := range snap.Points {
		w := widths[i]
		bins[i] = plotter.HistogramBin{
			Min:    pt.X - w/2,
			Max:    pt.X + w/2,
			Weight: pt.Density,
		}
		meanWidth += w
	}
	meanWidth /= float64(len(widths))

	hist := &plotter.Histogram{
		Bins:      bins,
		Width:     meanWidth,
		FillColor: plotutil.Color(0),
		LineStyle: plotter.DefaultLineStyle,
	}
	p.Add(hist)
	p.Add(referenceLine(ref, b))
	// Add widens the axes to fit the data; reassert the window last.
	applyBounds(p, b)

	return p, nil
}

// DensityErrorBars renders a snapshot as point estimates with sampling
// error bars, with the reference density overlaid.
func DensityErrorBars(snap *snapshot.Snapshot, ref func(float64) float64, b Bounds) (*plot.Plot, error) {
	if len(snap.Points) == 0 {
		return nil, fmt.Errorf("snapshot at count %d has no records", snap.Count)
	}

	p := plot.New()

	xys := make(plotter.XYs, len(snap.Points))
	yerrs := make(plotter.YErrors, len(snap.Points))
	for i, pt := range snap.Points {
		xys[i].X = pt.X
		xys[i].Y = pt.Density
	}
	for i, e := range snap.StdErrs() {
		yerrs[i].Low = e
		yerrs[i].High = e
	}

	scatter, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, err
	}
	scatter.GlyphStyle.Color = plotutil.Color(0)
	scatter.GlyphStyle.Radius = vg.Points(2)

	bars, err := plotter.NewYErrorBars(pointsWithErrors{xys, yerrs})
	if err != nil {
		return nil, err
	}
	bars.LineStyle.Color = plotutil.Color(0)

	p.Add(scatter, bars)
	p.Add(referenceLine(ref, b))
	applyBounds(p, b)

	return p, nil
}

// pointsWithErrors satisfies both XYer and YErrorer for the error-bar
// plotter.
type pointsWithErrors struct {
	plotter.XYs
	plotter.YErrors
}

func referenceLine(ref func(float64) float64, b Bounds) *plotter.Function {
	f := plotter.NewFunction(ref)
	f.XMin = b.XMin
	f.XMax = b.XMax
	f.Samples = 250
	f.Color = plotutil.Color(1)
	f.Width = vg.Points(1.5)
	return f
}

func applyBounds(p *plot.Plot, b Bounds) {
	p.X.Min = b.XMin
	p.X.Max = b.XMax
	p.Y.Min = b.YMin
	p.Y.Max = b.YMax
	p.X.Label.Text = "x"
	p.Y.Label.Text = "density"
}
