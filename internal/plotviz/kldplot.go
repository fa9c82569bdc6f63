package plotviz

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/denslab/densplot/internal/config"
	"github.com/denslab/densplot/internal/snapshot"
)

// Divergence renders the divergence-over-time curve. The y axis is
// clamped to [0, kld.Max]; vertical dashed markers show the estimator's
// rearrangement epochs inside the plotted count range.
func Divergence(series *snapshot.Series, kld config.KLDConfig) (*plot.Plot, error) {
	if len(series.Counts) == 0 {
		return nil, fmt.Errorf("divergence series has no samples")
	}

	p := plot.New()
	p.X.Label.Text = "update count"
	p.Y.Label.Text = "KL-divergence"

	xys := make(plotter.XYs, 0, len(series.Counts))
	for i := range series.Counts {
		c := series.Counts[i]
		if c < float64(kld.CountMin) || c > float64(kld.CountMax) {
			continue
		}
		xys = append(xys, plotter.XY{X: c, Y: series.Values[i]})
	}
	if len(xys) == 0 {
		return nil, fmt.Errorf("divergence series has no samples in count range [%d, %d]",
			kld.CountMin, kld.CountMax)
	}

	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, err
	}
	line.Color = plotutil.Color(2)
	line.Width = vg.Points(1.5)
	p.Add(line)

	for _, epoch := range RearrEpochs(kld) {
		marker, err := plotter.NewLine(plotter.XYs{
			{X: float64(epoch), Y: 0},
			{X: float64(epoch), Y: kld.Max},
		})
		if err != nil {
			return nil, err
		}
		marker.Color = color.Gray{Y: 128}
		marker.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
		p.Add(marker)
	}

	// Add widens the axes to fit the data; reassert the window last.
	p.X.Min = float64(kld.CountMin)
	p.X.Max = float64(kld.CountMax)
	p.Y.Min = 0
	p.Y.Max = kld.Max

	return p, nil
}

// RearrEpochs lists the rearrangement update counts that fall inside
// the plotted range: start, start+period, ...
func RearrEpochs(kld config.KLDConfig) []int {
	if kld.RearrPeriod <= 0 {
		return nil
	}
	var epochs []int
	for c := kld.RearrStart; c <= kld.CountMax; c += kld.RearrPeriod {
		if c < kld.CountMin {
			continue
		}
		epochs = append(epochs, c)
	}
	return epochs
}
