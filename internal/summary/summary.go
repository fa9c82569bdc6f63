// Package summary describes a density snapshot numerically: the mass
// it carries, the moments and quantiles of the estimated distribution,
// and its divergence from the reference.
package summary

import (
	"math"

	"github.com/aclements/go-moremath/stats"

	"github.com/denslab/densplot/internal/sketch"
	"github.com/denslab/densplot/internal/snapshot"
)

type Summary struct {
	Records int
	Count   int

	XMin, XMax float64
	Mass       float64

	Mean   float64
	StdDev float64
	Q25    float64
	Median float64
	Q75    float64

	KLD float64
}

// Describe summarizes a snapshot against the reference density. The
// estimated distribution is reconstructed as a sample of bin centers
// repeated by their approximate observation counts.
func Describe(sn *snapshot.Snapshot, ref func(float64) float64) Summary {
	s := Summary{Records: len(sn.Points), Count: sn.Count}
	if len(sn.Points) == 0 {
		s.KLD = math.NaN()
		return s
	}

	widths := sn.Widths()
	s.XMin = sn.Points[0].X
	s.XMax = sn.Points[len(sn.Points)-1].X

	n := sn.Count
	if n <= 0 {
		n = 1000
	}

	xs := make([]float64, 0, n)
	densities := make([]float64, len(sn.Points))
	for i, pt := range sn.Points {
		densities[i] = pt.Density
		mass := pt.Density * widths[i]
		s.Mass += mass
		for k := 0; k < int(math.Round(mass*float64(n))); k++ {
			xs = append(xs, pt.X)
		}
	}

	if len(xs) > 0 {
		sample := stats.Sample{Xs: xs}
		sample.Sort()
		s.Mean = sample.Mean()
		s.StdDev = sample.StdDev()
		s.Q25 = sample.Quantile(0.25)
		s.Median = sample.Quantile(0.5)
		s.Q75 = sample.Quantile(0.75)
	}

	centers := make([]float64, len(sn.Points))
	for i, pt := range sn.Points {
		centers[i] = pt.X
	}
	s.KLD = sketch.Divergence(centers, widths, densities, ref)

	return s
}
