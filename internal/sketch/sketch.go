// Package sketch implements a small incremental bucketed density
// estimator. Samples are counted into bins over a fixed range; on a
// periodic schedule the bin boundaries are rearranged toward equal
// mass, which concentrates resolution where the data lives.
package sketch

import (
	"fmt"
	"math"
	"sort"
)

type Sketch struct {
	edges  []float64 // len(counts)+1, ascending
	counts []float64
	n      int

	rearrStart  int
	rearrPeriod int
}

// New creates a sketch over [xmin, xmax) with the given number of
// equal-width initial bins. Rearrangement happens at update count
// rearrStart and every rearrPeriod updates after; a non-positive
// period disables it.
func New(xmin, xmax float64, bins, rearrStart, rearrPeriod int) (*Sketch, error) {
	if bins <= 0 {
		return nil, fmt.Errorf("sketch: bins must be positive, got %d", bins)
	}
	if xmax <= xmin {
		return nil, fmt.Errorf("sketch: range [%g, %g) is empty", xmin, xmax)
	}

	edges := make([]float64, bins+1)
	width := (xmax - xmin) / float64(bins)
	for i := range edges {
		edges[i] = xmin + float64(i)*width
	}
	edges[bins] = xmax

	return &Sketch{
		edges:       edges,
		counts:      make([]float64, bins),
		rearrStart:  rearrStart,
		rearrPeriod: rearrPeriod,
	}, nil
}

// Observe incorporates one sample. Values outside the range are
// clamped into the boundary bins.
func (s *Sketch) Observe(x float64) {
	last := len(s.counts) - 1
	idx := sort.SearchFloat64s(s.edges, x) - 1
	if idx < 0 {
		idx = 0
	}
	if idx > last {
		idx = last
	}
	s.counts[idx]++
	s.n++

	if s.rearrPeriod > 0 && s.n >= s.rearrStart && (s.n-s.rearrStart)%s.rearrPeriod == 0 {
		s.rearrange()
	}
}

// Count is the number of observed samples.
func (s *Sketch) Count() int { return s.n }

// PDF returns bin centers and the estimated density at each.
func (s *Sketch) PDF() (xs, densities []float64) {
	bins := len(s.counts)
	xs = make([]float64, bins)
	densities = make([]float64, bins)
	for i := 0; i < bins; i++ {
		xs[i] = (s.edges[i] + s.edges[i+1]) / 2
		w := s.edges[i+1] - s.edges[i]
		if s.n > 0 && w > 0 {
			densities[i] = s.counts[i] / (float64(s.n) * w)
		}
	}
	return xs, densities
}

// Divergence is the KL divergence of the reference density from the
// sketch estimate, discretized over the sketch bins.
func (s *Sketch) Divergence(ref func(float64) float64) float64 {
	xs, densities := s.PDF()
	widths := make([]float64, len(xs))
	for i := range widths {
		widths[i] = s.edges[i+1] - s.edges[i]
	}
	return Divergence(xs, widths, densities, ref)
}

// rearrange moves interior edges to the equal-mass quantiles of the
// current estimate and redistributes counts, treating mass as uniform
// within each old bin. Total mass is preserved.
func (s *Sketch) rearrange() {
	total := 0.0
	for _, c := range s.counts {
		total += c
	}
	if total == 0 {
		return
	}

	bins := len(s.counts)
	newEdges := make([]float64, bins+1)
	newEdges[0] = s.edges[0]
	newEdges[bins] = s.edges[bins]
	for j := 1; j < bins; j++ {
		e := s.quantileEdge(float64(j) * total / float64(bins))
		if e <= newEdges[j-1] {
			e = newEdges[j-1] + (s.edges[bins]-newEdges[j-1])*1e-9
		}
		newEdges[j] = e
	}

	newCounts := make([]float64, bins)
	for j := 0; j < bins; j++ {
		newCounts[j] = s.massBetween(newEdges[j], newEdges[j+1])
	}

	s.edges = newEdges
	s.counts = newCounts
}

// quantileEdge inverts the piecewise-linear cumulative mass at target.
func (s *Sketch) quantileEdge(target float64) float64 {
	cum := 0.0
	for i, c := range s.counts {
		if cum+c >= target {
			if c == 0 {
				return s.edges[i]
			}
			frac := (target - cum) / c
			return s.edges[i] + frac*(s.edges[i+1]-s.edges[i])
		}
		cum += c
	}
	return s.edges[len(s.edges)-1]
}

// massBetween is the estimated mass in [a, b) under the current bins.
func (s *Sketch) massBetween(a, b float64) float64 {
	mass := 0.0
	for i, c := range s.counts {
		lo, hi := s.edges[i], s.edges[i+1]
		if c == 0 || hi <= a || lo >= b {
			continue
		}
		l := math.Max(lo, a)
		r := math.Min(hi, b)
		mass += c * (r - l) / (hi - lo)
	}
	return mass
}
