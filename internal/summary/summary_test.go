package summary

import (
	"math"
	"testing"

	"github.com/denslab/densplot/internal/snapshot"
)

func uniform01(x float64) float64 {
	if x < 0 || x > 1 {
		return 0
	}
	return 1
}

func TestDescribe(t *testing.T) {
	// A flat unit-mass estimate over [0, 1) in four bins.
	sn := &snapshot.Snapshot{
		Count: 400,
		Points: []snapshot.Point{
			{X: 0.125, Density: 1},
			{X: 0.375, Density: 1},
			{X: 0.625, Density: 1},
			{X: 0.875, Density: 1},
		},
	}

	s := Describe(sn, uniform01)

	if s.Records != 4 {
		t.Errorf("expected 4 records, got %d", s.Records)
	}
	if s.Count != 400 {
		t.Errorf("expected count 400, got %d", s.Count)
	}
	if math.Abs(s.Mass-1) > 1e-9 {
		t.Errorf("expected unit mass, got %g", s.Mass)
	}
	if math.Abs(s.Mean-0.5) > 0.01 {
		t.Errorf("expected mean 0.5, got %g", s.Mean)
	}
	if s.Median < 0.125 || s.Median > 0.875 {
		t.Errorf("median %g outside data range", s.Median)
	}
	if s.Q25 > s.Median || s.Median > s.Q75 {
		t.Errorf("quantiles out of order: %g %g %g", s.Q25, s.Median, s.Q75)
	}
	if math.IsNaN(s.KLD) || s.KLD < 0 || s.KLD > 0.01 {
		t.Errorf("flat estimate vs uniform reference: expected near-zero divergence, got %g", s.KLD)
	}
}

func TestDescribeSkewed(t *testing.T) {
	sn := &snapshot.Snapshot{
		Count: 400,
		Points: []snapshot.Point{
			{X: 0.125, Density: 3},
			{X: 0.375, Density: 0.6},
			{X: 0.625, Density: 0.3},
			{X: 0.875, Density: 0.1},
		},
	}

	s := Describe(sn, uniform01)
	if s.Mean >= 0.5 {
		t.Errorf("skewed-low estimate should have mean below 0.5, got %g", s.Mean)
	}
	if s.KLD <= 0.01 {
		t.Errorf("skewed estimate vs uniform reference: expected clear divergence, got %g", s.KLD)
	}
}

func TestDescribeEmpty(t *testing.T) {
	s := Describe(&snapshot.Snapshot{Count: 40}, uniform01)
	if s.Records != 0 {
		t.Errorf("expected 0 records, got %d", s.Records)
	}
	if !math.IsNaN(s.KLD) {
		t.Errorf("expected NaN divergence for empty snapshot, got %g", s.KLD)
	}
}
