package sketch

import (
	"math"
	"math/rand"
	"testing"
)

func TestNewValidation(t *testing.T) {
	if _, err := New(0, 10, 0, 50, 100); err == nil {
		t.Error("expected error for zero bins")
	}
	if _, err := New(5, 5, 10, 50, 100); err == nil {
		t.Error("expected error for empty range")
	}
}

func TestObserveCount(t *testing.T) {
	s, err := New(0, 10, 10, 0, 0)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 25; i++ {
		s.Observe(5)
	}
	if s.Count() != 25 {
		t.Errorf("expected count 25, got %d", s.Count())
	}
}

func TestPDFIntegratesToOne(t *testing.T) {
	s, err := New(0, 10, 20, 50, 100)
	if err != nil {
		t.Fatal(err)
	}

	r := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		s.Observe(r.Float64() * 10)
	}

	xs, densities := s.PDF()
	mass := 0.0
	for i := range xs {
		mass += densities[i] * (s.edges[i+1] - s.edges[i])
	}
	if math.Abs(mass-1) > 1e-9 {
		t.Errorf("expected unit mass, got %g", mass)
	}
}

func TestUniformDensityFlat(t *testing.T) {
	// No rearrangement: equal-width bins over uniform data.
	s, err := New(0, 1, 4, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	for _, x := range []float64{0.1, 0.3, 0.6, 0.9} {
		s.Observe(x)
	}

	_, densities := s.PDF()
	for i, d := range densities {
		if math.Abs(d-1) > 1e-9 {
			t.Errorf("bin %d: expected density 1, got %g", i, d)
		}
	}
}

func TestObserveClampsOutOfRange(t *testing.T) {
	s, err := New(0, 10, 10, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	s.Observe(-5)
	s.Observe(42)

	if s.counts[0] != 1 {
		t.Errorf("expected low outlier in first bin, got %g", s.counts[0])
	}
	if s.counts[len(s.counts)-1] != 1 {
		t.Errorf("expected high outlier in last bin, got %g", s.counts[len(s.counts)-1])
	}
}

func TestRearrangePreservesMass(t *testing.T) {
	s, err := New(0, 10, 10, 0, 0)
	if err != nil {
		t.Fatal(err)
	}

	r := rand.New(rand.NewSource(2))
	for i := 0; i < 200; i++ {
		s.Observe(r.ExpFloat64())
	}

	before := 0.0
	for _, c := range s.counts {
		before += c
	}

	s.rearrange()

	after := 0.0
	for _, c := range s.counts {
		after += c
	}
	if math.Abs(before-after) > 1e-6 {
		t.Errorf("rearrange changed total mass: %g -> %g", before, after)
	}

	for i := 1; i < len(s.edges); i++ {
		if s.edges[i] <= s.edges[i-1] {
			t.Fatalf("edges not ascending after rearrange: %v", s.edges)
		}
	}
	if s.edges[0] != 0 || s.edges[len(s.edges)-1] != 10 {
		t.Errorf("outer edges moved: [%g, %g]", s.edges[0], s.edges[len(s.edges)-1])
	}
}

func TestRearrangeEqualizesMass(t *testing.T) {
	s, err := New(0, 10, 5, 0, 0)
	if err != nil {
		t.Fatal(err)
	}

	// Everything in one corner, then rearrange.
	r := rand.New(rand.NewSource(3))
	for i := 0; i < 500; i++ {
		s.Observe(r.Float64())
	}
	s.rearrange()

	want := 100.0
	for i, c := range s.counts {
		if math.Abs(c-want) > want/2 {
			t.Errorf("bin %d after rearrange: expected ~%g, got %g", i, want, c)
		}
	}
}

func TestDivergenceSelfIsSmall(t *testing.T) {
	uniform := func(x float64) float64 {
		if x < 0 || x > 1 {
			return 0
		}
		return 1
	}

	s, err := New(0, 1, 10, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	r := rand.New(rand.NewSource(4))
	for i := 0; i < 5000; i++ {
		s.Observe(r.Float64())
	}

	kld := s.Divergence(uniform)
	if math.IsNaN(kld) || kld < 0 {
		t.Fatalf("expected non-negative divergence, got %g", kld)
	}
	if kld > 0.05 {
		t.Errorf("uniform vs uniform estimate should be near zero, got %g", kld)
	}
}

func TestDivergenceMismatchIsLarger(t *testing.T) {
	uniform := func(x float64) float64 {
		if x < 0 || x > 1 {
			return 0
		}
		return 1
	}

	good, _ := New(0, 1, 10, 0, 0)
	bad, _ := New(0, 1, 10, 0, 0)
	r := rand.New(rand.NewSource(5))
	for i := 0; i < 2000; i++ {
		good.Observe(r.Float64())
		bad.Observe(r.Float64() * r.Float64()) // skewed toward 0
	}

	if g, b := good.Divergence(uniform), bad.Divergence(uniform); g >= b {
		t.Errorf("expected matched estimate to diverge less: %g vs %g", g, b)
	}
}

func TestDivergenceDegenerate(t *testing.T) {
	if !math.IsNaN(Divergence(nil, nil, nil, func(float64) float64 { return 1 })) {
		t.Error("expected NaN for empty input")
	}
	zero := func(float64) float64 { return 0 }
	if !math.IsNaN(Divergence([]float64{1}, []float64{1}, []float64{1}, zero)) {
		t.Error("expected NaN when reference has no mass on the bins")
	}
}
