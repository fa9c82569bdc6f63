package sketch

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// smoothing keeps the estimated distribution strictly positive so the
// divergence stays finite over empty bins.
const smoothing = 1e-9

// Divergence computes KL(p || q) where p is the reference density and
// q the estimate, both discretized over bins with the given centers
// and widths. Returns NaN when the reference has no mass on the bins.
func Divergence(xs, widths, densities []float64, ref func(float64) float64) float64 {
	n := len(xs)
	if n == 0 || len(widths) != n || len(densities) != n {
		return math.NaN()
	}

	p := make([]float64, n)
	q := make([]float64, n)
	psum, qsum := 0.0, 0.0
	for i := 0; i < n; i++ {
		p[i] = ref(xs[i]) * widths[i]
		q[i] = densities[i]*widths[i] + smoothing
		psum += p[i]
		qsum += q[i]
	}
	if psum <= 0 || qsum <= 0 {
		return math.NaN()
	}
	for i := 0; i < n; i++ {
		p[i] /= psum
		q[i] /= qsum
	}

	return stat.KullbackLeibler(p, q)
}
