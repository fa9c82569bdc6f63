// Package refdist resolves named closed-form reference distributions
// used as the ground truth overlay in comparison plots.
package refdist

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Dist is a closed-form reference distribution. Prob is the density at
// x; Rand draws one sample.
type Dist interface {
	Prob(x float64) float64
	Rand() float64
}

// New returns the distribution registered under name. The seed only
// affects Rand; Prob is a pure function of x.
func New(name string, seed uint64) (Dist, error) {
	src := rand.NewSource(seed)
	switch name {
	case "pareto":
		// Shape 1, scale 1: density 1/x^2 on [1, inf).
		return distuv.Pareto{Xm: 1, Alpha: 1, Src: src}, nil
	case "normal":
		return distuv.Normal{Mu: 0, Sigma: 1, Src: src}, nil
	case "lognormal":
		return distuv.LogNormal{Mu: 0, Sigma: 1, Src: src}, nil
	}
	return nil, fmt.Errorf("unknown reference distribution: %s", name)
}

// Names lists the registered distribution names.
func Names() []string {
	return []string{"lognormal", "normal", "pareto"}
}
