// Package normal turns uniform streams into normal variates with the
// Box-Muller transform.
package normal

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/nozzle/simstat/simerr"
	"github.com/nozzle/simstat/source"
)

// BoxMuller maps two independent uniforms onto two independent standard
// normals:
//
//	r = sqrt(-2 ln u1), θ = 2π u2, z1 = r cos θ, z2 = r sin θ
//
// u1 must be in (0, 1]; callers clamp with source.ClampOpen. A non-positive
// u1 panics with a *simerr.DomainError.
func BoxMuller(u1, u2 float64) (z1, z2 float64) {
	if !(u1 > 0) {
		panic(&simerr.DomainError{Op: "normal.BoxMuller", Value: u1})
	}
	r := math.Sqrt(-2.0 * math.Log(u1))
	theta := 2.0 * math.Pi * u2
	return r * math.Cos(theta), r * math.Sin(theta)
}

// Transform draws normal variates from a uniform Source.
type Transform struct {
	src source.Source
}

// New returns a Transform reading from src. The Transform takes over src:
// nothing else should draw from it meanwhile.
func New(src source.Source) *Transform {
	return &Transform{src: src}
}

// Pair consumes two uniforms and returns both Box-Muller variates.
func (t *Transform) Pair() (z1, z2 float64) {
	// u1 feeds the logarithm. u2 is clamped as well so the pair is drawn
	// from the same open interval.
	u1 := source.ClampOpen(t.src.Next())
	u2 := source.ClampOpen(t.src.Next())
	return BoxMuller(u1, u2)
}

// Batch returns n standard normal variates using ceil(n/2) uniform pairs.
// When n is odd the second variate of the last pair is dropped.
func (t *Transform) Batch(n int) ([]float64, error) {
	if n <= 0 {
		return nil, simerr.Configf("normal.Batch", "n", "must be positive, got %d", n)
	}
	out := make([]float64, n)
	for i := 0; i < n; i += 2 {
		z1, z2 := t.Pair()
		out[i] = z1
		if i+1 < n {
			out[i+1] = z2
		}
	}
	return out, nil
}

// Scaled returns n variates from N(mu, sigma²) as mu + sigma·z.
func (t *Transform) Scaled(n int, mu, sigma float64) ([]float64, error) {
	if !(sigma > 0) {
		return nil, simerr.Configf("normal.Scaled", "sigma", "must be positive, got %v", sigma)
	}
	out, err := t.Batch(n)
	if err != nil {
		return nil, err
	}
	for i, z := range out {
		out[i] = mu + sigma*z
	}
	return out, nil
}

// Standardize returns a copy of batch shifted and scaled to mean 0 and
// population standard deviation 1. A constant batch has deviation 0 and is
// only centred.
//
// Standardizing changes the null distribution of a later goodness-of-fit
// test, which is why generation never does it implicitly.
func Standardize(batch []float64) []float64 {
	out := make([]float64, len(batch))
	if len(batch) == 0 {
		return out
	}
	mean, std := stat.PopMeanStdDev(batch, nil)
	if std == 0 || math.IsNaN(std) {
		std = 1
	}
	for i, x := range batch {
		out[i] = (x - mean) / std
	}
	return out
}

// Rescale returns a copy of batch whose empirical mean is mu and population
// standard deviation is sigma.
func Rescale(batch []float64, mu, sigma float64) ([]float64, error) {
	if !(sigma > 0) {
		return nil, simerr.Configf("normal.Rescale", "sigma", "must be positive, got %v", sigma)
	}
	out := Standardize(batch)
	for i, z := range out {
		out[i] = mu + sigma*z
	}
	return out, nil
}
