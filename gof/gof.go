// Package gof implements Kolmogorov-Smirnov goodness-of-fit tests, both
// against a continuous distribution evaluated at every sample point and
// against cumulative probabilities over fixed bins.
package gof

import (
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/nozzle/simstat/hypothesis"
	"github.com/nozzle/simstat/simerr"
)

// CDF is a theoretical cumulative distribution function. The distuv
// distributions satisfy it.
type CDF interface {
	CDF(x float64) float64
}

// CDFFunc adapts a plain function to CDF.
type CDFFunc func(x float64) float64

// CDF calls f(x).
func (f CDFFunc) CDF(x float64) float64 { return f(x) }

// Mode distinguishes the two ways a KS statistic is computed.
type Mode int

const (
	// Continuous compares the empirical CDF with F at every sample point.
	Continuous Mode = iota
	// Binned compares cumulative proportions at bin upper edges.
	Binned
)

func (m Mode) String() string {
	if m == Binned {
		return "binned"
	}
	return "continuous"
}

// Row is one line of the audit table. In Continuous mode Lower and Upper
// both hold the sample point and Observed is 1.
type Row struct {
	Lower, Upper float64
	Observed     int
	ObservedProp float64 // Oi/n
	CumObserved  float64 // cumulative observed proportion
	CumExpected  float64 // theoretical cumulative probability
	Diff         float64 // |CumObserved - CumExpected|, two-sided in Continuous mode
}

// Result is the outcome of a KS test.
type Result struct {
	Mode      Mode
	N         int
	Statistic float64
	// Critical is the asymptotic critical distance KSCoefficient/sqrt(N).
	Critical float64
	// PValue is the asymptotic Kolmogorov survival of the statistic.
	PValue  float64
	Alpha   float64
	Verdict hypothesis.Verdict
	Rows    []Row
}

// Threshold is the value the decision compared against: Alpha for a
// Continuous test (against PValue), Critical for a Binned one.
func (r *Result) Threshold() float64 {
	if r.Mode == Binned {
		return r.Critical
	}
	return r.Alpha
}

// Factory builds a distribution from a fixed number of parameters.
type Factory struct {
	Params int
	Build  func(p []float64) (CDF, error)
}

// Registry maps distribution names to constructors. Parameters, in order:
//
//	normal       mu, sigma
//	weibull      shape, scale
//	exponential  rate
//	uniform      min, max
var Registry = map[string]Factory{
	"normal": {2, func(p []float64) (CDF, error) {
		if !(p[1] > 0) {
			return nil, simerr.Configf("gof.Distribution", "sigma", "must be positive, got %v", p[1])
		}
		return distuv.Normal{Mu: p[0], Sigma: p[1]}, nil
	}},
	"weibull": {2, func(p []float64) (CDF, error) {
		if !(p[0] > 0) || !(p[1] > 0) {
			return nil, simerr.Configf("gof.Distribution", "shape/scale", "must be positive, got %v, %v", p[0], p[1])
		}
		return distuv.Weibull{K: p[0], Lambda: p[1]}, nil
	}},
	"exponential": {1, func(p []float64) (CDF, error) {
		if !(p[0] > 0) {
			return nil, simerr.Configf("gof.Distribution", "rate", "must be positive, got %v", p[0])
		}
		return distuv.Exponential{Rate: p[0]}, nil
	}},
	"uniform": {2, func(p []float64) (CDF, error) {
		if !(p[0] < p[1]) {
			return nil, simerr.Configf("gof.Distribution", "min/max", "min must be below max, got %v, %v", p[0], p[1])
		}
		return distuv.Uniform{Min: p[0], Max: p[1]}, nil
	}},
}

// Distribution returns the named distribution built from params.
func Distribution(name string, params ...float64) (CDF, error) {
	f, ok := Registry[name]
	if !ok {
		return nil, simerr.Configf("gof.Distribution", "name", "unknown distribution %q", name)
	}
	if len(params) != f.Params {
		return nil, simerr.Configf("gof.Distribution", "params", "%s takes %d parameters, got %d", name, f.Params, len(params))
	}
	return f.Build(params)
}
