package gof

import (
	"math"
	"sort"

	"github.com/nozzle/simstat/hypothesis"
	imath "github.com/nozzle/simstat/internal/math"
	"github.com/nozzle/simstat/simerr"
)

// KS tests sample against dist. The statistic is the two-sided distance
//
//	D = max_i max(i/n - F(x_(i)), F(x_(i)) - (i-1)/n)
//
// over the sorted sample, and the null hypothesis is rejected when its
// asymptotic p-value is at most alpha. Every value must be finite.
func KS(sample []float64, dist CDF, alpha float64) (*Result, error) {
	const op = "gof.KS"
	n := len(sample)
	if n == 0 {
		return nil, simerr.Configf(op, "sample", "must not be empty")
	}
	if !(alpha > 0 && alpha < 1) {
		return nil, simerr.Configf(op, "alpha", "must be in (0, 1), got %v", alpha)
	}
	for i, x := range sample {
		if !imath.IsFinite(x) {
			return nil, simerr.Configf(op, "sample", "value %d = %v is not finite", i, x)
		}
	}

	sorted := make([]float64, n)
	copy(sorted, sample)
	sort.Float64s(sorted)

	fn := float64(n)
	rows := make([]Row, n)
	var d float64
	for i, x := range sorted {
		f := dist.CDF(x)
		above := float64(i+1)/fn - f
		below := f - float64(i)/fn
		diff := math.Max(above, below)
		rows[i] = Row{
			Lower:        x,
			Upper:        x,
			Observed:     1,
			ObservedProp: 1 / fn,
			CumObserved:  float64(i+1) / fn,
			CumExpected:  f,
			Diff:         diff,
		}
		if diff > d {
			d = diff
		}
	}

	p := pValue(d, n)
	return &Result{
		Mode:      Continuous,
		N:         n,
		Statistic: d,
		Critical:  hypothesis.KSCoefficient / math.Sqrt(fn),
		PValue:    p,
		Alpha:     alpha,
		Verdict:   hypothesis.FromReject(p <= alpha),
		Rows:      rows,
	}, nil
}

// KSNormal tests sample against N(mu, sigma²) at hypothesis.Alpha.
func KSNormal(sample []float64, mu, sigma float64) (*Result, error) {
	dist, err := Distribution("normal", mu, sigma)
	if err != nil {
		return nil, err
	}
	return KS(sample, dist, hypothesis.Alpha)
}
