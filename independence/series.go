// Package independence tests whether a uniform sequence behaves like
// independent draws: the series test bins consecutive pairs on a grid, the
// runs test counts changes between rises and falls.
package independence

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/nozzle/simstat/hypothesis"
	imath "github.com/nozzle/simstat/internal/math"
	"github.com/nozzle/simstat/simerr"
)

// SeriesResult is the outcome of the series test.
type SeriesResult struct {
	N     int // sequence length
	Pairs int // N-1 consecutive pairs
	M     int // grid resolution per axis, round(sqrt(N))

	// Table holds the observed pair counts; row is the bin of r_i, column
	// the bin of r_{i+1}.
	Table *mat.Dense

	Expected  float64 // (N-1)/M² per cell
	ChiSquare float64
	DF        int // M² - 1

	// Critical is NaN when no tabulated value exists for DF.
	Critical float64
	// PValue is the chi-square survival of ChiSquare, NaN when DF is 0.
	PValue  float64
	Verdict hypothesis.Verdict
}

// Cells returns the number of grid cells.
func (r *SeriesResult) Cells() int {
	return r.M * r.M
}

// Series runs the chi-square series test on seq. Every value must lie in
// [0, 1]; a value of exactly 1 lands in the last bin. If DF has no
// tabulated critical value the result carries hypothesis.NoCriticalValue.
func Series(seq []float64) (*SeriesResult, error) {
	const op = "independence.Series"
	n := len(seq)
	if n < 2 {
		return nil, simerr.Configf(op, "seq", "need at least 2 values, got %d", n)
	}
	for i, x := range seq {
		if !imath.IsUnit(x) {
			return nil, simerr.Configf(op, "seq", "value %d = %v outside [0, 1]", i, x)
		}
	}

	m := int(math.Round(math.Sqrt(float64(n))))
	table := mat.NewDense(m, m, nil)
	for i := 0; i < n-1; i++ {
		row := imath.ClampIndex(int(math.Floor(seq[i]*float64(m))), m)
		col := imath.ClampIndex(int(math.Floor(seq[i+1]*float64(m))), m)
		table.Set(row, col, table.At(row, col)+1)
	}

	expected := float64(n-1) / float64(m*m)
	var chi float64
	for i := 0; i < m; i++ {
		for j := 0; j < m; j++ {
			d := table.At(i, j) - expected
			chi += d * d / expected
		}
	}
	df := m*m - 1

	res := &SeriesResult{
		N:         n,
		Pairs:     n - 1,
		M:         m,
		Table:     table,
		Expected:  expected,
		ChiSquare: chi,
		DF:        df,
		Critical:  math.NaN(),
		PValue:    math.NaN(),
		Verdict:   hypothesis.NoCriticalValue,
	}
	if df > 0 {
		res.PValue = distuv.ChiSquared{K: float64(df)}.Survival(chi)
	}

	crit, err := CriticalValue(df)
	switch {
	case errors.Is(err, simerr.ErrNoCriticalValue):
		// reported through the verdict
	case err != nil:
		return nil, err
	default:
		res.Critical = crit
		res.Verdict = hypothesis.FromReject(chi > crit)
	}
	return res, nil
}
