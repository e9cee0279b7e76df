package independence

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/nozzle/simstat/hypothesis"
	imath "github.com/nozzle/simstat/internal/math"
	"github.com/nozzle/simstat/simerr"
)

// RunsResult is the outcome of the runs-up-and-down test.
type RunsResult struct {
	N int // sequence length

	// Signs[i] is 1 when seq[i+1] > seq[i], otherwise 0.
	Signs []int
	Runs  int

	// Expected and Variance are the null moments of Runs for len(Signs)
	// comparisons.
	Expected float64
	Variance float64
	Z        float64
	PValue   float64 // two-sided
	Verdict  hypothesis.Verdict
}

// Runs counts runs of rises and falls in seq and compares the count with its
// expectation under independence:
//
//	E[C] = (2n-1)/3, Var[C] = (16n-29)/90, n = len(Signs)
//
// Independence is not rejected while |Z| < hypothesis.ZCritical. Every
// value must be finite.
func Runs(seq []float64) (*RunsResult, error) {
	const op = "independence.Runs"
	if len(seq) < 3 {
		return nil, simerr.Configf(op, "seq", "need at least 3 values, got %d", len(seq))
	}
	for i, x := range seq {
		if !imath.IsFinite(x) {
			return nil, simerr.Configf(op, "seq", "value %d = %v is not finite", i, x)
		}
	}

	signs := make([]int, len(seq)-1)
	for i := 1; i < len(seq); i++ {
		if seq[i] > seq[i-1] {
			signs[i-1] = 1
		}
	}

	runs := 1
	for i := 1; i < len(signs); i++ {
		if signs[i] != signs[i-1] {
			runs++
		}
	}

	n := float64(len(signs))
	expected := (2*n - 1) / 3
	variance := (16*n - 29) / 90
	z := (float64(runs) - expected) / math.Sqrt(variance)

	return &RunsResult{
		N:        len(seq),
		Signs:    signs,
		Runs:     runs,
		Expected: expected,
		Variance: variance,
		Z:        z,
		PValue:   2 * distuv.UnitNormal.Survival(math.Abs(z)),
		Verdict:  hypothesis.FromReject(!(math.Abs(z) < hypothesis.ZCritical)),
	}, nil
}
