package gof

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/nozzle/simstat/hypothesis"
	imath "github.com/nozzle/simstat/internal/math"
	"github.com/nozzle/simstat/simerr"
)

// UniformEdges returns bins+1 edges starting at lo, width apart.
func UniformEdges(lo, width float64, bins int) []float64 {
	if bins < 1 {
		return nil
	}
	edges := make([]float64, bins+1)
	for i := range edges {
		edges[i] = lo + float64(i)*width
	}
	return edges
}

// BinCounts counts sample values per bin. Bins are half-open
// [edges[i], edges[i+1]) except the last, which also takes its upper edge.
// Values outside [edges[0], edges[len-1]] are not counted.
func BinCounts(sample, edges []float64) ([]int, error) {
	if err := checkEdges("gof.BinCounts", edges); err != nil {
		return nil, err
	}
	counts := make([]int, len(edges)-1)
	last := edges[len(edges)-1]
	for _, x := range sample {
		if x < edges[0] || x > last || math.IsNaN(x) {
			continue
		}
		if x == last {
			counts[len(counts)-1]++
			continue
		}
		i := sort.Search(len(edges), func(i int) bool { return edges[i] > x }) - 1
		counts[i]++
	}
	return counts, nil
}

// KSBinned runs the binned KS test on observed counts: cumulative observed
// proportions are compared with dist evaluated at each bin's upper edge, and
// the null hypothesis survives while the largest gap is below
// KSCoefficient/sqrt(n). n is the total count.
func KSBinned(counts []int, edges []float64, dist CDF) (*Result, error) {
	return ksBinned("gof.KSBinned", counts, imath.SumInts(counts), edges, dist)
}

// KSBinnedSample bins sample and runs KSBinned with n = len(sample), so
// values falling outside the edges count against the fit.
func KSBinnedSample(sample, edges []float64, dist CDF) (*Result, error) {
	counts, err := BinCounts(sample, edges)
	if err != nil {
		return nil, err
	}
	return ksBinned("gof.KSBinnedSample", counts, len(sample), edges, dist)
}

func ksBinned(op string, counts []int, n int, edges []float64, dist CDF) (*Result, error) {
	if err := checkEdges(op, edges); err != nil {
		return nil, err
	}
	if len(counts) != len(edges)-1 {
		return nil, simerr.Configf(op, "counts", "need %d bins for %d edges, got %d", len(edges)-1, len(edges), len(counts))
	}
	if n <= 0 {
		return nil, simerr.Configf(op, "n", "must be positive, got %d", n)
	}
	for i, c := range counts {
		if c < 0 {
			return nil, simerr.Configf(op, "counts", "bin %d is negative", i)
		}
	}

	fn := float64(n)
	prop := make([]float64, len(counts))
	for i, c := range counts {
		prop[i] = float64(c) / fn
	}
	cum := floats.CumSum(make([]float64, len(prop)), prop)

	rows := make([]Row, len(counts))
	diffs := make([]float64, len(counts))
	for i := range counts {
		expected := dist.CDF(edges[i+1])
		diffs[i] = math.Abs(cum[i] - expected)
		rows[i] = Row{
			Lower:        edges[i],
			Upper:        edges[i+1],
			Observed:     counts[i],
			ObservedProp: prop[i],
			CumObserved:  cum[i],
			CumExpected:  expected,
			Diff:         diffs[i],
		}
	}

	c := floats.Max(diffs)
	crit := hypothesis.KSCoefficient / math.Sqrt(fn)
	return &Result{
		Mode:      Binned,
		N:         n,
		Statistic: c,
		Critical:  crit,
		PValue:    pValue(c, n),
		Alpha:     hypothesis.Alpha,
		Verdict:   hypothesis.FromReject(!(c < crit)),
		Rows:      rows,
	}, nil
}

func checkEdges(op string, edges []float64) error {
	if len(edges) < 2 {
		return simerr.Configf(op, "edges", "need at least 2, got %d", len(edges))
	}
	for i := 1; i < len(edges); i++ {
		if !(edges[i] > edges[i-1]) {
			return simerr.Configf(op, "edges", "must be strictly increasing at %d", i)
		}
	}
	return nil
}
