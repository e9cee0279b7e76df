package queue

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"github.com/nozzle/simstat/simerr"
	"github.com/nozzle/simstat/source"
)

// replay returns the given uniforms in order.
type replay struct {
	vals []float64
	i    int
}

func (r *replay) Next() float64 {
	v := r.vals[r.i]
	r.i++
	return v
}

// expUniform is the uniform whose inverse-CDF draw at rate 1 equals x.
func expUniform(x float64) float64 { return math.Exp(-x) }

func TestExponentialInverseCDF(t *testing.T) {
	src := &replay{vals: []float64{expUniform(2), 0}}
	assert.InDelta(t, 1.0, Exponential(src, 2), 1e-12)

	// u = 0 is clamped rather than producing +Inf
	x := Exponential(src, 1)
	assert.False(t, math.IsInf(x, 0))
	assert.InDelta(t, -math.Log(source.Epsilon), x, 1e-9)
}

func TestExponentialMean(t *testing.T) {
	g, err := source.MINSTD.New(12345)
	require.NoError(t, err)

	draws := make([]float64, 50000)
	for i := range draws {
		draws[i] = Exponential(g, 0.5)
	}
	assert.InDelta(t, 2.0, stat.Mean(draws, nil), 0.05)
}

func TestSimulateMM1ByHand(t *testing.T) {
	// inter-arrivals 1, 2, 0.5 then services 3, 1, 2
	src := &replay{vals: []float64{
		expUniform(1), expUniform(2), expUniform(0.5),
		expUniform(3), expUniform(1), expUniform(2),
	}}

	res, err := SimulateMM1(src, MM1Config{Customers: 3, ArrivalRate: 1, ServiceRate: 1})
	require.NoError(t, err)

	want := []Customer{
		{ID: 1, Arrival: 1, Start: 1, End: 4, Wait: 0, Total: 3},
		{ID: 2, Arrival: 3, Start: 4, End: 5, Wait: 1, Total: 2},
		{ID: 3, Arrival: 3.5, Start: 5, End: 7, Wait: 1.5, Total: 3.5},
	}
	require.Len(t, res.Customers, 3)
	for i, w := range want {
		got := res.Customers[i]
		assert.Equal(t, w.ID, got.ID)
		assert.InDelta(t, w.Arrival, got.Arrival, 1e-9, "customer %d arrival", w.ID)
		assert.InDelta(t, w.Start, got.Start, 1e-9, "customer %d start", w.ID)
		assert.InDelta(t, w.End, got.End, 1e-9, "customer %d end", w.ID)
		assert.InDelta(t, w.Wait, got.Wait, 1e-9, "customer %d wait", w.ID)
		assert.InDelta(t, w.Total, got.Total, 1e-9, "customer %d total", w.ID)
	}

	assert.InDelta(t, 2.5/3, res.MeanWait, 1e-9)
	assert.InDelta(t, 8.5/3, res.MeanTotal, 1e-9)
	assert.Equal(t, 2, res.Waited)
	assert.InDelta(t, 200.0/3, res.WaitedShare, 1e-9)
	assert.False(t, res.Theory.Stable, "ρ = 1 is not stable")
}

func TestMM1Theory(t *testing.T) {
	th := MM1Theory(0.8, 1.0)
	assert.True(t, th.Stable)
	assert.InDelta(t, 0.8, th.Rho, 1e-12)
	assert.InDelta(t, 3.2, th.Lq, 1e-9)
	assert.InDelta(t, 4.0, th.Wq, 1e-9)
	assert.InDelta(t, 4.0, th.L, 1e-9)
	assert.InDelta(t, 5.0, th.W, 1e-9)

	unstable := MM1Theory(2, 1)
	assert.False(t, unstable.Stable)
	assert.Equal(t, Theory{Rho: 2}, unstable)
}

func TestSimulateMM1LongRun(t *testing.T) {
	g, err := source.NumericalRecipes.New(2024)
	require.NoError(t, err)

	cfg := MM1Config{Customers: 200000, ArrivalRate: 0.5, ServiceRate: 1}
	res, err := SimulateMM1(g, cfg)
	require.NoError(t, err)

	// Wq = ρ/(μ-λ) = 1, W = 1/(μ-λ) = 2
	assert.InDelta(t, res.Theory.Wq, res.MeanWait, 0.1)
	assert.InDelta(t, res.Theory.W, res.MeanTotal, 0.1)
}

func TestSimulateMM1ConfigErrors(t *testing.T) {
	g, _ := source.MINSTD.New(1)
	for _, cfg := range []MM1Config{
		{Customers: 0, ArrivalRate: 1, ServiceRate: 1},
		{Customers: 10, ArrivalRate: 0, ServiceRate: 1},
		{Customers: 10, ArrivalRate: 1, ServiceRate: -1},
	} {
		_, err := SimulateMM1(g, cfg)
		assert.ErrorIs(t, err, simerr.ErrConfig, "%+v", cfg)
	}
}

func TestReplicateMM1(t *testing.T) {
	newSource := func(trial int) (source.Source, error) {
		return source.MINSTD.New(uint64(trial + 1))
	}
	cfg := DefaultMM1Config()

	parallelRuns, err := ReplicateMM1(16, 4, newSource, cfg)
	require.NoError(t, err)
	serialRuns, err := ReplicateMM1(16, 1, newSource, cfg)
	require.NoError(t, err)

	require.Len(t, parallelRuns, 16)
	for i := range parallelRuns {
		assert.Equal(t, serialRuns[i].MeanWait, parallelRuns[i].MeanWait, "trial %d", i)
	}
	assert.NotEqual(t, parallelRuns[0].MeanWait, parallelRuns[1].MeanWait)

	failing := func(trial int) (source.Source, error) {
		return source.NewLCG(0, 5, 0, 7)
	}
	_, err = ReplicateMM1(4, 2, failing, cfg)
	assert.ErrorIs(t, err, simerr.ErrConfig)

	_, err = ReplicateMM1(0, 2, newSource, cfg)
	assert.ErrorIs(t, err, simerr.ErrConfig)
}
