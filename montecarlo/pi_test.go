package montecarlo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nozzle/simstat/simerr"
	"github.com/nozzle/simstat/source"
)

type replay []float64

func (r *replay) Next() float64 {
	v := (*r)[0]
	*r = (*r)[1:]
	return v
}

func TestEstimatePiByHand(t *testing.T) {
	// (0.5,0.5) -> (0,0) inside; (1-ε, 1-ε) -> corner outside;
	// (0.5, 0) -> (0,-1) on the circle, inside.
	src := replay{0.5, 0.5, 0.9999, 0.9999, 0.5, 0}
	est, err := EstimatePi(&src, 3)
	require.NoError(t, err)

	assert.Equal(t, 2, est.Inside)
	assert.InDelta(t, 8.0/3, est.Pi, 1e-12)
}

func TestEstimatePiConverges(t *testing.T) {
	g, err := source.NumericalRecipes.New(42)
	require.NoError(t, err)

	est, err := EstimatePi(g, 200000)
	require.NoError(t, err)
	assert.Less(t, est.Error(), 0.02)
}

func TestReplicatePi(t *testing.T) {
	newSource := func(trial int) (source.Source, error) {
		return source.MINSTD.New(uint64(1000 + trial))
	}

	sum, err := ReplicatePi(8, 0, 20000, newSource)
	require.NoError(t, err)
	require.Len(t, sum.Trials, 8)
	assert.InDelta(t, math.Pi, sum.Mean, 0.05)
	assert.Greater(t, sum.StdDev, 0.0)

	again, err := ReplicatePi(8, 3, 20000, newSource)
	require.NoError(t, err)
	assert.Equal(t, sum.Trials, again.Trials, "trials must not depend on scheduling")
}

func TestPiConfigErrors(t *testing.T) {
	g, _ := source.MINSTD.New(1)
	_, err := EstimatePi(g, 0)
	assert.ErrorIs(t, err, simerr.ErrConfig)

	_, err = ReplicatePi(0, 1, 10, func(int) (source.Source, error) { return g, nil })
	assert.ErrorIs(t, err, simerr.ErrConfig)
}
