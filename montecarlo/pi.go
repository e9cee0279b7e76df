// Package montecarlo runs small Monte Carlo experiments over a uniform
// source: a π estimate, a 2D random walk, transmission collisions in a
// sensor network and a random collector robot on a grid.
//
// Replicated experiments take a NewSource factory and give every trial its
// own generator, so results do not depend on how trials are scheduled.
package montecarlo

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/nozzle/simstat/simerr"
	"github.com/nozzle/simstat/source"
)

// PiEstimate is the outcome of one run.
type PiEstimate struct {
	Points int
	Inside int
	Pi     float64 // 4·Inside/Points
}

// Error returns the absolute distance from math.Pi.
func (e PiEstimate) Error() float64 {
	return math.Abs(e.Pi - math.Pi)
}

// EstimatePi draws n points, x then y for each, from src.
func EstimatePi(src source.Source, n int) (PiEstimate, error) {
	if n <= 0 {
		return PiEstimate{}, simerr.Configf("montecarlo.EstimatePi", "n", "must be positive, got %d", n)
	}
	inside := 0
	for k := 0; k < n; k++ {
		x := 2*src.Next() - 1
		y := 2*src.Next() - 1
		if x*x+y*y <= 1 {
			inside++
		}
	}
	return PiEstimate{Points: n, Inside: inside, Pi: 4 * float64(inside) / float64(n)}, nil
}

// Summary aggregates replicated estimates.
type Summary struct {
	Trials []PiEstimate
	Mean   float64
	StdDev float64
}

// ReplicatePi runs independent trials of n points each over up to workers
// goroutines. newSource is called once per trial.
func ReplicatePi(trials, workers, n int, newSource NewSource) (*Summary, error) {
	if trials <= 0 {
		return nil, simerr.Configf("montecarlo.ReplicatePi", "trials", "must be positive, got %d", trials)
	}

	ests, err := replicate(trials, workers, newSource, func(src source.Source) (PiEstimate, error) {
		return EstimatePi(src, n)
	})
	if err != nil {
		return nil, err
	}

	sum := &Summary{Trials: ests}
	values := make([]float64, trials)
	for i, est := range ests {
		values[i] = est.Pi
	}
	if trials > 1 {
		sum.Mean, sum.StdDev = stat.MeanStdDev(values, nil)
	} else {
		sum.Mean = values[0]
	}
	return sum, nil
}
