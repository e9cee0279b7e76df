package montecarlo

import (
	"math"

	"github.com/nozzle/simstat/hypothesis"
	imath "github.com/nozzle/simstat/internal/math"
	"github.com/nozzle/simstat/internal/parallel"
	"github.com/nozzle/simstat/source"
)

// NewSource returns the generator for one trial.
type NewSource func(trial int) (source.Source, error)

// Proportion estimates the probability of an event from independent
// trials.
type Proportion struct {
	Trials int
	Hits   int
	P      float64 // Hits/Trials
	StdErr float64 // sqrt(P(1-P)/Trials)

	// Lo and Hi bound the normal-approximation interval
	// P ± hypothesis.ZCritical·StdErr, clipped to [0, 1].
	Lo, Hi float64
}

func newProportion(hits, trials int) Proportion {
	p := float64(hits) / float64(trials)
	se := math.Sqrt(p * (1 - p) / float64(trials))
	return Proportion{
		Trials: trials,
		Hits:   hits,
		P:      p,
		StdErr: se,
		Lo:     max(0, p-hypothesis.ZCritical*se),
		Hi:     min(1, p+hypothesis.ZCritical*se),
	}
}

// replicate runs trial once per index, each with its own source, and
// returns the outcomes in trial order. The first error wins.
func replicate[T any](trials, workers int, newSource NewSource, trial func(src source.Source) (T, error)) ([]T, error) {
	type outcome struct {
		v   T
		err error
	}
	outcomes := parallel.Map(trials, workers, func(i int) outcome {
		src, err := newSource(i)
		if err != nil {
			return outcome{err: err}
		}
		v, err := trial(src)
		return outcome{v: v, err: err}
	})

	vs := make([]T, trials)
	for i, o := range outcomes {
		if o.err != nil {
			return nil, o.err
		}
		vs[i] = o.v
	}
	return vs, nil
}

// pick returns a uniform index in [0, n).
func pick(src source.Source, n int) int {
	return imath.ClampIndex(int(src.Next()*float64(n)), n)
}
