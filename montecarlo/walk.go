package montecarlo

import (
	"github.com/nozzle/simstat/simerr"
	"github.com/nozzle/simstat/source"
)

// WalkConfig configures the random walk experiment.
type WalkConfig struct {
	// Steps is the number of unit moves per walk.
	// Default: 10
	Steps int

	// Distance is the Manhattan distance |x|+|y| from the origin that
	// counts as a hit after the last step.
	// Default: 2
	Distance int

	// Trials is the number of independent walks.
	// Default: 10000
	Trials int

	// Workers bounds the goroutines used; 0 means one per CPU.
	// Default: 0
	Workers int
}

// DefaultWalkConfig returns the classroom setup: 10 steps, distance 2.
func DefaultWalkConfig() WalkConfig {
	return WalkConfig{Steps: 10, Distance: 2, Trials: 10000}
}

func (c WalkConfig) validate() error {
	const op = "montecarlo.RandomWalk"
	if c.Steps < 0 {
		return simerr.Configf(op, "steps", "must not be negative, got %d", c.Steps)
	}
	if c.Distance < 0 {
		return simerr.Configf(op, "distance", "must not be negative, got %d", c.Distance)
	}
	if c.Trials <= 0 {
		return simerr.Configf(op, "trials", "must be positive, got %d", c.Trials)
	}
	return nil
}

// Walk moves a walker steps times from the origin and returns where it
// ends. Each move takes one uniform u: east for u < 1/4, west below 1/2,
// south below 3/4, north otherwise.
func Walk(src source.Source, steps int) (x, y int) {
	for k := 0; k < steps; k++ {
		switch pick(src, 4) {
		case 0:
			x++
		case 1:
			x--
		case 2:
			y--
		default:
			y++
		}
	}
	return x, y
}

// WalkResult is the outcome of RandomWalk.
type WalkResult struct {
	Proportion

	// Running[i] is the hit share over the first i+1 walks.
	Running []float64
}

// RandomWalk estimates the probability that a walk of cfg.Steps moves ends
// at Manhattan distance cfg.Distance from the origin.
func RandomWalk(cfg WalkConfig, newSource NewSource) (*WalkResult, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	hits, err := replicate(cfg.Trials, cfg.Workers, newSource, func(src source.Source) (bool, error) {
		x, y := Walk(src, cfg.Steps)
		return abs(x)+abs(y) == cfg.Distance, nil
	})
	if err != nil {
		return nil, err
	}

	running := make([]float64, len(hits))
	count := 0
	for i, hit := range hits {
		if hit {
			count++
		}
		running[i] = float64(count) / float64(i+1)
	}
	return &WalkResult{Proportion: newProportion(count, cfg.Trials), Running: running}, nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
