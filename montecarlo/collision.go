package montecarlo

import (
	"sort"

	"github.com/nozzle/simstat/simerr"
	"github.com/nozzle/simstat/source"
)

// CollisionConfig configures the sensor network collision experiment.
type CollisionConfig struct {
	// Nodes is the number of transmitters, each sending once at a uniform
	// time in [0, 1).
	// Default: 10
	Nodes int

	// Delta is the collision window: two transmissions closer than Delta
	// collide.
	// Default: 0.05
	Delta float64

	// Trials is the number of simulated rounds.
	// Default: 10000
	Trials int

	// Workers bounds the goroutines used; 0 means one per CPU.
	// Default: 0
	Workers int
}

// DefaultCollisionConfig returns 10 nodes with a 0.05 window.
func DefaultCollisionConfig() CollisionConfig {
	return CollisionConfig{Nodes: 10, Delta: 0.05, Trials: 10000}
}

func (c CollisionConfig) validate() error {
	const op = "montecarlo.Collision"
	if c.Nodes <= 0 {
		return simerr.Configf(op, "nodes", "must be positive, got %d", c.Nodes)
	}
	if !(c.Delta > 0) {
		return simerr.Configf(op, "delta", "must be positive, got %v", c.Delta)
	}
	if c.Trials <= 0 {
		return simerr.Configf(op, "trials", "must be positive, got %d", c.Trials)
	}
	return nil
}

// Collides draws one transmission time per node and reports whether any two
// neighbouring times are less than delta apart.
func Collides(src source.Source, nodes int, delta float64) bool {
	times := make([]float64, nodes)
	source.Fill(src, times)
	sort.Float64s(times)
	for i := 1; i < len(times); i++ {
		if times[i]-times[i-1] < delta {
			return true
		}
	}
	return false
}

// Collision estimates the probability of at least one collision per round.
func Collision(cfg CollisionConfig, newSource NewSource) (*Proportion, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	hits, err := replicate(cfg.Trials, cfg.Workers, newSource, func(src source.Source) (bool, error) {
		return Collides(src, cfg.Nodes, cfg.Delta), nil
	})
	if err != nil {
		return nil, err
	}

	count := 0
	for _, hit := range hits {
		if hit {
			count++
		}
	}
	p := newProportion(count, cfg.Trials)
	return &p, nil
}
