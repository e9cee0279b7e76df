package montecarlo

import (
	"gonum.org/v1/gonum/stat"

	"github.com/nozzle/simstat/simerr"
	"github.com/nozzle/simstat/source"
)

// CollectorConfig configures the collector robot experiment.
type CollectorConfig struct {
	// Rows and Cols size the grid.
	// Default: 10, 10
	Rows, Cols int

	// P is the probability that a cell holds an object.
	// Default: 0.1
	P float64

	// Moves is the most steps the robot takes.
	// Default: 20
	Moves int

	// Target is the number of objects that counts as a success.
	// Default: 5
	Target int

	// Trials is the number of simulated runs.
	// Default: 10000
	Trials int

	// Workers bounds the goroutines used; 0 means one per CPU.
	// Default: 0
	Workers int
}

// DefaultCollectorConfig returns a 10x10 grid, p = 0.1, 20 moves and a
// target of 5 objects.
func DefaultCollectorConfig() CollectorConfig {
	return CollectorConfig{Rows: 10, Cols: 10, P: 0.1, Moves: 20, Target: 5, Trials: 10000}
}

func (c CollectorConfig) validate() error {
	const op = "montecarlo.Collector"
	if c.Rows <= 0 {
		return simerr.Configf(op, "rows", "must be positive, got %d", c.Rows)
	}
	if c.Cols <= 0 {
		return simerr.Configf(op, "cols", "must be positive, got %d", c.Cols)
	}
	if !(c.P >= 0 && c.P <= 1) {
		return simerr.Configf(op, "p", "must be in [0, 1], got %v", c.P)
	}
	if c.Moves < 0 {
		return simerr.Configf(op, "moves", "must not be negative, got %d", c.Moves)
	}
	if c.Target < 0 {
		return simerr.Configf(op, "target", "must not be negative, got %d", c.Target)
	}
	if c.Trials <= 0 {
		return simerr.Configf(op, "trials", "must be positive, got %d", c.Trials)
	}
	return nil
}

// Collect runs the robot once and returns how many objects it picked up.
//
// Cells are filled in row-major order, one uniform each. The robot starts
// on a uniform cell (row first), then each move picks uniformly among the
// unvisited neighbours in the order up, down, left, right. It stops early
// when every neighbour has been visited.
func Collect(src source.Source, cfg CollectorConfig) int {
	rows, cols := cfg.Rows, cfg.Cols
	objects := make([]bool, rows*cols)
	for i := range objects {
		objects[i] = src.Next() < cfg.P
	}
	visited := make([]bool, rows*cols)

	r, c := pick(src, rows), pick(src, cols)
	collected := 0
	visit := func() {
		i := r*cols + c
		visited[i] = true
		if objects[i] {
			collected++
			objects[i] = false
		}
	}
	visit()

	var next [4][2]int
	for mv := 0; mv < cfg.Moves; mv++ {
		k := 0
		for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
			nr, nc := r+d[0], c+d[1]
			if nr < 0 || nr >= rows || nc < 0 || nc >= cols || visited[nr*cols+nc] {
				continue
			}
			next[k] = [2]int{nr, nc}
			k++
		}
		if k == 0 {
			break
		}
		step := next[pick(src, k)]
		r, c = step[0], step[1]
		visit()
	}
	return collected
}

// CollectorResult is the outcome of Collector.
type CollectorResult struct {
	Proportion

	// Collected[i] is the number of objects picked up in run i.
	Collected     []int
	MeanCollected float64
}

// Collector estimates the probability that the robot collects at least
// cfg.Target objects.
func Collector(cfg CollectorConfig, newSource NewSource) (*CollectorResult, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	collected, err := replicate(cfg.Trials, cfg.Workers, newSource, func(src source.Source) (int, error) {
		return Collect(src, cfg), nil
	})
	if err != nil {
		return nil, err
	}

	hits := 0
	values := make([]float64, len(collected))
	for i, n := range collected {
		if n >= cfg.Target {
			hits++
		}
		values[i] = float64(n)
	}
	return &CollectorResult{
		Proportion:    newProportion(hits, cfg.Trials),
		Collected:     collected,
		MeanCollected: stat.Mean(values, nil),
	}, nil
}
