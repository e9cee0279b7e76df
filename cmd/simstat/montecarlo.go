package main

import (
	"math"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gonum.org/v1/plot"

	"github.com/nozzle/simstat/internal/chart"
	"github.com/nozzle/simstat/montecarlo"
)

func addTrialFlags(flags *pflag.FlagSet, trials int) {
	flags.Int("trials", trials, "independent trials, trial t seeded with seed+t")
	flags.Int("workers", 0, "parallel workers (0 = one per CPU)")
}

func (a *app) walkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "walk",
		Short: "Monte Carlo 2D random walk",
		Long: `Estimate the probability that a walker taking unit steps north, south,
east or west ends at a given Manhattan distance from the origin, For example:
  simstat walk --steps=10 --distance=2
  simstat walk --trials=50000 --plot=walk.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runWalk()
		},
	}

	def := montecarlo.DefaultWalkConfig()
	flags := cmd.Flags()
	addGeneratorFlags(flags)
	flags.Int("steps", def.Steps, "steps per walk")
	flags.Int("distance", def.Distance, "Manhattan distance |x|+|y| counted as a hit")
	addTrialFlags(flags, def.Trials)
	addPlotFlag(flags, "the running estimate")
	return cmd
}

func (a *app) runWalk() error {
	v := a.v
	cfg := a.config()
	wcfg := montecarlo.WalkConfig{
		Steps:    v.GetInt("steps"),
		Distance: v.GetInt("distance"),
		Trials:   v.GetInt("trials"),
		Workers:  v.GetInt("workers"),
	}

	res, err := montecarlo.RandomWalk(wcfg, trialSources(cfg))
	if err != nil {
		return err
	}
	a.log.Debug().Int("trials", res.Trials).Int("hits", res.Hits).Msg("walks done")

	t := a.newTable("field", "value")
	t.row("steps", wcfg.Steps)
	t.row("distance", wcfg.Distance)
	addProportion(t, res.Proportion)
	if err := t.flush(); err != nil {
		return err
	}

	return a.savePlot(func() (*plot.Plot, error) {
		return chart.Convergence("random walk", res.Running, math.NaN())
	})
}

func (a *app) collisionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collision",
		Short: "Monte Carlo collision probability in a sensor network",
		Long: `Estimate the probability that at least two of N sensors, each transmitting
once at a uniform time in [0, 1), transmit less than delta apart, For example:
  simstat collision --nodes=10 --delta=0.05
  simstat collision --nodes=5 --trials=100000 --workers=4`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCollision()
		},
	}

	def := montecarlo.DefaultCollisionConfig()
	flags := cmd.Flags()
	addGeneratorFlags(flags)
	flags.Int("nodes", def.Nodes, "number of transmitters")
	flags.Float64("delta", def.Delta, "collision window")
	addTrialFlags(flags, def.Trials)
	return cmd
}

func (a *app) runCollision() error {
	v := a.v
	cfg := a.config()
	ccfg := montecarlo.CollisionConfig{
		Nodes:   v.GetInt("nodes"),
		Delta:   v.GetFloat64("delta"),
		Trials:  v.GetInt("trials"),
		Workers: v.GetInt("workers"),
	}

	res, err := montecarlo.Collision(ccfg, trialSources(cfg))
	if err != nil {
		return err
	}

	t := a.newTable("field", "value")
	t.row("nodes", ccfg.Nodes)
	t.row("delta", ccfg.Delta)
	addProportion(t, *res)
	return t.flush()
}

func (a *app) collectorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collector",
		Short: "Monte Carlo collector robot on a grid",
		Long: `Estimate the probability that a robot wandering a grid, never revisiting a
cell, picks up at least a target number of objects, For example:
  simstat collector --rows=10 --cols=10 --p=0.1 --moves=20 --target=5
  simstat collector --p=0.2 --trials=50000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCollector()
		},
	}

	def := montecarlo.DefaultCollectorConfig()
	flags := cmd.Flags()
	addGeneratorFlags(flags)
	flags.Int("rows", def.Rows, "grid rows")
	flags.Int("cols", def.Cols, "grid columns")
	flags.Float64("p", def.P, "probability that a cell holds an object")
	flags.Int("moves", def.Moves, "moves per run")
	flags.Int("target", def.Target, "objects needed for a success")
	addTrialFlags(flags, def.Trials)
	return cmd
}

func (a *app) runCollector() error {
	v := a.v
	cfg := a.config()
	rcfg := montecarlo.CollectorConfig{
		Rows:    v.GetInt("rows"),
		Cols:    v.GetInt("cols"),
		P:       v.GetFloat64("p"),
		Moves:   v.GetInt("moves"),
		Target:  v.GetInt("target"),
		Trials:  v.GetInt("trials"),
		Workers: v.GetInt("workers"),
	}

	res, err := montecarlo.Collector(rcfg, trialSources(cfg))
	if err != nil {
		return err
	}

	t := a.newTable("field", "value")
	t.row("rows", rcfg.Rows)
	t.row("cols", rcfg.Cols)
	t.row("p", rcfg.P)
	t.row("moves", rcfg.Moves)
	t.row("target", rcfg.Target)
	t.row("mean collected", res.MeanCollected)
	addProportion(t, res.Proportion)
	return t.flush()
}

// addProportion appends the rows shared by every probability estimate.
func addProportion(t *table, p montecarlo.Proportion) {
	t.row("trials", p.Trials)
	t.row("hits", p.Hits)
	t.row("probability", p.P)
	t.row("std error", p.StdErr)
	t.row("ci low", p.Lo)
	t.row("ci high", p.Hi)
}
