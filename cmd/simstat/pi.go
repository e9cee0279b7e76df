package main

import (
	"math"

	"github.com/spf13/cobra"

	"github.com/nozzle/simstat/montecarlo"
)

func (a *app) piCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pi",
		Short: "Monte Carlo estimate of pi",
		Long: `Estimate pi from the share of random points in [-1, 1)² that fall inside
the unit circle, For example:
  simstat pi --points=100000
  simstat pi --points=20000 --trials=16 --preset=numrecipes`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPi()
		},
	}

	flags := cmd.Flags()
	addGeneratorFlags(flags)
	flags.Int("points", 100000, "points per trial")
	flags.Int("trials", 1, "independent trials, trial t seeded with seed+t")
	flags.Int("workers", 0, "parallel workers (0 = one per CPU)")
	return cmd
}

func (a *app) runPi() error {
	v := a.v
	cfg := a.config()
	points := v.GetInt("points")

	trials := v.GetInt("trials")
	if trials <= 1 {
		src, err := cfg.NewSource()
		if err != nil {
			return err
		}
		est, err := montecarlo.EstimatePi(src, points)
		if err != nil {
			return err
		}
		t := a.newTable("field", "value")
		t.row("points", est.Points)
		t.row("inside", est.Inside)
		t.row("pi", est.Pi)
		t.row("error", est.Error())
		return t.flush()
	}

	sum, err := montecarlo.ReplicatePi(trials, v.GetInt("workers"), points, trialSources(cfg))
	if err != nil {
		return err
	}
	t := a.newTable("trial", "seed", "pi", "error")
	for i, est := range sum.Trials {
		t.row(i+1, cfg.Seed+uint64(i), est.Pi, est.Error())
	}
	if err := t.flush(); err != nil {
		return err
	}

	t = a.newTable("field", "value")
	t.row("trials", trials)
	t.row("mean", sum.Mean)
	t.row("std dev", sum.StdDev)
	t.row("error of mean", math.Abs(sum.Mean-math.Pi))
	return t.flush()
}
