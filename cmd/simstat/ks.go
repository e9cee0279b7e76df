package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat/distuv"
	"gonum.org/v1/plot"

	"github.com/nozzle/simstat/gof"
	"github.com/nozzle/simstat/internal/chart"
	"github.com/nozzle/simstat/normal"
	"github.com/nozzle/simstat/source"
)

func (a *app) ksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ks",
		Short: "Kolmogorov-Smirnov goodness-of-fit tests",
	}
	cmd.AddCommand(a.ksNormalCmd(), a.ksWeibullCmd())
	return cmd
}

func (a *app) ksNormalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "normal",
		Short: "Test a sample against a normal distribution",
		Long: `Test a sample against N(mu, sigma). With --standardize the sample is
rescaled first and tested against N(0, 1), For example:
  simstat ks normal --seed=12345 --n=200
  simstat ks normal --in=normals.txt --mu=10 --sigma=2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runKSNormal()
		},
	}

	flags := cmd.Flags()
	addSampleFlags(flags)
	addNormalFlags(flags)
	flags.Bool("rows", false, "print the per-point table")
	flags.Int("bins", 20, "histogram bars for --plot")
	addPlotFlag(flags, "a histogram of the sample")
	return cmd
}

func (a *app) runKSNormal() error {
	cfg := a.config()
	xs, err := a.normalSample(cfg)
	if err != nil {
		return err
	}

	mu, sigma := cfg.Mu, cfg.Sigma
	if cfg.Standardize {
		xs = normal.Standardize(xs)
		mu, sigma = 0, 1
	}
	dist, err := gof.Distribution("normal", mu, sigma)
	if err != nil {
		return err
	}
	res, err := gof.KS(xs, dist, cfg.Alpha)
	if err != nil {
		return err
	}

	if a.v.GetBool("rows") {
		t := a.newTable("i", "x", "F_observed", "F_expected", "diff")
		for i, r := range res.Rows {
			t.row(i+1, r.Lower, r.CumObserved, r.CumExpected, r.Diff)
		}
		if err := t.flush(); err != nil {
			return err
		}
	}
	if err := a.printKS(res); err != nil {
		return err
	}

	return a.savePlot(func() (*plot.Plot, error) {
		density := distuv.Normal{Mu: mu, Sigma: sigma}.Prob
		return chart.Histogram(fmt.Sprintf("N(%g, %g), D=%.4f", mu, sigma, res.Statistic), xs, a.v.GetInt("bins"), density)
	})
}

func (a *app) ksWeibullCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weibull",
		Short: "Binned test of a sample against a Weibull distribution",
		Long: `Bin a sample into equal-width classes and compare the cumulative observed
proportions with Weibull(shape, scale). Without --in a Weibull sample is drawn
from the generator by inversion, For example:
  simstat ks weibull --in=failures.txt --shape=1.38 --scale=5.19 --width=2 --bins=8`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runKSWeibull()
		},
	}

	flags := cmd.Flags()
	addSampleFlags(flags)
	flags.Float64("shape", 1.38, "Weibull shape")
	flags.Float64("scale", 5.19, "Weibull scale")
	flags.Float64("lo", 0, "lower edge of the first class")
	flags.Float64("width", 2, "class width")
	flags.Int("bins", 8, "number of classes")
	addPlotFlag(flags, "a histogram of the sample")
	return cmd
}

func (a *app) runKSWeibull() error {
	v := a.v
	dist, err := gof.Distribution("weibull", v.GetFloat64("shape"), v.GetFloat64("scale"))
	if err != nil {
		return err
	}
	weibull := dist.(distuv.Weibull)

	cfg := a.config()
	xs, ok, err := a.readInput()
	if err != nil {
		return err
	}
	if !ok {
		src, err := cfg.NewSource()
		if err != nil {
			return err
		}
		us, err := source.Uniforms(src, cfg.N)
		if err != nil {
			return err
		}
		xs = make([]float64, len(us))
		for i, u := range us {
			xs[i] = weibull.Quantile(u)
		}
	}

	edges := gof.UniformEdges(v.GetFloat64("lo"), v.GetFloat64("width"), v.GetInt("bins"))
	res, err := gof.KSBinnedSample(xs, edges, dist)
	if err != nil {
		return err
	}

	t := a.newTable("lower", "upper", "observed", "POA", "POAA", "PEA", "diff")
	for _, r := range res.Rows {
		t.row(r.Lower, r.Upper, r.Observed, r.ObservedProp, r.CumObserved, r.CumExpected, r.Diff)
	}
	if err := t.flush(); err != nil {
		return err
	}
	if err := a.printKS(res); err != nil {
		return err
	}

	return a.savePlot(func() (*plot.Plot, error) {
		title := fmt.Sprintf("Weibull(%g, %g), c=%.4f", weibull.K, weibull.Lambda, res.Statistic)
		return chart.Histogram(title, xs, len(edges)-1, weibull.Prob)
	})
}

func (a *app) printKS(res *gof.Result) error {
	t := a.newTable("field", "value")
	t.row("mode", res.Mode.String())
	t.row("n", res.N)
	t.row("statistic", res.Statistic)
	t.row("critical", res.Critical)
	t.row("p-value", res.PValue)
	if res.Mode == gof.Continuous {
		t.row("alpha", res.Alpha)
	}
	t.row("verdict", res.Verdict.String())
	return t.flush()
}
