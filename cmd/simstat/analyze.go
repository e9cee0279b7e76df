package main

import (
	"github.com/spf13/cobra"

	"github.com/nozzle/simstat"
	"github.com/nozzle/simstat/hypothesis"
)

func (a *app) analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Generate a sample and run every test on it",
		Long: `Draw n uniforms and run the series and runs tests on them, then draw n
normal variates from the same seed and test them for normality, For example:
  simstat analyze --preset=minstd --seed=12345 --n=200
  simstat analyze --generator=middlesquare --seed=5735 --digits=4 --n=50`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAnalyze()
		},
	}

	flags := cmd.Flags()
	addGeneratorFlags(flags)
	addNormalFlags(flags)
	flags.Int("n", simstat.DefaultConfig().N, "sample size")
	return cmd
}

func (a *app) runAnalyze() error {
	report, err := simstat.Analyze(a.config())
	if err != nil {
		return err
	}

	t := a.newTable("test", "statistic", "threshold", "p-value", "verdict")
	if s := report.Series; s != nil {
		t.row("series", s.ChiSquare, s.Critical, s.PValue, s.Verdict.String())
	}
	if r := report.Runs; r != nil {
		t.row("runs", r.Z, hypothesis.ZCritical, r.PValue, r.Verdict.String())
	}
	if k := report.Normality; k != nil {
		t.row("ks normal", k.Statistic, k.Threshold(), k.PValue, k.Verdict.String())
	}
	if err := t.flush(); err != nil {
		return err
	}

	a.log.Info().
		Str("generator", report.Config.Generator).
		Uint64("seed", report.Config.Seed).
		Int("n", report.Config.N).
		Msg("analysis complete")
	return nil
}
