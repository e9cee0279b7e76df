package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot"

	"github.com/nozzle/simstat/independence"
	"github.com/nozzle/simstat/internal/chart"
)

func (a *app) seriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "series",
		Short: "Chi-square series test on consecutive pairs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSeries()
		},
	}

	flags := cmd.Flags()
	addSampleFlags(flags)
	flags.Bool("table", false, "print the contingency table")
	addPlotFlag(flags, "a heat map of the contingency table")
	return cmd
}

func (a *app) runSeries() error {
	xs, err := a.uniformSample(a.config())
	if err != nil {
		return err
	}
	res, err := independence.Series(xs)
	if err != nil {
		return err
	}

	if a.v.GetBool("table") {
		header := []string{"row"}
		for j := 0; j < res.M; j++ {
			header = append(header, strconv.Itoa(j+1))
		}
		t := a.newTable(header...)
		for i := 0; i < res.M; i++ {
			cells := []any{strconv.Itoa(i + 1)}
			for j := 0; j < res.M; j++ {
				cells = append(cells, int(res.Table.At(i, j)))
			}
			t.row(cells...)
		}
		if err := t.flush(); err != nil {
			return err
		}
	}

	t := a.newTable("field", "value")
	t.row("n", res.N)
	t.row("pairs", res.Pairs)
	t.row("grid", res.M)
	t.row("expected per cell", res.Expected)
	t.row("chi-square", res.ChiSquare)
	t.row("df", res.DF)
	t.row("critical", res.Critical)
	t.row("p-value", res.PValue)
	t.row("verdict", res.Verdict.String())
	if err := t.flush(); err != nil {
		return err
	}

	return a.savePlot(func() (*plot.Plot, error) {
		return chart.SeriesHeatMap(fmt.Sprintf("series test, n=%d, chi2=%.3f", res.N, res.ChiSquare), res.Table)
	})
}

func (a *app) runsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Runs up and down test",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRuns()
		},
	}

	flags := cmd.Flags()
	addSampleFlags(flags)
	flags.Bool("signs", false, "print the sign sequence")
	return cmd
}

func (a *app) runRuns() error {
	xs, err := a.uniformSample(a.config())
	if err != nil {
		return err
	}
	res, err := independence.Runs(xs)
	if err != nil {
		return err
	}

	t := a.newTable("field", "value")
	t.row("n", res.N)
	if a.v.GetBool("signs") {
		var sb strings.Builder
		for _, s := range res.Signs {
			sb.WriteString(strconv.Itoa(s))
		}
		t.row("signs", sb.String())
	}
	t.row("runs", res.Runs)
	t.row("expected", res.Expected)
	t.row("variance", res.Variance)
	t.row("z", res.Z)
	t.row("p-value", res.PValue)
	t.row("verdict", res.Verdict.String())
	return t.flush()
}
