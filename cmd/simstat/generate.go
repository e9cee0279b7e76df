package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat/distuv"
	"gonum.org/v1/plot"

	"github.com/nozzle/simstat/dump"
	"github.com/nozzle/simstat/internal/chart"
	"github.com/nozzle/simstat/normal"
	"github.com/nozzle/simstat/source"
)

func (a *app) generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a uniform or normal sample as a dump file",
		Long: `Write a uniform or normal sample, one value per line, For example:
  simstat generate --preset=minstd --seed=12345 --n=500 --out=u.txt
  simstat generate --kind=normal --mu=10 --sigma=2 --decimals=4`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGenerate()
		},
	}

	flags := cmd.Flags()
	addGeneratorFlags(flags)
	addNormalFlags(flags)
	flags.Int("n", 200, "sample size")
	flags.String("kind", "uniform", "sample kind: uniform or normal")
	flags.String("out", "-", "output file (- for stdout)")
	flags.Int("decimals", -1, "fixed decimals per value; negative for the shortest exact form")
	flags.Int("bins", 20, "histogram bars for --plot")
	addPlotFlag(flags, "a histogram of the sample")
	return cmd
}

func (a *app) runGenerate() error {
	cfg := a.config()
	kind := a.v.GetString("kind")

	src, err := cfg.NewSource()
	if err != nil {
		return err
	}

	var xs []float64
	switch kind {
	case "uniform":
		xs, err = source.Uniforms(src, cfg.N)
	case "normal":
		xs, err = normal.New(src).Scaled(cfg.N, cfg.Mu, cfg.Sigma)
		if err == nil && cfg.Standardize {
			xs = normal.Standardize(xs)
		}
	default:
		return fmt.Errorf("unknown sample kind %q", kind)
	}
	if err != nil {
		return err
	}

	header := fmt.Sprintf("kind=%s generator=%s seed=%d n=%d", kind, cfg.Generator, cfg.Seed, cfg.N)
	path := a.v.GetString("out")

	if path == "-" || path == "" {
		if err := dump.Write(a.out, header, xs, a.v.GetInt("decimals")); err != nil {
			return fmt.Errorf("write sample: %w", err)
		}
	} else if err := writeDump(path, header, xs, a.v.GetInt("decimals")); err != nil {
		return err
	}

	a.log.Info().Str("kind", kind).Int("n", len(xs)).Str("out", path).Msg("sample written")

	return a.savePlot(func() (*plot.Plot, error) {
		density := distuv.Uniform{Min: 0, Max: 1}.Prob
		if kind == "normal" {
			mu, sigma := cfg.Mu, cfg.Sigma
			if cfg.Standardize {
				mu, sigma = 0, 1
			}
			density = distuv.Normal{Mu: mu, Sigma: sigma}.Prob
		}
		return chart.Histogram(header, xs, a.v.GetInt("bins"), density)
	})
}

// writeDump creates path and writes the sample to it, reporting the close
// error as well as write errors.
func writeDump(path, header string, xs []float64, decimals int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := dump.Write(f, header, xs, decimals); err != nil {
		f.Close()
		return fmt.Errorf("write sample: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
