package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/pflag"
	"gonum.org/v1/plot"

	"github.com/nozzle/simstat"
	"github.com/nozzle/simstat/dump"
	"github.com/nozzle/simstat/internal/chart"
	"github.com/nozzle/simstat/normal"
	"github.com/nozzle/simstat/source"
)

// addGeneratorFlags registers the flags that select a uniform source.
func addGeneratorFlags(flags *pflag.FlagSet) {
	def := simstat.DefaultConfig()
	presets := make([]string, 0, len(source.Presets))
	for name := range source.Presets {
		presets = append(presets, name)
	}
	sort.Strings(presets)

	flags.String("generator", def.Generator, "uniform source: lcg or middlesquare")
	flags.String("preset", def.Preset, "LCG preset ("+strings.Join(presets, ", ")+"); empty uses --a, --c and --m")
	flags.Uint64("a", 0, "LCG multiplier")
	flags.Uint64("c", 0, "LCG increment")
	flags.Uint64("m", 0, "LCG modulus")
	flags.Uint64("seed", def.Seed, "generator seed")
	flags.Int("digits", def.Digits, "middle-square state width")
}

// addSampleFlags registers the generator flags plus the sample size and an
// optional input file that replaces generation.
func addSampleFlags(flags *pflag.FlagSet) {
	addGeneratorFlags(flags)
	flags.Int("n", simstat.DefaultConfig().N, "sample size")
	flags.String("in", "", "read the sample from a dump file instead of generating it (- for stdin)")
}

// addNormalFlags registers the normal target of a sample.
func addNormalFlags(flags *pflag.FlagSet) {
	def := simstat.DefaultConfig()
	flags.Float64("mu", def.Mu, "normal mean")
	flags.Float64("sigma", def.Sigma, "normal standard deviation")
	flags.Bool("standardize", false, "rescale the normal sample to mean 0 and deviation 1")
	flags.Float64("alpha", def.Alpha, "significance level")
}

// config builds a pipeline configuration from the bound flags. Keys the
// running command does not register keep their defaults.
func (a *app) config() simstat.Config {
	v := a.v
	cfg := simstat.DefaultConfig()
	cfg.Logger = a.log

	if v.IsSet("generator") {
		cfg.Generator = v.GetString("generator")
	}
	if v.IsSet("preset") {
		cfg.Preset = v.GetString("preset")
	}
	cfg.A = v.GetUint64("a")
	cfg.C = v.GetUint64("c")
	cfg.M = v.GetUint64("m")
	if v.IsSet("seed") {
		cfg.Seed = v.GetUint64("seed")
	}
	if v.IsSet("digits") {
		cfg.Digits = v.GetInt("digits")
	}
	if v.IsSet("n") {
		cfg.N = v.GetInt("n")
	}
	if v.IsSet("mu") {
		cfg.Mu = v.GetFloat64("mu")
	}
	if v.IsSet("sigma") {
		cfg.Sigma = v.GetFloat64("sigma")
	}
	cfg.Standardize = v.GetBool("standardize")
	if v.IsSet("alpha") {
		cfg.Alpha = v.GetFloat64("alpha")
	}
	return cfg
}

// trialSources returns a source factory for replicated trials: trial t uses
// the configured generator seeded with seed+t.
func trialSources(cfg simstat.Config) func(trial int) (source.Source, error) {
	return func(trial int) (source.Source, error) {
		c := cfg
		c.Seed = cfg.Seed + uint64(trial)
		return c.NewSource()
	}
}

// readInput loads the dump file named by --in. It reports false when no file
// was requested.
func (a *app) readInput() ([]float64, bool, error) {
	path := a.v.GetString("in")
	if path == "" {
		return nil, false, nil
	}
	if path == "-" {
		xs, err := dump.Read(a.in)
		if err != nil {
			return nil, true, fmt.Errorf("read stdin: %w", err)
		}
		return xs, true, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, true, err
	}
	defer f.Close()

	xs, err := dump.Read(f)
	if err != nil {
		return nil, true, fmt.Errorf("read %s: %w", path, err)
	}
	a.log.Debug().Str("file", path).Int("n", len(xs)).Msg("sample loaded")
	return xs, true, nil
}

// uniformSample returns the --in sample or cfg.N fresh uniforms.
func (a *app) uniformSample(cfg simstat.Config) ([]float64, error) {
	if xs, ok, err := a.readInput(); ok || err != nil {
		return xs, err
	}
	src, err := cfg.NewSource()
	if err != nil {
		return nil, err
	}
	return source.Uniforms(src, cfg.N)
}

// normalSample returns the --in sample or cfg.N fresh variates from
// N(cfg.Mu, cfg.Sigma²).
func (a *app) normalSample(cfg simstat.Config) ([]float64, error) {
	if xs, ok, err := a.readInput(); ok || err != nil {
		return xs, err
	}
	src, err := cfg.NewSource()
	if err != nil {
		return nil, err
	}
	return normal.New(src).Scaled(cfg.N, cfg.Mu, cfg.Sigma)
}

// addPlotFlag registers --plot.
func addPlotFlag(flags *pflag.FlagSet, what string) {
	flags.String("plot", "", "write "+what+" to this image file (png, svg or pdf by extension)")
}

// savePlot writes p to the --plot path, if one was given. build is only
// called in that case.
func (a *app) savePlot(build func() (*plot.Plot, error)) error {
	path := a.v.GetString("plot")
	if path == "" {
		return nil
	}
	p, err := build()
	if err != nil {
		return err
	}
	if err := chart.Save(p, path); err != nil {
		return fmt.Errorf("save plot: %w", err)
	}
	a.log.Info().Str("file", path).Msg("plot written")
	return nil
}
