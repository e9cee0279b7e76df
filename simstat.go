// Package simstat generates pseudorandom samples and validates them.
//
// It ties together the uniform generators in source, the Box-Muller
// transform in normal, the independence tests in independence and the
// Kolmogorov-Smirnov tests in gof.
//
// Basic usage:
//
//	cfg := simstat.DefaultConfig()
//	cfg.Seed = 12345
//	report, err := simstat.Analyze(cfg)
package simstat

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/nozzle/simstat/gof"
	"github.com/nozzle/simstat/independence"
	"github.com/nozzle/simstat/normal"
	"github.com/nozzle/simstat/simerr"
	"github.com/nozzle/simstat/source"
)

// Generator kinds accepted by Config.Generator.
const (
	LCG          = "lcg"
	MiddleSquare = "middlesquare"
)

// Config configures a generation and validation run.
type Config struct {
	// Generator selects the uniform source: "lcg" or "middlesquare".
	// Default: "lcg"
	Generator string

	// Preset names an LCG parameter set from source.Presets. When empty,
	// A, C and M are used instead.
	// Default: "minstd"
	Preset string

	// A, C, M are explicit LCG parameters, used when Preset is empty.
	A, C, M uint64

	// Seed is the initial generator state.
	// Default: 12345
	Seed uint64

	// Digits is the middle-square state width.
	// Default: 4
	Digits int

	// N is the sample size for every stage.
	// Default: 200
	N int

	// Mu and Sigma are the target of the normal sample.
	// Default: 0, 1
	Mu    float64
	Sigma float64

	// Standardize rescales the normal sample to mean 0 and deviation 1
	// before testing it against N(0, 1).
	// Default: false
	Standardize bool

	// Alpha is the significance level of the normality test.
	// Default: 0.05
	Alpha float64

	// Logger receives one debug event per stage.
	// Default: zerolog.Nop()
	Logger zerolog.Logger
}

// DefaultConfig returns the default configuration: MINSTD seeded with 12345
// and 200 draws.
func DefaultConfig() Config {
	return Config{
		Generator: LCG,
		Preset:    "minstd",
		Seed:      12345,
		Digits:    4,
		N:         200,
		Mu:        0,
		Sigma:     1,
		Alpha:     0.05,
		Logger:    zerolog.Nop(),
	}
}

// Validate checks the configuration without building anything.
func (c Config) Validate() error {
	const op = "simstat.Config"
	if c.N <= 0 {
		return simerr.Configf(op, "N", "must be positive, got %d", c.N)
	}
	if !(c.Sigma > 0) {
		return simerr.Configf(op, "Sigma", "must be positive, got %v", c.Sigma)
	}
	if !(c.Alpha > 0 && c.Alpha < 1) {
		return simerr.Configf(op, "Alpha", "must be in (0, 1), got %v", c.Alpha)
	}
	_, err := c.NewSource()
	return err
}

// NewSource builds a fresh generator from the configuration. Every call
// returns an independent instance that replays the same stream.
func (c Config) NewSource() (source.Source, error) {
	switch c.Generator {
	case LCG, "":
		if c.Preset == "" {
			return source.NewLCG(c.Seed, c.A, c.C, c.M)
		}
		p, ok := source.Preset(c.Preset)
		if !ok {
			return nil, simerr.Configf("simstat.Config", "Preset", "unknown LCG preset %q", c.Preset)
		}
		return p.New(c.Seed)
	case MiddleSquare:
		return source.NewMiddleSquare(c.Seed, c.Digits)
	default:
		return nil, simerr.Configf("simstat.Config", "Generator", "unknown generator %q", c.Generator)
	}
}

// Report collects the outputs of Analyze.
type Report struct {
	Config   Config
	Uniforms []float64
	Series   *independence.SeriesResult
	Runs     *independence.RunsResult

	// Normals is the tested normal sample, standardized when
	// Config.Standardize is set.
	Normals   []float64
	Normality *gof.Result
}

// Analyze draws Config.N uniforms and runs the series and runs tests on
// them, then draws Config.N normal variates from a second, identically
// seeded source and tests them for normality.
func Analyze(cfg Config) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := cfg.Logger

	src, err := cfg.NewSource()
	if err != nil {
		return nil, err
	}
	uniforms, err := source.Uniforms(src, cfg.N)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("generator", cfg.Generator).Uint64("seed", cfg.Seed).Int("n", cfg.N).Msg("uniforms drawn")

	report := &Report{Config: cfg, Uniforms: uniforms}

	if cfg.N >= 2 {
		report.Series, err = independence.Series(uniforms)
		if err != nil {
			return nil, fmt.Errorf("series test: %w", err)
		}
		log.Debug().
			Float64("chi2", report.Series.ChiSquare).
			Int("df", report.Series.DF).
			Str("verdict", report.Series.Verdict.String()).
			Msg("series test")
	}
	if cfg.N >= 3 {
		report.Runs, err = independence.Runs(uniforms)
		if err != nil {
			return nil, fmt.Errorf("runs test: %w", err)
		}
		log.Debug().
			Int("runs", report.Runs.Runs).
			Float64("z", report.Runs.Z).
			Str("verdict", report.Runs.Verdict.String()).
			Msg("runs test")
	}

	// The normal stage replays the stream from the start so its sample does
	// not depend on how many uniforms the tests above consumed.
	src, err = cfg.NewSource()
	if err != nil {
		return nil, err
	}
	normals, err := normal.New(src).Scaled(cfg.N, cfg.Mu, cfg.Sigma)
	if err != nil {
		return nil, err
	}
	mu, sigma := cfg.Mu, cfg.Sigma
	if cfg.Standardize {
		normals = normal.Standardize(normals)
		mu, sigma = 0, 1
	}
	report.Normals = normals

	dist, err := gof.Distribution("normal", mu, sigma)
	if err != nil {
		return nil, err
	}
	report.Normality, err = gof.KS(normals, dist, cfg.Alpha)
	if err != nil {
		return nil, fmt.Errorf("normality test: %w", err)
	}
	log.Debug().
		Float64("d", report.Normality.Statistic).
		Float64("p", report.Normality.PValue).
		Str("verdict", report.Normality.Verdict.String()).
		Msg("normality test")

	return report, nil
}
