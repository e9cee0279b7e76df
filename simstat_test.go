package simstat

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nozzle/simstat/gof"
	"github.com/nozzle/simstat/hypothesis"
	"github.com/nozzle/simstat/independence"
	"github.com/nozzle/simstat/simerr"
	"github.com/nozzle/simstat/source"
)

func TestAnalyzeDefault(t *testing.T) {
	report, err := Analyze(DefaultConfig())
	require.NoError(t, err)

	require.Len(t, report.Uniforms, 200)
	require.Len(t, report.Normals, 200)
	require.NotNil(t, report.Series)
	require.NotNil(t, report.Runs)
	require.NotNil(t, report.Normality)

	assert.Equal(t, gof.Continuous, report.Normality.Mode)
	assert.InDelta(t, 0.063447046650699, report.Normality.Statistic, 1e-9)
	assert.Equal(t, hypothesis.DoNotReject, report.Normality.Verdict)
}

func TestAnalyzeMatchesStages(t *testing.T) {
	cfg := DefaultConfig()
	cfg.N = 120
	report, err := Analyze(cfg)
	require.NoError(t, err)

	g, err := source.MINSTD.New(cfg.Seed)
	require.NoError(t, err)
	us, err := source.Uniforms(g, cfg.N)
	require.NoError(t, err)
	assert.Equal(t, us, report.Uniforms)

	series, err := independence.Series(us)
	require.NoError(t, err)
	assert.Equal(t, series.ChiSquare, report.Series.ChiSquare)
	assert.Equal(t, series.Verdict, report.Series.Verdict)

	runs, err := independence.Runs(us)
	require.NoError(t, err)
	assert.Equal(t, runs.Runs, report.Runs.Runs)
	assert.Equal(t, runs.Z, report.Runs.Z)

	ks, err := gof.KSNormal(report.Normals, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, ks.Statistic, report.Normality.Statistic)
}

func TestAnalyzeStandardize(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Mu = 10
	cfg.Sigma = 3
	cfg.Standardize = true
	report, err := Analyze(cfg)
	require.NoError(t, err)

	// Standardizing removes the affine map, so the statistic equals the
	// standardized N(0, 1) sample drawn from the same seed.
	assert.InDelta(t, 0.04845113062342937, report.Normality.Statistic, 1e-9)
	assert.Equal(t, hypothesis.DoNotReject, report.Normality.Verdict)
}

func TestAnalyzeScaledTarget(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Mu = -4
	cfg.Sigma = 0.5
	report, err := Analyze(cfg)
	require.NoError(t, err)

	// mu + sigma·z against N(mu, sigma) gives back the unit statistic.
	assert.InDelta(t, 0.063447046650699, report.Normality.Statistic, 1e-9)
}

func TestAnalyzeMiddleSquare(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Generator = MiddleSquare
	cfg.Seed = 5735
	cfg.N = 50
	report, err := Analyze(cfg)
	require.NoError(t, err)

	assert.Equal(t, 48, report.Series.DF)
	assert.Equal(t, hypothesis.NoCriticalValue, report.Series.Verdict)
	for _, z := range report.Normals {
		assert.False(t, math.IsNaN(z))
	}
}

func TestAnalyzeSmallN(t *testing.T) {
	cfg := DefaultConfig()
	cfg.N = 1
	report, err := Analyze(cfg)
	require.NoError(t, err)
	assert.Nil(t, report.Series)
	assert.Nil(t, report.Runs)
	assert.NotNil(t, report.Normality)

	cfg.N = 2
	report, err = Analyze(cfg)
	require.NoError(t, err)
	assert.NotNil(t, report.Series)
	assert.Nil(t, report.Runs)
}

func TestAnalyzeCustomLCG(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Preset = ""
	cfg.A, cfg.C, cfg.M = 5, 3, 7
	cfg.Seed = 7
	cfg.N = 16
	report, err := Analyze(cfg)
	require.NoError(t, err)
	assert.Equal(t, hypothesis.Reject, report.Series.Verdict)
}

func TestConfigErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero n", func(c *Config) { c.N = 0 }},
		{"zero sigma", func(c *Config) { c.Sigma = 0 }},
		{"alpha one", func(c *Config) { c.Alpha = 1 }},
		{"unknown generator", func(c *Config) { c.Generator = "mersenne" }},
		{"unknown preset", func(c *Config) { c.Preset = "randu" }},
		{"bad modulus", func(c *Config) { c.Preset = ""; c.A, c.M = 3, 1 }},
		{"bad digits", func(c *Config) { c.Generator = MiddleSquare; c.Digits = 10 }},
		{"seed too wide", func(c *Config) { c.Generator = MiddleSquare; c.Seed = 10000 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			_, err := Analyze(cfg)
			require.Error(t, err)
			assert.True(t, errors.Is(err, simerr.ErrConfig), "got %v", err)
		})
	}
}

func TestNewSourceReplays(t *testing.T) {
	cfg := DefaultConfig()
	a, err := cfg.NewSource()
	require.NoError(t, err)
	b, err := cfg.NewSource()
	require.NoError(t, err)
	for k := 0; k < 100; k++ {
		assert.Equal(t, a.Next(), b.Next())
	}
}

func TestAnalyzeLogsStages(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Logger = zerolog.New(&buf).Level(zerolog.DebugLevel)
	_, err := Analyze(cfg)
	require.NoError(t, err)

	out := buf.String()
	for _, msg := range []string{"uniforms drawn", "series test", "runs test", "normality test"} {
		assert.Contains(t, out, msg)
	}
}

func BenchmarkAnalyze(b *testing.B) {
	cfg := DefaultConfig()
	cfg.N = 1000
	b.ResetTimer()
	for k := 0; k < b.N; k++ {
		if _, err := Analyze(cfg); err != nil {
			b.Fatal(err)
		}
	}
}
