package main

import (
	"bytes"
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nozzle/simstat/dump"
	"github.com/nozzle/simstat/gof"
	"github.com/nozzle/simstat/source"
)

func init() {
	homedir.DisableCache = true
}

// execute runs the command line with an empty home directory so no user
// config file leaks in.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var out, errOut bytes.Buffer
	a := newApp(strings.NewReader(stdin), &out, &errOut)
	cmd := a.rootCmd()
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func records(t *testing.T, out string) [][]string {
	t.Helper()
	r := csv.NewReader(strings.NewReader(out))
	r.FieldsPerRecord = -1
	recs, err := r.ReadAll()
	require.NoError(t, err)
	return recs
}

// field returns the second cell of the first record whose first cell is key.
func field(t *testing.T, recs [][]string, key string) string {
	t.Helper()
	for _, rec := range recs {
		if len(rec) > 1 && rec[0] == key {
			return rec[1]
		}
	}
	t.Fatalf("no %q record in %v", key, recs)
	return ""
}

func floatField(t *testing.T, recs [][]string, key string) float64 {
	t.Helper()
	x, err := strconv.ParseFloat(field(t, recs, key), 64)
	require.NoError(t, err)
	return x
}

func textbookUniforms(t *testing.T, n int) []float64 {
	t.Helper()
	g, err := source.Textbook.New(7)
	require.NoError(t, err)
	us, err := source.Uniforms(g, n)
	require.NoError(t, err)
	return us
}

func TestGenerateUniform(t *testing.T) {
	out, _, err := execute(t, "", "generate", "--preset=textbook", "--seed=7", "--n=5")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "# kind=uniform generator=lcg seed=7 n=5\n"))
	xs, err := dump.Read(strings.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, textbookUniforms(t, 5), xs)
}

func TestGenerateFromConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "simstat.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("preset: textbook\nseed: 7\nn: 5\n"), 0o600))

	out, _, err := execute(t, "", "generate", "--config="+cfgPath)
	require.NoError(t, err)
	xs, err := dump.Read(strings.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, textbookUniforms(t, 5), xs)
}

func TestGenerateFromEnv(t *testing.T) {
	t.Setenv("SIMSTAT_PRESET", "textbook")
	t.Setenv("SIMSTAT_SEED", "7")

	out, _, err := execute(t, "", "generate", "--n=5")
	require.NoError(t, err)
	xs, err := dump.Read(strings.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, textbookUniforms(t, 5), xs)
}

func TestGenerateThenKSNormal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "normals.txt")
	_, _, err := execute(t, "", "generate", "--kind=normal", "--n=200", "--out="+path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	xs, err := dump.Read(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, xs, 200)
	want, err := gof.KSNormal(xs, 0, 1)
	require.NoError(t, err)

	out, _, err := execute(t, "", "ks", "normal", "--in="+path, "--csv")
	require.NoError(t, err)
	recs := records(t, out)
	assert.Equal(t, "continuous", field(t, recs, "mode"))
	assert.Equal(t, want.Statistic, floatField(t, recs, "statistic"))
	assert.InDelta(t, 0.063447046650699, floatField(t, recs, "statistic"), 1e-9)
	assert.Equal(t, "do-not-reject", field(t, recs, "verdict"))
}

func TestKSNormalRows(t *testing.T) {
	out, _, err := execute(t, "", "ks", "normal", "--n=10", "--rows", "--csv")
	require.NoError(t, err)
	recs := records(t, out)
	assert.Equal(t, []string{"i", "x", "F_observed", "F_expected", "diff"}, recs[0])
	assert.Equal(t, "10", recs[10][0])
	assert.Equal(t, "1", recs[10][2])
}

func TestKSWeibullGenerated(t *testing.T) {
	out, _, err := execute(t, "", "ks", "weibull", "--n=500", "--width=4", "--bins=8", "--csv")
	require.NoError(t, err)
	recs := records(t, out)
	assert.Equal(t, []string{"lower", "upper", "observed", "POA", "POAA", "PEA", "diff"}, recs[0])
	assert.Equal(t, "binned", field(t, recs, "mode"))
	assert.Equal(t, "500", field(t, recs, "n"))
	assert.Equal(t, "do-not-reject", field(t, recs, "verdict"))
}

func TestSeriesMiddleSquare(t *testing.T) {
	out, _, err := execute(t, "", "series", "--generator=middlesquare", "--seed=5735", "--n=50", "--csv")
	require.NoError(t, err)
	recs := records(t, out)
	assert.Equal(t, "48", field(t, recs, "df"))
	assert.Equal(t, 198.0, floatField(t, recs, "chi-square"))
	assert.Equal(t, "no critical value available", field(t, recs, "verdict"))
}

func TestSeriesTable(t *testing.T) {
	out, _, err := execute(t, "", "series", "--n=30", "--table")
	require.NoError(t, err)
	lines := strings.Split(out, "\n")
	assert.Equal(t, []string{"row", "1", "2", "3", "4", "5"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"1", "2", "3", "0", "1", "2"}, strings.Fields(lines[1]))
	assert.Contains(t, out, "do-not-reject")
}

func TestRunsFromStdin(t *testing.T) {
	stdin := "# runs exercise\n" +
		"0.89 0.26 0.01 0.98 0.13 0.12 0.69 0.11 0.05 0.65\n" +
		"0.21 0.04 0.03 0.11 0.07 0.97 0.27 0.12 0.95 0.02 0.06\n"
	out, _, err := execute(t, stdin, "runs", "--in=-", "--signs", "--csv")
	require.NoError(t, err)
	recs := records(t, out)
	assert.Equal(t, "21", field(t, recs, "n"))
	assert.Equal(t, "00100100100010100101", field(t, recs, "signs"))
	assert.Equal(t, "14", field(t, recs, "runs"))
	assert.InDelta(t, 0.5561279983200486, floatField(t, recs, "z"), 1e-12)
}

func TestAnalyze(t *testing.T) {
	out, _, err := execute(t, "", "analyze", "--csv")
	require.NoError(t, err)
	recs := records(t, out)
	require.Len(t, recs, 4)
	assert.Equal(t, "ks normal", recs[3][0])
	x, err := strconv.ParseFloat(recs[3][1], 64)
	require.NoError(t, err)
	assert.InDelta(t, 0.063447046650699, x, 1e-9)
}

func TestAnalyzeLogsAtDebug(t *testing.T) {
	_, errOut, err := execute(t, "", "analyze", "--log-level=debug", "--log-format=json")
	require.NoError(t, err)
	assert.Contains(t, errOut, `"message":"normality test"`)
	assert.Contains(t, errOut, `"message":"analysis complete"`)
}

func TestQueueMMC(t *testing.T) {
	out, _, err := execute(t, "", "queue", "mmc", "--min-servers=3", "--max-servers=50", "--csv")
	require.NoError(t, err)
	recs := records(t, out)
	assert.Equal(t, "7", field(t, recs, "minimum servers"))
	assert.InDelta(t, 0.18014689712802923, floatField(t, recs, "mean wait"), 1e-12)
	assert.Equal(t, "false", recs[1][1], "c=3 < a=4 is unstable")
}

func TestQueueMM1(t *testing.T) {
	out, _, err := execute(t, "", "queue", "mm1", "--customers=20", "--detail", "--csv")
	require.NoError(t, err)
	recs := records(t, out)
	assert.Equal(t, "customer", recs[0][0])
	assert.Equal(t, "20", recs[20][0])
	wait := recs[len(recs)-5]
	assert.Equal(t, "mean wait", wait[0])
	wq, err := strconv.ParseFloat(wait[2], 64)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, wq, 1e-12)
}

func TestQueueMM1Replicated(t *testing.T) {
	out, _, err := execute(t, "", "queue", "mm1", "--customers=100", "--trials=4", "--workers=2", "--csv")
	require.NoError(t, err)
	recs := records(t, out)
	assert.Equal(t, []string{"4", "12348"}, recs[4][:2])
	last := recs[len(recs)-1]
	assert.Equal(t, "mean time in system", last[0])
	w, err := strconv.ParseFloat(last[3], 64)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, w, 1e-12)
}

func TestPi(t *testing.T) {
	out, _, err := execute(t, "", "pi", "--points=1000", "--csv")
	require.NoError(t, err)
	recs := records(t, out)
	assert.Equal(t, "1000", field(t, recs, "points"))
	assert.InDelta(t, 3.14, floatField(t, recs, "pi"), 0.3)

	out, _, err = execute(t, "", "pi", "--points=1000", "--trials=3", "--csv")
	require.NoError(t, err)
	recs = records(t, out)
	assert.Equal(t, "3", field(t, recs, "trials"))
}

func TestWalk(t *testing.T) {
	out, _, err := execute(t, "", "walk", "--trials=1000", "--workers=3", "--csv")
	require.NoError(t, err)
	recs := records(t, out)
	assert.Equal(t, "10", field(t, recs, "steps"))
	assert.Equal(t, "370", field(t, recs, "hits"))
	assert.InDelta(t, 0.37, floatField(t, recs, "probability"), 1e-12)
	assert.InDelta(t, 0.3400754789512012, floatField(t, recs, "ci low"), 1e-12)
}

func TestCollision(t *testing.T) {
	out, _, err := execute(t, "", "collision", "--nodes=5", "--trials=1000", "--csv")
	require.NoError(t, err)
	recs := records(t, out)
	assert.Equal(t, "688", field(t, recs, "hits"))
	assert.InDelta(t, 0.688, floatField(t, recs, "probability"), 1e-12)
}

func TestCollector(t *testing.T) {
	out, _, err := execute(t, "", "collector", "--trials=1000", "--csv")
	require.NoError(t, err)
	recs := records(t, out)
	assert.Equal(t, "46", field(t, recs, "hits"))
	assert.InDelta(t, 1.969, floatField(t, recs, "mean collected"), 1e-12)
	assert.InDelta(t, 0.006624499981130651, floatField(t, recs, "std error"), 1e-12)
}

func TestGenerateWriteFailure(t *testing.T) {
	// a directory cannot be created as a file
	_, _, err := execute(t, "", "generate", "--n=5", "--out="+t.TempDir())
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "u.txt")
	require.NoError(t, writeDump(path, "kind=uniform", []float64{0.25, 0.5}, -1))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# kind=uniform\n0.25\n0.5\n", string(data))
}

func TestPlots(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		args []string
		file string
	}{
		{"generate", []string{"generate", "--kind=normal", "--n=300"}, "normals.svg"},
		{"series", []string{"series", "--n=100"}, "series.png"},
		{"ks normal", []string{"ks", "normal", "--n=300", "--standardize"}, "ks.svg"},
		{"ks weibull", []string{"ks", "weibull", "--n=300"}, "weibull.pdf"},
		{"walk", []string{"walk", "--trials=200"}, "walk.svg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			_, _, err := execute(t, "", append(tt.args, "--plot="+path)...)
			require.NoError(t, err)
			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Greater(t, info.Size(), int64(0))
		})
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown kind", []string{"generate", "--kind=cauchy"}},
		{"bad log level", []string{"analyze", "--log-level=loud"}},
		{"bad log format", []string{"analyze", "--log-format=xml"}},
		{"missing config", []string{"analyze", "--config=/nonexistent/simstat.yaml"}},
		{"bad preset", []string{"series", "--preset=randu"}},
		{"missing input", []string{"runs", "--in=/nonexistent/sample.txt"}},
		{"runs too short", []string{"runs", "--n=2"}},
		{"unknown plot format", []string{"series", "--plot=" + filepath.Join(os.TempDir(), "series.bmp")}},
		{"bad staffing range", []string{"queue", "mmc", "--min-servers=5", "--max-servers=4"}},
		{"runs on NaN", []string{"runs", "--in=-"}},
		{"walk negative steps", []string{"walk", "--steps=-1"}},
		{"collision zero delta", []string{"collision", "--delta=0"}},
		{"collision no nodes", []string{"collision", "--nodes=0"}},
		{"collector p above 1", []string{"collector", "--p=1.5"}},
		{"collector no trials", []string{"collector", "--trials=0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, "0.1\nNaN\n0.3\n0.2\n", tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestTableText(t *testing.T) {
	var buf bytes.Buffer
	tb := newTable(&buf, false, "name", "value")
	tb.row("alpha", 0.05)
	tb.row("critical", 36.41502850180731)
	tb.row("p", math.NaN())
	require.NoError(t, tb.flush())

	assert.Equal(t, "name      value\nalpha     0.05\ncritical  36.415\np         -\n", buf.String())
}
