// Package chart renders samples and test tables with gonum/plot.
package chart

import (
	"image/color"
	"io"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/nozzle/simstat/simerr"
)

// Output size of every chart.
const (
	Width  = 16 * vg.Centimeter
	Height = 10 * vg.Centimeter
)

// Histogram plots sample as a density histogram with the given number of
// bars. A non-nil density is drawn over the bars.
func Histogram(title string, sample []float64, bins int, density func(x float64) float64) (*plot.Plot, error) {
	const op = "chart.Histogram"
	if len(sample) == 0 {
		return nil, simerr.Configf(op, "sample", "must not be empty")
	}
	if bins < 1 {
		return nil, simerr.Configf(op, "bins", "must be positive, got %d", bins)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "density"

	h, err := plotter.NewHist(plotter.Values(sample), bins)
	if err != nil {
		return nil, err
	}
	h.Normalize(1)
	p.Add(h)

	if density != nil {
		f := plotter.NewFunction(density)
		f.Color = color.RGBA{R: 196, G: 32, B: 32, A: 255}
		f.Width = vg.Points(1.5)
		p.Add(f)
	}
	return p, nil
}

// SeriesHeatMap plots the pair counts of a series test. Rows are the bins of
// r_i and columns the bins of r_{i+1}, both numbered from 1.
func SeriesHeatMap(title string, table *mat.Dense) (*plot.Plot, error) {
	r, c := table.Dims()
	if r < 2 || c < 2 {
		return nil, simerr.Configf("chart.SeriesHeatMap", "table", "need at least a 2x2 grid, got %dx%d", r, c)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "bin of r(i+1)"
	p.Y.Label.Text = "bin of r(i)"

	hm := plotter.NewHeatMap(grid{table}, palette.Heat(16, 1))
	hm.Min = 0
	hm.Max = max(floats.Max(table.RawMatrix().Data), 1)
	p.Add(hm)
	return p, nil
}

// Convergence plots a running estimate against the number of trials. A
// finite want is drawn as a horizontal reference line.
func Convergence(title string, running []float64, want float64) (*plot.Plot, error) {
	if len(running) == 0 {
		return nil, simerr.Configf("chart.Convergence", "running", "must not be empty")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "trials"
	p.Y.Label.Text = "estimate"

	pts := make(plotter.XYs, len(running))
	for i, y := range running {
		pts[i].X = float64(i + 1)
		pts[i].Y = y
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	p.Add(line)

	if !math.IsNaN(want) && !math.IsInf(want, 0) {
		ref := plotter.NewFunction(func(float64) float64 { return want })
		ref.Color = color.RGBA{R: 196, G: 32, B: 32, A: 255}
		ref.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		p.Add(ref)
	}
	return p, nil
}

// grid exposes a dense matrix as a plotter.GridXYZ.
type grid struct {
	m *mat.Dense
}

func (g grid) Dims() (c, r int) {
	r, c = g.m.Dims()
	return c, r
}

func (g grid) Z(c, r int) float64 { return g.m.At(r, c) }
func (g grid) X(c int) float64    { return float64(c + 1) }
func (g grid) Y(r int) float64    { return float64(r + 1) }

// Write renders p to w in the given format ("png", "svg", "pdf", ...).
func Write(p *plot.Plot, w io.Writer, format string) error {
	wt, err := p.WriterTo(Width, Height, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// Save renders p to path. The format follows the file extension.
func Save(p *plot.Plot, path string) error {
	return p.Save(Width, Height, path)
}
