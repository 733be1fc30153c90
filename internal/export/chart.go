// Package export renders solver traces to image files via gonum/plot.
package export

import (
	"errors"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/bernoulli/internal/solver"
)

// ErrEmptyTrace indicates there are no iterations to chart.
var ErrEmptyTrace = errors.New("export: empty trace")

// logFloor substitutes for exact zeros, which a log axis cannot show.
const logFloor = 1e-16

// ConvergenceChart writes a semilog chart of the absolute residual per
// iteration. The output format follows the file extension (.png, .svg,
// .pdf).
func ConvergenceChart(trace []solver.Iteration, path string) error {
	if len(trace) == 0 {
		return ErrEmptyTrace
	}

	p := plot.New()
	p.Title.Text = "Convergence History"
	p.X.Label.Text = "Iteration"
	p.Y.Label.Text = "|residual|"
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}

	pts := make(plotter.XYs, len(trace))
	for i, it := range trace {
		r := math.Abs(it.Residual)
		if r < logFloor {
			r = logFloor
		}
		pts[i].X = float64(it.Index)
		pts[i].Y = r
	}

	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return err
	}
	p.Add(plotter.NewGrid(), line, points)

	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}

// CandidateChart writes the candidate velocity per iteration.
func CandidateChart(trace []solver.Iteration, path string) error {
	if len(trace) == 0 {
		return ErrEmptyTrace
	}

	p := plot.New()
	p.Title.Text = "Iterate History"
	p.X.Label.Text = "Iteration"
	p.Y.Label.Text = "candidate v2 [m/s]"

	pts := make(plotter.XYs, len(trace))
	for i, it := range trace {
		pts[i].X = float64(it.Index)
		pts[i].Y = it.Candidate
	}

	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return err
	}
	p.Add(plotter.NewGrid(), line, points)

	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}
