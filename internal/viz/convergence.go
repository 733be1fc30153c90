package viz

import (
	"math"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/bernoulli/internal/solver"
)

// residualFloor keeps log10 finite when an iteration lands exactly on
// the root.
const residualFloor = 1e-16

// ConvergencePlot renders log10 of the absolute residual per iteration.
// A downward-sloping line is a converging search.
func ConvergencePlot(trace []solver.Iteration, width, height int) string {
	if len(trace) == 0 {
		return "no iterations to plot"
	}

	data := make([]float64, len(trace))
	for i, it := range trace {
		data[i] = math.Log10(math.Abs(it.Residual) + residualFloor)
	}

	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption("log10 |residual| per iteration"),
	)
}

// CandidatePlot renders the candidate velocity per iteration.
func CandidatePlot(trace []solver.Iteration, width, height int) string {
	if len(trace) == 0 {
		return "no iterations to plot"
	}

	data := make([]float64, len(trace))
	for i, it := range trace {
		data[i] = it.Candidate
	}

	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption("candidate v2 [m/s] per iteration"),
	)
}
