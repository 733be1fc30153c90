// Package metrics derives convergence diagnostics from a solver trace.
package metrics

import (
	"math"

	"github.com/san-kum/bernoulli/internal/solver"
)

// FinalError is the absolute residual of the last iteration, or 0 for
// an empty trace.
func FinalError(trace []solver.Iteration) float64 {
	if len(trace) == 0 {
		return 0
	}
	return math.Abs(trace[len(trace)-1].Residual)
}

// ReductionFactor is the geometric mean of the per-iteration shrink of
// the absolute residual. Values below 1 mean the search was converging;
// it returns 1 for traces too short to compare.
func ReductionFactor(trace []solver.Iteration) float64 {
	if len(trace) < 2 {
		return 1
	}

	logSum := 0.0
	steps := 0
	for i := 1; i < len(trace); i++ {
		prev := math.Abs(trace[i-1].Residual)
		cur := math.Abs(trace[i].Residual)
		if prev == 0 || cur == 0 {
			continue
		}
		logSum += math.Log(cur / prev)
		steps++
	}
	if steps == 0 {
		return 1
	}
	return math.Exp(logSum / float64(steps))
}

// EstimateOrder approximates the observed order of convergence from
// the last three residuals. A healthy secant search trends toward the
// golden ratio (~1.618). Returns 0 when the trace is too short or the
// ratios are degenerate.
func EstimateOrder(trace []solver.Iteration) float64 {
	if len(trace) < 3 {
		return 0
	}

	n := len(trace)
	e0 := math.Abs(trace[n-3].Residual)
	e1 := math.Abs(trace[n-2].Residual)
	e2 := math.Abs(trace[n-1].Residual)
	if e0 == 0 || e1 == 0 || e2 == 0 || e1 == e0 {
		return 0
	}

	num := math.Log(e2 / e1)
	den := math.Log(e1 / e0)
	if den == 0 {
		return 0
	}
	return num / den
}
