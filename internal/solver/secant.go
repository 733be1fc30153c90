package solver

import (
	"fmt"
	"math"
)

// slopeEps is the smallest secant slope magnitude worth dividing by.
// Below it the residual is effectively flat between the two iterates
// and the update would be numerically meaningless.
const slopeEps = 1e-10

// Secant searches for a positive root of f starting from the two
// candidates x0 and x1. It returns an error only when a precondition
// is violated; every numerical failure mode is reported through the
// Outcome instead.
func Secant(f Residual, x0, x1 float64, opts Options) (Outcome, error) {
	if x0 <= 0 || x1 <= 0 {
		return Outcome{Status: StatusInvalid}, fmt.Errorf("%w: got x0=%g, x1=%g", ErrInvalidGuess, x0, x1)
	}

	// Indistinguishable guesses would zero the secant denominator on
	// the first step; nudge the second one apart.
	if math.Abs(x1-x0) < opts.Tolerance {
		x1 = x0 * 1.1
	}

	trace := make([]Iteration, 0, opts.MaxIterations)

	for i := 0; i < opts.MaxIterations; i++ {
		f0 := f(x0)
		f1 := f(x1)

		trace = append(trace, Iteration{Index: i + 1, Candidate: x1, Residual: f1})

		if math.Abs(f1) < opts.Tolerance {
			return Outcome{Root: x1, Converged: true, Status: StatusConverged, Trace: trace}, nil
		}

		dx := x1 - x0
		if dx == 0 || math.Abs((f1-f0)/dx) < slopeEps {
			return Outcome{Status: StatusSlopeCollapse, Trace: trace}, nil
		}

		next := x1 - f1*dx/(f1-f0)
		if next <= 0 {
			// A non-positive velocity is unphysical; fall back to a
			// bisection step to stay inside the valid domain.
			next = (x0 + x1) / 2
		}

		x0, x1 = x1, next

		if diverging(trace) {
			return Outcome{Status: StatusOscillating, Trace: trace}, nil
		}
	}

	// Best effort: the last iterate, explicitly unconfirmed.
	return Outcome{Root: x1, Status: StatusExhausted, Trace: trace}, nil
}

// diverging reports whether the last three recorded residual
// magnitudes are worsening: both of the later two strictly exceed the
// first. Requires at least four samples so one bad step is forgiven.
func diverging(trace []Iteration) bool {
	if len(trace) <= 3 {
		return false
	}
	last := trace[len(trace)-3:]
	first := math.Abs(last[0].Residual)
	return math.Abs(last[1].Residual) > first && math.Abs(last[2].Residual) > first
}
