// Package solver implements a guarded secant-method root-finder for
// scalar residual functions.
//
// The solver is generic over any residual with signature
// func(float64) float64; domain parameters are captured by the caller
// in a closure:
//
//	f := func(v2 float64) float64 { return fluid.Residual(v2, p) }
//	out, err := solver.Secant(f, x0, x1, solver.DefaultOptions())
//
// Beyond the standard secant recurrence it carries three guards tuned
// for physical velocities: initial candidates must be strictly
// positive, a non-positive proposed iterate is replaced by a bisection
// step, and the search aborts on a near-zero secant slope or a
// monotonically worsening residual tail.
//
// Only a precondition violation is reported as an error. Slope
// collapse, oscillation, and budget exhaustion are expected numerical
// outcomes and are reported through [Outcome.Status] and the Converged
// flag instead.
package solver
