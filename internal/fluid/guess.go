package fluid

import "math"

// Guess bounds for the iterative solver, in m/s. The ceiling keeps
// suggestions in the subsonic range typical for pipe flow.
const (
	minGuess = 0.1
	maxGuess = 20.0
)

// SuggestGuesses derives an initial bracket for the secant solver.
// When the analytical solution exists it brackets that value; when it
// fails the bracket falls back to the known inlet velocity.
func SuggestGuesses(p Params) (x0, x1 float64) {
	seed, err := Analytical(p)
	if err != nil {
		seed = p.V1
	}
	x0 = math.Max(minGuess, seed*0.5)
	x1 = math.Min(seed*1.5, maxGuess)
	if x1 <= x0 {
		x1 = x0 * 3
	}
	return x0, x1
}
