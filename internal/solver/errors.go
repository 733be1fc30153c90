package solver

import "errors"

// ErrInvalidGuess indicates a non-positive initial candidate. Physical
// velocities are positive, and a zero candidate would later appear in
// a denominator, so both guesses are rejected up front.
var ErrInvalidGuess = errors.New("solver: initial guesses must be positive")
