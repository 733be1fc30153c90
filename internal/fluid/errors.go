package fluid

import (
	"errors"
	"fmt"
)

// Validation errors for physical parameters.
var (
	// ErrNonPositiveDensity indicates rho <= 0, which makes the
	// analytical formula ill-defined.
	ErrNonPositiveDensity = errors.New("fluid: density must be positive")

	// ErrNegativeVelocity indicates a negative inlet velocity.
	ErrNegativeVelocity = errors.New("fluid: inlet velocity must be non-negative")

	// ErrNegativePressure indicates a negative absolute pressure.
	ErrNegativePressure = errors.New("fluid: pressures must be non-negative")
)

// DomainError reports that no real exit velocity satisfies the
// equation under the given parameters. Radicand carries the offending
// value under the square root for diagnostics.
type DomainError struct {
	Radicand float64
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("fluid: no real solution exists (term under sqrt is %.2f)", e.Radicand)
}
