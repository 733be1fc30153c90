package fluid

import "math"

// Params holds the known quantities of the two-point Bernoulli balance.
// All values are SI: pressures in Pa, density in kg/m³, gravity in
// m/s², heights in m, velocity in m/s.
type Params struct {
	P1  float64 // pressure at point 1
	P2  float64 // pressure at point 2
	Rho float64 // fluid density
	G   float64 // gravitational acceleration
	H1  float64 // height at point 1
	H2  float64 // height at point 2
	V1  float64 // known velocity at point 1
}

// Default returns water flowing upward one meter between two points at
// atmospheric pressure.
func Default() Params {
	return Params{
		P1:  101325.0,
		P2:  101325.0,
		Rho: 1000.0,
		G:   9.81,
		H1:  0.0,
		H2:  1.0,
		V1:  2.0,
	}
}

// head is the total energy per unit volume at a point.
func head(p, rho, v, g, h float64) float64 {
	return p + 0.5*rho*v*v + rho*g*h
}

// Residual is the scaled imbalance of Bernoulli's equation at a
// candidate exit velocity v2. It is zero at an exact root, defined for
// any real v2, and scaled by |P1| (when above unity) so that
// absolute-tolerance comparisons stay meaningful for pressures in the
// atmospheric range.
func Residual(v2 float64, p Params) float64 {
	scale := math.Abs(p.P1)
	if scale <= 1 {
		scale = 1.0
	}
	return (head(p.P1, p.Rho, p.V1, p.G, p.H1) - head(p.P2, p.Rho, v2, p.G, p.H2)) / scale
}

// Validate checks the physical preconditions the solvers themselves do
// not enforce.
func Validate(p Params) error {
	if p.Rho <= 0 {
		return ErrNonPositiveDensity
	}
	if p.V1 < 0 {
		return ErrNegativeVelocity
	}
	if p.P1 < 0 || p.P2 < 0 {
		return ErrNegativePressure
	}
	return nil
}
