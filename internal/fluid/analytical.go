package fluid

import "math"

// Radicand is the term under the square root of the closed-form
// solution for v2.
func Radicand(p Params) float64 {
	return (2 / p.Rho) * (p.P1 - p.P2 + p.Rho*p.G*(p.H1-p.H2) + 0.5*p.Rho*p.V1*p.V1)
}

// Analytical solves Bernoulli's equation for v2 directly:
//
//	v2 = sqrt((2/ρ)·(P1 − P2 + ρg(h1 − h2) + ½ρv1²))
//
// It returns a *DomainError when the radicand is negative or when the
// density makes it non-finite, since no trustworthy real solution
// exists in either case.
func Analytical(p Params) (float64, error) {
	r := Radicand(p)
	if math.IsNaN(r) || math.IsInf(r, 0) || r < 0 {
		return 0, &DomainError{Radicand: r}
	}
	return math.Sqrt(r), nil
}
