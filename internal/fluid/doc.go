// Package fluid models steady incompressible flow between two points
// on a streamline via Bernoulli's energy-conservation equation:
//
//	P1 + ½ρv1² + ρg·h1 = P2 + ½ρv2² + ρg·h2
//
// The unknown is the exit velocity v2. Two solution paths are provided:
//
//   - [Analytical]: the closed-form root, failing with [DomainError]
//     when no real solution exists
//   - [Residual]: the scaled imbalance of the equation at a candidate
//     v2, suitable for driving a numerical root-finder
//
// [SuggestGuesses] derives an initial bracket for the iterative path,
// seeded from the analytical value when it exists and from the inlet
// velocity otherwise.
//
// All functions are pure; parameter validation belongs to the caller
// and is offered separately as [Validate].
package fluid
