// Package viz renders solver results for the terminal: a semilog
// convergence chart of the iteration trace, an ASCII sketch of the
// two-point flow, and a tabular iteration history.
package viz
