package solver

// Residual is a scalar function whose root is sought. It must be
// defined for any real argument, including non-physical ones; the
// solver keeps its own iterates inside the positive domain.
type Residual func(x float64) float64

// Options bound a single solver invocation.
type Options struct {
	Tolerance     float64 // absolute residual tolerance
	MaxIterations int     // iteration budget
}

// DefaultOptions returns the standard tolerance and budget.
func DefaultOptions() Options {
	return Options{
		Tolerance:     1e-6,
		MaxIterations: 100,
	}
}

// Iteration is one recorded solver step.
type Iteration struct {
	Index     int     // 1-based, strictly consecutive
	Candidate float64 // iterate evaluated this step
	Residual  float64 // residual at Candidate
}

// Status is the terminal state of a solver invocation.
type Status int

const (
	// StatusConverged means the residual at Root is within tolerance.
	StatusConverged Status = iota
	// StatusSlopeCollapse means the secant slope became too flat to
	// divide by; no solution is reported.
	StatusSlopeCollapse
	// StatusOscillating means the residual magnitudes were worsening
	// monotonically; no solution is reported.
	StatusOscillating
	// StatusExhausted means the iteration budget ran out; Root holds
	// the last iterate but is unconfirmed.
	StatusExhausted
	// StatusInvalid means an initial guess violated the positivity
	// precondition; no iteration was attempted.
	StatusInvalid
)

func (s Status) String() string {
	switch s {
	case StatusConverged:
		return "converged"
	case StatusSlopeCollapse:
		return "slope collapse"
	case StatusOscillating:
		return "oscillating"
	case StatusExhausted:
		return "budget exhausted"
	case StatusInvalid:
		return "invalid input"
	default:
		return "unknown"
	}
}

// Outcome is the result of one solver invocation. Root is meaningful
// only for StatusConverged and StatusExhausted; use Solution to
// distinguish a reported value from an absent one.
type Outcome struct {
	Root      float64
	Converged bool
	Status    Status
	Trace     []Iteration
}

// Solution returns the found root. ok is false when the solver could
// not produce any candidate worth reporting (slope collapse,
// oscillation, or invalid input). An exhausted search still reports
// its last iterate; callers must check Converged before trusting it.
func (o Outcome) Solution() (root float64, ok bool) {
	switch o.Status {
	case StatusConverged, StatusExhausted:
		return o.Root, true
	default:
		return 0, false
	}
}

// FinalResidual returns the residual of the last recorded iteration,
// or 0 for an empty trace.
func (o Outcome) FinalResidual() float64 {
	if len(o.Trace) == 0 {
		return 0
	}
	return o.Trace[len(o.Trace)-1].Residual
}
