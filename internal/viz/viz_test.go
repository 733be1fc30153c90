package viz

import (
	"strings"
	"testing"

	"github.com/san-kum/bernoulli/internal/fluid"
	"github.com/san-kum/bernoulli/internal/solver"
)

var sampleTrace = []solver.Iteration{
	{Index: 1, Candidate: 2.0, Residual: 0.0968},
	{Index: 2, Candidate: 4.7, Residual: -0.0074},
	{Index: 3, Candidate: 4.86, Residual: 1.2e-7},
}

func TestConvergencePlot(t *testing.T) {
	out := ConvergencePlot(sampleTrace, 60, 8)
	if !strings.Contains(out, "log10 |residual|") {
		t.Error("expected caption in plot")
	}
	if len(strings.Split(out, "\n")) < 8 {
		t.Error("expected multi-line plot")
	}
}

func TestConvergencePlotEmpty(t *testing.T) {
	out := ConvergencePlot(nil, 60, 8)
	if !strings.Contains(out, "no iterations") {
		t.Errorf("expected placeholder, got %q", out)
	}
}

func TestConvergencePlotZeroResidual(t *testing.T) {
	// An exact root must not produce log(0).
	trace := []solver.Iteration{{Index: 1, Candidate: 2.0, Residual: 0}}
	out := ConvergencePlot(trace, 40, 5)
	if strings.Contains(out, "NaN") || strings.Contains(out, "Inf") {
		t.Errorf("plot contains non-finite values: %q", out)
	}
}

func TestCandidatePlot(t *testing.T) {
	out := CandidatePlot(sampleTrace, 60, 8)
	if !strings.Contains(out, "candidate v2") {
		t.Error("expected caption in plot")
	}
}

func TestIterationTable(t *testing.T) {
	out := IterationTable(sampleTrace)
	if !strings.Contains(out, "ITER") {
		t.Error("expected header")
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != len(sampleTrace)+1 {
		t.Errorf("expected %d lines, got %d", len(sampleTrace)+1, len(lines))
	}
	if !strings.Contains(out, "4.860000") {
		t.Errorf("expected candidate value in table:\n%s", out)
	}
}

func TestFlowSketch(t *testing.T) {
	p := fluid.Params{P1: 101325, P2: 101325, Rho: 1000, G: 9.81, H1: 1, H2: 0, V1: 2}
	out := FlowSketch(p, 4.86, 60, 10)

	if !strings.Contains(out, "v1 = 2.00 m/s") {
		t.Errorf("expected inlet label:\n%s", out)
	}
	if !strings.Contains(out, "v2 = 4.86 m/s") {
		t.Errorf("expected exit label:\n%s", out)
	}
	if !strings.Contains(out, ">") {
		t.Error("expected flow arrows")
	}
}

func TestFlowSketchLevelPipe(t *testing.T) {
	// Equal heights must not divide by a zero span.
	p := fluid.Params{P1: 101325, P2: 101325, Rho: 1000, G: 9.81, H1: 0, H2: 0, V1: 2}
	out := FlowSketch(p, 2.0, 60, 10)
	if out == "" {
		t.Error("expected non-empty sketch")
	}
}
