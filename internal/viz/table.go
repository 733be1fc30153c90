package viz

import (
	"fmt"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/san-kum/bernoulli/internal/solver"
)

// IterationTable formats the solver trace as an aligned table.
func IterationTable(trace []solver.Iteration) string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ITER\tV2 [m/s]\t|RESIDUAL|")
	for _, it := range trace {
		fmt.Fprintf(w, "%d\t%.6f\t%.2e\n", it.Index, it.Candidate, math.Abs(it.Residual))
	}
	w.Flush()
	return sb.String()
}
