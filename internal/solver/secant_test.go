package solver_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/bernoulli/internal/fluid"
	"github.com/san-kum/bernoulli/internal/solver"
)

// downhill is a physically consistent scenario: water dropping one
// meter between two open points. Its analytical exit velocity is
// sqrt(v1² + 2g) = sqrt(23.62) ≈ 4.8600 m/s.
var downhill = fluid.Params{
	P1: 101325, P2: 101325, Rho: 1000, G: 9.81,
	H1: 1, H2: 0, V1: 2,
}

func downhillResidual(v2 float64) float64 {
	return fluid.Residual(v2, downhill)
}

var _ = Describe("Secant", func() {
	var opts solver.Options

	BeforeEach(func() {
		opts = solver.DefaultOptions()
	})

	Context("with a well-posed flow scenario", func() {
		It("converges to the analytical root", func() {
			want, err := fluid.Analytical(downhill)
			Expect(err).NotTo(HaveOccurred())

			out, err := solver.Secant(downhillResidual, 1.0, 2.0, opts)
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Converged).To(BeTrue())
			Expect(out.Status).To(Equal(solver.StatusConverged))

			root, ok := out.Solution()
			Expect(ok).To(BeTrue())
			Expect(root).To(BeNumerically("~", want, 1e-3))
		})

		It("satisfies the tolerance at the reported root", func() {
			out, err := solver.Secant(downhillResidual, 1.0, 2.0, opts)
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Converged).To(BeTrue())
			Expect(math.Abs(downhillResidual(out.Root))).To(BeNumerically("<", opts.Tolerance))
			Expect(math.Abs(out.FinalResidual())).To(BeNumerically("<", opts.Tolerance))
		})

		It("records strictly consecutive 1-based trace indices", func() {
			out, err := solver.Secant(downhillResidual, 1.0, 2.0, opts)
			Expect(err).NotTo(HaveOccurred())
			Expect(len(out.Trace)).To(BeNumerically("<=", opts.MaxIterations))
			for i, it := range out.Trace {
				Expect(it.Index).To(Equal(i + 1))
			}
		})

		It("is idempotent across identical invocations", func() {
			first, err := solver.Secant(downhillResidual, 1.0, 2.0, opts)
			Expect(err).NotTo(HaveOccurred())
			second, err := solver.Secant(downhillResidual, 1.0, 2.0, opts)
			Expect(err).NotTo(HaveOccurred())
			Expect(second).To(Equal(first))
		})

		It("finds an exact root on the first iteration", func() {
			level := fluid.Params{
				P1: 101325, P2: 101325, Rho: 1000, G: 9.81,
				H1: 0, H2: 0, V1: 2,
			}
			f := func(v2 float64) float64 { return fluid.Residual(v2, level) }

			out, err := solver.Secant(f, 1.0, 2.0, opts)
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Converged).To(BeTrue())
			Expect(out.Root).To(Equal(2.0))
			Expect(out.Trace).To(HaveLen(1))
		})
	})

	Context("guess validation", func() {
		It("rejects a non-positive first guess", func() {
			out, err := solver.Secant(downhillResidual, -1.0, 2.0, opts)
			Expect(err).To(MatchError(solver.ErrInvalidGuess))
			Expect(out.Status).To(Equal(solver.StatusInvalid))
			Expect(out.Trace).To(BeEmpty())

			_, ok := out.Solution()
			Expect(ok).To(BeFalse())
		})

		It("rejects a zero second guess", func() {
			_, err := solver.Secant(downhillResidual, 1.0, 0.0, opts)
			Expect(err).To(MatchError(solver.ErrInvalidGuess))
		})

		It("nudges indistinguishable guesses apart instead of failing", func() {
			out, err := solver.Secant(downhillResidual, 5.0, 5.0, opts)
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Trace).NotTo(BeEmpty())
			Expect(out.Trace[0].Candidate).To(BeNumerically("~", 5.5, 1e-12))
			Expect(out.Converged).To(BeTrue())
		})
	})

	Context("domain guards", func() {
		It("keeps every candidate positive via the bisection fallback", func() {
			// f(x) = x + 1 has its root at -1; the raw secant update is
			// always non-positive, so every step must be a midpoint.
			f := func(x float64) float64 { return x + 1 }
			shortOpts := solver.Options{Tolerance: 1e-6, MaxIterations: 20}

			out, err := solver.Secant(f, 2.0, 1.0, shortOpts)
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Converged).To(BeFalse())
			for _, it := range out.Trace {
				Expect(it.Candidate).To(BeNumerically(">", 0))
			}
		})

		It("fails on a flat residual instead of dividing by the slope", func() {
			f := func(x float64) float64 { return 1.0 }

			out, err := solver.Secant(f, 1.0, 2.0, opts)
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Status).To(Equal(solver.StatusSlopeCollapse))
			Expect(out.Converged).To(BeFalse())
			Expect(out.Trace).To(HaveLen(1))

			_, ok := out.Solution()
			Expect(ok).To(BeFalse())
		})

		It("flags a monotonically worsening residual tail as oscillating", func() {
			// Scripted residuals, consumed two per iteration (f(x0)
			// then f(x1)): the recorded values are 1, 0.5, 1.0, 1.5,
			// so at the fourth iteration both of the later two exceed
			// the third-from-last.
			returns := []float64{2, 1, 1, 0.5, 0.5, 1.0, 1.0, 1.5}
			calls := 0
			f := func(x float64) float64 {
				v := returns[calls%len(returns)]
				calls++
				return v
			}

			out, err := solver.Secant(f, 1.0, 2.0, opts)
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Status).To(Equal(solver.StatusOscillating))
			Expect(out.Converged).To(BeFalse())
			Expect(out.Trace).To(HaveLen(4))

			_, ok := out.Solution()
			Expect(ok).To(BeFalse())
		})

		It("returns the last iterate unconfirmed when the budget runs out", func() {
			tight := solver.Options{Tolerance: 1e-12, MaxIterations: 2}

			out, err := solver.Secant(downhillResidual, 1.0, 2.0, tight)
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Status).To(Equal(solver.StatusExhausted))
			Expect(out.Converged).To(BeFalse())
			Expect(out.Trace).To(HaveLen(2))

			root, ok := out.Solution()
			Expect(ok).To(BeTrue())
			Expect(root).To(BeNumerically(">", 0))
		})
	})
})

var _ = Describe("Status", func() {
	It("names every terminal state", func() {
		Expect(solver.StatusConverged.String()).To(Equal("converged"))
		Expect(solver.StatusSlopeCollapse.String()).To(Equal("slope collapse"))
		Expect(solver.StatusOscillating.String()).To(Equal("oscillating"))
		Expect(solver.StatusExhausted.String()).To(Equal("budget exhausted"))
		Expect(solver.StatusInvalid.String()).To(Equal("invalid input"))
	})
})
