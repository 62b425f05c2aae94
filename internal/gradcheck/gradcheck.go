// Package gradcheck compares gradients from the backward pass with central
// finite differences.
//
// Every primitive operation is exercised at random points drawn from a domain
// where it is smooth, once per operand:
//
//	numeric = (f(x+ε) - f(x-ε)) / 2ε
//
// and the absolute difference to the analytic gradient must stay within a
// tolerance.
package gradcheck

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/born-ml/micrograd/internal/autodiff"
)

// Defaults used by Check when Options leave them zero.
const (
	DefaultEpsilon   = 1e-6
	DefaultTolerance = 1e-3
	DefaultTrials    = 100
)

// Sampler draws an operand value.
type Sampler func(r *rand.Rand) float64

// Primitive is one differentiable operation under test.
type Primitive struct {
	Name  string
	Arity int // 1 or 2
	Build func(a, b autodiff.Value) autodiff.Value
	A, B  Sampler
}

// Options controls a check run.
type Options struct {
	Trials    int
	Epsilon   float64
	Tolerance float64
}

// Failure is one operand whose gradients disagreed.
type Failure struct {
	A, B     float64
	Operand  int
	Analytic float64
	Numeric  float64
}

func (f Failure) String() string {
	return fmt.Sprintf("a=%g b=%g operand=%d analytic=%g numeric=%g",
		f.A, f.B, f.Operand, f.Analytic, f.Numeric)
}

// Report summarizes a check of one primitive.
type Report struct {
	Name     string
	Trials   int
	MaxError float64
	Failures []Failure
}

// OK reports whether every trial was within tolerance.
func (r Report) OK() bool {
	return len(r.Failures) == 0
}

// Numerical computes the central-difference derivative of f at x.
func Numerical(f func(float64) float64, x, epsilon float64) float64 {
	return (f(x+epsilon) - f(x-epsilon)) / (2 * epsilon)
}

// Uniform returns a sampler over [lo, hi).
func Uniform(lo, hi float64) Sampler {
	return func(r *rand.Rand) float64 {
		return lo + (hi-lo)*r.Float64()
	}
}

// AwayFromZero returns a sampler over ±[lo, hi).
func AwayFromZero(lo, hi float64) Sampler {
	u := Uniform(lo, hi)
	return func(r *rand.Rand) float64 {
		return math.Copysign(u(r), r.Float64()-0.5)
	}
}

// Primitives returns the built-in operations with smooth sampling domains.
func Primitives() []Primitive {
	unused := Uniform(0, 1)
	return []Primitive{
		{Name: "add", Arity: 2, Build: autodiff.Value.Add, A: Uniform(-3, 3), B: Uniform(-3, 3)},
		{Name: "mul", Arity: 2, Build: autodiff.Value.Mul, A: Uniform(-3, 3), B: Uniform(-3, 3)},
		{Name: "pow", Arity: 1, Build: func(a, _ autodiff.Value) autodiff.Value { return a.Pow(3) }, A: Uniform(-2, 2), B: unused},
		{Name: "pow_frac", Arity: 1, Build: func(a, _ autodiff.Value) autodiff.Value { return a.Pow(0.5) }, A: Uniform(0.5, 4), B: unused},
		{Name: "exp", Arity: 1, Build: func(a, _ autodiff.Value) autodiff.Value { return a.Exp() }, A: Uniform(-3, 3), B: unused},
		{Name: "tanh", Arity: 1, Build: func(a, _ autodiff.Value) autodiff.Value { return a.Tanh() }, A: Uniform(-2, 2), B: unused},
		{Name: "neg", Arity: 1, Build: func(a, _ autodiff.Value) autodiff.Value { return a.Neg() }, A: Uniform(-3, 3), B: unused},
		{Name: "sub", Arity: 2, Build: autodiff.Value.Sub, A: Uniform(-3, 3), B: Uniform(-3, 3)},
		{Name: "div", Arity: 2, Build: autodiff.Value.Div, A: Uniform(-3, 3), B: AwayFromZero(0.5, 3)},
	}
}

// Check runs opts.Trials random trials of p.
func Check(p Primitive, rng *rand.Rand, opts Options) (Report, error) {
	opts = withDefaults(opts)
	if p.Arity < 1 || p.Arity > 2 {
		return Report{}, fmt.Errorf("gradcheck: %s: arity %d not supported", p.Name, p.Arity)
	}

	report := Report{Name: p.Name, Trials: opts.Trials}
	eval := func(a, b float64) float64 {
		tape := autodiff.NewTape()
		return p.Build(tape.Leaf(a), tape.Leaf(b)).Data()
	}

	for range opts.Trials {
		av, bv := p.A(rng), p.B(rng)

		tape := autodiff.NewTape()
		a, b := tape.Leaf(av), tape.Leaf(bv)
		if err := p.Build(a, b).Backward(); err != nil {
			return report, fmt.Errorf("gradcheck: %s: %w", p.Name, err)
		}

		analytic := [2]float64{a.Grad(), b.Grad()}
		numeric := [2]float64{
			Numerical(func(x float64) float64 { return eval(x, bv) }, av, opts.Epsilon),
			Numerical(func(y float64) float64 { return eval(av, y) }, bv, opts.Epsilon),
		}

		for i := range p.Arity {
			diff := math.Abs(analytic[i] - numeric[i])
			if math.IsNaN(diff) {
				diff = math.Inf(1)
			}
			report.MaxError = math.Max(report.MaxError, diff)
			if diff > opts.Tolerance {
				report.Failures = append(report.Failures, Failure{
					A: av, B: bv, Operand: i, Analytic: analytic[i], Numeric: numeric[i],
				})
			}
		}
	}

	return report, nil
}

// CheckAll runs Check for every primitive in ps.
func CheckAll(ps []Primitive, rng *rand.Rand, opts Options) ([]Report, error) {
	reports := make([]Report, 0, len(ps))
	for _, p := range ps {
		r, err := Check(p, rng, opts)
		if err != nil {
			return reports, err
		}
		reports = append(reports, r)
	}
	return reports, nil
}

func withDefaults(o Options) Options {
	if o.Trials <= 0 {
		o.Trials = DefaultTrials
	}
	if o.Epsilon <= 0 {
		o.Epsilon = DefaultEpsilon
	}
	if o.Tolerance <= 0 {
		o.Tolerance = DefaultTolerance
	}
	return o
}
