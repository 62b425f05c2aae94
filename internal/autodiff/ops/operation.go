// Package ops defines the gradient rules recorded for each primitive operation.
//
// Each operation implements the Operation interface. The forward value is
// computed by the tape when the node is created; the operation only keeps what
// its backward rule needs.
//
// Supported operations:
//   - AddOp: addition (d(a+b)/da = 1, d(a+b)/db = 1)
//   - MulOp: multiplication (d(a*b)/da = b, d(a*b)/db = a)
//   - PowOp: power with a constant exponent (d(a^k)/da = k*a^(k-1))
//   - ExpOp: exponential (d(e^a)/da = e^a, memoized)
//   - TanhOp: hyperbolic tangent (d(tanh(a))/da = 1 - tanh²(a), memoized)
//
// Negation, subtraction and division are composed from these by the tape and
// have no operation type of their own.
package ops

// Operation is the deferred gradient rule bound to a node when it is created.
type Operation interface {
	// Backward returns the contribution of the output gradient to each
	// operand, in operand order. inputs holds the operands' current data.
	//
	// Example for AddOp:
	//   inputs: [a, b]
	//   outputGrad: dL/d(a+b)
	//   returns: [dL/d(a+b), dL/d(a+b)]
	//
	// The caller adds the returned values into the operand gradients.
	Backward(outputGrad float64, inputs []float64) []float64

	// Kind returns a short symbol for the operation, e.g. "+" or "tanh".
	Kind() string
}
