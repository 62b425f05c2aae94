package ops

// ExpOp represents the exponential operation: y = exp(x).
//
// Backward pass:
//   - d(exp(x))/dx = exp(x) = y
//   - grad_input = grad_output * output
type ExpOp struct {
	output float64 // exp(x)
}

// NewExpOp creates a new ExpOp remembering the forward result.
func NewExpOp(output float64) *ExpOp {
	return &ExpOp{output: output}
}

// Backward computes the input gradient for exp.
//
// Since d(exp(x))/dx = exp(x), and we already have exp(x) as output:
// grad_input = grad_output * output.
func (op *ExpOp) Backward(outputGrad float64, _ []float64) []float64 {
	return []float64{op.output * outputGrad}
}

// Kind returns "exp".
func (op *ExpOp) Kind() string {
	return "exp"
}
