package ops

// TanhOp represents the hyperbolic tangent activation: tanh(x) = (e^2x - 1) / (e^2x + 1).
type TanhOp struct {
	output float64 // tanh(x)
}

// NewTanhOp creates a new tanh operation remembering the forward result.
func NewTanhOp(output float64) *TanhOp {
	return &TanhOp{output: output}
}

// Backward computes the gradient for tanh.
//
// For tanh(x):
// d(tanh(x))/dx = 1 - tanh²(x)
//
// Since we have the output tanh(x) already computed:
// grad_input = grad_output * (1 - output²).
func (op *TanhOp) Backward(outputGrad float64, _ []float64) []float64 {
	t := op.output
	return []float64{(1 - t*t) * outputGrad}
}

// Kind returns "tanh".
func (op *TanhOp) Kind() string {
	return "tanh"
}
