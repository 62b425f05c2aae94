package ops

// AddOp represents addition: output = a + b.
//
// Backward pass:
//   - d(a+b)/da = 1, so grad_a = outputGrad
//   - d(a+b)/db = 1, so grad_b = outputGrad
type AddOp struct{}

// NewAddOp creates a new AddOp.
func NewAddOp() *AddOp {
	return &AddOp{}
}

// Backward passes the output gradient through unchanged to both operands.
func (op *AddOp) Backward(outputGrad float64, _ []float64) []float64 {
	return []float64{outputGrad, outputGrad}
}

// Kind returns "+".
func (op *AddOp) Kind() string {
	return "+"
}
