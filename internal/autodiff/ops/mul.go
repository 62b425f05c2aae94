package ops

// MulOp represents multiplication: output = a * b.
//
// Backward pass:
//   - d(a*b)/da = b, so grad_a = outputGrad * b
//   - d(a*b)/db = a, so grad_b = outputGrad * a
type MulOp struct{}

// NewMulOp creates a new MulOp.
func NewMulOp() *MulOp {
	return &MulOp{}
}

// Backward computes operand gradients for multiplication.
func (op *MulOp) Backward(outputGrad float64, inputs []float64) []float64 {
	a, b := inputs[0], inputs[1]
	return []float64{b * outputGrad, a * outputGrad}
}

// Kind returns "*".
func (op *MulOp) Kind() string {
	return "*"
}
