package ops

import (
	"math"
	"strconv"
)

// PowOp represents raising a node to a constant power: output = a^k.
//
// Backward pass:
//   - d(a^k)/da = k * a^(k-1)
//   - grad_a = outputGrad * k * a^(k-1)
//
// The exponent is a plain number, not a node, so no gradient flows to it.
type PowOp struct {
	exponent float64
}

// NewPowOp creates a new PowOp with exponent k.
func NewPowOp(k float64) *PowOp {
	return &PowOp{exponent: k}
}

// Exponent returns k.
func (op *PowOp) Exponent() float64 {
	return op.exponent
}

// Backward computes the operand gradient for a^k.
// Negative bases with fractional exponents yield NaN, as math.Pow does.
func (op *PowOp) Backward(outputGrad float64, inputs []float64) []float64 {
	k := op.exponent
	return []float64{k * math.Pow(inputs[0], k-1) * outputGrad}
}

// Kind returns "**k", e.g. "**2".
func (op *PowOp) Kind() string {
	return "**" + strconv.FormatFloat(op.exponent, 'g', -1, 64)
}
