package ops_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/born-ml/micrograd/internal/autodiff/ops"
)

// TestAddOp_Backward tests AddOp backward pass.
func TestAddOp_Backward(t *testing.T) {
	op := ops.NewAddOp()

	grads := op.Backward(0.5, []float64{2, 3})

	// For addition: grad_a = grad_b = outputGrad
	assert.Equal(t, []float64{0.5, 0.5}, grads)
	assert.Equal(t, "+", op.Kind())
}

// TestMulOp_Backward tests MulOp backward pass.
func TestMulOp_Backward(t *testing.T) {
	op := ops.NewMulOp()

	// a = 3, b = 1.5, outputGrad = 2
	grads := op.Backward(2, []float64{3, 1.5})

	// grad_a = b * g = 3, grad_b = a * g = 6
	assert.Equal(t, []float64{3, 6}, grads)
	assert.Equal(t, "*", op.Kind())
}

// TestPowOp_Backward tests PowOp backward pass for several exponents.
func TestPowOp_Backward(t *testing.T) {
	tests := []struct {
		name string
		k    float64
		a    float64
		want float64
		kind string
	}{
		{"square", 2, 4, 8, "**2"},
		{"reciprocal", -1, 5, -0.04, "**-1"},
		{"cube", 3, -2, 12, "**3"},
		{"sqrt", 0.5, 4, 0.25, "**0.5"},
		{"identity", 1, 7, 1, "**1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op := ops.NewPowOp(tt.k)
			grads := op.Backward(1, []float64{tt.a})
			assert.InDelta(t, tt.want, grads[0], 1e-12)
			assert.Equal(t, tt.kind, op.Kind())
			assert.Equal(t, tt.k, op.Exponent())
		})
	}
}

// TestPowOp_NegativeBaseFractional checks IEEE semantics are passed through.
func TestPowOp_NegativeBaseFractional(t *testing.T) {
	op := ops.NewPowOp(0.5)
	grads := op.Backward(1, []float64{-4})
	assert.True(t, math.IsNaN(grads[0]))
}

// TestExpOp_Backward tests that ExpOp reuses the forward value.
func TestExpOp_Backward(t *testing.T) {
	op := ops.NewExpOp(math.E)

	// The input value is ignored; the memoized output is used.
	grads := op.Backward(2, []float64{123})

	assert.InDelta(t, 2*math.E, grads[0], 1e-12)
	assert.Equal(t, "exp", op.Kind())
}

// TestTanhOp_Backward tests TanhOp backward pass.
func TestTanhOp_Backward(t *testing.T) {
	op := ops.NewTanhOp(0.5)

	grads := op.Backward(1, []float64{0.549306144})

	// 1 - 0.5² = 0.75
	assert.InDelta(t, 0.75, grads[0], 1e-12)
	assert.Equal(t, "tanh", op.Kind())
}

// TestOperation_Interface ensures every op satisfies Operation.
func TestOperation_Interface(t *testing.T) {
	var all = []ops.Operation{
		ops.NewAddOp(),
		ops.NewMulOp(),
		ops.NewPowOp(2),
		ops.NewExpOp(1),
		ops.NewTanhOp(0),
	}
	for _, op := range all {
		assert.NotEmpty(t, op.Kind())
	}
}
