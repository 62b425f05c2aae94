package autodiff

import (
	"fmt"
	"math"

	"github.com/born-ml/micrograd/internal/autodiff/ops"
)

// Value is a handle to one node of a Tape.
//
// Values are small and compared by identity: two handles are equal only if
// they name the same slot in the same generation. Two distinct nodes holding
// equal data are different Values.
//
// The zero Value belongs to no tape; using it panics.
type Value struct {
	tape *Tape
	id   int
	gen  uint64
}

// Tape returns the tape owning v.
func (v Value) Tape() *Tape {
	return v.tape
}

// ID returns the slot index of v on its tape.
func (v Value) ID() int {
	return v.id
}

// Data returns the forward value of v.
func (v Value) Data() float64 {
	return v.mustResolve().data
}

// Grad returns the gradient accumulated in v.
func (v Value) Grad() float64 {
	return v.mustResolve().grad
}

// IsLeaf reports whether v was created by Leaf rather than an operation.
func (v Value) IsLeaf() bool {
	return v.mustResolve().op == nil
}

// Op returns the symbol of the operation that produced v, or "" for leaves.
func (v Value) Op() string {
	n := v.mustResolve()
	if n.op == nil {
		return ""
	}
	return n.op.Kind()
}

// Operands returns the nodes v was computed from, in operand order.
func (v Value) Operands() []Value {
	n := v.mustResolve()
	out := make([]Value, len(n.operands))
	for i, r := range n.operands {
		out[i] = v.tape.handle(r)
	}
	return out
}

// Valid reports whether v still resolves on its tape.
func (v Value) Valid() bool {
	if v.tape == nil {
		return false
	}
	_, err := v.tape.resolve(v)
	return err == nil
}

// String formats v as "(data=<data> : grad=<grad>)".
func (v Value) String() string {
	if v.tape == nil {
		return "(invalid)"
	}
	n, err := v.tape.resolve(v)
	if err != nil {
		return fmt.Sprintf("(%v)", err)
	}
	return fmt.Sprintf("(data=%g : grad=%g)", n.data, n.grad)
}

// Step applies a gradient-descent update: data += lr * grad.
//
// Only leaves may be stepped; the data of derived nodes is fixed at
// construction. Pass a negative lr to descend.
func (v Value) Step(lr float64) error {
	if v.tape == nil {
		return fmt.Errorf("step: %w", ErrForeignValue)
	}
	n, err := v.tape.resolve(v)
	if err != nil {
		return fmt.Errorf("step: %w", err)
	}
	if n.op != nil {
		return fmt.Errorf("step: %w (node %d, op %q)", ErrNotLeaf, v.id, n.op.Kind())
	}
	n.data += lr * n.grad
	return nil
}

// ZeroGrad sets the gradient of v to zero.
func (v Value) ZeroGrad() {
	v.mustResolve().grad = 0
}

// Add returns a new node holding v + other.
func (v Value) Add(other Value) Value {
	t := v.mustTape()
	return t.record(v.Data()+other.mustResolveOn(t).data, ops.NewAddOp(), v, other)
}

// Mul returns a new node holding v * other.
func (v Value) Mul(other Value) Value {
	t := v.mustTape()
	return t.record(v.Data()*other.mustResolveOn(t).data, ops.NewMulOp(), v, other)
}

// Pow returns a new node holding v^k for a constant exponent k.
func (v Value) Pow(k float64) Value {
	t := v.mustTape()
	return t.record(math.Pow(v.Data(), k), ops.NewPowOp(k), v)
}

// Exp returns a new node holding e^v.
func (v Value) Exp() Value {
	t := v.mustTape()
	out := math.Exp(v.Data())
	return t.record(out, ops.NewExpOp(out), v)
}

// Tanh returns a new node holding tanh(v).
func (v Value) Tanh() Value {
	t := v.mustTape()
	out := math.Tanh(v.Data())
	return t.record(out, ops.NewTanhOp(out), v)
}

// Neg returns -v, recorded as v * -1.
func (v Value) Neg() Value {
	t := v.mustTape()
	return v.Mul(t.Leaf(-1))
}

// Sub returns v - other, recorded as v + (-other).
func (v Value) Sub(other Value) Value {
	return v.Add(other.Neg())
}

// Div returns v / other, recorded as v * other^-1.
func (v Value) Div(other Value) Value {
	return v.Mul(other.Pow(-1))
}

// Backward runs the backward pass from v on its tape. See Tape.Backward.
func (v Value) Backward(opts ...BackwardOption) error {
	if v.tape == nil {
		return fmt.Errorf("backward: %w", ErrForeignValue)
	}
	return v.tape.Backward(v, opts...)
}

// Sum returns the left fold of Add over values. It panics if values is empty.
func Sum(values ...Value) Value {
	if len(values) == 0 {
		panic("autodiff: Sum of no values")
	}
	acc := values[0]
	for _, v := range values[1:] {
		acc = acc.Add(v)
	}
	return acc
}

func (v Value) mustTape() *Tape {
	if v.tape == nil {
		panic(fmt.Errorf("%w (zero Value)", ErrForeignValue))
	}
	return v.tape
}

func (v Value) mustResolve() *node {
	return v.mustResolveOn(v.mustTape())
}

func (v Value) mustResolveOn(t *Tape) *node {
	n, err := t.resolve(v)
	if err != nil {
		panic(err)
	}
	return n
}
