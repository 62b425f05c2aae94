package autodiff_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/micrograd/internal/autodiff"
)

// TestTape_Leaf tests leaf construction.
func TestTape_Leaf(t *testing.T) {
	tape := autodiff.NewTape()

	x := tape.Leaf(2.5)

	assert.Equal(t, 2.5, x.Data())
	assert.Equal(t, 0.0, x.Grad())
	assert.True(t, x.IsLeaf())
	assert.Empty(t, x.Operands())
	assert.Equal(t, "", x.Op())
	assert.Equal(t, 1, tape.Len())
	assert.Same(t, tape, x.Tape())
}

// TestValue_ForwardValues checks the forward value of every operation.
func TestValue_ForwardValues(t *testing.T) {
	tape := autodiff.NewTape()
	a := tape.Leaf(6)
	b := tape.Leaf(3)

	tests := []struct {
		name string
		got  autodiff.Value
		want float64
		op   string
	}{
		{"add", a.Add(b), 9, "+"},
		{"mul", a.Mul(b), 18, "*"},
		{"pow", b.Pow(2), 9, "**2"},
		{"exp", b.Exp(), math.Exp(3), "exp"},
		{"tanh", b.Tanh(), math.Tanh(3), "tanh"},
		{"neg", a.Neg(), -6, "*"},
		{"sub", a.Sub(b), 3, "+"},
		{"div", a.Div(b), 2, "*"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.got.Data(), 1e-12)
			assert.Equal(t, tt.op, tt.got.Op())
			assert.False(t, tt.got.IsLeaf())
		})
	}
}

// TestValue_ConstructionDoesNotTouchOperands checks that building nodes
// leaves operand data and gradients alone.
func TestValue_ConstructionDoesNotTouchOperands(t *testing.T) {
	tape := autodiff.NewTape()
	a := tape.Leaf(2)
	b := tape.Leaf(-3)

	_ = a.Mul(b).Add(a).Tanh().Exp().Div(b)

	assert.Equal(t, 2.0, a.Data())
	assert.Equal(t, -3.0, b.Data())
	assert.Equal(t, 0.0, a.Grad())
	assert.Equal(t, 0.0, b.Grad())
}

// TestValue_Operands checks operand links are recorded in order.
func TestValue_Operands(t *testing.T) {
	tape := autodiff.NewTape()
	a := tape.Leaf(1)
	b := tape.Leaf(2)

	c := a.Mul(b)
	ops := c.Operands()
	require.Len(t, ops, 2)
	assert.Equal(t, a, ops[0])
	assert.Equal(t, b, ops[1])

	// Derived operations: sub = a + (b * -1)
	d := a.Sub(b)
	ops = d.Operands()
	require.Len(t, ops, 2)
	assert.Equal(t, a, ops[0])
	assert.Equal(t, "*", ops[1].Op())
	assert.Equal(t, b, ops[1].Operands()[0])
	assert.Equal(t, -1.0, ops[1].Operands()[1].Data())
}

// TestValue_Identity checks equal data does not make values equal.
func TestValue_Identity(t *testing.T) {
	tape := autodiff.NewTape()
	a := tape.Leaf(1)
	b := tape.Leaf(1)

	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a.ID(), b.ID())
}

// TestValue_String tests the printed form.
func TestValue_String(t *testing.T) {
	tape := autodiff.NewTape()
	a := tape.Leaf(2)
	b := tape.Leaf(3)
	c := a.Add(b)
	require.NoError(t, c.Backward())

	assert.Equal(t, "(data=2 : grad=1)", a.String())
	assert.Equal(t, "(data=5 : grad=1)", c.String())
	assert.Equal(t, "(invalid)", autodiff.Value{}.String())

	tape.Reset()
	assert.Contains(t, a.String(), "dangling")
}

// TestValue_Step tests the gradient-descent update.
func TestValue_Step(t *testing.T) {
	tape := autodiff.NewTape()
	w := tape.Leaf(2)
	y := w.Pow(2)
	require.NoError(t, y.Backward())

	// data += lr * grad = 2 + (-0.1 * 4)
	require.NoError(t, w.Step(-0.1))
	assert.InDelta(t, 1.6, w.Data(), 1e-12)

	// Derived nodes are immutable.
	err := y.Step(-0.1)
	require.Error(t, err)
	assert.ErrorIs(t, err, autodiff.ErrNotLeaf)
	assert.Equal(t, 4.0, y.Data())

	assert.ErrorIs(t, autodiff.Value{}.Step(1), autodiff.ErrForeignValue)
}

// TestValue_ZeroGrad tests gradient reset on single values and the tape.
func TestValue_ZeroGrad(t *testing.T) {
	tape := autodiff.NewTape()
	a := tape.Leaf(2)
	b := tape.Leaf(5)
	c := a.Mul(b)
	require.NoError(t, c.Backward())

	a.ZeroGrad()
	assert.Equal(t, 0.0, a.Grad())
	assert.Equal(t, 2.0, b.Grad())

	tape.ZeroGrad()
	assert.Equal(t, 0.0, b.Grad())
	assert.Equal(t, 0.0, c.Grad())
}

// TestSum tests the Add fold helper.
func TestSum(t *testing.T) {
	tape := autodiff.NewTape()
	xs := []autodiff.Value{tape.Leaf(1), tape.Leaf(2), tape.Leaf(3)}

	s := autodiff.Sum(xs...)
	require.NoError(t, s.Backward())

	assert.Equal(t, 6.0, s.Data())
	for _, x := range xs {
		assert.Equal(t, 1.0, x.Grad())
	}
	assert.Same(t, xs[0].Tape(), autodiff.Sum(xs[0]).Tape())
	assert.Panics(t, func() { autodiff.Sum() })
}

// TestValue_ForeignOperand tests that mixing tapes panics.
func TestValue_ForeignOperand(t *testing.T) {
	t1 := autodiff.NewTape()
	t2 := autodiff.NewTape()
	a := t1.Leaf(1)
	b := t2.Leaf(2)

	assert.Panics(t, func() { a.Add(b) })
	assert.Panics(t, func() { a.Mul(autodiff.Value{}) })
	assert.Panics(t, func() { autodiff.Value{}.Exp() })
	assert.Equal(t, 1, t1.Len(), "failed operations must not record nodes")
}

// TestValue_IEEE checks numeric edge cases propagate as IEEE-754 values.
func TestValue_IEEE(t *testing.T) {
	tape := autodiff.NewTape()

	zero := tape.Leaf(0)
	one := tape.Leaf(1)
	q := one.Div(zero)
	assert.True(t, math.IsInf(q.Data(), 1))

	neg := tape.Leaf(-8)
	r := neg.Pow(1.0 / 3)
	assert.True(t, math.IsNaN(r.Data()))

	big := tape.Leaf(1000)
	e := big.Exp()
	assert.True(t, math.IsInf(e.Data(), 1))

	require.NoError(t, r.Backward())
	assert.True(t, math.IsNaN(neg.Grad()))
}

// TestTape_TruncateReclaims tests reclaiming intermediates and stale handles.
func TestTape_TruncateReclaims(t *testing.T) {
	tape := autodiff.NewTape()
	w := tape.Leaf(3)
	mark := tape.Len()

	stale := w.Mul(w)
	assert.Equal(t, 2, tape.Len())

	tape.Truncate(mark)
	assert.Equal(t, 1, tape.Len())
	assert.True(t, w.Valid())
	assert.False(t, stale.Valid())

	// The reclaimed slot is reused by a new node; the old handle stays dead.
	fresh := w.Add(w)
	assert.Equal(t, stale.ID(), fresh.ID())
	assert.True(t, fresh.Valid())
	assert.False(t, stale.Valid())

	err := stale.Backward()
	require.Error(t, err)
	assert.ErrorIs(t, err, autodiff.ErrDanglingValue)

	assert.Panics(t, func() { stale.Data() })
	assert.Panics(t, func() { stale.Add(w) })
	assert.ErrorIs(t, stale.Step(1), autodiff.ErrDanglingValue)

	// Truncating past the end is a no-op.
	tape.Truncate(100)
	assert.True(t, fresh.Valid())
}

// TestTape_Reset tests reclaiming everything.
func TestTape_Reset(t *testing.T) {
	tape := autodiff.NewTape()
	a := tape.Leaf(1)
	b := a.Exp()

	tape.Reset()

	assert.Equal(t, 0, tape.Len())
	assert.False(t, a.Valid())
	assert.False(t, b.Valid())
	assert.False(t, autodiff.Value{}.Valid())

	c := tape.Leaf(7)
	assert.Equal(t, 0, c.ID())
	assert.Equal(t, 7.0, c.Data())
}

// TestTape_PanicValueIsError checks panics carry wrapped sentinel errors.
func TestTape_PanicValueIsError(t *testing.T) {
	tape := autodiff.NewTape()
	a := tape.Leaf(1)
	tape.Reset()

	defer func() {
		r := recover()
		err, ok := r.(error)
		require.True(t, ok)
		assert.True(t, errors.Is(err, autodiff.ErrDanglingValue))
	}()
	_ = a.Grad()
}
