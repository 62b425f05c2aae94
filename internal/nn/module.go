// Package nn implements small neural-network building blocks on top of the
// scalar autodiff tape.
//
// This package provides:
//   - Module interface: anything that owns trainable parameters
//   - Parameter: a named leaf value on the tape
//   - Neuron, Layer, MLP: tanh multi-layer perceptron
//   - Loss functions: sum and mean of squared errors
//
// Parameters are leaves created when the model is built. Create the model
// before taking a tape mark, so truncating back to the mark between training
// iterations keeps the parameters alive.
package nn

import "github.com/born-ml/micrograd/internal/autodiff"

// Module is the base interface for all neural network components.
type Module interface {
	// Parameters returns all trainable parameters of this module,
	// including those of nested modules.
	Parameters() []*Parameter
}

// Parameter is a trainable scalar: a named leaf on the tape.
type Parameter struct {
	name  string
	value autodiff.Value
}

// NewParameter creates a new trainable parameter holding a leaf on tape.
func NewParameter(name string, tape *autodiff.Tape, init float64) *Parameter {
	return &Parameter{
		name:  name,
		value: tape.Leaf(init),
	}
}

// Name returns the parameter name, e.g. "layer0.neuron2.w1".
func (p *Parameter) Name() string {
	return p.name
}

// Value returns the leaf node backing the parameter.
func (p *Parameter) Value() autodiff.Value {
	return p.value
}

// Data returns the current parameter value.
func (p *Parameter) Data() float64 {
	return p.value.Data()
}

// Grad returns the gradient accumulated by the last backward passes.
func (p *Parameter) Grad() float64 {
	return p.value.Grad()
}

// ZeroGrad clears the parameter gradient.
func (p *Parameter) ZeroGrad() {
	p.value.ZeroGrad()
}

// Inputs records xs as leaves on tape, for feeding raw samples to a model.
func Inputs(tape *autodiff.Tape, xs []float64) []autodiff.Value {
	out := make([]autodiff.Value, len(xs))
	for i, x := range xs {
		out[i] = tape.Leaf(x)
	}
	return out
}
