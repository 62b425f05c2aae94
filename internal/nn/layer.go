package nn

import (
	"fmt"

	"github.com/born-ml/micrograd/internal/autodiff"
)

// Layer is a row of independent neurons sharing the same inputs.
type Layer struct {
	neurons []*Neuron
}

// NewLayer creates a layer of nout neurons with nin inputs each.
func NewLayer(name string, tape *autodiff.Tape, nin, nout int, init Initializer) *Layer {
	neurons := make([]*Neuron, nout)
	for i := range neurons {
		neurons[i] = NewNeuron(fmt.Sprintf("%s.n%d", name, i), tape, nin, init)
	}
	return &Layer{neurons: neurons}
}

// Forward applies every neuron to x.
func (l *Layer) Forward(x []autodiff.Value) []autodiff.Value {
	out := make([]autodiff.Value, len(l.neurons))
	for i, n := range l.neurons {
		out[i] = n.Forward(x)
	}
	return out
}

// Parameters returns the parameters of all neurons in order.
func (l *Layer) Parameters() []*Parameter {
	var params []*Parameter
	for _, n := range l.neurons {
		params = append(params, n.Parameters()...)
	}
	return params
}

// Size returns the number of neurons.
func (l *Layer) Size() int {
	return len(l.neurons)
}
