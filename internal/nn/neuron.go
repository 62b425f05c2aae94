package nn

import (
	"fmt"
	"strings"

	"github.com/born-ml/micrograd/internal/autodiff"
)

// Neuron computes tanh(b + Σ wᵢxᵢ).
type Neuron struct {
	weights []*Parameter
	bias    *Parameter
}

// NewNeuron creates a neuron with nin weights and a bias, all drawn from init.
// Parameter names are prefixed with name.
func NewNeuron(name string, tape *autodiff.Tape, nin int, init Initializer) *Neuron {
	weights := make([]*Parameter, nin)
	for i := range weights {
		weights[i] = NewParameter(fmt.Sprintf("%s.w%d", name, i), tape, init())
	}
	return &Neuron{
		weights: weights,
		bias:    NewParameter(name+".b", tape, init()),
	}
}

// Forward computes the neuron activation for inputs x.
// It panics if len(x) differs from the number of weights.
func (n *Neuron) Forward(x []autodiff.Value) autodiff.Value {
	if len(x) != len(n.weights) {
		panic(fmt.Sprintf("Neuron: expected %d inputs, got %d", len(n.weights), len(x)))
	}

	act := n.bias.Value()
	for i, w := range n.weights {
		act = act.Add(w.Value().Mul(x[i]))
	}
	return act.Tanh()
}

// Parameters returns the weights followed by the bias.
func (n *Neuron) Parameters() []*Parameter {
	params := make([]*Parameter, 0, len(n.weights)+1)
	params = append(params, n.weights...)
	return append(params, n.bias)
}

// String formats the weights and bias as the nodes print.
func (n *Neuron) String() string {
	ws := make([]string, len(n.weights))
	for i, w := range n.weights {
		ws[i] = w.Value().String()
	}
	return fmt.Sprintf("(weights: %s\nbias: %s)", strings.Join(ws, " | "), n.bias.Value())
}
