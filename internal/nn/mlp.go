package nn

import (
	"fmt"

	"github.com/born-ml/micrograd/internal/autodiff"
)

// MLP is a multi-layer perceptron: a chain of tanh layers where each layer's
// output feeds the next.
//
// Example:
//
//	tape := autodiff.NewTape()
//	rng := rand.New(rand.NewPCG(seed, 0))
//	model := nn.NewMLP(tape, 3, []int{4, 4, 1}, nn.Uniform(rng, 1))
//
//	out := model.Forward(nn.Inputs(tape, []float64{2, 3, -1}))
type MLP struct {
	nin    int
	layers []*Layer
}

// NewMLP creates a perceptron with nin inputs and one layer per entry of
// nouts. It panics on non-positive sizes.
func NewMLP(tape *autodiff.Tape, nin int, nouts []int, init Initializer) *MLP {
	if nin <= 0 || len(nouts) == 0 {
		panic(fmt.Sprintf("MLP: invalid sizes nin=%d nouts=%v", nin, nouts))
	}

	layers := make([]*Layer, len(nouts))
	in := nin
	for i, out := range nouts {
		if out <= 0 {
			panic(fmt.Sprintf("MLP: layer %d has non-positive size %d", i, out))
		}
		layers[i] = NewLayer(fmt.Sprintf("layer%d", i), tape, in, out, init)
		in = out
	}
	return &MLP{nin: nin, layers: layers}
}

// Forward runs x through every layer.
func (m *MLP) Forward(x []autodiff.Value) []autodiff.Value {
	if len(x) != m.nin {
		panic(fmt.Sprintf("MLP: expected %d inputs, got %d", m.nin, len(x)))
	}
	for _, l := range m.layers {
		x = l.Forward(x)
	}
	return x
}

// Parameters returns the parameters of all layers in order.
func (m *MLP) Parameters() []*Parameter {
	var params []*Parameter
	for _, l := range m.layers {
		params = append(params, l.Parameters()...)
	}
	return params
}

// Layers returns the layers of the perceptron.
func (m *MLP) Layers() []*Layer {
	return m.layers
}
