package nn_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/micrograd/autodiff"
	"github.com/born-ml/micrograd/nn"
	"github.com/born-ml/micrograd/optim"
)

// TestPublicTraining tests a short training loop through the public packages.
func TestPublicTraining(t *testing.T) {
	tape := autodiff.NewTape()
	rng := rand.New(rand.NewPCG(1, 0))
	model := nn.NewMLP(tape, 2, []int{3, 1}, nn.Uniform(rng, 1))

	var _ nn.Module = model

	opt, err := optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: 0.1})
	require.NoError(t, err)

	mark := tape.Len()
	step := func() float64 {
		defer tape.Truncate(mark)
		pred := model.Forward(nn.Inputs(tape, []float64{1, -1}))
		loss := nn.MeanSquaredError(pred, []autodiff.Value{tape.Leaf(0.5)})
		opt.ZeroGrad()
		require.NoError(t, loss.Backward())
		require.NoError(t, opt.Step())
		return loss.Data()
	}

	first := step()
	var last float64
	for range 30 {
		last = step()
	}
	assert.Less(t, last, first)
	assert.Equal(t, mark, tape.Len())
}
