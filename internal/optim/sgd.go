package optim

import (
	"fmt"
	"math"

	"github.com/born-ml/micrograd/internal/nn"
)

// SGD implements gradient descent.
//
// Update rule:
//
//	param = param - lr * gradient
//
// Example:
//
//	optimizer, err := optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: 0.05})
//
//	for range epochs {
//	    optimizer.ZeroGrad()
//	    loss := trainStep(model, batch)
//	    _ = loss.Backward()
//	    _ = optimizer.Step()
//	}
type SGD struct {
	params []*nn.Parameter
	lr     float64
}

// SGDConfig holds configuration for SGD optimizer.
type SGDConfig struct {
	LR float64 // Learning rate (default: 0.01)
}

// NewSGD creates a new SGD optimizer.
//
// A zero LR selects the default of 0.01; negative or non-finite values are
// rejected with ErrInvalidLR.
func NewSGD(params []*nn.Parameter, config SGDConfig) (*SGD, error) {
	lr := config.LR
	if lr == 0 {
		lr = 0.01
	}
	if lr < 0 || math.IsNaN(lr) || math.IsInf(lr, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLR, config.LR)
	}
	return &SGD{
		params: params,
		lr:     lr,
	}, nil
}

// Step moves every parameter against its gradient.
func (s *SGD) Step() error {
	for _, p := range s.params {
		if err := p.Value().Step(-s.lr); err != nil {
			return fmt.Errorf("sgd: parameter %q: %w", p.Name(), err)
		}
	}
	return nil
}

// ZeroGrad clears all parameter gradients.
func (s *SGD) ZeroGrad() {
	for _, p := range s.params {
		p.ZeroGrad()
	}
}

// GetLR returns the learning rate.
func (s *SGD) GetLR() float64 {
	return s.lr
}
