// Package optim implements optimization algorithms for training the nn
// package's models.
//
// This package provides:
//   - Optimizer interface: Base interface for all optimizers
//   - SGD: plain gradient descent over leaf parameters
//
// Example usage:
//
//	optimizer, err := optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: 0.05})
//	if err != nil {
//	    return err
//	}
//
//	for range epochs {
//	    optimizer.ZeroGrad()
//	    loss := computeLoss(model, data)
//	    if err := loss.Backward(); err != nil {
//	        return err
//	    }
//	    if err := optimizer.Step(); err != nil {
//	        return err
//	    }
//	}
package optim

import "errors"

// ErrInvalidLR is returned for non-positive or non-finite learning rates.
var ErrInvalidLR = errors.New("optim: learning rate must be positive and finite")

// Optimizer is the base interface for all optimization algorithms.
//
// All optimizers must implement:
//   - Step: Apply gradient updates to parameters
//   - ZeroGrad: Clear gradients before next iteration
//   - GetLR: Get current learning rate (for monitoring)
type Optimizer interface {
	// Step applies gradient updates to all parameters, using the gradients
	// left on them by the last backward pass.
	Step() error

	// ZeroGrad clears all parameter gradients.
	//
	// Backward accumulates into gradients, so call this before each
	// backward pass.
	ZeroGrad()

	// GetLR returns the current learning rate.
	GetLR() float64
}
