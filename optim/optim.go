// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides optimizers for nn parameters.
package optim

import (
	"github.com/born-ml/micrograd/internal/optim"
	"github.com/born-ml/micrograd/nn"
)

// Optimizer interface defines the common interface for all optimizers.
type Optimizer = optim.Optimizer

// SGD represents the gradient descent optimizer.
type SGD = optim.SGD

// SGDConfig contains configuration for SGD optimizer.
type SGDConfig = optim.SGDConfig

// ErrInvalidLR is returned for unusable learning rates.
var ErrInvalidLR = optim.ErrInvalidLR

// NewSGD creates a new SGD optimizer.
//
// Example:
//
//	optimizer, err := optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: 0.05})
func NewSGD(params []*nn.Parameter, config SGDConfig) (*SGD, error) {
	return optim.NewSGD(params, config)
}
