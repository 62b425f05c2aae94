// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides tanh perceptron building blocks on the scalar tape.
//
// # Basic Usage
//
//	tape := autodiff.NewTape()
//	rng := rand.New(rand.NewPCG(1, 0))
//	model := nn.NewMLP(tape, 3, []int{4, 4, 1}, nn.Uniform(rng, 1))
//
//	x := nn.Inputs(tape, []float64{2, 3, -1})
//	y := tape.Leaf(1)
//	loss := nn.SumSquaredError(model.Forward(x), []autodiff.Value{y})
package nn

import (
	"math/rand/v2"

	"github.com/born-ml/micrograd/autodiff"
	"github.com/born-ml/micrograd/internal/nn"
)

// Module is the base interface for all components owning parameters.
type Module = nn.Module

// Parameter is a named trainable leaf.
type Parameter = nn.Parameter

// Initializer produces initial parameter values.
type Initializer = nn.Initializer

// Neuron computes tanh(b + Σ wᵢxᵢ).
type Neuron = nn.Neuron

// Layer is a row of neurons sharing inputs.
type Layer = nn.Layer

// MLP is a multi-layer tanh perceptron.
type MLP = nn.MLP

// NewParameter creates a named leaf parameter on tape.
func NewParameter(name string, tape *autodiff.Tape, init float64) *Parameter {
	return nn.NewParameter(name, tape, init)
}

// NewNeuron creates a neuron with nin inputs.
func NewNeuron(name string, tape *autodiff.Tape, nin int, init Initializer) *Neuron {
	return nn.NewNeuron(name, tape, nin, init)
}

// NewLayer creates a layer of nout neurons with nin inputs each.
func NewLayer(name string, tape *autodiff.Tape, nin, nout int, init Initializer) *Layer {
	return nn.NewLayer(name, tape, nin, nout, init)
}

// NewMLP creates a perceptron with nin inputs and the given layer sizes.
func NewMLP(tape *autodiff.Tape, nin int, nouts []int, init Initializer) *MLP {
	return nn.NewMLP(tape, nin, nouts, init)
}

// Uniform returns an initializer drawing from U(-bound, bound).
func Uniform(rng *rand.Rand, bound float64) Initializer {
	return nn.Uniform(rng, bound)
}

// Constant returns an initializer that always yields c.
func Constant(c float64) Initializer {
	return nn.Constant(c)
}

// Inputs records xs as leaves on tape.
func Inputs(tape *autodiff.Tape, xs []float64) []autodiff.Value {
	return nn.Inputs(tape, xs)
}

// SumSquaredError computes Σ (predictionᵢ - targetᵢ)².
func SumSquaredError(predictions, targets []autodiff.Value) autodiff.Value {
	return nn.SumSquaredError(predictions, targets)
}

// MeanSquaredError computes the mean of the squared errors.
func MeanSquaredError(predictions, targets []autodiff.Value) autodiff.Value {
	return nn.MeanSquaredError(predictions, targets)
}
