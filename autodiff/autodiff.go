// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides scalar reverse-mode automatic differentiation.
//
// Nodes live on a Tape; a Value is a handle to one node. Every operation
// records a new node with non-owning links to its operands, and Backward
// propagates gradients from a root to everything it was computed from.
//
// Example:
//
//	import "github.com/born-ml/micrograd/autodiff"
//
//	func main() {
//	    tape := autodiff.NewTape()
//	    a := tape.Leaf(2.0)
//	    b := tape.Leaf(3.0)
//	    c := a.Mul(b).Tanh()
//
//	    if err := c.Backward(); err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(a.Grad(), b.Grad())
//	}
package autodiff

import (
	"github.com/born-ml/micrograd/internal/autodiff"
)

// Tape owns the nodes of a computation graph.
type Tape = autodiff.Tape

// Value is a handle to one node on a Tape.
type Value = autodiff.Value

// BackwardOption configures optional behavior for Backward.
type BackwardOption = autodiff.BackwardOption

// Errors reported by the engine.
var (
	ErrDanglingValue = autodiff.ErrDanglingValue
	ErrForeignValue  = autodiff.ErrForeignValue
	ErrNotLeaf       = autodiff.ErrNotLeaf
	ErrCycleDetected = autodiff.ErrCycleDetected
)

// NewTape creates a new, empty tape.
func NewTape() *Tape {
	return autodiff.NewTape()
}

// Sum returns the left fold of Add over values.
func Sum(values ...Value) Value {
	return autodiff.Sum(values...)
}

// WithVisitHook registers fn to observe every node as its gradient rule runs.
func WithVisitHook(fn func(Value)) BackwardOption {
	return autodiff.WithVisitHook(fn)
}
