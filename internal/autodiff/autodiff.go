// Package autodiff implements reverse-mode automatic differentiation over
// scalar computation graphs.
//
// Architecture:
//   - Tape: an arena owning every node of a graph in one growable table
//   - Value: a small handle (tape, index, generation) naming one node
//   - ops.Operation: the gradient rule recorded for each derived node
//   - Backward: post-order DFS from a root, then rules run in reverse order
//
// Operand links are plain indices into the tape, so a node never owns the
// nodes it was built from. Node lifetime is the lifetime of its tape slot:
// Truncate and Reset reclaim slots, and handles to reclaimed slots fail to
// resolve with ErrDanglingValue.
//
// Usage:
//
//	tape := autodiff.NewTape()
//	x := tape.Leaf(2.0)
//	y := x.Mul(x) // y = x²
//
//	if err := y.Backward(); err != nil {
//	    return err
//	}
//	fmt.Println(x.Grad()) // dy/dx = 2x = 4.0
//
// A Tape is not safe for concurrent use.
package autodiff

import "errors"

var (
	// ErrDanglingValue is returned when a handle refers to a node whose tape
	// slot has been reclaimed by Truncate or Reset.
	ErrDanglingValue = errors.New("autodiff: dangling value")

	// ErrForeignValue is returned when a handle has no tape or belongs to a
	// different tape than the one it is used with.
	ErrForeignValue = errors.New("autodiff: value belongs to another tape")

	// ErrNotLeaf is returned by Step for nodes produced by an operation.
	ErrNotLeaf = errors.New("autodiff: value is not a leaf")

	// ErrCycleDetected is returned if the operand relation contains a cycle.
	// Nodes can only reference older nodes, so this signals a corrupted tape.
	ErrCycleDetected = errors.New("autodiff: cycle detected")
)
