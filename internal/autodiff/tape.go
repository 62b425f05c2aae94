package autodiff

import (
	"fmt"

	"github.com/born-ml/micrograd/internal/autodiff/ops"
)

// ref is a non-owning operand link: a slot index plus the generation the
// slot had when the link was recorded.
type ref struct {
	id  int
	gen uint64
}

// node is one tape slot.
type node struct {
	data     float64
	grad     float64
	gen      uint64
	operands []ref         // 0, 1 or 2 older nodes
	op       ops.Operation // nil for leaves
}

// Tape records the nodes of a computation graph during the forward pass and
// computes gradients during the backward pass.
//
// Nodes are appended in creation order, so every operand has a lower index
// than the node consuming it.
//
// Usage:
//
//	tape := NewTape()
//	w := tape.Leaf(0.5)    // parameters first
//	mark := tape.Len()
//	for range epochs {
//	    loss := model(w)
//	    _ = loss.Backward()
//	    // ... update w ...
//	    tape.Truncate(mark) // reclaim this iteration's intermediates
//	}
type Tape struct {
	nodes []node
	gen   uint64 // generation stamped on newly written slots
}

// NewTape creates a new, empty tape.
func NewTape() *Tape {
	return &Tape{
		nodes: make([]node, 0, 64), // Pre-allocate for common case
	}
}

// Leaf records a new independent node holding x.
func (t *Tape) Leaf(x float64) Value {
	return t.record(x, nil)
}

// Len returns the number of live nodes on the tape.
func (t *Tape) Len() int {
	return len(t.nodes)
}

// Truncate reclaims every node with index n or above. Handles to reclaimed
// nodes stop resolving, even after their slots are reused.
//
// Operands always precede their consumers, so surviving nodes never point
// at reclaimed ones.
func (t *Tape) Truncate(n int) {
	if n < 0 {
		n = 0
	}
	if n >= len(t.nodes) {
		return
	}
	clear(t.nodes[n:])
	t.nodes = t.nodes[:n]
	t.gen++
}

// Reset reclaims every node on the tape.
func (t *Tape) Reset() {
	t.Truncate(0)
}

// ZeroGrad sets the gradient of every live node to zero.
//
// Backward does not clear gradients, so call ZeroGrad (or zero the relevant
// parameters) before each logically independent backward pass.
func (t *Tape) ZeroGrad() {
	for i := range t.nodes {
		t.nodes[i].grad = 0
	}
}

// record appends a node and returns its handle.
func (t *Tape) record(data float64, op ops.Operation, operands ...Value) Value {
	refs := make([]ref, len(operands))
	for i, o := range operands {
		if _, err := t.resolve(o); err != nil {
			panic(fmt.Errorf("record: invalid operand %d: %w", i, err))
		}
		refs[i] = ref{id: o.id, gen: o.gen}
	}

	t.nodes = append(t.nodes, node{
		data:     data,
		gen:      t.gen,
		operands: refs,
		op:       op,
	})
	return Value{tape: t, id: len(t.nodes) - 1, gen: t.gen}
}

// resolve looks a handle up on this tape.
func (t *Tape) resolve(v Value) (*node, error) {
	if v.tape != t {
		return nil, fmt.Errorf("%w (node %d)", ErrForeignValue, v.id)
	}
	return t.lookup(ref{id: v.id, gen: v.gen})
}

// lookup resolves a slot reference or fails if the slot was reclaimed.
func (t *Tape) lookup(r ref) (*node, error) {
	if r.id < 0 || r.id >= len(t.nodes) || t.nodes[r.id].gen != r.gen {
		return nil, fmt.Errorf("%w (node %d, generation %d)", ErrDanglingValue, r.id, r.gen)
	}
	return &t.nodes[r.id], nil
}

// handle wraps a slot reference into a Value.
func (t *Tape) handle(r ref) Value {
	return Value{tape: t, id: r.id, gen: r.gen}
}
