package autodiff

import "fmt"

// Visitation state for the topological walk.
const (
	white = iota // not yet seen
	grey         // on the work stack
	black        // recorded in post-order
)

// BackwardOption configures optional behavior for Backward.
type BackwardOption func(*backwardOptions)

type backwardOptions struct {
	onVisit func(Value)
}

// WithVisitHook registers fn to be called for every node reached by the
// backward pass, immediately before its gradient rule runs. Leaves are
// reported too. Passing nil has no effect.
func WithVisitHook(fn func(Value)) BackwardOption {
	return func(o *backwardOptions) {
		if fn != nil {
			o.onVisit = fn
		}
	}
}

// frame is one entry of the explicit DFS work stack.
type frame struct {
	id   int
	next int // index of the next operand to explore
}

// TopologicalOrder returns every node reachable from root through operand
// links, in post-order: each node appears after all of its operands.
// Reading the result back to front gives a reverse-topological order.
//
// Nodes are deduplicated by identity, so a node feeding several consumers
// appears once. The walk uses an explicit stack and handles arbitrarily deep
// graphs.
func (t *Tape) TopologicalOrder(root Value) ([]Value, error) {
	order, err := t.postOrder(root)
	if err != nil {
		return nil, err
	}
	out := make([]Value, len(order))
	for i, id := range order {
		out[i] = Value{tape: t, id: id, gen: t.nodes[id].gen}
	}
	return out, nil
}

// postOrder performs the DFS and returns slot indices in post-order.
func (t *Tape) postOrder(root Value) ([]int, error) {
	if _, err := t.resolve(root); err != nil {
		return nil, err
	}

	// Operands precede consumers, so nothing above root is reachable.
	state := make([]uint8, root.id+1)
	order := make([]int, 0, root.id+1)
	stack := []frame{{id: root.id}}
	state[root.id] = grey

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		n := &t.nodes[top.id]

		if top.next < len(n.operands) {
			r := n.operands[top.next]
			top.next++

			if _, err := t.lookup(r); err != nil {
				return nil, fmt.Errorf("operand of node %d: %w", top.id, err)
			}
			if r.id >= len(state) {
				return nil, fmt.Errorf("%w: node %d refers to newer node %d", ErrCycleDetected, top.id, r.id)
			}

			switch state[r.id] {
			case black:
				continue
			case grey:
				return nil, fmt.Errorf("%w at node %d", ErrCycleDetected, r.id)
			}
			state[r.id] = grey
			stack = append(stack, frame{id: r.id})
			continue
		}

		state[top.id] = black
		order = append(order, top.id)
		stack = stack[:len(stack)-1]
	}

	return order, nil
}

// Backward computes the gradient of root with respect to every node it was
// computed from.
//
// Algorithm:
//  1. Post-order DFS from root over operand links (TopologicalOrder)
//  2. Seed root's gradient with 1 (d(root)/d(root))
//  3. Walk the order back to front, running each node's gradient rule once
//     and adding its contributions into the operand gradients
//
// In reverse post-order every consumer of a node runs before the node
// itself, so a node's gradient is complete when its own rule reads it.
//
// Only root's gradient is assigned; all other gradients accumulate on top of
// whatever they already hold. Zero them first (Tape.ZeroGrad) for an
// independent pass.
func (t *Tape) Backward(root Value, opts ...BackwardOption) error {
	var o backwardOptions
	for _, opt := range opts {
		opt(&o)
	}

	order, err := t.postOrder(root)
	if err != nil {
		return fmt.Errorf("backward: %w", err)
	}

	t.nodes[root.id].grad = 1

	var inputs []float64
	for i := len(order) - 1; i >= 0; i-- {
		id := order[i]
		if o.onVisit != nil {
			o.onVisit(Value{tape: t, id: id, gen: t.nodes[id].gen})
		}

		n := &t.nodes[id]
		if n.op == nil {
			continue
		}

		inputs = inputs[:0]
		for _, r := range n.operands {
			inputs = append(inputs, t.nodes[r.id].data)
		}

		grads := n.op.Backward(n.grad, inputs)
		for j, r := range n.operands {
			if j >= len(grads) {
				break
			}
			t.nodes[r.id].grad += grads[j]
		}
	}

	return nil
}
