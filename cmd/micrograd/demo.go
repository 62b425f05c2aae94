package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/born-ml/micrograd/internal/autodiff"
)

// demoCase builds a small graph and returns the nodes to print; the last
// node is the root.
type demoCase struct {
	name  string
	build func(tape *autodiff.Tape) []autodiff.Value
}

var demoCases = []demoCase{
	{"add", func(tape *autodiff.Tape) []autodiff.Value {
		a, b := tape.Leaf(2.0), tape.Leaf(3.0)
		return []autodiff.Value{a, b, a.Add(b)}
	}},
	{"pow", func(tape *autodiff.Tape) []autodiff.Value {
		d := tape.Leaf(4.0)
		return []autodiff.Value{d, d.Pow(2.0)}
	}},
	{"mul", func(tape *autodiff.Tape) []autodiff.Value {
		f, g := tape.Leaf(3.0), tape.Leaf(1.5)
		return []autodiff.Value{f, g, f.Mul(g)}
	}},
	{"exp", func(tape *autodiff.Tape) []autodiff.Value {
		i := tape.Leaf(1.0)
		return []autodiff.Value{i, i.Exp()}
	}},
	{"tanh", func(tape *autodiff.Tape) []autodiff.Value {
		k := tape.Leaf(0.549306144)
		return []autodiff.Value{k, k.Tanh()}
	}},
	{"sub", func(tape *autodiff.Tape) []autodiff.Value {
		m, n := tape.Leaf(6.0), tape.Leaf(7.0)
		return []autodiff.Value{m, n, m.Sub(n)}
	}},
	{"div", func(tape *autodiff.Tape) []autodiff.Value {
		p, q := tape.Leaf(10.0), tape.Leaf(5.0)
		return []autodiff.Value{p, q, p.Div(q)}
	}},
}

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Print forward values and gradients for the worked examples",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDemo(cmd.OutOrStdout())
		},
	}
}

func runDemo(w io.Writer) error {
	tape := autodiff.NewTape()
	for _, c := range demoCases {
		nodes := c.build(tape)
		fmt.Fprintf(w, "%-5s before: %s\n", c.name, joinValues(nodes))
		if err := nodes[len(nodes)-1].Backward(); err != nil {
			return fmt.Errorf("demo %s: %w", c.name, err)
		}
		fmt.Fprintf(w, "%-5s after:  %s\n", c.name, joinValues(nodes))
		tape.Reset()
	}
	return nil
}

func joinValues(vs []autodiff.Value) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = v.String()
	}
	return strings.Join(parts, " | ")
}
