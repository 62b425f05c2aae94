package main

import (
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/born-ml/micrograd/internal/gradcheck"
)

func newGradcheckCmd() *cobra.Command {
	var (
		seed uint64
		opts gradcheck.Options
	)

	cmd := &cobra.Command{
		Use:   "gradcheck",
		Short: "Compare backward-pass gradients with finite differences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rng := rand.New(rand.NewPCG(seed, 0))
			reports, err := gradcheck.CheckAll(gradcheck.Primitives(), rng, opts)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			failed := 0
			for _, r := range reports {
				status := "ok"
				if !r.OK() {
					status = "FAIL"
					failed++
				}
				fmt.Fprintf(w, "%-9s %-4s trials=%d max_err=%.3g\n", r.Name, status, r.Trials, r.MaxError)
				for _, f := range r.Failures {
					fmt.Fprintf(w, "    %s\n", f)
				}
			}
			if failed > 0 {
				return fmt.Errorf("gradcheck: %d primitive(s) failed", failed)
			}
			return nil
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", 1, "random seed")
	cmd.Flags().IntVar(&opts.Trials, "trials", gradcheck.DefaultTrials, "random points per primitive")
	cmd.Flags().Float64Var(&opts.Epsilon, "epsilon", gradcheck.DefaultEpsilon, "finite difference step")
	cmd.Flags().Float64Var(&opts.Tolerance, "tolerance", gradcheck.DefaultTolerance, "maximum absolute error")
	return cmd
}
