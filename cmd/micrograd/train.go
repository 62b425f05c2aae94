package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/born-ml/micrograd/internal/config"
	"github.com/born-ml/micrograd/internal/train"
)

type trainOptions struct {
	configPath  string
	epochs      int
	metricsAddr string
}

func newTrainCmd(root *rootOptions) *cobra.Command {
	opts := &trainOptions{}

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train a tanh perceptron on a YAML-configured dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTrain(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "training config file (defaults to the built-in toy problem)")
	cmd.Flags().IntVar(&opts.epochs, "epochs", 0, "override the configured number of epochs")
	cmd.Flags().StringVar(&opts.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while training")
	return cmd
}

func runTrain(cmd *cobra.Command, root *rootOptions, opts *trainOptions) error {
	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		if cfg, err = config.Load(opts.configPath); err != nil {
			return err
		}
	}
	if opts.epochs > 0 {
		cfg.Training.Epochs = opts.epochs
	}

	reg := prometheus.NewRegistry()
	trainer, err := train.New(cfg,
		train.WithLogger(root.logger),
		train.WithMetrics(train.NewMetrics(reg)),
	)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if opts.metricsAddr != "" {
		stop, err := serveMetrics(opts.metricsAddr, reg, root.logger)
		if err != nil {
			return err
		}
		defer stop()
		root.logger.Info("serving metrics", "addr", opts.metricsAddr)
	}

	res, err := trainer.Run(ctx)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "run %s: %d epochs, final loss %.6f\n", res.RunID, res.Epochs, res.FinalLoss())
	for i, s := range cfg.Dataset {
		fmt.Fprintf(w, "  %v -> %.4f (target %g)\n", s.Inputs, res.Predictions[i], s.Target)
	}
	return nil
}

// serveMetrics starts a /metrics endpoint and returns a function stopping it.
func serveMetrics(addr string, reg *prometheus.Registry, logger *slog.Logger) (func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("metrics listener: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", "error", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, nil
}
