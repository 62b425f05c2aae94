// Package train runs gradient-descent training of a perceptron on a small
// in-memory dataset.
//
// Each epoch builds one graph on the tape (forward pass over every sample
// and the summed squared error), runs the backward pass, steps the
// parameters and then truncates the tape back to the parameters, so memory
// stays bounded across epochs.
package train

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/born-ml/micrograd/internal/autodiff"
	"github.com/born-ml/micrograd/internal/config"
	"github.com/born-ml/micrograd/internal/nn"
	"github.com/born-ml/micrograd/internal/optim"
)

// ErrDiverged is returned when the loss stops being finite.
var ErrDiverged = errors.New("train: loss diverged")

// Result summarizes a training run.
type Result struct {
	RunID       string
	Epochs      int
	Losses      []float64 // one per completed epoch
	Predictions []float64 // model outputs after the final step
}

// FinalLoss returns the loss of the last completed epoch, or NaN if none ran.
func (r Result) FinalLoss() float64 {
	if len(r.Losses) == 0 {
		return math.NaN()
	}
	return r.Losses[len(r.Losses)-1]
}

// Option configures a Trainer.
type Option func(*Trainer)

// WithLogger sets the structured logger. Nil discards logs.
func WithLogger(l *slog.Logger) Option {
	return func(t *Trainer) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *Metrics) Option {
	return func(t *Trainer) {
		t.metrics = m
	}
}

// Trainer owns a tape, the model built on it and the optimizer.
type Trainer struct {
	cfg     config.Config
	tape    *autodiff.Tape
	model   *nn.MLP
	opt     optim.Optimizer
	mark    int // tape length right after the parameters
	logger  *slog.Logger
	metrics *Metrics
	runID   string
}

// New validates cfg and builds the model and optimizer.
func New(cfg config.Config, opts ...Option) (*Trainer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	tape := autodiff.NewTape()
	rng := rand.New(rand.NewPCG(cfg.Training.Seed, cfg.Training.Seed^0x9e3779b97f4a7c15))
	model := nn.NewMLP(tape, cfg.NumInputs(), cfg.Model.Layers, nn.Uniform(rng, cfg.Model.InitBound))

	opt, err := optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: cfg.Training.LearningRate})
	if err != nil {
		return nil, err
	}

	t := &Trainer{
		cfg:    cfg,
		tape:   tape,
		model:  model,
		opt:    opt,
		mark:   tape.Len(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		runID:  uuid.NewString(),
	}
	for _, o := range opts {
		o(t)
	}
	t.logger = t.logger.With("run_id", t.runID)
	return t, nil
}

// Model returns the model being trained.
func (t *Trainer) Model() *nn.MLP {
	return t.model
}

// RunID returns the identifier attached to this trainer's log records.
func (t *Trainer) RunID() string {
	return t.runID
}

// Run trains for the configured number of epochs, or until the loss reaches
// the configured target. It stops early with ctx's error if ctx is done.
func (t *Trainer) Run(ctx context.Context) (Result, error) {
	res := Result{RunID: t.runID}
	tc := t.cfg.Training

	t.logger.Info("training started",
		"epochs", tc.Epochs,
		"learning_rate", tc.LearningRate,
		"layers", t.cfg.Model.Layers,
		"parameters", len(t.model.Parameters()),
		"samples", len(t.cfg.Dataset),
	)

	for epoch := 1; epoch <= tc.Epochs; epoch++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		loss, err := t.epoch()
		if err != nil {
			return res, fmt.Errorf("epoch %d: %w", epoch, err)
		}
		res.Epochs = epoch
		res.Losses = append(res.Losses, loss)

		if tc.LogEvery > 0 && (epoch%tc.LogEvery == 0 || epoch == 1) {
			t.logger.Info("epoch", "epoch", epoch, "loss", loss)
		}
		if tc.TargetLoss > 0 && loss <= tc.TargetLoss {
			t.logger.Info("target loss reached", "epoch", epoch, "loss", loss)
			break
		}
	}

	preds, err := t.PredictAll()
	if err != nil {
		return res, err
	}
	res.Predictions = preds

	t.logger.Info("training finished", "epochs", res.Epochs, "loss", res.FinalLoss())
	return res, nil
}

// epoch runs one forward/backward/step cycle and returns the loss before the step.
func (t *Trainer) epoch() (float64, error) {
	defer t.tape.Truncate(t.mark)

	preds := make([]autodiff.Value, len(t.cfg.Dataset))
	targets := make([]autodiff.Value, len(t.cfg.Dataset))
	for i, s := range t.cfg.Dataset {
		preds[i] = t.model.Forward(nn.Inputs(t.tape, s.Inputs))[0]
		targets[i] = t.tape.Leaf(s.Target)
	}
	lossNode := nn.SumSquaredError(preds, targets)
	loss := lossNode.Data()
	if math.IsNaN(loss) || math.IsInf(loss, 0) {
		return loss, fmt.Errorf("%w: %v", ErrDiverged, loss)
	}

	t.opt.ZeroGrad()
	start := time.Now()
	if err := lossNode.Backward(); err != nil {
		return loss, err
	}
	elapsed := time.Since(start)

	t.metrics.observeEpoch(loss, t.tape.Len(), elapsed.Seconds())
	t.logger.Debug("backward", "nodes", t.tape.Len(), "duration", elapsed)

	if err := t.opt.Step(); err != nil {
		return loss, err
	}
	return loss, nil
}

// Predict runs the model on one input vector without keeping the graph.
func (t *Trainer) Predict(inputs []float64) (float64, error) {
	if len(inputs) != t.cfg.NumInputs() {
		return 0, fmt.Errorf("train: expected %d inputs, got %d", t.cfg.NumInputs(), len(inputs))
	}
	defer t.tape.Truncate(t.mark)
	return t.model.Forward(nn.Inputs(t.tape, inputs))[0].Data(), nil
}

// PredictAll runs Predict over the configured dataset.
func (t *Trainer) PredictAll() ([]float64, error) {
	out := make([]float64, len(t.cfg.Dataset))
	for i, s := range t.cfg.Dataset {
		p, err := t.Predict(s.Inputs)
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}
