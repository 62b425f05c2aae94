// Package config loads and validates training configuration files.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Sample is one training example.
type Sample struct {
	Inputs []float64 `yaml:"inputs" validate:"required,min=1"`
	Target float64   `yaml:"target"`
}

// Model describes the perceptron shape.
type Model struct {
	Layers    []int   `yaml:"layers" validate:"required,min=1,dive,gt=0"`
	InitBound float64 `yaml:"init_bound" validate:"gt=0"`
}

// Training holds the loop settings.
type Training struct {
	Epochs       int     `yaml:"epochs" validate:"gt=0"`
	LearningRate float64 `yaml:"learning_rate" validate:"gt=0"`
	Seed         uint64  `yaml:"seed"`
	LogEvery     int     `yaml:"log_every" validate:"gte=0"`
	TargetLoss   float64 `yaml:"target_loss" validate:"gte=0"`
}

// Config is the full training configuration.
type Config struct {
	Model    Model    `yaml:"model"`
	Training Training `yaml:"training"`
	Dataset  []Sample `yaml:"dataset" validate:"required,min=1,dive"`
}

// Default returns the classic four-sample toy problem with an MLP(3, [4, 4, 1]).
func Default() Config {
	return Config{
		Model: Model{
			Layers:    []int{4, 4, 1},
			InitBound: 1,
		},
		Training: Training{
			Epochs:       100,
			LearningRate: 0.05,
			Seed:         1,
			LogEvery:     10,
		},
		Dataset: []Sample{
			{Inputs: []float64{2, 3, -1}, Target: 1},
			{Inputs: []float64{3, -1, 0.5}, Target: -1},
			{Inputs: []float64{0.5, 1, 1}, Target: -1},
			{Inputs: []float64{1, 1, -1}, Target: 1},
		},
	}
}

// NumInputs returns the input width shared by every sample.
func (c Config) NumInputs() int {
	if len(c.Dataset) == 0 {
		return 0
	}
	return len(c.Dataset[0].Inputs)
}

// Validate checks struct constraints and cross-field consistency.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	n := c.NumInputs()
	for i, s := range c.Dataset {
		if len(s.Inputs) != n {
			return fmt.Errorf("%w: sample %d has %d inputs, want %d", ErrInvalid, i, len(s.Inputs), n)
		}
	}
	if out := c.Model.Layers[len(c.Model.Layers)-1]; out != 1 {
		return fmt.Errorf("%w: last layer must have 1 output for scalar targets, got %d", ErrInvalid, out)
	}
	return nil
}

// Load reads the YAML file at path over the defaults and validates the result.
// Keys missing from the file keep their default values; a dataset in the file
// replaces the default dataset.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read the config file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML bytes over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse the config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Marshal encodes cfg as YAML.
func Marshal(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

var validate = validator.New()
