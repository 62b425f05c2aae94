package nn

import (
	"fmt"

	"github.com/born-ml/micrograd/internal/autodiff"
)

// SumSquaredError computes Σ (predictionᵢ - targetᵢ)².
//
// It panics if the slices are empty or of different lengths.
func SumSquaredError(predictions, targets []autodiff.Value) autodiff.Value {
	if len(predictions) != len(targets) {
		panic(fmt.Sprintf("SumSquaredError: %d predictions for %d targets", len(predictions), len(targets)))
	}
	if len(predictions) == 0 {
		panic("SumSquaredError: no predictions")
	}

	terms := make([]autodiff.Value, len(predictions))
	for i := range predictions {
		terms[i] = predictions[i].Sub(targets[i]).Pow(2)
	}
	return autodiff.Sum(terms...)
}

// MeanSquaredError computes SumSquaredError divided by the number of terms.
func MeanSquaredError(predictions, targets []autodiff.Value) autodiff.Value {
	sse := SumSquaredError(predictions, targets)
	return sse.Mul(sse.Tape().Leaf(1 / float64(len(predictions))))
}
