package nn

import "math/rand/v2"

// Initializer produces initial parameter values.
type Initializer func() float64

// Uniform returns an initializer drawing from U(-bound, bound) using rng.
func Uniform(rng *rand.Rand, bound float64) Initializer {
	return func() float64 {
		return (rng.Float64()*2.0 - 1.0) * bound
	}
}

// Constant returns an initializer that always yields c. Useful in tests.
func Constant(c float64) Initializer {
	return func() float64 {
		return c
	}
}
