package telemetry

import (
	"math"
	"math/rand/v2"
)

// Source is the randomness every generator draws from.
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
	Float64() float64
}

// NewSource returns a deterministic PCG-backed source for seed.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// RandomSeed draws a seed from the process-global generator.
func RandomSeed() uint64 {
	return rand.Uint64()
}

// intBetween is uniform over the closed range [lo, hi].
func intBetween(rng Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.IntN(hi-lo+1)
}

// floatBetween is uniform over [lo, hi).
func floatBetween(rng Source, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func pick[T any](rng Source, items []T) T {
	return items[rng.IntN(len(items))]
}

// weighted returns items[i] with probability weights[i].
// Weights are expected to sum to 1; any remainder goes to the last item.
func weighted[T any](rng Source, items []T, weights []float64) T {
	x := rng.Float64()
	var acc float64
	for i, w := range weights {
		acc += w
		if x < acc {
			return items[i]
		}
	}
	return items[len(items)-1]
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
