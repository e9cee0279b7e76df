// Package source provides reproducible uniform pseudorandom generators.
//
// Every generator implements Source and yields values in [0, 1). Two
// generators built from the same seed and parameters produce the same
// stream. A Source keeps mutable state and is not safe for concurrent use;
// give each goroutine its own instance.
package source

import (
	"github.com/nozzle/simstat/internal/math"
	"github.com/nozzle/simstat/simerr"
)

// Source is a stream of uniform values in [0, 1).
type Source interface {
	// Next advances the generator and returns the next value.
	Next() float64
}

// Epsilon is the distance kept from 0 and 1 by ClampOpen.
const Epsilon = 1e-12

// ClampOpen maps u into [Epsilon, 1-Epsilon]. Generators never clamp; a
// consumer that takes a logarithm of a uniform calls this first.
func ClampOpen(u float64) float64 {
	return math.Clamp(u, Epsilon, 1-Epsilon)
}

// Uniforms draws n values from src.
func Uniforms(src Source, n int) ([]float64, error) {
	if n <= 0 {
		return nil, simerr.Configf("source.Uniforms", "n", "must be positive, got %d", n)
	}
	out := make([]float64, n)
	Fill(src, out)
	return out, nil
}

// Fill overwrites every element of v with successive values from src.
func Fill(src Source, v []float64) {
	for i := range v {
		v[i] = src.Next()
	}
}
