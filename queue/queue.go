// Package queue simulates single-server queues and sizes multi-server ones.
// It consumes a uniform source.Source for its random draws.
package queue

import (
	"math"

	"github.com/nozzle/simstat/simerr"
	"github.com/nozzle/simstat/source"
)

// Exponential draws an exponential variate with the given rate by inverting
// the CDF: -ln(u)/rate. The uniform is clamped because ln(0) is undefined.
func Exponential(src source.Source, rate float64) float64 {
	u := source.ClampOpen(src.Next())
	return -math.Log(u) / rate
}

// Theory holds the closed-form M/M/1 steady-state values.
type Theory struct {
	Rho    float64 // utilisation λ/μ
	Stable bool    // ρ < 1; when false the remaining fields are zero
	Lq     float64 // mean number waiting
	Wq     float64 // mean wait in queue
	L      float64 // mean number in system
	W      float64 // mean time in system
}

// MM1Theory returns the steady-state M/M/1 values for arrival rate lambda
// and service rate mu.
func MM1Theory(lambda, mu float64) Theory {
	rho := lambda / mu
	if rho >= 1 {
		return Theory{Rho: rho}
	}
	lq := rho * rho / (1 - rho)
	l := rho / (1 - rho)
	return Theory{
		Rho:    rho,
		Stable: true,
		Lq:     lq,
		Wq:     lq / lambda,
		L:      l,
		W:      l / lambda,
	}
}

func checkRates(op string, lambda, mu float64) error {
	if !(lambda > 0) {
		return simerr.Configf(op, "arrival rate", "must be positive, got %v", lambda)
	}
	if !(mu > 0) {
		return simerr.Configf(op, "service rate", "must be positive, got %v", mu)
	}
	return nil
}
