// Package math provides small numeric helpers shared across packages.
package math

import "math"

// Clamp limits val to the closed range [lo, hi].
func Clamp(val, lo, hi float64) float64 {
	if val > hi {
		return hi
	}
	if val < lo {
		return lo
	}
	return val
}

// ClampIndex limits i to [0, n-1].
func ClampIndex(i, n int) int {
	if i >= n {
		return n - 1
	}
	if i < 0 {
		return 0
	}
	return i
}

// BelowOne is the largest float64 strictly less than 1.
var BelowOne = math.Nextafter(1, 0)

// IsUnit reports whether x lies in the closed interval [0, 1].
func IsUnit(x float64) bool {
	return x >= 0 && x <= 1
}

// IsFinite reports whether x is neither NaN nor an infinity.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// SumInts returns the sum of xs.
func SumInts(xs []int) int {
	var s int
	for _, x := range xs {
		s += x
	}
	return s
}
