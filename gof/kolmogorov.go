package gof

import "math"

// KolmogorovSurvival returns Q(λ) = P(K > λ) for the Kolmogorov
// distribution,
//
//	Q(λ) = 2 Σ_{k≥1} (-1)^(k-1) exp(-2k²λ²).
//
// Below λ = 1.18 the alternating series converges slowly, so the
// complementary theta-function form of the CDF is used there.
func KolmogorovSurvival(lambda float64) float64 {
	if lambda <= 0 {
		return 1
	}
	if lambda < 1.18 {
		// P(K ≤ λ) = sqrt(2π)/λ Σ_{k≥1} exp(-(2k-1)²π²/(8λ²))
		y := math.Exp(-math.Pi * math.Pi / (8 * lambda * lambda))
		p := math.Sqrt(2*math.Pi) / lambda * (y + math.Pow(y, 9) + math.Pow(y, 25) + math.Pow(y, 49))
		return 1 - p
	}
	x := math.Exp(-2 * lambda * lambda)
	return 2 * (x - math.Pow(x, 4) + math.Pow(x, 9))
}

// pValue is the asymptotic p-value of statistic d for a sample of size n,
// with the small-sample correction on the effective size.
func pValue(d float64, n int) float64 {
	sn := math.Sqrt(float64(n))
	return KolmogorovSurvival((sn + 0.12 + 0.11/sn) * d)
}
