// Package hypothesis holds the decision vocabulary shared by the
// goodness-of-fit and independence tests.
package hypothesis

// Alpha is the significance level every built-in decision rule uses.
const Alpha = 0.05

// ZCritical is the two-sided standard normal critical value at Alpha.
const ZCritical = 1.96

// KSCoefficient is the asymptotic Kolmogorov-Smirnov critical coefficient at
// Alpha: D_crit = KSCoefficient / sqrt(n).
const KSCoefficient = 1.36

// Verdict is the three-way outcome of a statistical test.
type Verdict int

const (
	// NoCriticalValue means the test statistic was computed but no threshold
	// was available to compare it against.
	NoCriticalValue Verdict = iota
	// DoNotReject means the null hypothesis survives.
	DoNotReject
	// Reject means the null hypothesis is rejected at Alpha.
	Reject
)

func (v Verdict) String() string {
	switch v {
	case DoNotReject:
		return "do-not-reject"
	case Reject:
		return "reject"
	default:
		return "no critical value available"
	}
}

// Rejected reports whether the null hypothesis was rejected.
func (v Verdict) Rejected() bool {
	return v == Reject
}

// Decided reports whether a threshold was available.
func (v Verdict) Decided() bool {
	return v != NoCriticalValue
}

// FromReject maps a boolean rejection decision onto a Verdict.
func FromReject(reject bool) Verdict {
	if reject {
		return Reject
	}
	return DoNotReject
}
