package queue

import (
	"github.com/nozzle/simstat/simerr"
)

// ErlangC returns the probability that an arriving customer has to wait in
// an M/M/c system with offered load a = λ/μ. ok is false when c <= a, where
// the queue grows without bound.
func ErlangC(a float64, c int) (pw float64, ok bool) {
	if float64(c) <= a || c <= 0 {
		return 0, false
	}
	// Σ_{k<c} a^k/k!, building each term from the previous one
	term, sum := 1.0, 0.0
	for k := 0; k < c; k++ {
		if k > 0 {
			term *= a / float64(k)
		}
		sum += term
	}
	ac := term * a / float64(c) // a^c / c!
	waiting := ac * float64(c) / (float64(c) - a)
	return waiting / (sum + waiting), true
}

// StaffingRow is the M/M/c outcome for one server count.
type StaffingRow struct {
	Servers int
	Stable  bool
	Pw      float64 // probability of waiting
	Wq      float64 // mean wait in queue
	Lq      float64 // mean number waiting
}

// StaffingPlan evaluates a range of server counts.
type StaffingPlan struct {
	Lambda, Mu float64
	Load       float64 // a = λ/μ
	Rows       []StaffingRow

	// MinServers is the smallest server count whose Wq is below the
	// threshold; 0 when none in the range qualifies.
	MinServers int
}

// Best returns the row for MinServers.
func (p *StaffingPlan) Best() (StaffingRow, bool) {
	for _, r := range p.Rows {
		if r.Servers == p.MinServers {
			return r, true
		}
	}
	return StaffingRow{}, false
}

// Staffing evaluates M/M/c for c in [cMin, cMax] with Wq = Pw/(cμ - λ) and
// Lq = λ·Wq, and picks the smallest c with Wq < maxWq.
func Staffing(lambda, mu float64, cMin, cMax int, maxWq float64) (*StaffingPlan, error) {
	const op = "queue.Staffing"
	if err := checkRates(op, lambda, mu); err != nil {
		return nil, err
	}
	if cMin < 1 || cMax < cMin {
		return nil, simerr.Configf(op, "servers", "need 1 <= min <= max, got %d..%d", cMin, cMax)
	}

	a := lambda / mu
	plan := &StaffingPlan{Lambda: lambda, Mu: mu, Load: a}
	for c := cMin; c <= cMax; c++ {
		row := StaffingRow{Servers: c}
		if pw, ok := ErlangC(a, c); ok {
			row.Stable = true
			row.Pw = pw
			row.Wq = pw / (float64(c)*mu - lambda)
			row.Lq = lambda * row.Wq
			if plan.MinServers == 0 && row.Wq < maxWq {
				plan.MinServers = c
			}
		}
		plan.Rows = append(plan.Rows, row)
	}
	return plan, nil
}
