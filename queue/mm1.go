package queue

import (
	"gonum.org/v1/gonum/stat"

	"github.com/nozzle/simstat/internal/parallel"
	"github.com/nozzle/simstat/simerr"
	"github.com/nozzle/simstat/source"
)

// MM1Config configures an M/M/1 simulation.
type MM1Config struct {
	// Customers is the number of customers to simulate.
	// Default: 50
	Customers int

	// ArrivalRate is λ, customers per unit time.
	// Default: 0.8
	ArrivalRate float64

	// ServiceRate is μ, customers served per unit time.
	// Default: 1.0
	ServiceRate float64
}

// DefaultMM1Config returns the bank-teller example configuration.
func DefaultMM1Config() MM1Config {
	return MM1Config{
		Customers:   50,
		ArrivalRate: 0.8,
		ServiceRate: 1.0,
	}
}

// Customer is one simulated customer.
type Customer struct {
	ID      int // 1-based
	Arrival float64
	Start   float64
	End     float64
	Wait    float64 // Start - Arrival
	Total   float64 // End - Arrival
}

// MM1Result is the outcome of one simulated M/M/1 run.
type MM1Result struct {
	Customers   []Customer
	MeanWait    float64
	MeanTotal   float64
	Waited      int     // customers with a positive wait
	WaitedShare float64 // Waited / len(Customers), in percent
	Theory      Theory
}

// SimulateMM1 runs a single-server FIFO queue. All inter-arrival times are
// drawn first, then all service times, both from src.
func SimulateMM1(src source.Source, cfg MM1Config) (*MM1Result, error) {
	const op = "queue.SimulateMM1"
	if cfg.Customers <= 0 {
		return nil, simerr.Configf(op, "customers", "must be positive, got %d", cfg.Customers)
	}
	if err := checkRates(op, cfg.ArrivalRate, cfg.ServiceRate); err != nil {
		return nil, err
	}

	n := cfg.Customers
	interArrival := make([]float64, n)
	for i := range interArrival {
		interArrival[i] = Exponential(src, cfg.ArrivalRate)
	}
	service := make([]float64, n)
	for i := range service {
		service[i] = Exponential(src, cfg.ServiceRate)
	}

	customers := make([]Customer, n)
	waits := make([]float64, n)
	totals := make([]float64, n)
	var arrival, serverFree float64
	waited := 0
	for i := 0; i < n; i++ {
		arrival += interArrival[i]
		start := max(arrival, serverFree)
		end := start + service[i]
		serverFree = end

		c := Customer{
			ID:      i + 1,
			Arrival: arrival,
			Start:   start,
			End:     end,
			Wait:    start - arrival,
			Total:   end - arrival,
		}
		if c.Wait > 0 {
			waited++
		}
		customers[i] = c
		waits[i] = c.Wait
		totals[i] = c.Total
	}

	return &MM1Result{
		Customers:   customers,
		MeanWait:    stat.Mean(waits, nil),
		MeanTotal:   stat.Mean(totals, nil),
		Waited:      waited,
		WaitedShare: 100 * float64(waited) / float64(n),
		Theory:      MM1Theory(cfg.ArrivalRate, cfg.ServiceRate),
	}, nil
}

// ReplicateMM1 runs independent trials of the same configuration over up to
// workers goroutines (0 = one per CPU). newSource is called once per trial
// and must return a generator no other trial shares.
func ReplicateMM1(trials, workers int, newSource func(trial int) (source.Source, error), cfg MM1Config) ([]*MM1Result, error) {
	if trials <= 0 {
		return nil, simerr.Configf("queue.ReplicateMM1", "trials", "must be positive, got %d", trials)
	}

	type outcome struct {
		res *MM1Result
		err error
	}
	outcomes := parallel.Map(trials, workers, func(i int) outcome {
		src, err := newSource(i)
		if err != nil {
			return outcome{err: err}
		}
		res, err := SimulateMM1(src, cfg)
		return outcome{res: res, err: err}
	})

	results := make([]*MM1Result, trials)
	for i, o := range outcomes {
		if o.err != nil {
			return nil, o.err
		}
		results[i] = o.res
	}
	return results, nil
}
