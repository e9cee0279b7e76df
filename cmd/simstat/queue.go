package main

import (
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"

	"github.com/nozzle/simstat/queue"
)

func (a *app) queueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Queueing models driven by the generators",
	}
	cmd.AddCommand(a.mm1Cmd(), a.mmcCmd())
	return cmd
}

func (a *app) mm1Cmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mm1",
		Short: "Simulate a single-server queue with exponential times",
		Long: `Simulate a single-server queue and compare it with M/M/1 theory, For example:
  simstat queue mm1 --customers=50 --arrival=0.8 --service=1 --detail
  simstat queue mm1 --customers=10000 --trials=20 --workers=4`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runMM1()
		},
	}

	def := queue.DefaultMM1Config()
	flags := cmd.Flags()
	addGeneratorFlags(flags)
	flags.Int("customers", def.Customers, "customers per trial")
	flags.Float64("arrival", def.ArrivalRate, "arrival rate λ")
	flags.Float64("service", def.ServiceRate, "service rate μ")
	flags.Int("trials", 1, "independent trials, trial t seeded with seed+t")
	flags.Int("workers", 0, "parallel workers (0 = one per CPU)")
	flags.Bool("detail", false, "print every customer of a single trial")
	return cmd
}

func (a *app) runMM1() error {
	v := a.v
	cfg := a.config()
	qcfg := queue.MM1Config{
		Customers:   v.GetInt("customers"),
		ArrivalRate: v.GetFloat64("arrival"),
		ServiceRate: v.GetFloat64("service"),
	}

	trials := v.GetInt("trials")
	if trials <= 1 {
		src, err := cfg.NewSource()
		if err != nil {
			return err
		}
		res, err := queue.SimulateMM1(src, qcfg)
		if err != nil {
			return err
		}

		if v.GetBool("detail") {
			t := a.newTable("customer", "arrival", "start", "end", "wait", "total")
			for _, c := range res.Customers {
				t.row(c.ID, c.Arrival, c.Start, c.End, c.Wait, c.Total)
			}
			if err := t.flush(); err != nil {
				return err
			}
		}

		t := a.newTable("metric", "observed", "theory")
		t.row("mean wait", res.MeanWait, theoryValue(res.Theory, res.Theory.Wq))
		t.row("mean time in system", res.MeanTotal, theoryValue(res.Theory, res.Theory.W))
		t.row("customers who waited", res.Waited, "")
		t.row("share who waited %", res.WaitedShare, "")
		t.row("utilisation", "", res.Theory.Rho)
		return t.flush()
	}

	results, err := queue.ReplicateMM1(trials, v.GetInt("workers"), trialSources(cfg), qcfg)
	if err != nil {
		return err
	}

	waits := make([]float64, len(results))
	totals := make([]float64, len(results))
	t := a.newTable("trial", "seed", "mean wait", "mean time in system", "waited %")
	for i, res := range results {
		waits[i] = res.MeanWait
		totals[i] = res.MeanTotal
		t.row(i+1, cfg.Seed+uint64(i), res.MeanWait, res.MeanTotal, res.WaitedShare)
	}
	if err := t.flush(); err != nil {
		return err
	}

	theory := queue.MM1Theory(qcfg.ArrivalRate, qcfg.ServiceRate)
	waitMean, waitStd := stat.MeanStdDev(waits, nil)
	totalMean, totalStd := stat.MeanStdDev(totals, nil)
	t = a.newTable("metric", "mean", "std dev", "theory")
	t.row("mean wait", waitMean, waitStd, theoryValue(theory, theory.Wq))
	t.row("mean time in system", totalMean, totalStd, theoryValue(theory, theory.W))
	return t.flush()
}

// theoryValue reports x, or "unstable" when the queue has no steady state.
func theoryValue(th queue.Theory, x float64) any {
	if !th.Stable {
		return "unstable"
	}
	return x
}

func (a *app) mmcCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mmc",
		Short: "Erlang-C staffing table for a multi-server queue",
		Long: `Tabulate the Erlang-C waiting probability over a range of server counts
and report the fewest servers that keep the mean wait below --max-wait, For example:
  simstat queue mmc --arrival=1 --service=0.25 --min-servers=3 --max-servers=12 --max-wait=0.5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runMMC()
		},
	}

	flags := cmd.Flags()
	flags.Float64("arrival", 1, "arrival rate λ")
	flags.Float64("service", 0.25, "service rate μ per server")
	flags.Int("min-servers", 1, "smallest server count")
	flags.Int("max-servers", 20, "largest server count")
	flags.Float64("max-wait", 0.5, "target mean wait in queue")
	return cmd
}

func (a *app) runMMC() error {
	v := a.v
	plan, err := queue.Staffing(
		v.GetFloat64("arrival"),
		v.GetFloat64("service"),
		v.GetInt("min-servers"),
		v.GetInt("max-servers"),
		v.GetFloat64("max-wait"),
	)
	if err != nil {
		return err
	}

	t := a.newTable("servers", "stable", "P(wait)", "Wq", "Lq")
	for _, r := range plan.Rows {
		if !r.Stable {
			t.row(r.Servers, false, "", "", "")
			continue
		}
		t.row(r.Servers, true, r.Pw, r.Wq, r.Lq)
	}
	if err := t.flush(); err != nil {
		return err
	}

	t = a.newTable("field", "value")
	t.row("load", plan.Load)
	if best, ok := plan.Best(); ok {
		t.row("minimum servers", best.Servers)
		t.row("mean wait", best.Wq)
	} else {
		t.row("minimum servers", "none in range")
		a.log.Warn().Float64("load", plan.Load).Msg("no server count in range meets the wait target")
	}
	return t.flush()
}
